package rate

import (
	"fmt"
	"fxconvert/internal/domain"
	"maps"
	"slices"
)

const codeLength = 3

var (
	ErrFromRequired = domain.NewValidationError("from_currency is required")
	ErrToRequired   = domain.NewValidationError("to_currency is required")
	ErrSameCodes    = domain.NewValidationError("source and target currencies cannot be the same")
)

// DefaultSupportedCodes is used when no whitelist is configured.
var DefaultSupportedCodes = []string{"USD", "EUR", "JPY", "CNY", "CHF", "TWD", "AUD", "CAD", "GBP"}

type CurrencyValidator struct {
	supportedCodesSet map[string]struct{} // read only copy
	supportedCodesLst []string            // read only copy
}

// ValidateCodes checks a pair that is about to be stored.
func (v *CurrencyValidator) ValidateCodes(from, to string) error {
	if err := v.ValidatePair(from, to); err != nil {
		return err
	}
	if from == to {
		return ErrSameCodes
	}
	return nil
}

// ValidatePair checks both codes are present and supported; equal codes are allowed.
func (v *CurrencyValidator) ValidatePair(from, to string) error {
	if from == "" {
		return ErrFromRequired
	}
	if to == "" {
		return ErrToRequired
	}
	if err := v.ValidateCode(from); err != nil {
		return err
	}
	return v.ValidateCode(to)
}

func (v *CurrencyValidator) ValidateCode(code string) error {
	if len(code) != codeLength {
		return domain.NewValidationError(fmt.Sprintf("currency code must be %d characters: %q", codeLength, code))
	}
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return domain.NewValidationError(fmt.Sprintf("currency code must be alphabetic: %q", code))
		}
	}
	if _, ok := v.supportedCodesSet[code]; !ok {
		return domain.NewValidationError(fmt.Sprintf("unsupported currency code: %s", code))
	}
	return nil
}

func (v *CurrencyValidator) SupportedCodes() []string {
	return slices.Clone(v.supportedCodesLst)
}

func NewValidator(supportedCurrencies map[string]struct{}) *CurrencyValidator {
	codesSet := maps.Clone(supportedCurrencies)
	codesLst := slices.Collect(maps.Keys(codesSet))
	slices.Sort(codesLst)

	return &CurrencyValidator{
		supportedCodesSet: codesSet,
		supportedCodesLst: codesLst,
	}
}

// CodeSet normalizes codes into a set, falling back to DefaultSupportedCodes when empty.
func CodeSet(codes []string) map[string]struct{} {
	if len(codes) == 0 {
		codes = DefaultSupportedCodes
	}
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		if n := domain.NormalizeCode(c); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}
