package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// rates and amounts travel as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true
}

type ExchangeRate struct {
	ID           int64           `json:"id"`
	FromCurrency string          `json:"from_currency"`
	ToCurrency   string          `json:"to_currency"`
	Rate         decimal.Decimal `json:"rate"`
	Source       string          `json:"source"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (r ExchangeRate) Pair() RatePair {
	return RatePair{Base: r.FromCurrency, Quote: r.ToCurrency}
}

type RatePair struct {
	Base  string
	Quote string
}

func (p RatePair) String() string { return p.Base + "/" + p.Quote }

// RateFilter narrows List results; empty fields match everything.
type RateFilter struct {
	FromCurrency string
	ToCurrency   string
}

func (f RateFilter) Matches(r ExchangeRate) bool {
	if f.FromCurrency != "" && f.FromCurrency != r.FromCurrency {
		return false
	}
	if f.ToCurrency != "" && f.ToCurrency != r.ToCurrency {
		return false
	}
	return true
}

const (
	// RateScale and RateIntegerDigits mirror the numeric(19, 6) rate column.
	RateScale         = 6
	RateIntegerDigits = 13

	maxExponent = 30
	maxDigits   = 30
)

var rateCeiling = decimal.New(1, RateIntegerDigits)

// WithinMagnitude reports whether d has a small enough exponent and coefficient
// to be multiplied and rounded in bounded time.
func WithinMagnitude(d decimal.Decimal) bool {
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		return false
	}
	return d.NumDigits() <= maxDigits
}

// ValidateRate accepts positive rates that fit the rate column without rounding.
func ValidateRate(rate decimal.Decimal) error {
	if !rate.IsPositive() {
		return ErrInvalidRate
	}
	if !WithinMagnitude(rate) || rate.GreaterThanOrEqual(rateCeiling) {
		return ErrRateOutOfRange
	}
	if !rate.Equal(rate.Truncate(RateScale)) {
		return ErrRatePrecision
	}
	return nil
}

func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !WithinMagnitude(amount) {
		return ErrAmountOutOfRange
	}
	return nil
}

// NormalizeCode trims and upper-cases a currency code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
