package rate

import (
	"context"
	"fmt"
	"fxconvert/internal/adapters"
	"fxconvert/internal/domain"
	"fxconvert/internal/metrics"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	DefaultSource  = "manual"
	maxSourceChars = 50
)

type CreateRateInput struct {
	FromCurrency string
	ToCurrency   string
	Rate         decimal.Decimal
	Source       string
}

// Service applies validation and normalization in front of the rate store.
// Every mutation is synchronous: once a call returns, subsequent reads observe it.
type Service struct {
	repo      adapters.RateRepository
	validator *CurrencyValidator
	metrics   *metrics.Metrics
}

func (s *Service) Create(ctx context.Context, in CreateRateInput) (domain.ExchangeRate, error) {
	from, to := domain.NormalizeCode(in.FromCurrency), domain.NormalizeCode(in.ToCurrency)
	if err := s.validator.ValidateCodes(from, to); err != nil {
		return domain.ExchangeRate{}, err
	}
	if err := domain.ValidateRate(in.Rate); err != nil {
		return domain.ExchangeRate{}, err
	}

	source := strings.TrimSpace(in.Source)
	if source == "" {
		source = DefaultSource
	}
	if len([]rune(source)) > maxSourceChars {
		return domain.ExchangeRate{}, domain.NewValidationError(fmt.Sprintf("source must be at most %d characters", maxSourceChars))
	}

	created, err := s.repo.Create(ctx, domain.ExchangeRate{
		FromCurrency: from,
		ToCurrency:   to,
		Rate:         in.Rate,
		Source:       source,
	})
	if err != nil {
		return domain.ExchangeRate{}, err
	}
	s.metrics.RecordMutation(string(domain.OpCreateRate))
	return created, nil
}

func (s *Service) Update(ctx context.Context, from string, to string, value decimal.Decimal) (domain.ExchangeRate, error) {
	from, to, err := lookupCodes(from, to)
	if err != nil {
		return domain.ExchangeRate{}, err
	}
	if err = domain.ValidateRate(value); err != nil {
		return domain.ExchangeRate{}, err
	}

	updated, err := s.repo.Update(ctx, from, to, value)
	if err != nil {
		return domain.ExchangeRate{}, err
	}
	s.metrics.RecordMutation(string(domain.OpUpdateRate))
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, from string, to string) error {
	from, to, err := lookupCodes(from, to)
	if err != nil {
		return err
	}
	if err = s.repo.Delete(ctx, from, to); err != nil {
		return err
	}
	s.metrics.RecordMutation(string(domain.OpDeleteRate))
	return nil
}

func (s *Service) Find(ctx context.Context, from string, to string) (domain.ExchangeRate, error) {
	from, to, err := lookupCodes(from, to)
	if err != nil {
		return domain.ExchangeRate{}, err
	}
	return s.repo.Find(ctx, from, to)
}

func (s *Service) List(ctx context.Context, filter domain.RateFilter) ([]domain.ExchangeRate, error) {
	filter.FromCurrency = domain.NormalizeCode(filter.FromCurrency)
	filter.ToCurrency = domain.NormalizeCode(filter.ToCurrency)
	return s.repo.List(ctx, filter)
}

func (s *Service) SupportedCodes() []string {
	return s.validator.SupportedCodes()
}

// lookupCodes normalizes codes addressing an existing pair. Unsupported codes are not
// rejected here, an unknown pair simply is not found.
func lookupCodes(from, to string) (string, string, error) {
	from, to = domain.NormalizeCode(from), domain.NormalizeCode(to)
	if from == "" {
		return "", "", ErrFromRequired
	}
	if to == "" {
		return "", "", ErrToRequired
	}
	return from, to, nil
}

func NewService(repo adapters.RateRepository, validator *CurrencyValidator, m *metrics.Metrics) *Service {
	return &Service{repo: repo, validator: validator, metrics: m}
}
