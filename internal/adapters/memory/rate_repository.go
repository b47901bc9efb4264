package memory

import (
	"context"
	"fxconvert/internal/domain"
	"slices"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
)

// RateRepository keeps rates in a map keyed by pair. A single lock serializes writes,
// which gives per-key linearizability and exactly one winner on duplicate creates.
type RateRepository struct {
	mu     sync.RWMutex
	rates  map[domain.RatePair]domain.ExchangeRate
	nextID int64
	clock  clockwork.Clock
}

func (r *RateRepository) Create(_ context.Context, rate domain.ExchangeRate) (domain.ExchangeRate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pair := rate.Pair()
	if _, ok := r.rates[pair]; ok {
		return domain.ExchangeRate{}, domain.ErrRateConflict
	}

	r.nextID++
	now := r.clock.Now().UTC()
	rate.ID = r.nextID
	rate.CreatedAt = now
	rate.UpdatedAt = now
	r.rates[pair] = rate
	return rate, nil
}

func (r *RateRepository) Update(_ context.Context, from string, to string, value decimal.Decimal) (domain.ExchangeRate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pair := domain.RatePair{Base: from, Quote: to}
	rate, ok := r.rates[pair]
	if !ok {
		return domain.ExchangeRate{}, domain.ErrRateNotFound
	}

	// updated_at never goes backwards even if the clock does
	now := r.clock.Now().UTC()
	if now.Before(rate.UpdatedAt) {
		now = rate.UpdatedAt
	}
	rate.Rate = value
	rate.UpdatedAt = now
	r.rates[pair] = rate
	return rate, nil
}

func (r *RateRepository) Delete(_ context.Context, from string, to string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pair := domain.RatePair{Base: from, Quote: to}
	if _, ok := r.rates[pair]; !ok {
		return domain.ErrRateNotFound
	}
	delete(r.rates, pair)
	return nil
}

func (r *RateRepository) Find(_ context.Context, from string, to string) (domain.ExchangeRate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rate, ok := r.rates[domain.RatePair{Base: from, Quote: to}]
	if !ok {
		return domain.ExchangeRate{}, domain.ErrRateNotFound
	}
	return rate, nil
}

func (r *RateRepository) List(_ context.Context, filter domain.RateFilter) ([]domain.ExchangeRate, error) {
	r.mu.RLock()
	res := make([]domain.ExchangeRate, 0, len(r.rates))
	for _, rate := range r.rates {
		if filter.Matches(rate) {
			res = append(res, rate)
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(res, func(a, b domain.ExchangeRate) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
	return res, nil
}

func NewRateRepository(clock clockwork.Clock) *RateRepository {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &RateRepository{
		rates: make(map[domain.RatePair]domain.ExchangeRate),
		clock: clock,
	}
}
