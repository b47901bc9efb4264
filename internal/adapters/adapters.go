package adapters

import (
	"context"
	"fxconvert/internal/domain"
	"time"

	"github.com/shopspring/decimal"
)

// RateRepository stores directional exchange rates, at most one per ordered pair.
type RateRepository interface {
	Create(ctx context.Context, rate domain.ExchangeRate) (domain.ExchangeRate, error)
	Update(ctx context.Context, from string, to string, value decimal.Decimal) (domain.ExchangeRate, error)
	Delete(ctx context.Context, from string, to string) error
	Find(ctx context.Context, from string, to string) (domain.ExchangeRate, error)
	// List returns matching rates ordered by id ascending.
	List(ctx context.Context, filter domain.RateFilter) ([]domain.ExchangeRate, error)
}

// WindowStore counts requests per key inside fixed-length windows.
// Hit must start a new window when none exists or the current one has elapsed,
// otherwise increment, and do both atomically.
type WindowStore interface {
	Hit(ctx context.Context, key string, now time.Time, window time.Duration) (count int64, windowStart time.Time, err error)
}

type CredentialCache interface {
	Get(token string) (domain.AuthContext, bool)
	Set(token string, actx domain.AuthContext, ttl time.Duration)
}

// RateProvider fetches the latest quotes for base from an upstream source, keyed by quote code.
type RateProvider interface {
	LatestRates(ctx context.Context, base string) (map[string]decimal.Decimal, error)
}
