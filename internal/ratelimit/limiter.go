package ratelimit

import (
	"context"
	"fmt"
	"fxconvert/internal/adapters"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	DefaultRequests = 60
	DefaultWindow   = time.Minute
)

// Decision is the outcome of a single admission check.
type Decision struct {
	Allowed    bool
	Limit      int64
	Remaining  int64
	ResetAt    time.Time
	RetryAfter time.Duration
}

type Limiter struct {
	store  adapters.WindowStore
	clock  clockwork.Clock
	limit  int64
	window time.Duration
}

// Admit counts the request against clientID's current window.
// Rejected requests are counted too but never move the window start.
func (l *Limiter) Admit(ctx context.Context, clientID string) (Decision, error) {
	now := l.clock.Now()

	count, start, err := l.store.Hit(ctx, clientID, now, l.window)
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit hit for %q: %w", clientID, err)
	}

	d := Decision{
		Allowed: count <= l.limit,
		Limit:   l.limit,
		ResetAt: start.Add(l.window),
	}
	if d.Allowed {
		d.Remaining = l.limit - count
	} else {
		d.RetryAfter = d.ResetAt.Sub(now)
		if d.RetryAfter < 0 {
			d.RetryAfter = 0
		}
	}
	return d, nil
}

func (l *Limiter) Window() time.Duration { return l.window }

func NewLimiter(store adapters.WindowStore, clock clockwork.Clock, limit int, window time.Duration) *Limiter {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if limit <= 0 {
		limit = DefaultRequests
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{store: store, clock: clock, limit: int64(limit), window: window}
}
