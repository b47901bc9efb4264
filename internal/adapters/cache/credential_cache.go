package cache

import (
	"fmt"
	"fxconvert/internal/domain"
	"time"

	"github.com/dgraph-io/ristretto"
)

// RistrettoCredentialCache keeps resolved auth contexts keyed by raw bearer token.
type RistrettoCredentialCache struct {
	cache *ristretto.Cache
}

func NewCredentialCache(maxItems int64) (*RistrettoCredentialCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create credential cache failed: %w", err)
	}
	return &RistrettoCredentialCache{cache: c}, nil
}

func (c *RistrettoCredentialCache) Get(token string) (domain.AuthContext, bool) {
	if v, ok := c.cache.Get(token); ok {
		actx, ok := v.(domain.AuthContext)
		return actx, ok
	}
	return domain.AuthContext{}, false
}

func (c *RistrettoCredentialCache) Set(token string, actx domain.AuthContext, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.cache.SetWithTTL(token, actx, 1, ttl)
}

func (c *RistrettoCredentialCache) Close() { c.cache.Close() }
