package rate

import (
	"context"
	"errors"
	"fxconvert/internal/adapters"
	"fxconvert/internal/domain"
	"fxconvert/internal/metrics"
	"slices"

	"github.com/shopspring/decimal"
)

const (
	DefaultMaxHops = 2
	// ResultScale is the number of decimal places kept in converted amounts.
	ResultScale = 6
)

// Resolver converts amounts between currencies, directly or through intermediate currencies.
type Resolver struct {
	repo      adapters.RateRepository
	validator *CurrencyValidator
	maxHops   int
	metrics   *metrics.Metrics
}

func (r *Resolver) Convert(ctx context.Context, from string, to string, amount decimal.Decimal) (domain.Conversion, error) {
	from, to = domain.NormalizeCode(from), domain.NormalizeCode(to)
	if err := r.validator.ValidatePair(from, to); err != nil {
		return domain.Conversion{}, err
	}
	if err := domain.ValidateAmount(amount); err != nil {
		return domain.Conversion{}, err
	}

	if from == to {
		r.metrics.RecordConversion(metrics.ConversionIdentity)
		return compose(from, to, amount, decimal.NewFromInt(1), []string{from}), nil
	}

	direct, err := r.repo.Find(ctx, from, to)
	if err == nil {
		r.metrics.RecordConversion(metrics.ConversionDirect)
		return compose(from, to, amount, direct.Rate, []string{from, to}), nil
	}
	if !errors.Is(err, domain.ErrRateNotFound) {
		return domain.Conversion{}, err
	}

	if r.maxHops > 1 {
		rates, listErr := r.repo.List(ctx, domain.RateFilter{})
		if listErr != nil {
			return domain.Conversion{}, listErr
		}
		if path, rate, ok := shortestPath(rates, from, to, r.maxHops); ok {
			r.metrics.RecordConversion(metrics.ConversionMultiHop)
			return compose(from, to, amount, rate, path), nil
		}
	}

	r.metrics.RecordConversion(metrics.ConversionFailed)
	return domain.Conversion{}, domain.ErrNotConvertible
}

func (r *Resolver) MaxHops() int { return r.maxHops }

func compose(from, to string, amount, rate decimal.Decimal, path []string) domain.Conversion {
	return domain.Conversion{
		From:   from,
		To:     to,
		Amount: amount,
		Result: amount.Mul(rate).Round(ResultScale),
		Rate:   rate,
		Path:   path,
	}
}

type hop struct {
	prev string
	rate decimal.Decimal
}

// shortestPath runs a breadth-first search bounded by maxHops over rates taken as directed edges.
// Nodes are expanded level by level in discovery order and edges in the order given, so among
// minimal paths the first one discovered wins.
func shortestPath(rates []domain.ExchangeRate, from, to string, maxHops int) ([]string, decimal.Decimal, bool) {
	edges := make(map[string][]domain.ExchangeRate)
	for _, r := range rates {
		edges[r.FromCurrency] = append(edges[r.FromCurrency], r)
	}

	visited := map[string]bool{from: true}
	parents := make(map[string]hop)
	frontier := []string{from}

	for depth := 1; depth <= maxHops && len(frontier) > 0; depth++ {
		var next []string
		for _, node := range frontier {
			for _, e := range edges[node] {
				if visited[e.ToCurrency] {
					continue
				}
				visited[e.ToCurrency] = true
				parents[e.ToCurrency] = hop{prev: node, rate: e.Rate}
				if e.ToCurrency == to {
					path, rate := walkBack(parents, from, to)
					return path, rate, true
				}
				next = append(next, e.ToCurrency)
			}
		}
		frontier = next
	}
	return nil, decimal.Zero, false
}

func walkBack(parents map[string]hop, from, to string) ([]string, decimal.Decimal) {
	path := []string{to}
	rate := decimal.NewFromInt(1)
	for node := to; node != from; {
		h := parents[node]
		rate = rate.Mul(h.rate)
		path = append(path, h.prev)
		node = h.prev
	}
	slices.Reverse(path)
	return path, rate
}

func NewResolver(repo adapters.RateRepository, validator *CurrencyValidator, maxHops int, m *metrics.Metrics) *Resolver {
	if maxHops <= 0 {
		maxHops = DefaultMaxHops
	}
	return &Resolver{repo: repo, validator: validator, maxHops: maxHops, metrics: m}
}
