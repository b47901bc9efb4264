package rate

import (
	"context"
	"errors"
	"fmt"
	"fxconvert/internal/adapters"
	"fxconvert/internal/domain"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	SyncSource        = "exchangerate-api"
	numWorkers        = 5
	perRequestTimeout = 5 * time.Second
)

type SyncReport struct {
	Fetched   int
	Created   int
	Updated   int
	Unchanged int
}

type quote struct {
	Pair  domain.RatePair
	Value decimal.Decimal
}

type syncOutcome int

const (
	outcomeCreated syncOutcome = iota
	outcomeUpdated
	outcomeUnchanged
)

// SyncRates refreshes stored rates with upstream quotes for every base currency.
// Pairs absent from the store are created with SyncSource; equal values are left untouched.
func SyncRates(ctx context.Context, execID string, svc *Service, provider adapters.RateProvider, bases []string) (SyncReport, error) {
	var report SyncReport

	// STEP 1: only supported bases are requested, each once
	unique := uniqueBases(svc.validator, bases)
	if len(unique) == 0 {
		logrus.Infof("No supported bases to sync; execID: %s", execID)
		return report, nil
	}

	// STEP 2: fetching quotes in parallel, one request per base
	quotes := fetchInParallel(ctx, provider, svc.validator, unique)
	report.Fetched = len(quotes)
	if len(quotes) == 0 {
		logrus.Infof("Nothing to sync this time; execID: %s", execID)
		return report, nil
	}

	// STEP 3: writing through the service so validation and metrics apply
	for _, q := range quotes {
		outcome, err := applyQuote(ctx, svc, q)
		if err != nil {
			return report, err
		}
		switch outcome {
		case outcomeCreated:
			report.Created++
		case outcomeUpdated:
			report.Updated++
		default:
			report.Unchanged++
		}
	}

	logrus.Infof("Synced %d quotes (%d created, %d updated); execID: %s", report.Fetched, report.Created, report.Updated, execID)
	return report, nil
}

func uniqueBases(v *CurrencyValidator, bases []string) []string {
	seen := make(map[string]struct{}, len(bases))
	out := make([]string, 0, len(bases))
	for _, b := range bases {
		code := domain.NormalizeCode(b)
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		if err := v.ValidateCode(code); err != nil {
			logrus.Warnf("Skipping sync base %q: %v", b, err)
			continue
		}
		out = append(out, code)
	}
	return out
}

// fetchInParallel runs a bounded worker pool over bases and returns quotes ordered by pair.
func fetchInParallel(ctx context.Context, provider adapters.RateProvider, v *CurrencyValidator, bases []string) []quote {
	workQueue := make(chan string, len(bases))
	for _, base := range bases {
		workQueue <- base
	}
	close(workQueue)

	var (
		mu     sync.Mutex
		quotes []quote
		wg     sync.WaitGroup
	)
	for i := 0; i < min(numWorkers, len(bases)); i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case base, ok := <-workQueue:
					if !ok {
						return
					}
					found := fetchBase(ctx, workerID, base, provider, v)
					mu.Lock()
					quotes = append(quotes, found...)
					mu.Unlock()
				}
			}
		}(i)
	}
	wg.Wait()

	sort.Slice(quotes, func(i, j int) bool {
		if quotes[i].Pair.Base != quotes[j].Pair.Base {
			return quotes[i].Pair.Base < quotes[j].Pair.Base
		}
		return quotes[i].Pair.Quote < quotes[j].Pair.Quote
	})
	return quotes
}

// fetchBase keeps supported quotes other than base itself, rounded to the rate scale.
// Quotes that are not a valid rate after rounding are dropped.
// A failed request is logged and left for the next run.
func fetchBase(ctx context.Context, workerID int, base string, provider adapters.RateProvider, v *CurrencyValidator) []quote {
	reqCtx, cancel := context.WithTimeout(ctx, perRequestTimeout)
	defer cancel()

	rates, err := provider.LatestRates(reqCtx, base)
	if err != nil {
		logrus.Warnf("Base '%s' wasn't processed by Worker %d as provider call returned error: %s", base, workerID, err)
		return nil
	}

	out := make([]quote, 0, len(rates))
	for code, value := range rates {
		code = domain.NormalizeCode(code)
		if code == base || v.ValidateCode(code) != nil {
			continue
		}
		if !domain.WithinMagnitude(value) {
			logrus.Warnf("Skipping out of range quote %s/%s", base, code)
			continue
		}
		value = value.Round(domain.RateScale)
		if err = domain.ValidateRate(value); err != nil {
			logrus.Warnf("Skipping quote %s/%s: %v", base, code, err)
			continue
		}
		out = append(out, quote{Pair: domain.RatePair{Base: base, Quote: code}, Value: value})
	}
	return out
}

func applyQuote(ctx context.Context, svc *Service, q quote) (syncOutcome, error) {
	existing, err := svc.Find(ctx, q.Pair.Base, q.Pair.Quote)
	switch {
	case err == nil:
		if existing.Rate.Equal(q.Value) {
			return outcomeUnchanged, nil
		}
	case errors.Is(err, domain.ErrRateNotFound):
		_, err = svc.Create(ctx, CreateRateInput{
			FromCurrency: q.Pair.Base,
			ToCurrency:   q.Pair.Quote,
			Rate:         q.Value,
			Source:       SyncSource,
		})
		if err == nil {
			return outcomeCreated, nil
		}
		// created concurrently, fall through to update
		if !errors.Is(err, domain.ErrRateConflict) {
			return 0, fmt.Errorf("failed to create rate %s: %w", q.Pair, err)
		}
	default:
		return 0, fmt.Errorf("failed to read rate %s: %w", q.Pair, err)
	}

	if _, err = svc.Update(ctx, q.Pair.Base, q.Pair.Quote, q.Value); err != nil {
		return 0, fmt.Errorf("failed to update rate %s: %w", q.Pair, err)
	}
	return outcomeUpdated, nil
}
