package rate

import (
	"context"
	"errors"
	"fmt"
	"fxconvert/internal/domain"

	"github.com/sirupsen/logrus"
)

// Seed creates the given rates, skipping pairs that already exist. It returns how many were created.
func Seed(ctx context.Context, svc *Service, seeds []CreateRateInput) (int, error) {
	created := 0
	for _, in := range seeds {
		_, err := svc.Create(ctx, in)
		switch {
		case err == nil:
			created++
		case errors.Is(err, domain.ErrRateConflict):
			logrus.WithFields(logrus.Fields{
				"from": in.FromCurrency,
				"to":   in.ToCurrency,
			}).Debug("Seed rate already exists, skipping")
		default:
			return created, fmt.Errorf("seed rate %s/%s: %w", in.FromCurrency, in.ToCurrency, err)
		}
	}
	return created, nil
}
