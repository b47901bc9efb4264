package postgres

import (
	"context"
	"errors"
	"fmt"
	"fxconvert/internal/domain"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type RateRepository struct {
	pool *pgxpool.Pool
}

const rateColumns = `id, from_currency, to_currency, rate::text, source, created_at, updated_at`

func (r *RateRepository) Create(ctx context.Context, rate domain.ExchangeRate) (domain.ExchangeRate, error) {
	// "on conflict do nothing" returns no row for a duplicate pair, so exactly one concurrent insert wins
	const q = `
		insert into exchange_rates (from_currency, to_currency, rate, source, created_at, updated_at)
		values ($1, $2, $3::numeric, $4, now(), now())
		on conflict (from_currency, to_currency) do nothing
		returning ` + rateColumns

	created, err := scanRate(r.pool.QueryRow(ctx, q, rate.FromCurrency, rate.ToCurrency, rate.Rate.String(), rate.Source))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ExchangeRate{}, domain.ErrRateConflict
		}
		return domain.ExchangeRate{}, fmt.Errorf("failed to insert rate %s/%s: %w", rate.FromCurrency, rate.ToCurrency, err)
	}
	return created, nil
}

func (r *RateRepository) Update(ctx context.Context, from string, to string, value decimal.Decimal) (domain.ExchangeRate, error) {
	const q = `
		update exchange_rates
		set rate = $3::numeric, updated_at = greatest(now(), updated_at)
		where from_currency = $1 and to_currency = $2
		returning ` + rateColumns

	updated, err := scanRate(r.pool.QueryRow(ctx, q, from, to, value.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ExchangeRate{}, domain.ErrRateNotFound
		}
		return domain.ExchangeRate{}, fmt.Errorf("failed to update rate %s/%s: %w", from, to, err)
	}
	return updated, nil
}

func (r *RateRepository) Delete(ctx context.Context, from string, to string) error {
	const q = `delete from exchange_rates where from_currency = $1 and to_currency = $2`

	tag, err := r.pool.Exec(ctx, q, from, to)
	if err != nil {
		return fmt.Errorf("failed to delete rate %s/%s: %w", from, to, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRateNotFound
	}
	return nil
}

func (r *RateRepository) Find(ctx context.Context, from string, to string) (domain.ExchangeRate, error) {
	const q = `select ` + rateColumns + ` from exchange_rates where from_currency = $1 and to_currency = $2`

	rate, err := scanRate(r.pool.QueryRow(ctx, q, from, to))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ExchangeRate{}, domain.ErrRateNotFound
		}
		return domain.ExchangeRate{}, fmt.Errorf("failed to select rate for pair %q/%q: %w", from, to, err)
	}
	return rate, nil
}

func (r *RateRepository) List(ctx context.Context, filter domain.RateFilter) ([]domain.ExchangeRate, error) {
	var (
		conds []string
		args  []any
	)
	if filter.FromCurrency != "" {
		args = append(args, filter.FromCurrency)
		conds = append(conds, fmt.Sprintf("from_currency = $%d", len(args)))
	}
	if filter.ToCurrency != "" {
		args = append(args, filter.ToCurrency)
		conds = append(conds, fmt.Sprintf("to_currency = $%d", len(args)))
	}

	q := `select ` + rateColumns + ` from exchange_rates`
	if len(conds) > 0 {
		q += ` where ` + strings.Join(conds, " and ")
	}
	q += ` order by id`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rates: %w", err)
	}
	defer rows.Close()

	rates := make([]domain.ExchangeRate, 0, 64)
	for rows.Next() {
		rate, scanErr := scanRate(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan rate: %w", scanErr)
		}
		rates = append(rates, rate)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rates: %w", err)
	}
	return rates, nil
}

func scanRate(row pgx.Row) (domain.ExchangeRate, error) {
	var (
		rate    domain.ExchangeRate
		rawRate string
	)
	if err := row.Scan(
		&rate.ID,
		&rate.FromCurrency,
		&rate.ToCurrency,
		&rawRate,
		&rate.Source,
		&rate.CreatedAt,
		&rate.UpdatedAt,
	); err != nil {
		return domain.ExchangeRate{}, err
	}

	value, err := decimal.NewFromString(rawRate)
	if err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("invalid stored rate %q: %w", rawRate, err)
	}
	rate.Rate = value
	rate.CreatedAt = rate.CreatedAt.UTC()
	rate.UpdatedAt = rate.UpdatedAt.UTC()
	return rate, nil
}

func NewRateRepository(pool *pgxpool.Pool) *RateRepository {
	return &RateRepository{pool: pool}
}
