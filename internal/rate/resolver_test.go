package rate

import (
	"context"
	"errors"
	"testing"

	"fxconvert/internal/adapters/memory"
	"fxconvert/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, rates ...[3]string) *memory.RateRepository {
	t.Helper()
	repo := memory.NewRateRepository(nil)
	for _, r := range rates {
		_, err := repo.Create(context.Background(), domain.ExchangeRate{FromCurrency: r[0], ToCurrency: r[1], Rate: dec(r[2]), Source: DefaultSource})
		require.NoError(t, err)
	}
	return repo
}

func newTestResolver(repo *memory.RateRepository, maxHops int) *Resolver {
	return NewResolver(repo, NewValidator(CodeSet(nil)), maxHops, nil)
}

func TestResolver_Direct(t *testing.T) {
	r := newTestResolver(newStore(t, [3]string{"USD", "TWD", "32.5"}), 0)

	conv, err := r.Convert(context.Background(), "USD", "TWD", dec("100"))

	require.NoError(t, err)
	require.True(t, dec("3250").Equal(conv.Result), conv.Result.String())
	require.Equal(t, []string{"USD", "TWD"}, conv.Path)
	require.Equal(t, "USD→TWD", conv.PathString())
	require.Equal(t, 1, conv.Hops())
}

func TestResolver_MultiHopIsExact(t *testing.T) {
	r := newTestResolver(newStore(t,
		[3]string{"USD", "EUR", "0.9"},
		[3]string{"EUR", "TWD", "36.0"},
	), 0)

	conv, err := r.Convert(context.Background(), "usd", "twd", dec("100"))

	require.NoError(t, err)
	require.True(t, dec("3240").Equal(conv.Result), conv.Result.String())
	require.True(t, dec("32.4").Equal(conv.Rate), conv.Rate.String())
	require.Equal(t, []string{"USD", "EUR", "TWD"}, conv.Path)
	require.Equal(t, "USD→EUR→TWD", conv.PathString())
}

func TestResolver_PrefersDirectOverMultiHop(t *testing.T) {
	r := newTestResolver(newStore(t,
		[3]string{"USD", "EUR", "0.9"},
		[3]string{"EUR", "TWD", "36.0"},
		[3]string{"USD", "TWD", "32.5"},
	), 0)

	conv, err := r.Convert(context.Background(), "USD", "TWD", dec("1"))

	require.NoError(t, err)
	require.Equal(t, []string{"USD", "TWD"}, conv.Path)
}

func TestResolver_TieBreakFollowsStoreOrder(t *testing.T) {
	r := newTestResolver(newStore(t,
		[3]string{"GBP", "TWD", "40"},
		[3]string{"USD", "EUR", "0.9"},
		[3]string{"USD", "GBP", "0.8"},
		[3]string{"EUR", "TWD", "36"},
	), 0)

	conv, err := r.Convert(context.Background(), "USD", "TWD", dec("10"))

	require.NoError(t, err)
	require.Equal(t, []string{"USD", "EUR", "TWD"}, conv.Path)
	require.True(t, dec("324").Equal(conv.Result))

	// repeated calls against unchanged data pick the same path
	again, err := r.Convert(context.Background(), "USD", "TWD", dec("10"))
	require.NoError(t, err)
	require.Equal(t, conv.Path, again.Path)
}

func TestResolver_Identity(t *testing.T) {
	r := newTestResolver(newStore(t), 0)

	conv, err := r.Convert(context.Background(), "EUR", "eur", dec("12.5"))

	require.NoError(t, err)
	require.True(t, dec("12.5").Equal(conv.Result))
	require.True(t, decimal.NewFromInt(1).Equal(conv.Rate))
	require.Equal(t, []string{"EUR"}, conv.Path)
	require.Zero(t, conv.Hops())
}

func TestResolver_NotConvertible(t *testing.T) {
	repo := newStore(t,
		[3]string{"USD", "EUR", "0.9"},
		[3]string{"EUR", "GBP", "0.86"},
		[3]string{"GBP", "JPY", "190"},
	)

	_, err := newTestResolver(repo, 0).Convert(context.Background(), "USD", "JPY", dec("1"))
	require.ErrorIs(t, err, domain.ErrNotConvertible)

	// no inverse is derived
	_, err = newTestResolver(repo, 0).Convert(context.Background(), "EUR", "USD", dec("1"))
	require.ErrorIs(t, err, domain.ErrNotConvertible)

	// a wider hop bound reaches it
	conv, err := newTestResolver(repo, 3).Convert(context.Background(), "USD", "JPY", dec("1"))
	require.NoError(t, err)
	require.Equal(t, []string{"USD", "EUR", "GBP", "JPY"}, conv.Path)
}

func TestResolver_SingleHopBoundSkipsSearch(t *testing.T) {
	r := newTestResolver(newStore(t,
		[3]string{"USD", "EUR", "0.9"},
		[3]string{"EUR", "TWD", "36.0"},
	), 1)

	_, err := r.Convert(context.Background(), "USD", "TWD", dec("100"))
	require.ErrorIs(t, err, domain.ErrNotConvertible)
}

func TestResolver_RoundsResult(t *testing.T) {
	r := newTestResolver(newStore(t, [3]string{"USD", "EUR", "0.1234567"}), 0)

	conv, err := r.Convert(context.Background(), "USD", "EUR", dec("1"))

	require.NoError(t, err)
	require.Equal(t, "0.123457", conv.Result.String())
	require.Equal(t, "0.1234567", conv.Rate.String())
}

func TestResolver_InvalidInput(t *testing.T) {
	r := newTestResolver(newStore(t, [3]string{"USD", "EUR", "0.9"}), 0)

	_, err := r.Convert(context.Background(), "USD", "EUR", decimal.Zero)
	require.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = r.Convert(context.Background(), "USD", "EUR", dec("-5"))
	require.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = r.Convert(context.Background(), "USD", "EUR", dec("1e20000000"))
	require.ErrorIs(t, err, domain.ErrAmountOutOfRange)

	_, err = r.Convert(context.Background(), "USD", "EUR", dec("1e-20000000"))
	require.ErrorIs(t, err, domain.ErrAmountOutOfRange)

	_, err = r.Convert(context.Background(), "USD", "XYZ", dec("5"))
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = r.Convert(context.Background(), "", "EUR", dec("5"))
	require.ErrorIs(t, err, ErrFromRequired)
}

func TestResolver_StoreErrorPropagates(t *testing.T) {
	repo := new(MockRateRepository)
	wantErr := errors.New("db temporarily unavailable")
	repo.On("Find", mock.Anything, "USD", "EUR").Return(domain.ExchangeRate{}, wantErr).Once()
	r := NewResolver(repo, NewValidator(CodeSet(nil)), 2, nil)

	_, err := r.Convert(context.Background(), "USD", "EUR", dec("1"))

	require.ErrorIs(t, err, wantErr)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestNewResolver_DefaultsMaxHops(t *testing.T) {
	require.Equal(t, DefaultMaxHops, NewResolver(new(MockRateRepository), NewValidator(nil), 0, nil).MaxHops())
}
