package rate

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"fxconvert/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Testify mocks ---

type MockRateRepository struct{ mock.Mock }

func (m *MockRateRepository) Create(ctx context.Context, rate domain.ExchangeRate) (domain.ExchangeRate, error) {
	args := m.Called(ctx, rate)
	r, _ := args.Get(0).(domain.ExchangeRate)
	return r, args.Error(1)
}

func (m *MockRateRepository) Update(ctx context.Context, from string, to string, value decimal.Decimal) (domain.ExchangeRate, error) {
	args := m.Called(ctx, from, to, value)
	r, _ := args.Get(0).(domain.ExchangeRate)
	return r, args.Error(1)
}

func (m *MockRateRepository) Delete(ctx context.Context, from string, to string) error {
	args := m.Called(ctx, from, to)
	return args.Error(0)
}

func (m *MockRateRepository) Find(ctx context.Context, from string, to string) (domain.ExchangeRate, error) {
	args := m.Called(ctx, from, to)
	r, _ := args.Get(0).(domain.ExchangeRate)
	return r, args.Error(1)
}

func (m *MockRateRepository) List(ctx context.Context, filter domain.RateFilter) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, filter)
	rates, _ := args.Get(0).([]domain.ExchangeRate)
	return rates, args.Error(1)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newTestService(repo *MockRateRepository) *Service {
	return NewService(repo, NewValidator(CodeSet(nil)), nil)
}

// --- Create ---

func TestService_Create_NormalizesAndDefaultsSource(t *testing.T) {
	repo := new(MockRateRepository)
	svc := newTestService(repo)

	now := time.Date(2024, 11, 15, 10, 9, 8, 0, time.UTC)
	want := domain.ExchangeRate{ID: 1, FromCurrency: "USD", ToCurrency: "TWD", Rate: dec("32.5"), Source: DefaultSource, CreatedAt: now, UpdatedAt: now}

	repo.On("Create", mock.Anything, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.FromCurrency == "USD" && r.ToCurrency == "TWD" && r.Rate.Equal(dec("32.5")) && r.Source == DefaultSource
	})).Return(want, nil).Once()

	got, err := svc.Create(context.Background(), CreateRateInput{FromCurrency: " usd", ToCurrency: "twd ", Rate: dec("32.5")})

	require.NoError(t, err)
	require.Equal(t, want, got)
	repo.AssertExpectations(t)
}

func TestService_Create_ValidationErrors(t *testing.T) {
	cases := map[string]CreateRateInput{
		"missing from":    {ToCurrency: "EUR", Rate: dec("1")},
		"same codes":      {FromCurrency: "USD", ToCurrency: "usd", Rate: dec("1")},
		"unsupported":     {FromCurrency: "USD", ToCurrency: "XYZ", Rate: dec("1")},
		"zero rate":       {FromCurrency: "USD", ToCurrency: "EUR", Rate: decimal.Zero},
		"negative rate":   {FromCurrency: "USD", ToCurrency: "EUR", Rate: dec("-0.5")},
		"source too long": {FromCurrency: "USD", ToCurrency: "EUR", Rate: dec("1"), Source: strings.Repeat("x", 51)},
		"rounds to zero":  {FromCurrency: "USD", ToCurrency: "EUR", Rate: dec("0.0000001")},
		"too many places": {FromCurrency: "USD", ToCurrency: "EUR", Rate: dec("0.1234567")},
		"column overflow": {FromCurrency: "USD", ToCurrency: "EUR", Rate: dec("10000000000000")},
		"huge exponent":   {FromCurrency: "USD", ToCurrency: "EUR", Rate: dec("1e20000000")},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			repo := new(MockRateRepository)
			svc := newTestService(repo)

			_, err := svc.Create(context.Background(), in)

			require.ErrorIs(t, err, domain.ErrValidation)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestService_Create_Conflict(t *testing.T) {
	repo := new(MockRateRepository)
	svc := newTestService(repo)
	repo.On("Create", mock.Anything, mock.Anything).Return(domain.ExchangeRate{}, domain.ErrRateConflict).Once()

	_, err := svc.Create(context.Background(), CreateRateInput{FromCurrency: "USD", ToCurrency: "EUR", Rate: dec("0.9")})

	require.ErrorIs(t, err, domain.ErrRateConflict)
	repo.AssertExpectations(t)
}

// --- Update / Delete / Find / List ---

func TestService_Update(t *testing.T) {
	repo := new(MockRateRepository)
	svc := newTestService(repo)
	want := domain.ExchangeRate{ID: 3, FromCurrency: "USD", ToCurrency: "EUR", Rate: dec("0.95")}
	repo.On("Update", mock.Anything, "USD", "EUR", dec("0.95")).Return(want, nil).Once()

	got, err := svc.Update(context.Background(), "usd", "eur", dec("0.95"))

	require.NoError(t, err)
	require.Equal(t, want, got)
	repo.AssertExpectations(t)
}

func TestService_Update_InvalidRate(t *testing.T) {
	cases := map[string]struct {
		rate decimal.Decimal
		want error
	}{
		"zero":            {rate: decimal.Zero, want: domain.ErrInvalidRate},
		"rounds to zero":  {rate: dec("0.0000001"), want: domain.ErrRatePrecision},
		"too many places": {rate: dec("1.0000005"), want: domain.ErrRatePrecision},
		"column overflow": {rate: dec("1e13"), want: domain.ErrRateOutOfRange},
		"tiny exponent":   {rate: dec("1e-20000000"), want: domain.ErrRateOutOfRange},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			repo := new(MockRateRepository)
			svc := newTestService(repo)

			_, err := svc.Update(context.Background(), "USD", "EUR", tc.rate)

			require.ErrorIs(t, err, tc.want)
			require.ErrorIs(t, err, domain.ErrValidation)
			repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestService_Update_AcceptsTrailingZeros(t *testing.T) {
	repo := new(MockRateRepository)
	svc := newTestService(repo)
	value := dec("9999999999999.900000000")
	repo.On("Update", mock.Anything, "USD", "EUR", value).Return(domain.ExchangeRate{Rate: value}, nil).Once()

	_, err := svc.Update(context.Background(), "USD", "EUR", value)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_Update_NotFound(t *testing.T) {
	repo := new(MockRateRepository)
	svc := newTestService(repo)
	repo.On("Update", mock.Anything, "USD", "EUR", dec("1")).Return(domain.ExchangeRate{}, domain.ErrRateNotFound).Once()

	_, err := svc.Update(context.Background(), "USD", "EUR", dec("1"))

	require.ErrorIs(t, err, domain.ErrRateNotFound)
}

func TestService_Delete(t *testing.T) {
	repo := new(MockRateRepository)
	svc := newTestService(repo)
	repo.On("Delete", mock.Anything, "USD", "EUR").Return(nil).Once()
	repo.On("Delete", mock.Anything, "USD", "EUR").Return(domain.ErrRateNotFound).Once()

	require.NoError(t, svc.Delete(context.Background(), "USD", "EUR"))
	require.ErrorIs(t, svc.Delete(context.Background(), "USD", "EUR"), domain.ErrRateNotFound)
	repo.AssertExpectations(t)
}

func TestService_Find_RequiresCodes(t *testing.T) {
	repo := new(MockRateRepository)
	svc := newTestService(repo)

	_, err := svc.Find(context.Background(), " ", "EUR")
	require.ErrorIs(t, err, ErrFromRequired)

	_, err = svc.Find(context.Background(), "USD", "")
	require.ErrorIs(t, err, ErrToRequired)
}

func TestService_List_NormalizesFilter(t *testing.T) {
	repo := new(MockRateRepository)
	svc := newTestService(repo)
	repo.On("List", mock.Anything, domain.RateFilter{FromCurrency: "USD"}).Return([]domain.ExchangeRate{}, nil).Once()

	_, err := svc.List(context.Background(), domain.RateFilter{FromCurrency: "usd"})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

// --- Seed ---

func TestSeed_SkipsExistingPairs(t *testing.T) {
	repo := new(MockRateRepository)
	svc := newTestService(repo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(r domain.ExchangeRate) bool { return r.ToCurrency == "EUR" })).
		Return(domain.ExchangeRate{ID: 1}, nil).Once()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(r domain.ExchangeRate) bool { return r.ToCurrency == "GBP" })).
		Return(domain.ExchangeRate{}, domain.ErrRateConflict).Once()

	created, err := Seed(context.Background(), svc, []CreateRateInput{
		{FromCurrency: "USD", ToCurrency: "EUR", Rate: dec("0.92"), Source: "Central Bank"},
		{FromCurrency: "USD", ToCurrency: "GBP", Rate: dec("0.79"), Source: "Central Bank"},
	})

	require.NoError(t, err)
	require.Equal(t, 1, created)
	repo.AssertExpectations(t)
}

func TestSeed_StopsOnUnexpectedError(t *testing.T) {
	repo := new(MockRateRepository)
	svc := newTestService(repo)
	wantErr := errors.New("db temporarily unavailable")
	repo.On("Create", mock.Anything, mock.Anything).Return(domain.ExchangeRate{}, wantErr).Once()

	created, err := Seed(context.Background(), svc, []CreateRateInput{
		{FromCurrency: "USD", ToCurrency: "EUR", Rate: dec("0.92")},
		{FromCurrency: "USD", ToCurrency: "GBP", Rate: dec("0.79")},
	})

	require.ErrorIs(t, err, wantErr)
	require.Zero(t, created)
	repo.AssertExpectations(t)
}
