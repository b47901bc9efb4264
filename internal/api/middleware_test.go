package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fxconvert/internal/domain"
	"fxconvert/internal/ratelimit"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAdmitter struct{ mock.Mock }

func (m *MockAdmitter) Admit(ctx context.Context, clientID string) (ratelimit.Decision, error) {
	args := m.Called(ctx, clientID)
	d, _ := args.Get(0).(ratelimit.Decision)
	return d, args.Error(1)
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestAuthFromContext_DefaultsToAnonymous(t *testing.T) {
	require.Equal(t, domain.Anonymous(), AuthFromContext(context.Background()))

	actx := domain.AuthContext{Subject: "alice", Role: domain.RoleAdmin}
	require.Equal(t, actx, AuthFromContext(WithAuth(context.Background(), actx)))
}

func TestClientID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:41000"
	require.Equal(t, "ip:203.0.113.7", ClientID(req))

	req.RemoteAddr = "203.0.113.7"
	require.Equal(t, "ip:203.0.113.7", ClientID(req))

	req = req.WithContext(WithAuth(req.Context(), domain.AuthContext{Subject: "alice", Role: domain.RoleUser}))
	require.Equal(t, "sub:alice", ClientID(req))
}

func TestRetryAfterSeconds_RoundsUp(t *testing.T) {
	require.Equal(t, int64(1), retryAfterSeconds(10*time.Millisecond))
	require.Equal(t, int64(30), retryAfterSeconds(30*time.Second))
	require.Equal(t, int64(31), retryAfterSeconds(30*time.Second+time.Nanosecond))
	require.Equal(t, int64(0), retryAfterSeconds(0))
}

func TestRateLimit_StoreErrorAdmits(t *testing.T) {
	admitter := new(MockAdmitter)
	admitter.On("Admit", mock.Anything, mock.Anything).Return(ratelimit.Decision{}, errors.New("redis down")).Once()

	rr := httptest.NewRecorder()
	RateLimit(admitter, nil)(okHandler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Empty(t, rr.Header().Get("X-RateLimit-Limit"))
	admitter.AssertExpectations(t)
}

func TestRateLimit_Rejects(t *testing.T) {
	admitter := new(MockAdmitter)
	reset := time.Date(2024, 5, 1, 12, 1, 0, 0, time.UTC)
	admitter.On("Admit", mock.Anything, "ip:192.0.2.1").Return(ratelimit.Decision{
		Allowed: false, Limit: 5, Remaining: 0, ResetAt: reset, RetryAfter: 1500 * time.Millisecond,
	}, nil).Once()

	rr := httptest.NewRecorder()
	RateLimit(admitter, nil)(okHandler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	require.Equal(t, "2", rr.Header().Get("Retry-After"))
	require.Equal(t, "5", rr.Header().Get("X-RateLimit-Limit"))
	require.Equal(t, "1714564860", rr.Header().Get("X-RateLimit-Reset"))
}

type staticAuthorizer struct {
	actx domain.AuthContext
}

func (s staticAuthorizer) Resolve(context.Context, string) domain.AuthContext { return s.actx }

func (s staticAuthorizer) Check(actx domain.AuthContext, op domain.Operation) error {
	if op.Mutating() && actx.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	return nil
}

func TestAuthenticateThenRequireOperation(t *testing.T) {
	access := staticAuthorizer{actx: domain.AuthContext{Subject: "bob", Role: domain.RoleUser}}
	chain := Authenticate(access)(RequireOperation(access, domain.OpDeleteRate)(okHandler))

	rr := httptest.NewRecorder()
	chain.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/", nil))
	require.Equal(t, http.StatusForbidden, rr.Code)

	chain = Authenticate(access)(RequireOperation(access, domain.OpReadRate)(okHandler))
	rr = httptest.NewRecorder()
	chain.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rr.Code)
}
