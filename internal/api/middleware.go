package api

import (
	"context"
	"fxconvert/internal/domain"
	"fxconvert/internal/metrics"
	"fxconvert/internal/rate/handler"
	"fxconvert/internal/ratelimit"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

type Authorizer interface {
	Resolve(ctx context.Context, header string) domain.AuthContext
	Check(actx domain.AuthContext, op domain.Operation) error
}

type Admitter interface {
	Admit(ctx context.Context, clientID string) (ratelimit.Decision, error)
}

type authCtxKey struct{}

func WithAuth(ctx context.Context, actx domain.AuthContext) context.Context {
	return context.WithValue(ctx, authCtxKey{}, actx)
}

// AuthFromContext returns the request's AuthContext, anonymous if none was resolved.
func AuthFromContext(ctx context.Context) domain.AuthContext {
	if actx, ok := ctx.Value(authCtxKey{}).(domain.AuthContext); ok {
		return actx
	}
	return domain.Anonymous()
}

// Authenticate resolves the bearer credential once per request.
func Authenticate(access Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actx := access.Resolve(r.Context(), r.Header.Get("Authorization"))
			next.ServeHTTP(w, r.WithContext(WithAuth(r.Context(), actx)))
		})
	}
}

func RequireOperation(access Authorizer, op domain.Operation) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := access.Check(AuthFromContext(r.Context()), op); err != nil {
				status, code, _ := handler.ErrorStatus(err)
				handler.WriteError(w, status, code, err.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit admits or rejects the request for its client and reports the window in headers.
// A failing window store lets the request through.
func RateLimit(limiter Admitter, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientID := ClientID(r)
			decision, err := limiter.Admit(r.Context(), clientID)
			if err != nil {
				logrus.WithError(err).WithFields(logrus.Fields{"client": clientID}).Warn("Rate limiter unavailable, admitting request")
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.FormatInt(decision.Limit, 10))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(decision.Remaining, 10))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))

			if !decision.Allowed {
				h.Set("Retry-After", strconv.FormatInt(retryAfterSeconds(decision.RetryAfter), 10))
				m.RecordRateLimited()
				handler.WriteError(w, http.StatusTooManyRequests, handler.CodeRateLimitExceeded, domain.ErrRateLimitExceeded.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func retryAfterSeconds(d time.Duration) int64 {
	return int64(math.Ceil(d.Seconds()))
}

// ClientID keys rate limiting by subject for authenticated callers and by remote IP otherwise.
func ClientID(r *http.Request) string {
	if actx := AuthFromContext(r.Context()); actx.Authenticated() {
		return "sub:" + actx.Subject
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

// RequestLogger logs every request with logrus and records its latency.
func RequestLogger(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			elapsed := time.Since(start)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			m.ObserveRequest(r.Method, route, strconv.Itoa(status), elapsed.Seconds())

			logrus.WithFields(logrus.Fields{
				"request_id": middleware.GetReqID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     status,
				"bytes":      ww.BytesWritten(),
				"duration":   elapsed.String(),
				"remote":     r.RemoteAddr,
			}).Info("HTTP request")
		})
	}
}
