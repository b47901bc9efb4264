package api

import (
	_ "fxconvert/docs"
	"fxconvert/internal/domain"
	"fxconvert/internal/metrics"
	"fxconvert/internal/rate/handler"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	swagger "github.com/swaggo/http-swagger"
)

// NewRouter mounts the API. metricsHandler may be nil to leave /metrics unexposed.
func NewRouter(rateHandler *handler.Handler, access Authorizer, limiter Admitter, m *metrics.Metrics, metricsHandler http.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(RequestLogger(m))
	router.Use(middleware.Recoverer)
	router.Use(Authenticate(access))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)
	if metricsHandler != nil {
		router.Handle("/metrics", metricsHandler)
	}

	// authorization runs before limiting so rejected credentials do not spend quota
	guard := func(op domain.Operation) chi.Middlewares {
		return chi.Middlewares{RequireOperation(access, op), RateLimit(limiter, m)}
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.With(guard(domain.OpReadRate)...).Get("/currencies", rateHandler.GetSupportedCodes)
		r.With(guard(domain.OpConvert)...).Get("/convert", rateHandler.Convert)

		r.Route("/exchange_rates", func(r chi.Router) {
			r.With(guard(domain.OpCreateRate)...).Post("/", rateHandler.CreateRate)
			r.With(guard(domain.OpReadRate)...).Get("/", rateHandler.ListRates)
			r.With(guard(domain.OpReadRate)...).Get("/{from}/{to}", rateHandler.GetRate)
			r.With(guard(domain.OpUpdateRate)...).Put("/{from}/{to}", rateHandler.UpdateRate)
			r.With(guard(domain.OpDeleteRate)...).Delete("/{from}/{to}", rateHandler.DeleteRate)
		})
	})
	return router
}
