package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fxconvert"

// Conversion kinds.
const (
	ConversionIdentity = "identity"
	ConversionDirect   = "direct"
	ConversionMultiHop = "multi_hop"
	ConversionFailed   = "failed"
)

// Metrics holds the service collectors. A nil *Metrics records nothing.
type Metrics struct {
	RateMutationsTotal  *prometheus.CounterVec
	ConversionsTotal    *prometheus.CounterVec
	RateLimitRejections prometheus.Counter
	HTTPRequestDuration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RateMutationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_mutations_total",
				Help:      "Exchange rate mutations by operation.",
			},
			[]string{"op"},
		),
		ConversionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "conversions_total",
				Help:      "Conversions resolved, by resolution kind.",
			},
			[]string{"kind"},
		),
		RateLimitRejections: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limit_rejections_total",
				Help:      "Requests rejected by the rate limiter.",
			},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route and status.",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
			},
			[]string{"method", "route", "status"},
		),
	}
}

func (m *Metrics) RecordMutation(op string) {
	if m == nil {
		return
	}
	m.RateMutationsTotal.WithLabelValues(op).Inc()
}

func (m *Metrics) RecordConversion(kind string) {
	if m == nil {
		return
	}
	m.ConversionsTotal.WithLabelValues(kind).Inc()
}

func (m *Metrics) RecordRateLimited() {
	if m == nil {
		return
	}
	m.RateLimitRejections.Inc()
}

func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestDuration.WithLabelValues(method, route, status).Observe(seconds)
}
