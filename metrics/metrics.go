package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mangaalertitalia/web/enums"
)

const namespace = "mangaalert"

type Metrics struct {
	outcomes       *prometheus.CounterVec
	serviceLatency *prometheus.HistogramVec
	httpRequests   *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workflow_outcomes_total",
			Help:      "Settled subscribe and unsubscribe attempts by outcome.",
		}, []string{"flow", "outcome"}),
		serviceLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "notification_service_request_seconds",
			Help:      "Latency of calls to the notification service.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "code"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Handled page requests by route and status code.",
		}, []string{"route", "code"}),
	}
}

func (m *Metrics) ObserveOutcome(flow enums.Flow, outcome enums.OutcomeKind) {
	m.outcomes.WithLabelValues(string(flow), string(outcome)).Inc()
}

// ObserveServiceCall records a call to the notification service. code is 0 when no
// response was received.
func (m *Metrics) ObserveServiceCall(operation string, code int, elapsed time.Duration) {
	label := "none"
	if code > 0 {
		label = strconv.Itoa(code)
	}
	m.serviceLatency.WithLabelValues(operation, label).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveRequest(route string, code int) {
	m.httpRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}
