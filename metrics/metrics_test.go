package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangaalertitalia/web/enums"
)

func findFamily(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	t.Fatalf("metric family %q not found", name)
	return nil
}

func TestObserveOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveOutcome(enums.FlowSubscribe, enums.OutcomeSuccess)
	m.ObserveOutcome(enums.FlowSubscribe, enums.OutcomeSuccess)
	m.ObserveOutcome(enums.FlowUnsubscribe, enums.OutcomeFailure)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.outcomes.WithLabelValues("subscribe", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.outcomes.WithLabelValues("unsubscribe", "failure")))
}

func TestObserveServiceCall_Labels(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveServiceCall("subscribe", 200, 50*time.Millisecond)
	m.ObserveServiceCall("unsubscribe", 0, time.Second)

	family := findFamily(t, reg, "mangaalert_notification_service_request_seconds")
	require.Len(t, family.GetMetric(), 2)

	codes := make(map[string]uint64)
	for _, metric := range family.GetMetric() {
		labels := make(map[string]string)
		for _, pair := range metric.GetLabel() {
			labels[pair.GetName()] = pair.GetValue()
		}
		codes[labels["operation"]+"/"+labels["code"]] = metric.GetHistogram().GetSampleCount()
	}
	assert.Equal(t, uint64(1), codes["subscribe/200"])
	assert.Equal(t, uint64(1), codes["unsubscribe/none"])
}

func TestObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRequest("GET /", 200)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET /", "200")))
}
