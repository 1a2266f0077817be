package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/academia/internal/domain/model"
)

// findMetric returns the family called name, failing the test if absent.
func findMetric(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	t.Fatalf("metric %s not found", name)
	return nil
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}

func TestRecordProviderCall(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordProviderCall(model.ProviderOpenAI, false, 2*time.Second)
	c.RecordProviderCall(model.ProviderOpenAI, true, time.Second)
	c.RecordProviderCall(model.ProviderOpenAI, true, time.Second)

	calls := findMetric(t, reg, "academia_provider_calls_total")
	got := map[string]float64{}
	for _, m := range calls.GetMetric() {
		assert.Equal(t, "openai", labelValue(m, "provider"))
		got[labelValue(m, "result")] = m.GetCounter().GetValue()
	}
	assert.Equal(t, map[string]float64{"success": 1, "error": 2}, got)

	latency := findMetric(t, reg, "academia_provider_latency_seconds")
	require.Len(t, latency.GetMetric(), 1)
	h := latency.GetMetric()[0].GetHistogram()
	assert.Equal(t, uint64(3), h.GetSampleCount())
	assert.InDelta(t, 4.0, h.GetSampleSum(), 0.0001)
}

func TestRecordDispatchAndTranslation(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordDispatch(model.OutcomePartialFailure)
	c.RecordTranslation("pt")
	c.RecordTranslation("pt")

	dispatches := findMetric(t, reg, "academia_dispatches_total")
	require.Len(t, dispatches.GetMetric(), 1)
	assert.Equal(t, "partial_failure", labelValue(dispatches.GetMetric()[0], "outcome"))

	translations := findMetric(t, reg, "academia_translations_total")
	require.Len(t, translations.GetMetric(), 1)
	assert.InDelta(t, 2.0, translations.GetMetric()[0].GetCounter().GetValue(), 0.0001)
}

func TestHandler_ExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordHTTPStatus(http.StatusTooManyRequests)

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `academia_http_status_total{status_code="429"} 1`)
}
