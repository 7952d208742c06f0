package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.ParseFailures.Inc()
	m.ConversionFailures.Add(2)
	m.HTTPRequests.WithLabelValues("GET", "/users", "200").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ParseFailures))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ConversionFailures))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.UsersRegistered))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/users", "200")))
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.UsersRegistered.Inc()

	assert.Equal(t, 0.0, testutil.ToFloat64(b.UsersRegistered))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.UsersRegistered.Inc()
	m.HTTPDuration.WithLabelValues("GET", "/health").Observe(0.01)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "hijri_users_registered_total 1")
	assert.Contains(t, string(body), "hijri_http_request_duration_seconds_bucket")
}
