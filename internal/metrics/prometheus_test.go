package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordCommand(t *testing.T) {
	t.Parallel()
	c := NewCollector(false)

	c.RecordCommand("PWD", true, 10*time.Millisecond)
	c.RecordCommand("PWD", true, 20*time.Millisecond)
	c.RecordCommand("SITE", false, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.commands.WithLabelValues("PWD", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.commands.WithLabelValues("SITE", "false")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.commandDuration))
}

func TestCollector_RecordConnection(t *testing.T) {
	t.Parallel()
	c := NewCollector(false)

	c.RecordConnection(true, "connected")
	c.RecordConnection(false, "dial_failed")
	c.RecordConnection(false, "dial_failed")

	assert.Equal(t, 1.0, testutil.ToFloat64(c.connections.WithLabelValues("true", "connected")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.connections.WithLabelValues("false", "dial_failed")))
}

func TestCollector_RecordHealthCheck(t *testing.T) {
	t.Parallel()
	c := NewCollector(false)

	c.RecordHealthCheck(true, time.Millisecond)
	c.RecordHealthCheck(false, time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.healthChecks.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.healthChecks.WithLabelValues("false")))

	expected := `
# HELP ftpsession_health_checks_total PWD probes of ready connections, by outcome.
# TYPE ftpsession_health_checks_total counter
ftpsession_health_checks_total{healthy="false"} 1
ftpsession_health_checks_total{healthy="true"} 1
`
	require.NoError(t, testutil.CollectAndCompare(c.healthChecks, strings.NewReader(expected)))
}

func TestCollector_Handler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		includeRuntime bool
	}{
		{"session metrics only", false},
		{"with runtime metrics", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := NewCollector(tt.includeRuntime)
			c.RecordCommand("PWD", true, time.Millisecond)

			req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			rec := httptest.NewRecorder()
			c.Handler().ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			body, err := io.ReadAll(rec.Body)
			require.NoError(t, err)
			assert.Contains(t, string(body), `ftpsession_commands_total{command="PWD",success="true"} 1`)
			assert.Equal(t, tt.includeRuntime, strings.Contains(string(body), "go_goroutines"))
		})
	}
}
