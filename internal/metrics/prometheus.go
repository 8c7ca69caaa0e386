// Package metrics exports session metrics to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gonzalop/ftpsession"
)

const namespace = "ftpsession"

// Collector implements ftpsession.MetricsCollector on a private registry.
type Collector struct {
	registry *prometheus.Registry

	commands        *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec
	connections     *prometheus.CounterVec
	healthChecks    *prometheus.CounterVec
	healthDuration  prometheus.Histogram
}

var _ ftpsession.MetricsCollector = (*Collector)(nil)

// NewCollector creates a Collector. With includeRuntime the Go runtime and
// process collectors are registered as well.
func NewCollector(includeRuntime bool) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "FTP commands dispatched by the session, by command and success.",
		}, []string{"command", "success"}),
		commandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Round trip time of FTP commands.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"command"}),
		connections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_total",
			Help:      "Connect attempts, by outcome.",
		}, []string{"success", "reason"}),
		healthChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "health_checks_total",
			Help:      "PWD probes of ready connections, by outcome.",
		}, []string{"healthy"}),
		healthDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "health_check_duration_seconds",
			Help:      "Round trip time of health probes.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	c.registry.MustRegister(c.commands, c.commandDuration, c.connections, c.healthChecks, c.healthDuration)
	if includeRuntime {
		c.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return c
}

// RecordCommand implements ftpsession.MetricsCollector.
func (c *Collector) RecordCommand(cmd string, success bool, duration time.Duration) {
	c.commands.WithLabelValues(cmd, strconv.FormatBool(success)).Inc()
	c.commandDuration.WithLabelValues(cmd).Observe(duration.Seconds())
}

// RecordConnection implements ftpsession.MetricsCollector.
func (c *Collector) RecordConnection(success bool, reason string) {
	c.connections.WithLabelValues(strconv.FormatBool(success), reason).Inc()
}

// RecordHealthCheck implements ftpsession.MetricsCollector.
func (c *Collector) RecordHealthCheck(healthy bool, duration time.Duration) {
	c.healthChecks.WithLabelValues(strconv.FormatBool(healthy)).Inc()
	c.healthDuration.Observe(duration.Seconds())
}

// Registry returns the registry the metrics are registered on.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler returns an http.Handler serving the metrics in the Prometheus
// exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
