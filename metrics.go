package ftpsession

import "time"

// MetricsCollector is an optional interface for collecting session metrics.
// Implementations can send metrics to monitoring systems like Prometheus.
//
// Methods are called synchronously on the goroutine issuing the command and
// should be non-blocking.
type MetricsCollector interface {
	// RecordCommand records a dispatched command.
	// cmd is the command verb (e.g., "PWD", "SITE", "RAW").
	RecordCommand(cmd string, success bool, duration time.Duration)

	// RecordConnection records a connect attempt.
	// reason provides context ("connected", "dial_failed", "connect_failed", "cancelled").
	RecordConnection(success bool, reason string)

	// RecordHealthCheck records the outcome of a probe on a ready connection.
	RecordHealthCheck(healthy bool, duration time.Duration)
}

type nopMetrics struct{}

func (nopMetrics) RecordCommand(string, bool, time.Duration) {}
func (nopMetrics) RecordConnection(bool, string)             {}
func (nopMetrics) RecordHealthCheck(bool, time.Duration)     {}
