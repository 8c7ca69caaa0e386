package ftpsession

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gonzalop/ftpsession/ftp"
)

// Option is a functional option for configuring a Session.
type Option func(*Session) error

// WithLogger sets the logger for lifecycle and command logging. Unless
// WithDialer is used, the logger is also handed to the ftp transport.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		s.logger = logger
		return nil
	}
}

// WithDialer replaces the function that creates transports. It is mainly
// useful in tests.
func WithDialer(dial DialFunc) Option {
	return func(s *Session) error {
		if dial == nil {
			return fmt.Errorf("dialer cannot be nil")
		}
		s.dial = dial
		return nil
	}
}

// WithTransportOptions passes options to the default ftp transport, for
// example ftp.WithTimeout or ftp.WithExplicitTLS. Ignored with WithDialer.
func WithTransportOptions(opts ...ftp.Option) Option {
	return func(s *Session) error {
		s.ftpOpts = append(s.ftpOpts, opts...)
		return nil
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m MetricsCollector) Option {
	return func(s *Session) error {
		if m == nil {
			return fmt.Errorf("metrics collector cannot be nil")
		}
		s.metrics = m
		return nil
	}
}

// WithPollInterval sets how often Do polls the session lock.
func WithPollInterval(d time.Duration) Option {
	return func(s *Session) error {
		if d <= 0 {
			return fmt.Errorf("poll interval must be positive, got %s", d)
		}
		s.pollInterval = d
		return nil
	}
}

// WithFolderResync makes every new connection change into the session's
// current folder after the naming format has been applied. By default the
// folder is not reapplied after a reconnect and the new connection starts in
// the server's login directory.
func WithFolderResync() Option {
	return func(s *Session) error {
		s.resync = true
		return nil
	}
}
