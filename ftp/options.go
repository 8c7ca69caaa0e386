package ftp

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"time"
)

// Option is a functional option for configuring an FTP client.
type Option func(*Client) error

// WithTimeout sets the timeout for connection and operations.
// This applies to the initial connection and to each command/reply exchange.
// Zero disables the per-exchange deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) error {
		c.timeout = timeout
		return nil
	}
}

// WithIdleTimeout sets the maximum idle time before sending NOOP keep-alive.
// If the connection is idle for longer than this duration, a NOOP command
// will be sent automatically to prevent the server from closing the connection.
//
// This is useful when a session holds the connection open for extended
// periods between commands. Set to 0 to disable automatic keep-alive.
//
// Example:
//
//	client, _ := ftp.New("ftp.example.com:21",
//	    ftp.WithIdleTimeout(5*time.Minute),
//	)
//	err := client.Connect(ctx, "user", "pass")
func WithIdleTimeout(timeout time.Duration) Option {
	return func(c *Client) error {
		c.idleTimeout = timeout
		return nil
	}
}

// WithExplicitTLS enables explicit TLS mode (AUTH TLS).
// The client connects on the standard FTP port (21) and upgrades to TLS
// using the AUTH TLS command. This is the recommended mode for FTPS.
//
// The provided tls.Config should include the ServerName for certificate validation.
// A ClientSessionCache will be automatically added if not present to enable
// TLS session reuse for data connections.
func WithExplicitTLS(config *tls.Config) Option {
	return func(c *Client) error {
		if c.tlsMode == tlsModeImplicit {
			return fmt.Errorf("explicit TLS cannot be combined with implicit TLS")
		}
		if config == nil {
			config = &tls.Config{}
		}
		// Ensure we have a session cache for TLS session reuse
		if config.ClientSessionCache == nil {
			config.ClientSessionCache = tls.NewLRUClientSessionCache(0)
		}
		c.tlsConfig = config
		c.tlsMode = tlsModeExplicit
		return nil
	}
}

// WithImplicitTLS enables implicit TLS mode.
// The client connects directly with TLS, typically on port 990.
// This is a legacy mode but still used by some servers.
//
// The provided tls.Config should include the ServerName for certificate validation.
// A ClientSessionCache will be automatically added if not present to enable
// TLS session reuse for data connections.
func WithImplicitTLS(config *tls.Config) Option {
	return func(c *Client) error {
		if c.tlsMode == tlsModeExplicit {
			return fmt.Errorf("implicit TLS cannot be combined with explicit TLS")
		}
		if config == nil {
			config = &tls.Config{}
		}
		// Ensure we have a session cache for TLS session reuse
		if config.ClientSessionCache == nil {
			config.ClientSessionCache = tls.NewLRUClientSessionCache(0)
		}
		c.tlsConfig = config
		c.tlsMode = tlsModeImplicit
		return nil
	}
}

// WithLogger enables debug logging using the provided logger.
// All FTP commands and responses will be logged at debug level, with the
// PASS argument redacted.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	}))
//	client, _ := ftp.New("ftp.example.com:21", ftp.WithLogger(logger))
//	err := client.Connect(ctx, "user", "pass")
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		c.logger = logger
		return nil
	}
}

// WithDialer sets a custom net.Dialer for establishing connections.
// This can be used to configure source addresses, keep-alive settings, etc.
func WithDialer(dialer *net.Dialer) Option {
	return func(c *Client) error {
		if dialer == nil {
			return fmt.Errorf("dialer cannot be nil")
		}
		c.dialer = dialer
		return nil
	}
}

// WithCustomDialer sets an arbitrary Dialer for the control connection, for
// example one that tunnels through a proxy.
func WithCustomDialer(dialer Dialer) Option {
	return func(c *Client) error {
		if dialer == nil {
			return fmt.Errorf("dialer cannot be nil")
		}
		c.dialer = dialer
		return nil
	}
}

// tlsMode represents the TLS mode for the connection.
type tlsMode int

const (
	tlsModeNone tlsMode = iota
	tlsModeExplicit
	tlsModeImplicit
)

func (m tlsMode) String() string {
	switch m {
	case tlsModeExplicit:
		return "explicit"
	case tlsModeImplicit:
		return "implicit"
	default:
		return "none"
	}
}
