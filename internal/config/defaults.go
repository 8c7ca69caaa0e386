package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/gonzalop/ftpsession"
)

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags, config file parsing, and environment variable
// loading.

const (
	// DefaultTimeout bounds connecting and each command exchange.
	DefaultTimeout = 30 * time.Second

	// DefaultIdleTimeout disables the NOOP keep-alive.
	DefaultIdleTimeout time.Duration = 0

	// DefaultLogLevel is the log level when none is configured.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the log handler when none is configured.
	DefaultLogFormat = "text"

	// TLS modes.
	TLSModeNone     = "none"
	TLSModeExplicit = "explicit"
	TLSModeImplicit = "implicit"
)

// Default returns a Config with all defaults applied and no host.
func Default() *Config {
	return &Config{
		Port:         ftpsession.DefaultPort,
		Timeout:      DefaultTimeout,
		IdleTimeout:  DefaultIdleTimeout,
		NamingFormat: ftpsession.DefaultNamingFormat,
		PollInterval: ftpsession.DefaultPollInterval,
		TLS: TLSConfig{
			Mode: TLSModeNone,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// SetDefaults registers default values with v. Every key is registered,
// including empty ones, so that environment variables can override it.
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	// Connection defaults
	v.SetDefault("host", defaults.Host)
	v.SetDefault("port", defaults.Port)
	v.SetDefault("user", defaults.User)
	v.SetDefault("password", defaults.Password)
	v.SetDefault("timeout", defaults.Timeout)
	v.SetDefault("idle_timeout", defaults.IdleTimeout)

	// TLS defaults
	v.SetDefault("tls.mode", defaults.TLS.Mode)
	v.SetDefault("tls.server_name", defaults.TLS.ServerName)
	v.SetDefault("tls.insecure_skip_verify", defaults.TLS.InsecureSkipVerify)

	// Session defaults
	v.SetDefault("naming_format", defaults.NamingFormat)
	v.SetDefault("current_folder", defaults.CurrentFolder)
	v.SetDefault("current_library", defaults.CurrentLibrary)
	v.SetDefault("resync_folder", defaults.ResyncFolder)
	v.SetDefault("poll_interval", defaults.PollInterval)

	// Output defaults
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("metrics.addr", defaults.Metrics.Addr)
}
