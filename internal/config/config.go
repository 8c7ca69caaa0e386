// Package config defines the runtime configuration of the ftpsession
// command and converts it into session options.
package config

import (
	"crypto/tls"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gonzalop/ftpsession"
	"github.com/gonzalop/ftpsession/ftp"
)

// Config holds every tuneable for a single FTP session.
type Config struct {
	// ── Connection ───────────────────────────────────────────────────
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	User     string `mapstructure:"user" yaml:"user"`
	Password string `mapstructure:"password" yaml:"password,omitempty"`

	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout"`
	IdleTimeout time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`

	TLS TLSConfig `mapstructure:"tls" yaml:"tls"`

	// ── Session ──────────────────────────────────────────────────────
	NamingFormat   string        `mapstructure:"naming_format" yaml:"naming_format"`
	CurrentFolder  string        `mapstructure:"current_folder" yaml:"current_folder,omitempty"`
	CurrentLibrary string        `mapstructure:"current_library" yaml:"current_library,omitempty"`
	ResyncFolder   bool          `mapstructure:"resync_folder" yaml:"resync_folder"`
	PollInterval   time.Duration `mapstructure:"poll_interval" yaml:"poll_interval"`

	// ── Output ───────────────────────────────────────────────────────
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// TLSConfig selects FTPS.
type TLSConfig struct {
	// Mode is one of "none", "explicit" (AUTH TLS) or "implicit".
	Mode string `mapstructure:"mode" yaml:"mode"`
	// ServerName overrides the name checked against the certificate.
	// Defaults to Host.
	ServerName         string `mapstructure:"server_name" yaml:"server_name,omitempty"`
	InsecureSkipVerify bool   `mapstructure:"insecure_skip_verify" yaml:"insecure_skip_verify"`
}

// LoggingConfig controls the command's log output.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	// Addr is the listen address of the /metrics endpoint. Empty disables it.
	Addr string `mapstructure:"addr" yaml:"addr,omitempty"`
}

// Session returns the connection parameters for ftpsession.New.
func (c *Config) Session() ftpsession.Config {
	return ftpsession.Config{
		Host:           c.Host,
		Port:           c.Port,
		User:           c.User,
		Password:       c.Password,
		NamingFormat:   c.NamingFormat,
		CurrentFolder:  c.CurrentFolder,
		CurrentLibrary: c.CurrentLibrary,
	}
}

// SessionOptions returns the session options matching c. The caller adds
// its own logger and metrics options.
func (c *Config) SessionOptions() []ftpsession.Option {
	opts := []ftpsession.Option{
		ftpsession.WithTransportOptions(c.TransportOptions()...),
	}
	if c.PollInterval > 0 {
		opts = append(opts, ftpsession.WithPollInterval(c.PollInterval))
	}
	if c.ResyncFolder {
		opts = append(opts, ftpsession.WithFolderResync())
	}
	return opts
}

// TransportOptions returns the ftp client options matching c.
func (c *Config) TransportOptions() []ftp.Option {
	opts := []ftp.Option{
		ftp.WithTimeout(c.Timeout),
		ftp.WithIdleTimeout(c.IdleTimeout),
	}

	switch strings.ToLower(c.TLS.Mode) {
	case TLSModeExplicit:
		opts = append(opts, ftp.WithExplicitTLS(c.tlsClientConfig()))
	case TLSModeImplicit:
		opts = append(opts, ftp.WithImplicitTLS(c.tlsClientConfig()))
	}
	return opts
}

func (c *Config) tlsClientConfig() *tls.Config {
	serverName := c.TLS.ServerName
	if serverName == "" {
		serverName = c.Host
	}
	return &tls.Config{
		ServerName:         serverName,
		InsecureSkipVerify: c.TLS.InsecureSkipVerify, //nolint:gosec // opt-in for self-signed test servers
	}
}

// Redacted returns a copy of c that is safe to print.
func (c Config) Redacted() Config {
	if c.Password != "" {
		c.Password = "********"
	}
	return c
}

// SlogLevel maps Logging.Level to a slog level. Unknown values map to info.
func (c LoggingConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Dir returns the path to the user's config directory
func Dir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ftpsession")
	}
	// Fall back to ~/.config/ftpsession
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ftpsession"
	}
	return filepath.Join(home, ".config", "ftpsession")
}

// File returns the path to the default config file
func File() string {
	return filepath.Join(Dir(), "config.yaml")
}
