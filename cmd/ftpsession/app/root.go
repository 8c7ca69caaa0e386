// Package app provides the commands of the ftpsession command-line tool.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gonzalop/ftpsession"
	"github.com/gonzalop/ftpsession/internal/config"
	"github.com/gonzalop/ftpsession/internal/metrics"
)

// version is set at build time with -ldflags "-X ...app.version=v1.2.3".
var version = "dev"

// app holds the state shared by the commands of one invocation.
type app struct {
	v *viper.Viper

	// dial overrides the transport factory; nil uses the ftp client.
	dial ftpsession.DialFunc
	// stdinFd is checked for a terminal before prompting for a password.
	stdinFd int
}

// NewRootCmd creates the root command of the ftpsession CLI.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{v: viper.New(), stdinFd: int(os.Stdin.Fd())})
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "ftpsession",
		DisableAutoGenTag: true,
		Short:             "Run commands over a self-healing FTP session",
		Long: `ftpsession keeps one FTP control connection to a server and runs commands
over it. Before each command the connection is probed with PWD and silently
replaced if the server dropped it. After every login the server's naming
format is selected with SITE NAMEFMT.

Connection settings come from flags, FTPSESSION_* environment variables and
an optional YAML config file, in that order of precedence.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	addConnectionFlags(rootCmd.PersistentFlags())

	a.bindFlag(rootCmd, "host", "host")
	a.bindFlag(rootCmd, "port", "port")
	a.bindFlag(rootCmd, "user", "user")
	a.bindFlag(rootCmd, "naming_format", "naming-format")
	a.bindFlag(rootCmd, "tls.mode", "tls")
	a.bindFlag(rootCmd, "timeout", "timeout")
	a.bindFlag(rootCmd, "metrics.addr", "metrics-addr")

	rootCmd.AddCommand(a.newPwdCmd())
	rootCmd.AddCommand(a.newRawCmd())
	rootCmd.AddCommand(a.newSiteCmd())
	rootCmd.AddCommand(a.newQuoteCmd())
	rootCmd.AddCommand(a.newShellCmd())
	rootCmd.AddCommand(a.newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// addConnectionFlags registers the flags shared by every subcommand.
func addConnectionFlags(flags *pflag.FlagSet) {
	flags.StringP("config", "c", "", "Path to the config file (default "+config.File()+")")
	flags.Bool("debug", false, "Enable debug logging")
	flags.String("host", "", "FTP server host")
	flags.Int("port", ftpsession.DefaultPort, "FTP server port")
	flags.StringP("user", "u", "", "User name")
	flags.String("naming-format", ftpsession.DefaultNamingFormat, `Naming format sent as SITE NAMEFMT ("0" or "1")`)
	flags.String("tls", config.TLSModeNone, "TLS mode: none, explicit or implicit")
	flags.Duration("timeout", config.DefaultTimeout, "Connect and command timeout")
	flags.String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
}

func (a *app) bindFlag(cmd *cobra.Command, key, flag string) {
	if err := a.v.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", flag, err))
	}
}

// loadConfig resolves the configuration from flags, environment and file.
func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	config.Setup(a.v)

	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if err := config.ReadFile(a.v, path); err != nil {
		return nil, err
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return nil, err
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// openSession builds a session from the configuration. The returned cleanup
// closes the session and stops the metrics endpoint.
func (a *app) openSession(cmd *cobra.Command) (*ftpsession.Session, func(), error) {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	if err := config.PromptPassword(cfg, a.stdinFd, cmd.ErrOrStderr()); err != nil {
		return nil, nil, err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.Logging)
	opts := append(cfg.SessionOptions(), ftpsession.WithLogger(logger))
	if a.dial != nil {
		opts = append(opts, ftpsession.WithDialer(a.dial))
	}

	stopMetrics := func() {}
	if cfg.Metrics.Addr != "" {
		collector := metrics.NewCollector(true)
		opts = append(opts, ftpsession.WithMetrics(collector))
		stopMetrics = serveMetrics(cfg.Metrics.Addr, collector.Handler(), logger)
	}

	s, err := ftpsession.New(cfg.Session(), opts...)
	if err != nil {
		stopMetrics()
		return nil, nil, err
	}

	cleanup := func() {
		if err := s.Close(); err != nil {
			logger.Debug("error closing session", "error", err)
		}
		stopMetrics()
	}
	return s, cleanup, nil
}

// serveMetrics starts the /metrics endpoint and returns a function that
// shuts it down.
func serveMetrics(addr string, handler http.Handler, logger *slog.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ftpsession version: %s\n", version)
		},
	}
}
