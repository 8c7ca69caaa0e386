package ftpsession

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/gonzalop/ftpsession/ftp"
	"github.com/gonzalop/ftpsession/wait"
)

const (
	// DefaultPort is the FTP control port used when Config.Port is zero.
	DefaultPort = 21

	// DefaultNamingFormat is the SITE NAMEFMT value applied when
	// Config.NamingFormat is empty.
	DefaultNamingFormat = "1"

	// DefaultPollInterval is how often Do polls the session lock.
	DefaultPollInterval = 10 * time.Millisecond
)

// Config holds the connection parameters of a Session. It is copied by New
// and never modified afterwards.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string

	// NamingFormat selects the server's naming dialect ("0" or "1") and is
	// sent as SITE NAMEFMT after every successful connect.
	NamingFormat string

	// CurrentFolder and CurrentLibrary seed the advisory addressing state.
	CurrentFolder  string
	CurrentLibrary string
}

// Addr returns the "host:port" address of the server.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *Config) normalize() error {
	if c.Host == "" {
		return fmt.Errorf("host is required")
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.NamingFormat == "" {
		c.NamingFormat = DefaultNamingFormat
	}
	if c.NamingFormat != "0" && c.NamingFormat != "1" {
		return fmt.Errorf("naming format must be \"0\" or \"1\", got %q", c.NamingFormat)
	}
	return nil
}

// State is the connection state of a Session.
type State int

const (
	// StateDisconnected means the session holds no connection.
	StateDisconnected State = iota
	// StateConnecting means a connection exists but its login or naming
	// format selection has not finished.
	StateConnecting
	// StateReady means the connection completed its handshake.
	StateReady
	// StateSuspect names a ready connection whose health probe just failed.
	// It appears in logs only: State never returns it, because the
	// connection is discarded before EnsureConnected continues.
	StateSuspect
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateReady:
		return "ready"
	case StateSuspect:
		return "suspect"
	default:
		return "unknown"
	}
}

// Session owns a single FTP connection and its addressing state.
// All methods are safe for concurrent use.
type Session struct {
	cfg          Config
	logger       *slog.Logger
	dial         DialFunc
	ftpOpts      []ftp.Option
	metrics      MetricsCollector
	resync       bool
	pollInterval time.Duration

	// ctx bounds shared connect attempts and is cancelled by Close.
	ctx    context.Context
	cancel context.CancelFunc

	mu             sync.Mutex
	conn           Transport
	ready          bool
	closed         bool
	currentFolder  string
	currentLibrary string

	flight singleflight.Group
	lock   *wait.Resource
}

// New creates a disconnected Session. No network activity happens until
// EnsureConnected.
func New(cfg Config, options ...Option) (*Session, error) {
	if err := cfg.normalize(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	s := &Session{
		cfg:            cfg,
		logger:         slog.New(slog.DiscardHandler),
		metrics:        nopMetrics{},
		pollInterval:   DefaultPollInterval,
		currentFolder:  cfg.CurrentFolder,
		currentLibrary: cfg.CurrentLibrary,
		lock:           wait.NewResource(),
	}

	for _, opt := range options {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if s.dial == nil {
		s.dial = dialFTP(append([]ftp.Option{ftp.WithLogger(s.logger)}, s.ftpOpts...)...)
	}

	s.ctx, s.cancel = context.WithCancel(context.Background())
	return s, nil
}

// Close sends QUIT on the ready connection, if any, and cancels any
// in-flight connect attempt. The Session cannot be reconnected afterwards.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	conn, ready := s.conn, s.ready
	s.conn = nil
	s.ready = false
	s.mu.Unlock()

	s.cancel()

	// A connect in flight sees the cancellation and closes its own transport.
	if conn == nil || !ready {
		return nil
	}
	s.logger.Info("closing ftp session", "addr", s.cfg.Addr())
	return conn.Quit()
}

// State reports the current connection state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() State {
	switch {
	case s.conn == nil:
		return StateDisconnected
	case !s.ready:
		return StateConnecting
	default:
		return StateReady
	}
}

// Config returns the session configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// CurrentFolder returns the last known working directory. It is advisory:
// it is not reapplied to a new connection unless WithFolderResync is set.
func (s *Session) CurrentFolder() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentFolder
}

// CurrentLibrary returns the last known library.
func (s *Session) CurrentLibrary() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentLibrary
}

// SetCurrentLibrary records the library the caller is addressing.
func (s *Session) SetCurrentLibrary(library string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentLibrary = library
}
