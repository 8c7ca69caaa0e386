package ftp

import (
	"bufio"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"
)

// Client represents the control connection to an FTP server.
//
// A Client is created disconnected by New. Lifecycle handlers registered with
// On are invoked as the connection progresses, and Connect completes once the
// server has accepted the login.
type Client struct {
	// conn is the underlying network connection (control channel)
	conn net.Conn

	// reader is a buffered reader for the control channel
	reader *bufio.Reader

	// tlsConfig is the TLS configuration (if TLS is enabled)
	tlsConfig *tls.Config

	// tlsMode indicates whether TLS is disabled, explicit, or implicit
	tlsMode tlsMode

	// timeout is the timeout for connecting and for each command exchange
	timeout time.Duration

	// idleTimeout is the maximum time to wait before sending NOOP to keep connection alive
	// If zero, no automatic keep-alive is performed
	idleTimeout time.Duration

	// logger is used for debug logging
	logger *slog.Logger

	// dialer is used to establish connections
	dialer Dialer

	// host and port for the connection
	host string
	port string

	// mu serializes command exchanges on the control channel
	mu sync.Mutex

	// lastCommand tracks the time of the last command sent
	lastCommand time.Time

	// quitChan signals the keep-alive goroutine to stop
	quitChan chan struct{}

	// handlers holds the registered lifecycle handlers per event
	handlersMu sync.RWMutex
	handlers   map[Event][]func()

	closeOnce sync.Once
	endOnce   sync.Once
}

// Dialer establishes the raw network connection for the control channel.
// *net.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// New returns a Client for the server at addr ("host:port") without
// connecting. Register lifecycle handlers with On, then call Connect.
func New(addr string, options ...Option) (*Client, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid address: %w", err)
	}

	c := &Client{
		host:     host,
		port:     port,
		timeout:  30 * time.Second,
		tlsMode:  tlsModeNone,
		logger:   slog.New(slog.DiscardHandler),
		handlers: make(map[Event][]func()),
	}

	for _, opt := range options {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if c.dialer == nil {
		c.dialer = &net.Dialer{Timeout: c.timeout}
	}

	return c, nil
}

// Connect dials the server, performs the TLS negotiation selected by the
// options, and logs in. EventGreeting fires once the 220 greeting has been
// read and EventReady once the login is accepted, before Connect returns.
//
// On failure the control connection is closed and the Client must not be
// reused.
func (c *Client) Connect(ctx context.Context, username, password string) error {
	if err := c.dial(ctx); err != nil {
		return err
	}

	// Bound the login exchange by ctx as well as by the per-command timeout.
	stop := context.AfterFunc(ctx, func() {
		_ = c.conn.SetDeadline(time.Now())
	})
	err := c.Login(username, password)
	if !stop() {
		_ = c.Close()
		return fmt.Errorf("login interrupted: %w", ctx.Err())
	}
	if err != nil {
		_ = c.Close()
		return fmt.Errorf("login failed: %w", err)
	}

	c.mu.Lock()
	c.lastCommand = time.Now()
	c.mu.Unlock()

	c.startKeepAlive()
	c.emit(EventReady)
	return nil
}

// dial establishes the control connection and handles the initial handshake.
func (c *Client) dial(ctx context.Context) error {
	addr := net.JoinHostPort(c.host, c.port)
	c.logger.Debug("connecting to ftp server", "addr", addr, "tls_mode", c.tlsMode)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	conn, err := c.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	// For implicit TLS, wrap the connection immediately
	if c.tlsMode == tlsModeImplicit {
		c.logger.Debug("starting TLS handshake", "mode", "implicit")
		tlsConn := tls.Client(conn, c.tlsConfig)
		if err := tlsConn.HandshakeContext(ctx); err != nil {
			conn.Close()
			return fmt.Errorf("TLS handshake failed: %w", err)
		}
		c.logger.Debug("TLS handshake complete", "mode", "implicit")
		conn = tlsConn
	}

	c.conn = conn
	c.reader = bufio.NewReader(c.conn)

	// Set read deadline for greeting
	if deadline, ok := ctx.Deadline(); ok {
		if err := c.conn.SetReadDeadline(deadline); err != nil {
			c.conn.Close()
			return fmt.Errorf("failed to set read deadline: %w", err)
		}
	}

	// Read the greeting (220 response)
	resp, err := readResponse(c.reader)
	if err != nil {
		c.conn.Close()
		return fmt.Errorf("failed to read greeting: %w", err)
	}

	c.logger.Debug("ftp greeting", "code", resp.Code, "message", resp.Message)

	if err := c.conn.SetReadDeadline(time.Time{}); err != nil {
		c.conn.Close()
		return fmt.Errorf("failed to clear read deadline: %w", err)
	}

	if resp.Code != 220 {
		c.conn.Close()
		return &ProtocolError{
			Command:  "CONNECT",
			Response: resp.Message,
			Code:     resp.Code,
		}
	}
	c.emit(EventGreeting)

	// For explicit TLS, upgrade the connection now
	if c.tlsMode == tlsModeExplicit {
		if err := c.upgradeToTLS(ctx); err != nil {
			c.conn.Close()
			return err
		}
	}

	return nil
}

// upgradeToTLS upgrades the connection to TLS using AUTH TLS.
func (c *Client) upgradeToTLS(ctx context.Context) error {
	resp, err := c.sendCommand("AUTH", "TLS")
	if err != nil {
		return fmt.Errorf("AUTH TLS failed: %w", err)
	}

	if resp.Code != 234 {
		return &ProtocolError{
			Command:  "AUTH TLS",
			Response: resp.Message,
			Code:     resp.Code,
		}
	}

	c.logger.Debug("starting TLS handshake", "mode", "explicit")
	tlsConn := tls.Client(c.conn, c.tlsConfig)
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		return fmt.Errorf("TLS handshake failed: %w", err)
	}
	c.logger.Debug("TLS handshake complete", "mode", "explicit")

	c.conn = tlsConn
	c.reader = bufio.NewReader(c.conn)

	// Send PBSZ 0 (required for TLS)
	if _, err := c.expectCode(200, "PBSZ", "0"); err != nil {
		return fmt.Errorf("PBSZ failed: %w", err)
	}

	// Servers that require a protected data channel refuse the session
	// without PROT P, even though no data connections are opened here.
	if _, err := c.expectCode(200, "PROT", "P"); err != nil {
		return fmt.Errorf("PROT failed: %w", err)
	}

	return nil
}

// Login authenticates with the FTP server using the provided username and password.
func (c *Client) Login(username, password string) error {
	resp, err := c.sendCommand("USER", username)
	if err != nil {
		return err
	}

	// If we get 230, we're already logged in (no password required)
	if resp.Code == 230 {
		return nil
	}

	// If we get 331, we need to send the password
	if resp.Code != 331 {
		return &ProtocolError{
			Command:  "USER",
			Response: resp.Message,
			Code:     resp.Code,
		}
	}

	if _, err := c.expectCode(230, "PASS", password); err != nil {
		return err
	}

	return nil
}

// Quit closes the connection gracefully by sending the QUIT command.
func (c *Client) Quit() error {
	if c.conn == nil {
		return nil
	}

	// Send QUIT command (ignore errors, we're closing anyway)
	_, _ = c.sendCommand("QUIT")

	return c.Close()
}

// Close closes the control connection without sending QUIT. It stops the
// keep-alive loop and fires EventClose once.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		if c.quitChan != nil {
			close(c.quitChan)
		}
		if c.conn != nil {
			err = c.conn.Close()
		}
		c.emit(EventClose)
	})
	return err
}

// Noop sends a NOOP (no operation) command to the server.
func (c *Client) Noop() error {
	_, err := c.expect2xx("NOOP")
	return err
}

// Quote sends a command with arguments to the server and returns the
// response. Replies in the 4xx or 5xx range are returned together with a
// *ProtocolError.
//
// Example:
//
//	resp, err := client.Quote("STAT")
func (c *Client) Quote(command string, args ...string) (*Response, error) {
	return c.expectSuccess(command, args...)
}

// Raw sends line to the server exactly as given and returns the response.
// Replies in the 4xx or 5xx range are returned together with a *ProtocolError.
//
// Example:
//
//	resp, err := client.Raw("PWD")
func (c *Client) Raw(line string) (*Response, error) {
	resp, err := c.sendLine(line)
	if err != nil {
		return nil, err
	}
	if resp.Is4xx() || resp.Is5xx() {
		return resp, &ProtocolError{
			Command:  line,
			Response: resp.Message,
			Code:     resp.Code,
		}
	}
	return resp, nil
}

// Site sends a server specific SITE command.
//
// Example:
//
//	resp, err := client.Site("NAMEFMT", "1")
func (c *Client) Site(args ...string) (*Response, error) {
	return c.expectSuccess("SITE", args...)
}

// startKeepAlive starts a goroutine that sends NOOP commands
// if the connection has been idle for the configured idleTimeout.
func (c *Client) startKeepAlive() {
	if c.idleTimeout == 0 {
		return
	}

	c.quitChan = make(chan struct{})

	// We use a ticker that runs at half the idle timeout to be safe
	ticker := time.NewTicker(c.idleTimeout / 2)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.mu.Lock()
				last := c.lastCommand
				c.mu.Unlock()

				if time.Since(last) >= c.idleTimeout {
					c.logger.Debug("sending keep-alive NOOP")
					if err := c.Noop(); err != nil {
						c.logger.Debug("keep-alive NOOP failed", "error", err)
					}
				}
			case <-c.quitChan:
				return
			}
		}
	}()
}

// isEOF reports whether err means the server closed the control connection.
func isEOF(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
