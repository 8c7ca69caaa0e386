package ftpsession

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gonzalop/ftpsession/ftp"
)

const connectKey = "connect"

// EnsureConnected makes sure the session holds a ready connection.
//
// A ready connection is probed with PWD first. If the probe fails the
// connection is closed and dropped, and a new one is established in the same
// call. When no connection is present a transport is dialed and logged in;
// the call returns once the transport signals ready and the naming format
// has been applied. Only then does the session report StateReady.
//
// Concurrent callers share one connect attempt. ctx only bounds how long this
// caller waits: a shared attempt keeps running for the other callers and is
// cancelled by Close.
func (s *Session) EnsureConnected(ctx context.Context) error {
	probeErr := s.checkHealth()

	s.mu.Lock()
	closed, state := s.closed, s.stateLocked()
	s.mu.Unlock()

	if closed {
		return ErrSessionClosed
	}
	if state == StateReady {
		return nil
	}

	err := s.connectShared(ctx)
	if err != nil && probeErr != nil {
		return fmt.Errorf("%w (%v): reconnect: %w", ErrHealthCheckFailed, probeErr, err)
	}
	return err
}

// checkHealth probes a ready connection and discards it on failure.
// It returns the probe error, or nil if there was nothing to probe.
func (s *Session) checkHealth() error {
	s.mu.Lock()
	conn, ready := s.conn, s.ready
	s.mu.Unlock()

	if conn == nil || !ready {
		return nil
	}

	start := time.Now()
	_, err := conn.CurrentDir()
	s.metrics.RecordHealthCheck(err == nil, time.Since(start))
	if err == nil {
		return nil
	}

	s.logger.Warn("health probe failed, discarding connection",
		"addr", s.cfg.Addr(), "state", StateSuspect.String(), "error", err)
	s.discard(conn)
	return err
}

// connectShared joins or starts the single in-flight connect attempt.
func (s *Session) connectShared(ctx context.Context) error {
	ch := s.flight.DoChan(connectKey, func() (any, error) {
		return nil, s.connect(s.ctx)
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// connect dials a new transport and waits for it to become ready.
func (s *Session) connect(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.conn != nil && s.ready {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	addr := s.cfg.Addr()
	t, err := s.dial(addr)
	if err != nil {
		s.metrics.RecordConnection(false, "dial_failed")
		return fmt.Errorf("create transport for %s: %w", addr, err)
	}

	readyCh := make(chan struct{})
	var readyOnce sync.Once

	t.On(ftp.EventGreeting, func() {
		s.logger.Info("ftp greeting received", "addr", addr)
	})
	t.On(ftp.EventClose, func() {
		s.logger.Info("ftp connection closed", "addr", addr)
	})
	t.On(ftp.EventEnd, func() {
		s.logger.Info("ftp connection ended by server", "addr", addr)
	})
	t.On(ftp.EventReady, func() {
		readyOnce.Do(func() { close(readyCh) })
	})

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	s.conn = t
	s.ready = false
	s.mu.Unlock()

	s.logger.Info("connecting to ftp server", "addr", addr, "user", s.cfg.User)

	if err := t.Connect(ctx, s.cfg.User, s.cfg.Password); err != nil {
		s.discard(t)
		if errors.Is(err, context.Canceled) {
			s.metrics.RecordConnection(false, "cancelled")
		} else {
			s.metrics.RecordConnection(false, "connect_failed")
		}
		return fmt.Errorf("connect to %s: %w", addr, err)
	}

	select {
	case <-readyCh:
	case <-ctx.Done():
		s.discard(t)
		s.metrics.RecordConnection(false, "cancelled")
		return fmt.Errorf("connect to %s: %w", addr, ctx.Err())
	}

	// The session stays CONNECTING until the naming format and folder are
	// set, so callers arriving meanwhile join this attempt.
	s.applyNamingFormat(t)
	if s.resync {
		s.resyncFolder(t)
	}

	if !s.markReady(t) {
		s.discard(t)
		return ErrSessionClosed
	}

	s.metrics.RecordConnection(true, "connected")
	s.logger.Info("ftp session ready", "addr", addr)
	return nil
}

// markReady flags t as ready if the session is open and t is still its
// connection. It reports whether t was marked.
func (s *Session) markReady(t Transport) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.conn != t {
		return false
	}
	s.ready = true
	return true
}

// applyNamingFormat sends SITE NAMEFMT. Servers without the command reject
// it; that is logged and does not fail the connect.
func (s *Session) applyNamingFormat(t Transport) {
	start := time.Now()
	_, err := t.Site("NAMEFMT", s.cfg.NamingFormat)
	s.metrics.RecordCommand("SITE", err == nil, time.Since(start))
	if err != nil {
		s.logger.Warn("failed to apply naming format",
			"namefmt", s.cfg.NamingFormat, "error", err)
		return
	}
	s.logger.Debug("naming format applied", "namefmt", s.cfg.NamingFormat)
}

// resyncFolder changes into the recorded current folder.
func (s *Session) resyncFolder(t Transport) {
	folder := s.CurrentFolder()
	if folder == "" {
		return
	}

	start := time.Now()
	err := t.ChangeDir(folder)
	s.metrics.RecordCommand("CWD", err == nil, time.Since(start))
	if err != nil {
		s.logger.Warn("failed to restore current folder", "folder", folder, "error", err)
		return
	}
	s.logger.Debug("current folder restored", "folder", folder)
}

// discard drops t from the session, if it is still the current connection,
// and closes it.
func (s *Session) discard(t Transport) {
	s.mu.Lock()
	if s.conn == t {
		s.conn = nil
		s.ready = false
	}
	s.mu.Unlock()

	if err := t.Close(); err != nil {
		s.logger.Debug("error closing discarded connection", "error", err)
	}
}
