package ftpsession

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileSystemIFS is the addressing namespace reported for every path.
// Deriving the namespace from the path is not implemented.
const FileSystemIFS = "ifs"

// PathInfo is the result of QueryCurrentPath.
type PathInfo struct {
	// Path is the directory reported by PWD.
	Path string
	// FileSystem is the addressing namespace of Path.
	FileSystem string
}

// transport returns the ready connection or ErrNotConnected.
func (s *Session) transport() (Transport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil || !s.ready {
		return nil, ErrNotConnected
	}
	return s.conn, nil
}

// observe runs fn and records its outcome.
func (s *Session) observe(cmd string, fn func() error) error {
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	s.metrics.RecordCommand(cmd, err == nil, elapsed)
	if err != nil {
		s.logger.Debug("ftp command failed", "cmd", cmd, "duration", elapsed, "error", err)
	}
	return err
}

// QueryCurrentPath sends PWD and returns the working directory together with
// its namespace. On success the advisory current folder is updated.
func (s *Session) QueryCurrentPath() (PathInfo, error) {
	t, err := s.transport()
	if err != nil {
		return PathInfo{}, err
	}

	var dir string
	err = s.observe("PWD", func() error {
		var err error
		dir, err = t.CurrentDir()
		return err
	})
	if err != nil {
		return PathInfo{}, err
	}

	s.mu.Lock()
	s.currentFolder = dir
	s.mu.Unlock()

	return PathInfo{Path: dir, FileSystem: FileSystemIFS}, nil
}

// RawCommand sends line verbatim and returns the reply text unmodified.
func (s *Session) RawCommand(line string) (string, error) {
	if strings.TrimSpace(line) == "" {
		return "", ErrEmptyCommand
	}
	t, err := s.transport()
	if err != nil {
		return "", err
	}

	var text string
	err = s.observe("RAW", func() error {
		resp, err := t.Raw(line)
		if err != nil {
			return err
		}
		text = resp.Message
		return nil
	})
	return text, err
}

// SiteCommand sends "SITE <text>" and returns the reply text.
func (s *Session) SiteCommand(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyCommand
	}
	t, err := s.transport()
	if err != nil {
		return "", err
	}

	var reply string
	err = s.observe("SITE", func() error {
		resp, err := t.Site(text)
		if err != nil {
			return err
		}
		reply = resp.Message
		return nil
	})
	return reply, err
}

// QuoteCommand sends text through the transport's generic command channel
// and returns the reply text.
func (s *Session) QuoteCommand(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyCommand
	}
	t, err := s.transport()
	if err != nil {
		return "", err
	}

	var reply string
	err = s.observe("QUOTE", func() error {
		resp, err := t.Quote(text)
		if err != nil {
			return err
		}
		reply = resp.Message
		return nil
	})
	return reply, err
}

// ChangeFolder sends CWD and records dir as the current folder on success.
// A relative dir is resolved against the previous current folder.
func (s *Session) ChangeFolder(dir string) error {
	t, err := s.transport()
	if err != nil {
		return err
	}

	if err := s.observe("CWD", func() error { return t.ChangeDir(dir) }); err != nil {
		return err
	}

	s.mu.Lock()
	if path.IsAbs(dir) || s.currentFolder == "" {
		s.currentFolder = path.Clean(dir)
	} else {
		s.currentFolder = path.Join(s.currentFolder, dir)
	}
	s.mu.Unlock()
	return nil
}

// Do runs fn while holding the session lock, after making sure the session
// is connected. Callers that need several commands to run back to back
// without another caller's commands in between should issue them from fn.
//
// owner labels the holder in logs; an empty owner gets a random label.
// Do is not reentrant: calling Do from fn on the same session deadlocks
// until ctx is done.
func (s *Session) Do(ctx context.Context, owner string, fn func(ctx context.Context) error) error {
	if owner == "" {
		owner = uuid.NewString()
	}

	if err := s.lock.Acquire(ctx, owner, s.pollInterval); err != nil {
		return err
	}
	defer func() {
		if err := s.lock.ReleaseOwned(owner); err != nil {
			s.logger.Warn("session lock released by another holder", "owner", owner, "error", err)
		}
	}()

	s.logger.Debug("session lock acquired", "owner", owner)

	if err := s.EnsureConnected(ctx); err != nil {
		return err
	}
	return fn(ctx)
}
