package ftpsession

import "errors"

var (
	// ErrNotConnected is returned by command methods when the session has no
	// ready connection. No command is sent.
	ErrNotConnected = errors.New("ftpsession: not connected")

	// ErrHealthCheckFailed wraps the reconnect error returned by
	// EnsureConnected when a ready connection failed its probe and the
	// replacement connection could not be established either.
	ErrHealthCheckFailed = errors.New("ftpsession: health check failed")

	// ErrSessionClosed is returned by EnsureConnected after Close.
	ErrSessionClosed = errors.New("ftpsession: session closed")

	// ErrEmptyCommand is returned when a command method is called with an
	// empty command line.
	ErrEmptyCommand = errors.New("ftpsession: empty command")
)
