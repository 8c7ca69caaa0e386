package ftpsession

import (
	"context"

	"github.com/gonzalop/ftpsession/ftp"
)

//go:generate mockgen -destination=mock_transport_test.go -package=ftpsession -source=transport.go Transport

// Transport is the FTP control connection a Session drives. *ftp.Client
// implements it.
type Transport interface {
	// On registers a lifecycle handler.
	On(event ftp.Event, fn func())
	// Connect dials and logs in, firing ftp.EventReady on success.
	Connect(ctx context.Context, user, password string) error
	// CurrentDir sends PWD.
	CurrentDir() (string, error)
	// ChangeDir sends CWD.
	ChangeDir(path string) error
	// Raw sends a command line verbatim.
	Raw(line string) (*ftp.Response, error)
	// Quote sends a command with arguments.
	Quote(command string, args ...string) (*ftp.Response, error)
	// Site sends SITE with arguments.
	Site(args ...string) (*ftp.Response, error)
	// Quit sends QUIT and closes the connection.
	Quit() error
	// Close closes the connection without QUIT.
	Close() error
}

// DialFunc returns a new, unconnected Transport for addr ("host:port").
type DialFunc func(addr string) (Transport, error)

// dialFTP is the default DialFunc, backed by *ftp.Client.
func dialFTP(opts ...ftp.Option) DialFunc {
	return func(addr string) (Transport, error) {
		return ftp.New(addr, opts...)
	}
}
