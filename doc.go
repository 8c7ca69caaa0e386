// Package ftpsession keeps one long-lived FTP control connection healthy and
// issues request/reply commands over it.
//
// # Overview
//
// A Session owns at most one connection. EnsureConnected probes a ready
// connection with PWD, discards it if the probe fails, and lazily dials a new
// one when none is present. Concurrent EnsureConnected calls share a single
// connect attempt.
//
//	s, err := ftpsession.New(ftpsession.Config{
//	    Host:     "ftp.example.com",
//	    Port:     21,
//	    User:     "user",
//	    Password: "secret",
//	}, ftpsession.WithLogger(logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	if err := s.EnsureConnected(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	info, err := s.QueryCurrentPath()
//
// # Serializing command sequences
//
// The FTP control channel is half duplex. Individual commands are
// serialized by the transport, but a sequence of commands that must not be
// interleaved with another caller's should run inside Do, which holds the
// session lock for the duration of the callback:
//
//	err := s.Do(ctx, "rename-job", func(ctx context.Context) error {
//	    if err := s.ChangeFolder("/incoming"); err != nil {
//	        return err
//	    }
//	    _, err := s.RawCommand("RNFR a.txt")
//	    return err
//	})
//
// # Errors
//
// Commands issued without a ready connection fail with ErrNotConnected
// before anything is sent. Transport failures are returned unchanged; use
// errors.As with *ftp.ProtocolError to inspect the server reply. Nothing is
// retried: the next EnsureConnected is the only recovery path.
package ftpsession
