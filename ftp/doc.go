// Package ftp implements the control connection of an FTP client, with
// support for both plain and secure (FTPS) connections.
//
// # Overview
//
// The package covers the request/reply half of the protocol:
//   - Plain FTP connections
//   - Explicit TLS (FTPS with AUTH TLS)
//   - Implicit TLS (FTPS on port 990)
//   - Lifecycle events (greeting, ready, end, close)
//   - PWD, CWD, SITE and arbitrary commands
//   - Idle keep-alive with NOOP
//   - Robust error handling with detailed protocol context
//
// Data connections (LIST, RETR, STOR) are not implemented.
//
// # Basic Usage
//
// Create a client, register lifecycle handlers and connect:
//
//	client, err := ftp.New("ftp.example.com:21", ftp.WithTimeout(10*time.Second))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client.On(ftp.EventReady, func() { log.Println("logged in") })
//	client.On(ftp.EventEnd, func() { log.Println("server hung up") })
//
//	if err := client.Connect(ctx, "username", "password"); err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Quit()
//
//	dir, err := client.CurrentDir()
//
// # TLS Support
//
// There are two modes of FTPS:
//
// Explicit TLS (recommended): The client connects on port 21 and upgrades to TLS
// using the AUTH TLS command:
//
//	client, err := ftp.New("ftp.example.com:21",
//	    ftp.WithExplicitTLS(&tls.Config{
//	        ServerName: "ftp.example.com",
//	    }),
//	)
//
// Implicit TLS: The client connects directly with TLS on port 990. This is a
// legacy mode but still used by some servers:
//
//	client, err := ftp.New("ftp.example.com:990",
//	    ftp.WithImplicitTLS(&tls.Config{
//	        ServerName: "ftp.example.com",
//	    }),
//	)
//
// # Raw and SITE commands
//
// Raw sends a line verbatim, Quote joins a command with its arguments and Site
// prefixes SITE:
//
//	resp, err := client.Raw("STAT")
//	resp, err = client.Site("NAMEFMT", "1")
//
// Replies in the 4xx and 5xx range are returned together with a
// *ProtocolError so callers can still inspect the full response.
//
// # Error Handling
//
// Errors returned by this package include detailed protocol context. Use
// errors.As to access the full error details:
//
//	var pe *ftp.ProtocolError
//	if errors.As(err, &pe) {
//	    fmt.Printf("Command: %s\n", pe.Command)
//	    fmt.Printf("Response: %s\n", pe.Response)
//	    fmt.Printf("Code: %d\n", pe.Code)
//	}
package ftp
