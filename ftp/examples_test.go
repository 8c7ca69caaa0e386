package ftp_test

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gonzalop/ftpsession/ftp"
)

// ExampleNew demonstrates connecting and logging in.
func ExampleNew() {
	client, err := ftp.New("ftp.example.com:21", ftp.WithTimeout(10*time.Second))
	if err != nil {
		log.Fatal(err)
	}

	if err := client.Connect(context.Background(), "username", "password"); err != nil {
		log.Fatal(err)
	}
	defer func() { _ = client.Quit() }()

	dir, err := client.CurrentDir()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Current directory:", dir)
}

// ExampleNew_explicitTLS demonstrates connecting with explicit TLS.
func ExampleNew_explicitTLS() {
	client, err := ftp.New("ftp.example.com:21",
		ftp.WithExplicitTLS(&tls.Config{
			ServerName: "ftp.example.com",
		}),
		ftp.WithTimeout(10*time.Second),
	)
	if err != nil {
		log.Fatal(err)
	}

	if err := client.Connect(context.Background(), "username", "password"); err != nil {
		log.Fatal(err)
	}
	defer func() { _ = client.Quit() }()

	fmt.Println("Connected with TLS")
}

// ExampleClient_On demonstrates observing the connection lifecycle.
func ExampleClient_On() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	client, err := ftp.New("ftp.example.com:21", ftp.WithLogger(logger))
	if err != nil {
		log.Fatal(err)
	}

	client.On(ftp.EventGreeting, func() { logger.Info("server greeted us") })
	client.On(ftp.EventReady, func() { logger.Info("logged in") })
	client.On(ftp.EventEnd, func() { logger.Warn("server hung up") })
	client.On(ftp.EventClose, func() { logger.Info("connection closed") })

	if err := client.Connect(context.Background(), "username", "password"); err != nil {
		log.Fatal(err)
	}
	_ = client.Quit()
}

// ExampleClient_Site demonstrates a server specific command and error
// inspection.
func ExampleClient_Site() {
	client, err := ftp.New("as400.example.com:21")
	if err != nil {
		log.Fatal(err)
	}
	if err := client.Connect(context.Background(), "username", "password"); err != nil {
		log.Fatal(err)
	}
	defer func() { _ = client.Quit() }()

	resp, err := client.Site("NAMEFMT", "1")
	var perr *ftp.ProtocolError
	if errors.As(err, &perr) && perr.IsPermanent() {
		fmt.Println("server does not support NAMEFMT:", perr.Response)
		return
	}
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(resp.Message)
}

// ExampleClient_Raw demonstrates sending a command line verbatim.
func ExampleClient_Raw() {
	client, err := ftp.New("ftp.example.com:21")
	if err != nil {
		log.Fatal(err)
	}
	if err := client.Connect(context.Background(), "username", "password"); err != nil {
		log.Fatal(err)
	}
	defer func() { _ = client.Quit() }()

	resp, err := client.Raw("STAT")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(resp.Code, resp.Message)
}
