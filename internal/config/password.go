package config

import (
	"fmt"
	"io"

	"golang.org/x/term"
)

// PromptPassword asks for the password on the terminal fd when a user is
// configured without one. It does nothing when fd is not a terminal, so
// scripted runs fall back to anonymous or server-side failure.
func PromptPassword(c *Config, fd int, w io.Writer) error {
	if c.User == "" || c.Password != "" || !term.IsTerminal(fd) {
		return nil
	}

	fmt.Fprintf(w, "Password for %s@%s: ", c.User, c.Host)
	pass, err := term.ReadPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}
	c.Password = string(pass)
	return nil
}
