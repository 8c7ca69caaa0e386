package ftp

import (
	"fmt"
	"strings"
)

// ChangeDir changes the current working directory.
func (c *Client) ChangeDir(path string) error {
	_, err := c.expect2xx("CWD", path)
	return err
}

// CurrentDir returns the current working directory.
func (c *Client) CurrentDir() (string, error) {
	resp, err := c.expect2xx("PWD")
	if err != nil {
		return "", err
	}
	return parsePWD(resp.Message)
}

// parsePWD extracts the quoted directory from a 257 reply.
// Example: 257 "/home/user" is the current directory
//
// Embedded quotes are doubled per RFC 959 ("/a ""b""" is /a "b").
func parsePWD(msg string) (string, error) {
	start := strings.Index(msg, "\"")
	if start == -1 {
		return "", fmt.Errorf("invalid PWD response: %s", msg)
	}

	var b strings.Builder
	rest := msg[start+1:]
	for i := 0; i < len(rest); i++ {
		if rest[i] != '"' {
			b.WriteByte(rest[i])
			continue
		}
		if i+1 < len(rest) && rest[i+1] == '"' {
			b.WriteByte('"')
			i++
			continue
		}
		return b.String(), nil
	}
	return "", fmt.Errorf("invalid PWD response: %s", msg)
}
