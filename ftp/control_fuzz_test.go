package ftp

import (
	"bufio"
	"strings"
	"testing"
)

func FuzzReadResponse(f *testing.F) {
	f.Add("220 Welcome\r\n")
	f.Add("211-Extensions supported:\r\n SIZE\r\n211 END\r\n")
	f.Add("257 \"/\" is current directory.\r\n")
	f.Add("2")

	f.Fuzz(func(t *testing.T, s string) {
		// Just ensure it doesn't panic
		_, _ = readResponse(bufio.NewReader(strings.NewReader(s)))
	})
}
