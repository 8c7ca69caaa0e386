package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gonzalop/ftpsession"
)

const shellHelp = `Commands:
  pwd              print the current directory
  cd <dir>         change the current directory
  site <args>      send SITE <args>
  quote <command>  send a command with arguments
  raw <line>       send a line verbatim
  state            print the connection state
  help             show this help
  exit, quit       leave the shell
Any other input is sent verbatim.
`

func (a *app) newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run commands interactively over one session",
		Long: `Read commands from standard input and run them over a single session.
The connection is checked before every command and reestablished when the
server has dropped it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, cleanup, err := a.openSession(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			interactive := term.IsTerminal(a.stdinFd) && cmd.InOrStdin() == os.Stdin
			return runShell(ctx, s, cmd.InOrStdin(), cmd.OutOrStdout(), interactive)
		},
	}
}

// runShell executes one command per input line until EOF, "exit" or ctx is
// done. Command failures are printed and do not end the shell.
func runShell(ctx context.Context, s *ftpsession.Session, in io.Reader, out io.Writer, interactive bool) error {
	owner := "shell-" + uuid.NewString()
	scanner := bufio.NewScanner(in)

	for {
		if interactive {
			fmt.Fprint(out, "ftp> ")
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		verb, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		switch strings.ToLower(verb) {
		case "":
			continue
		case "exit", "quit":
			return nil
		case "help", "?":
			fmt.Fprint(out, shellHelp)
			continue
		case "state":
			fmt.Fprintln(out, s.State())
			continue
		}

		var reply string
		err := s.Do(ctx, owner, func(context.Context) error {
			var err error
			reply, err = shellCommand(s, verb, rest, line)
			return err
		})
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		if reply != "" {
			fmt.Fprintln(out, reply)
		}
	}
}

func shellCommand(s *ftpsession.Session, verb, rest, line string) (string, error) {
	switch strings.ToLower(verb) {
	case "pwd":
		info, err := s.QueryCurrentPath()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s (%s)", info.Path, info.FileSystem), nil
	case "cd":
		if rest == "" {
			return "", fmt.Errorf("usage: cd <dir>")
		}
		if err := s.ChangeFolder(rest); err != nil {
			return "", err
		}
		return s.CurrentFolder(), nil
	case "site":
		return s.SiteCommand(rest)
	case "quote":
		return s.QuoteCommand(rest)
	case "raw":
		return s.RawCommand(rest)
	default:
		return s.RawCommand(line)
	}
}
