package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gonzalop/ftpsession"
)

// runCommand opens a session, connects it and runs fn once.
func (a *app) runCommand(cmd *cobra.Command, fn func(s *ftpsession.Session) (string, error)) error {
	s, cleanup, err := a.openSession(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := s.EnsureConnected(ctx); err != nil {
		return err
	}

	out, err := fn(s)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func (a *app) newPwdCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pwd",
		Short: "Print the server's current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runCommand(cmd, func(s *ftpsession.Session) (string, error) {
				info, err := s.QueryCurrentPath()
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("%s (%s)", info.Path, info.FileSystem), nil
			})
		},
	}
}

func (a *app) newRawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "raw <command line>",
		Short: "Send a command line verbatim and print the reply",
		Example: `  ftpsession raw PWD
  ftpsession raw "RCMD DSPLIBL"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCommand(cmd, func(s *ftpsession.Session) (string, error) {
				return s.RawCommand(strings.Join(args, " "))
			})
		},
	}
}

func (a *app) newSiteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "site <arguments>",
		Short:   "Send a SITE command and print the reply",
		Example: `  ftpsession site NAMEFMT 0`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCommand(cmd, func(s *ftpsession.Session) (string, error) {
				return s.SiteCommand(strings.Join(args, " "))
			})
		},
	}
}

func (a *app) newQuoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "quote <command>",
		Short:   "Send a command through the generic command channel and print the reply",
		Example: `  ftpsession quote STAT`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCommand(cmd, func(s *ftpsession.Session) (string, error) {
				return s.QuoteCommand(strings.Join(args, " "))
			})
		},
	}
}

func (a *app) newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML, with the password redacted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(cfg.Redacted())
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	})
	return configCmd
}
