package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/alumni/internal/session"
	"github.com/felixgeelhaar/alumni/internal/tui"
)

func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the alumni portal",
		Long: `Log in with your email address and password.

On success the session token is saved to the token file and your dashboard is
shown. Missing values are prompted for when running in a terminal.

Examples:
  alumni login
  alumni login --email ada@example.com
  echo "$PASSWORD" | alumni login --email ada@example.com --password-stdin`,
		Args: cobra.NoArgs,
		RunE: runLogin,
	}

	cmd.Flags().String("email", "", "account email address")
	cmd.Flags().String("password", "", "account password (prefer --password-stdin)")
	cmd.Flags().Bool("password-stdin", false, "read the password from stdin")

	return cmd
}

func runLogin(cmd *cobra.Command, _ []string) error {
	app := appFrom(cmd)
	ctx := cmd.Context()

	creds := tui.Credentials{}
	creds.Email, _ = cmd.Flags().GetString("email")
	creds.Password, _ = cmd.Flags().GetString("password")

	if fromStdin, _ := cmd.Flags().GetBool("password-stdin"); fromStdin {
		pw, err := readPassword(cmd.InOrStdin())
		if err != nil {
			return err
		}
		creds.Password = pw
	}

	if creds.Email == "" || creds.Password == "" {
		if !app.Interactive() {
			if creds.Email == "" {
				return missingFlagError("email")
			}
			return missingFlagError("password")
		}

		var err error
		creds, err = tui.LoginPrompt(ctx, creds)
		if err != nil {
			return err
		}
	}

	var user *session.User
	err := tui.RunWithSpinner(ctx, "Logging in…", func(ctx context.Context) error {
		var err error
		user, err = app.Session.Login(ctx, creds.Email, creds.Password)
		return err
	}, tui.HoldToasts(app.Toasts))
	if err != nil {
		return err
	}

	if app.Nav.Last() == session.RouteDashboard {
		return renderDashboard(app, *user)
	}
	return nil
}

func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read password from stdin: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
