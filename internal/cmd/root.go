package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// annotationRestore marks commands that resolve the stored token before running
const annotationRestore = "alumni/restore-session"

// NewRootCmd builds the alumni command tree
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "alumni",
		Short: "Alumni portal command-line client",
		Long: `alumni is a command-line client for the alumni portal.

It logs you in and out, registers new student and alumni accounts, and keeps
your session token in ~/.alumni/auth.json so later commands stay signed in.
A 401 from the portal on any request ends the session locally.

Configuration is read from ~/.alumni/config.yaml and ALUMNI_* environment
variables; flags override both.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupApp,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.alumni/config.yaml)")
	flags.String("api-url", "", "portal API base URL (overrides ALUMNI_API_URL)")
	flags.Duration("timeout", 0, "request timeout (overrides ALUMNI_TIMEOUT)")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-format", "", "log format: text, json")
	flags.StringP("output", "o", "text", "output format: text, json, yaml")
	flags.BoolP("quiet", "q", false, "suppress notifications")
	flags.Bool("no-input", false, "never prompt; fail when required values are missing")

	root.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newRegisterCmd(),
		newWhoamiCmd(),
		newDashboardCmd(),
		newDoctorCmd(),
		newDevServerCmd(),
		newVersionCmd(),
	)

	return root
}

// Execute runs the root command
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx, which is cancelled on interrupt
func ExecuteContext(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
