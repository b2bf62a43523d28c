package cmd

import (
	"github.com/spf13/cobra"
)

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Long: `Log out by deleting the stored session token.

The portal is not contacted; the token simply stops being sent.

Examples:
  alumni logout`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := appFrom(cmd)
			return app.Session.Logout(cmd.Context())
		},
	}
}
