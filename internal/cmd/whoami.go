package cmd

import (
	"github.com/spf13/cobra"
)

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Long: `Resolve the stored token against the portal and print the user it belongs to.

A token the portal rejects is removed, and the command reports that you are
not logged in.

Examples:
  alumni whoami
  alumni whoami -o json`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationRestore: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := appFrom(cmd)

			s, ok := app.Session.Current()
			if !ok {
				return errNotLoggedIn()
			}

			f, err := app.Formatter()
			if err != nil {
				return err
			}
			return f.Format(newProfile(s))
		},
	}
}
