package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/alumni/internal/platform"
	"github.com/felixgeelhaar/alumni/internal/session"
	"github.com/felixgeelhaar/alumni/internal/tui"
	"github.com/felixgeelhaar/alumni/internal/ux"
)

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show your portal dashboard",
		Long: `Show the dashboard for the signed-in user.

Without a valid session this points you to 'alumni login'.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationRestore: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := appFrom(cmd)

			s, ok := app.Session.Current()
			if !ok {
				app.printHint(hint(session.RouteLogin))
				return errNotLoggedIn()
			}
			return renderDashboard(app, s.User)
		},
	}
}

// renderDashboard prints the landing view for user. Structured formats get the
// profile only.
func renderDashboard(app *App, user session.User) error {
	s, ok := app.Session.Current()
	if !ok {
		s = session.Session{User: user}
	}

	if app.Format != ux.FormatText && app.Format != "" {
		f, err := app.Formatter()
		if err != nil {
			return err
		}
		return f.Format(newProfile(s))
	}

	styles := tui.DefaultStyles()
	name := user.FirstName
	if name == "" {
		name = user.FullName()
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render(fmt.Sprintf("Welcome, %s", name)))
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render(roleTagline(user.Role)))

	fmt.Fprintln(app.Out, styles.Panel.Render(b.String()))

	f, err := app.Formatter()
	if err != nil {
		return err
	}
	return f.Format(newProfile(s))
}

func roleTagline(role platform.Role) string {
	switch role {
	case platform.RoleAlumni:
		return "Alumni member"
	case platform.RoleStudent:
		return "Current student"
	default:
		return "Portal member"
	}
}
