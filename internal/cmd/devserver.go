package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/alumni/internal/devserver"
	"github.com/felixgeelhaar/alumni/internal/platform"
)

// Demo account created by --seed
const (
	seedEmail    = "demo@alumni.local"
	seedPassword = "Passw0rd1"
)

func newDevServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devserver",
		Short: "Run a local portal API for development",
		Long: `Serve the portal authentication API from memory.

The server implements POST /api/auth/login, POST /api/auth/register and
GET /api/users/me with the same status codes as the portal, including 429
for repeated login attempts. Accounts are lost on exit.

Examples:
  alumni devserver --seed
  alumni devserver --addr 127.0.0.1:9000`,
		Args: cobra.NoArgs,
		RunE: runDevServer,
	}

	cmd.Flags().String("addr", "", "listen address (overrides ALUMNI_DEVSERVER_ADDR)")
	cmd.Flags().Bool("seed", false, fmt.Sprintf("create the demo account %s", seedEmail))

	return cmd
}

func runDevServer(cmd *cobra.Command, _ []string) error {
	app := appFrom(cmd)

	cfg := app.Config.DevServer
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Addr = addr
	}

	srv, err := devserver.New(cfg, devserver.WithLogger(app.Logger.With("component", "devserver")))
	if err != nil {
		return err
	}

	if seed, _ := cmd.Flags().GetBool("seed"); seed {
		demo := devserver.Account{
			User: platform.User{
				FirstName: "Demo",
				LastName:  "Alumnus",
				Email:     seedEmail,
				Role:      platform.RoleAlumni,
			},
			RollNumber:  "DEMO001",
			DateOfBirth: time.Date(1995, time.June, 1, 0, 0, 0, 0, time.UTC),
			City:        "Pune",
			PhoneNumber: "9876543210",
			Courses:     []string{"btech_cse"},
			Gender:      "other",
		}
		if err := srv.Seed(demo, seedPassword); err != nil {
			return fmt.Errorf("failed to seed demo account: %w", err)
		}
		fmt.Fprintf(app.Err, "Seeded %s / %s\n", seedEmail, seedPassword)
	}

	fmt.Fprintf(app.Err, "Serving http://%s%s (Ctrl+C to stop)\n", cfg.Addr, devserver.DefaultPrefix)
	return srv.ListenAndServe(cmd.Context())
}
