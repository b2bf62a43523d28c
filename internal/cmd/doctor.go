package cmd

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/alumni/internal/config"
	"github.com/felixgeelhaar/alumni/internal/contract"
	"github.com/felixgeelhaar/alumni/internal/errors"
	"github.com/felixgeelhaar/alumni/internal/platform"
	"github.com/felixgeelhaar/alumni/internal/session"
	"github.com/felixgeelhaar/alumni/internal/ux"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration, connectivity and the stored session",
		Long: `Run diagnostics for the alumni client.

Checks include:
  • Configuration (file and ALUMNI_* environment)
  • The bundled API contract covers every endpoint the client calls
  • The portal API host is reachable
  • The token file and whether its token is still accepted

Examples:
  alumni doctor
  alumni doctor -o json`,
		Args: cobra.NoArgs,
		RunE: runDoctor,
	}
}

// Check statuses
const (
	statusOK      = "ok"
	statusWarning = "warning"
	statusError   = "error"
	statusMissing = "missing"
)

// DoctorReport represents the complete health check report
type DoctorReport struct {
	Config    *DoctorCheck `json:"config" yaml:"config"`
	Contract  *DoctorCheck `json:"contract" yaml:"contract"`
	API       *DoctorCheck `json:"api" yaml:"api"`
	TokenFile *DoctorCheck `json:"token_file" yaml:"token_file"`
	Session   *DoctorCheck `json:"session" yaml:"session"`
	Issues    []string     `json:"issues" yaml:"issues"`
	Warnings  []string     `json:"warnings" yaml:"warnings"`
	NextSteps []string     `json:"next_steps" yaml:"next_steps"`
	Healthy   bool         `json:"healthy" yaml:"healthy"`
}

// DoctorCheck represents a single health check result
type DoctorCheck struct {
	Name    string         `json:"name" yaml:"name"`
	Status  string         `json:"status" yaml:"status"` // "ok", "warning", "error", "missing"
	Message string         `json:"message" yaml:"message"`
	Details map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	app := appFrom(cmd)
	ctx := cmd.Context()

	report := &DoctorReport{
		Issues:    []string{},
		Warnings:  []string{},
		NextSteps: []string{},
	}

	checkConfig(app.Config, report)
	checkContract(ctx, report)
	reachable := checkAPI(ctx, app.Config, report)
	hasToken := checkTokenFile(app.Store, report)
	checkSession(ctx, app, report, reachable && hasToken)

	report.Healthy = len(report.Issues) == 0

	if app.Format == ux.FormatJSON || app.Format == ux.FormatYAML {
		f, err := app.Formatter()
		if err != nil {
			return err
		}
		if err := f.Format(report); err != nil {
			return err
		}
	} else {
		printReport(app.Out, report)
	}

	if !report.Healthy {
		return errors.New(errors.ErrCodeGenericFailure, fmt.Sprintf("%d issue(s) found", len(report.Issues)))
	}
	return nil
}

func checkConfig(cfg config.Config, report *DoctorReport) {
	check := &DoctorCheck{
		Name:   "Configuration",
		Status: statusOK,
		Details: map[string]any{
			"api_url":    cfg.APIURL,
			"timeout":    cfg.Timeout.String(),
			"token_file": cfg.TokenFile,
		},
	}

	path := os.Getenv(config.ConfigFileEnv)
	if path == "" {
		path = config.DefaultConfigFile()
	}
	if _, err := os.Stat(path); err == nil {
		check.Message = fmt.Sprintf("loaded %s", path)
		check.Details["file"] = path
	} else {
		check.Message = "using defaults and environment"
	}

	report.Config = check
}

func checkContract(ctx context.Context, report *DoctorReport) {
	c, err := contract.Load(ctx)
	if err != nil {
		report.Contract = &DoctorCheck{Name: "API contract", Status: statusError, Message: err.Error()}
		report.Issues = append(report.Issues, "Bundled API contract is invalid")
		return
	}

	findings := c.Check(platform.Endpoints())
	if len(findings) == 0 {
		report.Contract = &DoctorCheck{
			Name:    "API contract",
			Status:  statusOK,
			Message: fmt.Sprintf("%s covers all %d endpoints", c.Title(), len(platform.Endpoints())),
		}
		return
	}

	messages := make([]string, 0, len(findings))
	for _, f := range findings {
		messages = append(messages, f.String())
	}
	report.Contract = &DoctorCheck{
		Name:    "API contract",
		Status:  statusWarning,
		Message: fmt.Sprintf("%d endpoint(s) not in %s", len(findings), c.Title()),
		Details: map[string]any{"findings": messages},
	}
	report.Warnings = append(report.Warnings, "Client calls endpoints the API contract does not describe")
}

func checkAPI(ctx context.Context, cfg config.Config, report *DoctorReport) bool {
	u, err := url.Parse(cfg.APIURL)
	if err != nil {
		report.API = &DoctorCheck{Name: "Portal API", Status: statusError, Message: err.Error()}
		report.Issues = append(report.Issues, "API URL cannot be parsed")
		return false
	}

	host := u.Host
	if u.Port() == "" {
		port := "80"
		if u.Scheme == "https" {
			port = "443"
		}
		host = net.JoinHostPort(u.Hostname(), port)
	}

	timeout := min(cfg.Timeout, 3*time.Second)
	dialer := net.Dialer{Timeout: timeout}

	start := time.Now()
	conn, err := dialer.DialContext(ctx, "tcp", host)
	if err != nil {
		report.API = &DoctorCheck{
			Name:    "Portal API",
			Status:  statusError,
			Message: fmt.Sprintf("cannot reach %s: %v", host, err),
			Details: map[string]any{"url": cfg.APIURL},
		}
		report.Issues = append(report.Issues, "Portal API is unreachable")
		report.NextSteps = append(report.NextSteps,
			"Set ALUMNI_API_URL or --api-url to the portal API",
			"Start a local server with 'alumni devserver --seed'")
		return false
	}
	_ = conn.Close()

	report.API = &DoctorCheck{
		Name:    "Portal API",
		Status:  statusOK,
		Message: fmt.Sprintf("%s reachable", host),
		Details: map[string]any{
			"url":        cfg.APIURL,
			"latency_ms": time.Since(start).Milliseconds(),
		},
	}
	return true
}

func checkTokenFile(store *session.FileStore, report *DoctorReport) bool {
	token, err := store.Token()
	switch {
	case err != nil:
		report.TokenFile = &DoctorCheck{Name: "Token file", Status: statusError, Message: err.Error()}
		report.Issues = append(report.Issues, "Token file cannot be read")
		report.NextSteps = append(report.NextSteps, "Run 'alumni logout' to reset the token file")
		return false
	case token == "":
		report.TokenFile = &DoctorCheck{
			Name:    "Token file",
			Status:  statusMissing,
			Message: fmt.Sprintf("no token in %s", store.Path()),
		}
		report.NextSteps = append(report.NextSteps, "Run 'alumni login' to start a session")
		return false
	default:
		report.TokenFile = &DoctorCheck{
			Name:    "Token file",
			Status:  statusOK,
			Message: fmt.Sprintf("token %s in %s", session.Fingerprint(token), store.Path()),
		}
		return true
	}
}

// checkSession resolves the stored token without going through the session
// manager, so a rejected token is reported rather than cleared
func checkSession(ctx context.Context, app *App, report *DoctorReport, run bool) {
	if !run {
		report.Session = &DoctorCheck{Name: "Session", Status: statusMissing, Message: "skipped"}
		return
	}

	client := platform.NewClient(app.Config.APIURL,
		platform.WithTokenSource(app.Store),
		platform.WithTimeout(app.Config.Timeout),
		platform.WithLogger(app.Logger),
	)
	user, err := client.CurrentUser(ctx, "")
	if err != nil {
		if code, ok := platform.StatusCode(err); ok && code == http.StatusUnauthorized {
			report.Session = &DoctorCheck{Name: "Session", Status: statusWarning, Message: "stored token was rejected"}
			report.Warnings = append(report.Warnings, "Stored token is no longer valid")
			report.NextSteps = append(report.NextSteps, "Run 'alumni login' to start a new session")
			return
		}
		report.Session = &DoctorCheck{Name: "Session", Status: statusError, Message: err.Error()}
		report.Issues = append(report.Issues, "Session check failed")
		return
	}

	report.Session = &DoctorCheck{
		Name:    "Session",
		Status:  statusOK,
		Message: fmt.Sprintf("signed in as %s (%s)", user.FullName(), user.Role),
	}
}

func printReport(w io.Writer, report *DoctorReport) {
	fmt.Fprintln(w, "Alumni diagnostics:")
	for _, check := range []*DoctorCheck{report.Config, report.Contract, report.API, report.TokenFile, report.Session} {
		if check != nil {
			printCheck(w, check)
		}
	}

	printList(w, "Issues", report.Issues)
	printList(w, "Warnings", report.Warnings)
	printList(w, "Next steps", report.NextSteps)

	fmt.Fprintln(w)
	if report.Healthy {
		fmt.Fprintln(w, "✓ All checks passed")
	} else {
		fmt.Fprintf(w, "✗ %d issue(s) found\n", len(report.Issues))
	}
}

func printList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "  • %s\n", item)
	}
}

func printCheck(w io.Writer, check *DoctorCheck) {
	icon := " "
	switch check.Status {
	case statusOK:
		icon = "✓"
	case statusWarning:
		icon = "⚠"
	case statusError:
		icon = "✗"
	case statusMissing:
		icon = "○"
	}

	fmt.Fprintf(w, "  %s %s: %s\n", icon, check.Name, check.Message)
}
