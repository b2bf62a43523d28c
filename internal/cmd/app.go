package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/alumni/internal/config"
	"github.com/felixgeelhaar/alumni/internal/log"
	"github.com/felixgeelhaar/alumni/internal/platform"
	"github.com/felixgeelhaar/alumni/internal/session"
	"github.com/felixgeelhaar/alumni/internal/tui"
	"github.com/felixgeelhaar/alumni/internal/ux"
	"github.com/felixgeelhaar/alumni/internal/version"
)

// App holds everything a command needs. It is built once per invocation and carried
// on the command context.
type App struct {
	Config  config.Config
	Logger  *log.Logger
	Store   *session.FileStore
	Signal  *session.Signal
	Client  *platform.Client
	Session *session.Manager
	Nav     *Navigator
	Toasts  *tui.ToastNotifier

	Out     io.Writer
	Err     io.Writer
	Format  string
	NoInput bool
}

type appKey struct{}

// appFrom returns the App set up by the root command
func appFrom(cmd *cobra.Command) *App {
	app, _ := cmd.Context().Value(appKey{}).(*App)
	return app
}

// Interactive reports whether prompts may be shown
func (a *App) Interactive() bool {
	return !a.NoInput && tui.ShouldPrompt()
}

// Formatter returns the formatter for --output
func (a *App) Formatter() (ux.Formatter, error) {
	return ux.NewFormatter(a.Format, &ux.FormatterOptions{Writer: a.Out})
}

func setupApp(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	configFile, _ := flags.GetString("config")
	cfg, err := config.Load(config.LoadOptions{ConfigFile: configFile})
	if err != nil {
		return err
	}

	if v, _ := flags.GetString("api-url"); v != "" {
		cfg.APIURL = v
	}
	if v, _ := flags.GetDuration("timeout"); v > 0 {
		cfg.Timeout = v
	}
	if v, _ := flags.GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v, _ := flags.GetString("log-format"); v != "" {
		cfg.LogFormat = v
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	format, _ := flags.GetString("output")
	if _, err := ux.NewFormatter(format, nil); err != nil {
		return fmt.Errorf("invalid flag --output: %w", err)
	}
	quiet, _ := flags.GetBool("quiet")
	noInput, _ := flags.GetBool("no-input")

	app := newApp(cfg, appOptions{
		out:     cmd.OutOrStdout(),
		err:     cmd.ErrOrStderr(),
		format:  format,
		quiet:   quiet,
		noInput: noInput,
	})
	cmd.SetContext(context.WithValue(cmd.Context(), appKey{}, app))

	if cmd.Annotations[annotationRestore] == "true" {
		if err := app.Session.Restore(cmd.Context()); err != nil {
			return err
		}
	}
	return nil
}

type appOptions struct {
	out     io.Writer
	err     io.Writer
	format  string
	quiet   bool
	noInput bool
}

func newApp(cfg config.Config, opts appOptions) *App {
	logger := log.New(log.Config{
		Level:       log.ParseLevel(cfg.LogLevel),
		Format:      log.ParseFormat(cfg.LogFormat),
		Output:      log.NewOutput(opts.err),
		ServiceName: "alumni",
	})

	store := session.NewFileStore(cfg.TokenFile)
	signal := session.NewSignal()
	client := platform.NewClient(cfg.APIURL,
		platform.WithTokenSource(store),
		platform.WithUnauthorizedHandler(signal.EmitRequest),
		platform.WithTimeout(cfg.Timeout),
		platform.WithUserAgent(version.GetInfo().UserAgent()),
		platform.WithLogger(logger),
	)

	var toasts *tui.ToastNotifier
	var notifier session.Notifier = session.NotifierFunc(func(session.Notification) {})
	if !opts.quiet {
		toasts = tui.NewToastNotifier(opts.err)
		notifier = toasts
	}

	nav := &Navigator{logger: logger}
	manager := session.NewManager(client, store, signal,
		session.WithNavigator(nav),
		session.WithNotifier(notifier),
		session.WithLogger(logger),
	)

	return &App{
		Config:  cfg,
		Logger:  logger,
		Store:   store,
		Signal:  signal,
		Client:  client,
		Session: manager,
		Nav:     nav,
		Toasts:  toasts,
		Out:     opts.out,
		Err:     opts.err,
		Format:  opts.format,
		NoInput: opts.noInput,
	}
}

// printHint writes a muted follow-up line to stderr in text mode
func (a *App) printHint(h string) {
	if a.Format != ux.FormatText && a.Format != "" {
		return
	}
	fmt.Fprintln(a.Err, tui.DefaultStyles().Muted.Render(h))
}
