package tui

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// doneMsg carries the result of the work behind the spinner
type doneMsg struct{ err error }

// spinnerModel shows a spinner until the work reports back
type spinnerModel struct {
	title   string
	spinner spinner.Model
	work    func() error
	cancel  context.CancelFunc
	styles  Styles

	done bool
	err  error
}

func newSpinnerModel(title string, work func() error, cancel context.CancelFunc) spinnerModel {
	styles := DefaultStyles()
	return spinnerModel{
		title:   title,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Spinner)),
		work:    work,
		cancel:  cancel,
		styles:  styles,
	}
}

// Init starts the spinner and the work (required by Bubble Tea)
func (m spinnerModel) Init() tea.Cmd {
	work := m.work
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return doneMsg{err: work()}
	})
}

// Update handles messages (required by Bubble Tea)
func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit

	case tea.KeyMsg:
		// Ctrl+C cancels the work; we still wait for it to return
		if msg.String() == "ctrl+c" && m.cancel != nil {
			m.cancel()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the spinner line (required by Bubble Tea)
func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.styles.Muted.Render(m.title) + "\n"
}

// SpinnerOption configures RunWithSpinner
type SpinnerOption func(*spinnerOptions)

type spinnerOptions struct {
	toasts []*ToastNotifier
}

// HoldToasts queues t's toasts while the spinner is drawn and writes them once it is gone.
// A nil notifier is ignored.
func HoldToasts(t *ToastNotifier) SpinnerOption {
	return func(o *spinnerOptions) {
		if t != nil {
			o.toasts = append(o.toasts, t)
		}
	}
}

// RunWithSpinner runs fn while a spinner titled title is shown on stderr.
// Without a terminal fn runs directly.
func RunWithSpinner(ctx context.Context, title string, fn func(ctx context.Context) error, opts ...SpinnerOption) error {
	if !ShouldPrompt() {
		return fn(ctx)
	}
	return runWithSpinner(ctx, title, fn, os.Stdin, os.Stderr, opts...)
}

func runWithSpinner(ctx context.Context, title string, fn func(ctx context.Context) error, in io.Reader, out io.Writer, opts ...SpinnerOption) error {
	var o spinnerOptions
	for _, opt := range opts {
		opt(&o)
	}
	for _, t := range o.toasts {
		defer t.Hold()()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newSpinnerModel(title, func() error { return fn(ctx) }, cancel)
	final, err := tea.NewProgram(m, tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return err
	}
	return final.(spinnerModel).err
}
