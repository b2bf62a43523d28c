package tui

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
)

// ErrAborted is returned when the user cancels a prompt
var ErrAborted = stderrors.New("prompt aborted")

// Prompt represents a simple interactive prompt configuration
type Prompt struct {
	Message     string
	Default     string
	Placeholder string
	Required    bool
	Secret      bool
	Validate    func(string) error
}

// PromptForString displays an interactive prompt and returns the user's input
func PromptForString(ctx context.Context, p Prompt) (string, error) {
	value := p.Default

	input := huh.NewInput().
		Title(p.Message).
		Placeholder(p.Placeholder).
		Value(&value)

	if p.Secret {
		input = input.EchoMode(huh.EchoModePassword)
	}
	if p.Validate != nil {
		input = input.Validate(p.Validate)
	}

	if err := run(ctx, huh.NewForm(huh.NewGroup(input))); err != nil {
		return "", err
	}

	if p.Required && value == "" {
		return "", fmt.Errorf("value is required")
	}

	return value, nil
}

// PromptForConfirmation displays a yes/no confirmation prompt
func PromptForConfirmation(ctx context.Context, message string, defaultValue bool) (bool, error) {
	confirmed := defaultValue

	confirm := huh.NewConfirm().
		Title(message).
		Value(&confirmed)

	if err := run(ctx, huh.NewForm(huh.NewGroup(confirm))); err != nil {
		return false, err
	}

	return confirmed, nil
}

// run executes form and maps a user abort to ErrAborted
func run(ctx context.Context, form *huh.Form) error {
	err := form.WithTheme(huh.ThemeCharm()).RunWithContext(ctx)
	if stderrors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	if err != nil {
		return fmt.Errorf("prompt failed: %w", err)
	}
	return nil
}

// IsInteractive returns true if stdin is a terminal (not piped)
func IsInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// ciEnvVars disable prompts when any is set
var ciEnvVars = []string{
	"CI",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"JENKINS_URL",
	"TRAVIS",
	"CIRCLECI",
	"BUILDKITE",
}

// ShouldPrompt returns true if prompts should be shown based on environment
// Prompts are disabled in CI environments or when stdin is not a terminal
func ShouldPrompt() bool {
	if InCI() {
		return false
	}
	return IsInteractive()
}

// InCI reports whether a common CI environment variable is set
func InCI() bool {
	for _, envVar := range ciEnvVars {
		if os.Getenv(envVar) != "" {
			return true
		}
	}
	return false
}
