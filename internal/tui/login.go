package tui

import (
	"context"

	"github.com/charmbracelet/huh"
)

// Credentials are the values collected by the login form
type Credentials struct {
	Email    string
	Password string
}

// LoginPrompt asks for an email address and password. Values already present in
// creds are used as defaults; a non-empty password skips the password field.
func LoginPrompt(ctx context.Context, creds Credentials) (Credentials, error) {
	fields := []huh.Field{
		huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			Validate(ValidateEmail).
			Value(&creds.Email),
	}

	if creds.Password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Validate(Required("Password")).
			Value(&creds.Password))
	}

	form := huh.NewForm(
		huh.NewGroup(fields...).
			Title("Log in to the alumni portal"),
	)
	if err := run(ctx, form); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}
