package cmd

import (
	"context"
	stderrors "errors"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/alumni/internal/session"
	"github.com/felixgeelhaar/alumni/internal/tui"
)

func newRegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a student or alumni account",
		Long: `Register a new account on the alumni portal.

In a terminal a step-by-step form is shown, pre-filled from any flags given.
With --no-input every field must be passed as a flag. Alumni may attach a
degree certificate (PDF, JPG or PNG, at most 5MB).

Registering does not log you in; run 'alumni login' afterwards.

Examples:
  alumni register
  alumni register --no-input --role student --roll-number 21CS007 \
    --first-name Ada --last-name Lovelace --dob 2003-12-10 --gender female \
    --city Pune --phone 9876543210 --email ada@example.com \
    --course btech_cse --password 'Passw0rd1'`,
		Args: cobra.NoArgs,
		RunE: runRegister,
	}

	f := cmd.Flags()
	f.String("role", "", "student or alumni")
	f.String("roll-number", "", "college roll number")
	f.String("first-name", "", "first name")
	f.String("last-name", "", "last name")
	f.String("dob", "", "date of birth, YYYY-MM-DD")
	f.String("gender", "", "male, female or other")
	f.String("city", "", "city")
	f.String("phone", "", "10-digit phone number")
	f.String("email", "", "email address")
	f.StringSlice("course", nil, "course id, repeatable (e.g. btech_cse, mba)")
	f.String("password", "", "password")
	f.String("certificate", "", "path to a degree certificate (alumni only)")

	return cmd
}

func registrationAnswers(cmd *cobra.Command) tui.RegistrationAnswers {
	f := cmd.Flags()
	get := func(name string) string {
		v, _ := f.GetString(name)
		return v
	}
	courses, _ := f.GetStringSlice("course")

	return tui.RegistrationAnswers{
		Role:            get("role"),
		RollNumber:      get("roll-number"),
		FirstName:       get("first-name"),
		LastName:        get("last-name"),
		DateOfBirth:     get("dob"),
		Gender:          get("gender"),
		City:            get("city"),
		PhoneNumber:     get("phone"),
		Email:           get("email"),
		Courses:         courses,
		Password:        get("password"),
		ConfirmPassword: get("password"),
		CertificatePath: get("certificate"),
	}
}

func runRegister(cmd *cobra.Command, _ []string) error {
	app := appFrom(cmd)
	ctx := cmd.Context()
	answers := registrationAnswers(cmd)

	var (
		form session.RegistrationForm
		err  error
	)
	if app.Interactive() {
		form, err = tui.RegistrationPrompt(ctx, answers)
	} else {
		form, err = answers.Form()
	}
	if err != nil {
		if stderrors.Is(err, tui.ErrAborted) {
			return err
		}
		return invalidInputError(err)
	}

	err = tui.RunWithSpinner(ctx, "Creating your account…", func(ctx context.Context) error {
		return app.Session.Register(ctx, form)
	}, tui.HoldToasts(app.Toasts))
	if err != nil {
		return err
	}

	if h := hint(app.Nav.Last()); h != "" {
		app.printHint(h)
	}
	return nil
}
