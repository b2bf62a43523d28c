package tui

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/felixgeelhaar/alumni/internal/platform"
	"github.com/felixgeelhaar/alumni/internal/session"
)

// RegistrationAnswers holds registration input as typed by the user, before parsing
type RegistrationAnswers struct {
	Role            string
	RollNumber      string
	FirstName       string
	LastName        string
	DateOfBirth     string
	City            string
	PhoneNumber     string
	Email           string
	Courses         []string
	Gender          string
	Password        string
	ConfirmPassword string
	CertificatePath string
}

// Validate applies the registration field rules and joins every failure
func (a RegistrationAnswers) Validate() error {
	var errs []error
	check := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	if !platform.Role(a.Role).Valid() {
		errs = append(errs, fmt.Errorf("Role must be student or alumni"))
	}
	check(Required("Roll number")(a.RollNumber))
	check(Required("First name")(a.FirstName))
	check(Required("Last name")(a.LastName))
	check(ValidateDate(a.DateOfBirth))
	check(Required("City")(a.City))
	check(ValidatePhone(a.PhoneNumber))
	check(ValidateEmail(a.Email))
	check(ValidateCourses(a.Courses))
	switch session.Gender(a.Gender) {
	case session.GenderMale, session.GenderFemale, session.GenderOther:
	default:
		errs = append(errs, fmt.Errorf("Gender is required"))
	}
	check(ValidatePassword(a.Password))
	check(ValidateConfirm(&a.Password)(a.ConfirmPassword))
	if platform.Role(a.Role) == platform.RoleAlumni {
		check(ValidateCertificate(a.CertificatePath))
	}

	return stderrors.Join(errs...)
}

// Form converts validated answers into a registration. The certificate, when given
// for an alumni registration, is read into memory.
func (a RegistrationAnswers) Form() (session.RegistrationForm, error) {
	if err := a.Validate(); err != nil {
		return session.RegistrationForm{}, err
	}

	dob, _ := time.Parse(DateLayout, a.DateOfBirth)
	form := session.RegistrationForm{
		Role:        platform.Role(a.Role),
		RollNumber:  a.RollNumber,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		DateOfBirth: dob,
		City:        a.City,
		PhoneNumber: a.PhoneNumber,
		Email:       a.Email,
		Courses:     a.Courses,
		Gender:      session.Gender(a.Gender),
		Password:    a.Password,
	}

	if form.Role == platform.RoleAlumni && a.CertificatePath != "" {
		data, err := os.ReadFile(a.CertificatePath)
		if err != nil {
			return session.RegistrationForm{}, fmt.Errorf("failed to read certificate: %w", err)
		}
		form.Certificate = &session.Attachment{
			Filename:    filepath.Base(a.CertificatePath),
			ContentType: certificateContentType(a.CertificatePath),
			Content:     bytes.NewReader(data),
		}
	}

	return form, nil
}

func certificateContentType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	default:
		return "image/jpeg"
	}
}

// RegistrationPrompt runs the multi-step registration form, starting from the values
// in answers. The certificate step is only shown for alumni.
func RegistrationPrompt(ctx context.Context, answers RegistrationAnswers) (session.RegistrationForm, error) {
	a := answers
	if a.Role == "" {
		a.Role = string(platform.RoleStudent)
	}

	courseOptions := make([]huh.Option[string], 0, len(session.AvailableCourses))
	for _, c := range session.AvailableCourses {
		courseOptions = append(courseOptions, huh.NewOption(c.Name, c.ID))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("I am a").
				Options(
					huh.NewOption("Student", string(platform.RoleStudent)),
					huh.NewOption("Alumni", string(platform.RoleAlumni)),
				).
				Value(&a.Role),
		).Title("Create an account"),

		huh.NewGroup(
			huh.NewInput().Title("Roll number").Validate(Required("Roll number")).Value(&a.RollNumber),
			huh.NewInput().Title("First name").Validate(Required("First name")).Value(&a.FirstName),
			huh.NewInput().Title("Last name").Validate(Required("Last name")).Value(&a.LastName),
			huh.NewInput().Title("Date of birth").Placeholder("YYYY-MM-DD").Validate(ValidateDate).Value(&a.DateOfBirth),
			huh.NewSelect[string]().
				Title("Gender").
				Options(
					huh.NewOption("Male", string(session.GenderMale)),
					huh.NewOption("Female", string(session.GenderFemale)),
					huh.NewOption("Other", string(session.GenderOther)),
				).
				Value(&a.Gender),
		).Title("Personal details"),

		huh.NewGroup(
			huh.NewInput().Title("City").Validate(Required("City")).Value(&a.City),
			huh.NewInput().Title("Phone number").Placeholder("10 digits").Validate(ValidatePhone).Value(&a.PhoneNumber),
			huh.NewInput().Title("Email").Validate(ValidateEmail).Value(&a.Email),
		).Title("Contact"),

		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Courses").
				Options(courseOptions...).
				Validate(ValidateCourses).
				Value(&a.Courses),
		),

		huh.NewGroup(
			huh.NewInput().
				Title("Certificate").
				Description("Degree certificate or proof of graduation (PDF, JPG, PNG, max 5MB). Leave empty to skip.").
				Validate(ValidateCertificate).
				Value(&a.CertificatePath),
		).WithHideFunc(func() bool {
			return a.Role != string(platform.RoleAlumni)
		}),

		huh.NewGroup(
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Validate(ValidatePassword).
				Value(&a.Password),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Validate(ValidateConfirm(&a.Password)).
				Value(&a.ConfirmPassword),
		).Title("Password"),
	)

	if err := run(ctx, form); err != nil {
		return session.RegistrationForm{}, err
	}
	return a.Form()
}
