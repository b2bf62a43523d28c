package tui

import (
	"fmt"
	"net/mail"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Registration field rules
const (
	MinPasswordLength  = 8
	MaxCertificateSize = 5 << 20
	DateLayout         = "2006-01-02"
)

// CertificateExtensions lists the accepted certificate file types
var CertificateExtensions = []string{".pdf", ".jpg", ".jpeg", ".png"}

var (
	phonePattern = regexp.MustCompile(`^\d{10}$`)
	hasLower     = regexp.MustCompile(`[a-z]`)
	hasUpper     = regexp.MustCompile(`[A-Z]`)
	hasDigit     = regexp.MustCompile(`\d`)
)

// Required returns a validator rejecting blank input with "<field> is required"
func Required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// ValidateEmail checks for a single well-formed address
func ValidateEmail(s string) error {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return fmt.Errorf("Please enter a valid email")
	}
	return nil
}

// ValidatePassword requires at least 8 characters with upper case, lower case and a digit
func ValidatePassword(s string) error {
	if len(s) < MinPasswordLength {
		return fmt.Errorf("Password must be at least %d characters", MinPasswordLength)
	}
	if !hasLower.MatchString(s) || !hasUpper.MatchString(s) || !hasDigit.MatchString(s) {
		return fmt.Errorf("Password must contain uppercase, lowercase, and number")
	}
	return nil
}

// ValidatePhone requires exactly ten digits
func ValidatePhone(s string) error {
	if !phonePattern.MatchString(s) {
		return fmt.Errorf("Please enter a valid 10-digit phone number")
	}
	return nil
}

// ValidateDate parses a YYYY-MM-DD date of birth that is not in the future
func ValidateDate(s string) error {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("Date of birth is required (YYYY-MM-DD)")
	}
	if d.After(time.Now()) {
		return fmt.Errorf("Date of birth cannot be in the future")
	}
	return nil
}

// ValidateConfirm returns a validator matching the value behind password
func ValidateConfirm(password *string) func(string) error {
	return func(s string) error {
		if s != *password {
			return fmt.Errorf("Passwords don't match")
		}
		return nil
	}
}

// ValidateCourses requires at least one course
func ValidateCourses(courses []string) error {
	if len(courses) == 0 {
		return fmt.Errorf("Please select at least one course")
	}
	return nil
}

// ValidateCertificate accepts an empty path or a PDF/JPG/PNG of at most 5 MB
func ValidateCertificate(path string) error {
	if path == "" {
		return nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	accepted := false
	for _, e := range CertificateExtensions {
		if ext == e {
			accepted = true
			break
		}
	}
	if !accepted {
		return fmt.Errorf("Certificate must be a PDF, JPG or PNG file")
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("Cannot read certificate: %s", path)
	}
	if info.IsDir() {
		return fmt.Errorf("Certificate must be a file")
	}
	if info.Size() > MaxCertificateSize {
		return fmt.Errorf("Certificate must be at most 5MB")
	}
	return nil
}
