package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"a@x.com", false},
		{"first.last@alumni.example.edu", false},
		{"", true},
		{"not-an-email", true},
		{"Ada <ada@x.com>", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if err := ValidateEmail(tt.input); (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"valid", "Passw0rd1", ""},
		{"too short", "Pa1", "Password must be at least 8 characters"},
		{"no upper", "passw0rd1", "Password must contain uppercase, lowercase, and number"},
		{"no lower", "PASSW0RD1", "Password must contain uppercase, lowercase, and number"},
		{"no digit", "Password", "Password must contain uppercase, lowercase, and number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.input)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("ValidatePassword(%q) = %v, want %q", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePhone(t *testing.T) {
	if err := ValidatePhone("9876543210"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	for _, bad := range []string{"", "98765", "98765432101", "98765-43210", "+919876543210"} {
		if ValidatePhone(bad) == nil {
			t.Errorf("ValidatePhone(%q) should fail", bad)
		}
	}
}

func TestValidateDate(t *testing.T) {
	if err := ValidateDate("2000-01-02"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if ValidateDate("02/01/2000") == nil {
		t.Error("wrong layout should fail")
	}
	future := time.Now().AddDate(1, 0, 0).Format(DateLayout)
	if ValidateDate(future) == nil {
		t.Error("future date should fail")
	}
}

func TestValidateConfirm(t *testing.T) {
	password := "Passw0rd1"
	validate := ValidateConfirm(&password)

	if err := validate("Passw0rd1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := validate("Passw0rd2"); err == nil || err.Error() != "Passwords don't match" {
		t.Errorf("mismatch should fail with \"Passwords don't match\", got %v", err)
	}

	// The validator follows later edits to the password
	password = "Other0ne1"
	if err := validate("Other0ne1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRequired(t *testing.T) {
	if err := Required("City")("  "); err == nil || err.Error() != "City is required" {
		t.Errorf("blank input should fail with \"City is required\", got %v", err)
	}
	if err := Required("City")("Pune"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateCertificate(t *testing.T) {
	dir := t.TempDir()
	pdf := filepath.Join(dir, "degree.pdf")
	if err := os.WriteFile(pdf, []byte("%PDF"), 0600); err != nil {
		t.Fatal(err)
	}
	txt := filepath.Join(dir, "degree.txt")
	if err := os.WriteFile(txt, []byte("hi"), 0600); err != nil {
		t.Fatal(err)
	}
	folder := filepath.Join(dir, "folder.pdf")
	if err := os.Mkdir(folder, 0700); err != nil {
		t.Fatal(err)
	}
	large := filepath.Join(dir, "large.png")
	if err := os.WriteFile(large, make([]byte, MaxCertificateSize+1), 0600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"empty is optional", "", false},
		{"pdf", pdf, false},
		{"wrong extension", txt, true},
		{"missing file", filepath.Join(dir, "missing.jpg"), true},
		{"too large", large, true},
		{"directory", folder, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateCertificate(tt.path); (err != nil) != tt.wantErr {
				t.Errorf("ValidateCertificate(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}
