package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/felixgeelhaar/alumni/internal/errors"
	"github.com/felixgeelhaar/alumni/internal/session"
)

func TestToastNotifier(t *testing.T) {
	var buf bytes.Buffer
	toasts := NewToastNotifier(&buf)

	toasts.Notify(session.Notification{
		Title:       "Login successful",
		Description: "Welcome back, A!",
	})

	out := buf.String()
	for _, want := range []string{"✓ Login successful", "Welcome back, A!", "╭"} {
		if !strings.Contains(out, want) {
			t.Errorf("toast should contain %q, got:\n%s", want, out)
		}
	}
}

func TestToastDestructive(t *testing.T) {
	toasts := NewToastNotifier(&bytes.Buffer{})

	out := toasts.Render(session.Notification{
		Title:       "Registration failed",
		Description: "An account with this email already exists.",
		Variant:     session.VariantDestructive,
		Code:        errors.ErrCodeDuplicateAccount,
	})

	for _, want := range []string{"✗ Registration failed", "already exists", "REG-001"} {
		if !strings.Contains(out, want) {
			t.Errorf("toast should contain %q, got:\n%s", want, out)
		}
	}
}

func TestToastHoldQueuesUntilRelease(t *testing.T) {
	var buf bytes.Buffer
	toasts := NewToastNotifier(&buf)

	outer := toasts.Hold()
	inner := toasts.Hold()
	toasts.Notify(session.Notification{Title: "Registration successful"})
	toasts.Notify(session.Notification{Title: "Login successful"})

	inner()
	inner()
	if buf.Len() != 0 {
		t.Fatalf("toasts should stay queued while held, got:\n%s", buf.String())
	}

	outer()
	out := buf.String()
	first := strings.Index(out, "Registration successful")
	second := strings.Index(out, "Login successful")
	if first < 0 || second < first {
		t.Errorf("queued toasts should be written in order, got:\n%s", out)
	}

	buf.Reset()
	toasts.Notify(session.Notification{Title: "Logged out"})
	if !strings.Contains(buf.String(), "Logged out") {
		t.Error("toasts should be written directly after release")
	}
}
