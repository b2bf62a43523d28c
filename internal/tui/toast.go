package tui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/felixgeelhaar/alumni/internal/session"
)

// ToastNotifier renders session notifications as bordered boxes
type ToastNotifier struct {
	mu     sync.Mutex
	out    io.Writer
	styles Styles

	holds   int
	pending []string
}

// NewToastNotifier writes toasts to out (stderr when nil)
func NewToastNotifier(out io.Writer) *ToastNotifier {
	if out == nil {
		out = os.Stderr
	}
	return &ToastNotifier{out: out, styles: DefaultStyles()}
}

// Notify implements session.Notifier
func (t *ToastNotifier) Notify(n session.Notification) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.holds > 0 {
		t.pending = append(t.pending, t.Render(n))
		return
	}
	fmt.Fprintln(t.out, t.Render(n))
}

// Hold queues toasts until the returned release is called, e.g. while a Bubble Tea
// program owns the terminal. Holds nest; the last release writes the queue.
func (t *ToastNotifier) Hold() (release func()) {
	t.mu.Lock()
	t.holds++
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			t.holds--
			if t.holds > 0 {
				return
			}
			for _, toast := range t.pending {
				fmt.Fprintln(t.out, toast)
			}
			t.pending = nil
		})
	}
}

// Render returns the toast for n
func (t *ToastNotifier) Render(n session.Notification) string {
	var b strings.Builder

	box := t.styles.Toast
	if n.Variant == session.VariantDestructive {
		box = box.BorderForeground(colorRed)
		b.WriteString(t.styles.Error.Render("✗ " + n.Title))
	} else {
		b.WriteString(t.styles.Success.Render("✓ " + n.Title))
	}

	if n.Description != "" {
		b.WriteString("\n")
		b.WriteString(n.Description)
	}
	if n.Code != "" {
		b.WriteString("\n")
		b.WriteString(t.styles.Muted.Render(string(n.Code)))
	}

	return box.Render(b.String())
}

var _ session.Notifier = (*ToastNotifier)(nil)
