package session

import "github.com/felixgeelhaar/alumni/internal/errors"

// Variant selects how a notification is rendered
type Variant int

const (
	// VariantDefault is an informational or success notification
	VariantDefault Variant = iota
	// VariantDestructive is a failure notification
	VariantDestructive
)

// Notification is a one-shot user-visible message
type Notification struct {
	Title       string
	Description string
	Variant     Variant
	// Code is the error category of a failure notification
	Code errors.ErrorCode
}

// Notifier shows notifications to the user
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(Notification)

// Notify calls f(n)
func (f NotifierFunc) Notify(n Notification) { f(n) }

type nopNotifier struct{}

func (nopNotifier) Notify(Notification) {}
