package ux

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"net"
	"syscall"

	"github.com/felixgeelhaar/alumni/internal/errors"
	"github.com/felixgeelhaar/alumni/internal/platform"
)

// ErrorWithSuggestion wraps an error with a recovery hint, printed the same way
// portal errors print theirs
type ErrorWithSuggestion struct {
	Err        error
	Suggestion string
}

// Error implements the error interface
func (e *ErrorWithSuggestion) Error() string {
	if e.Suggestion == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v\n\nSuggestions:\n  • %s", e.Err, e.Suggestion)
}

// Unwrap provides access to the underlying error
func (e *ErrorWithSuggestion) Unwrap() error {
	return e.Err
}

// NewErrorWithSuggestion creates a new error with a suggestion
func NewErrorWithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}
	return &ErrorWithSuggestion{
		Err:        err,
		Suggestion: suggestion,
	}
}

// EnhanceError adds a recovery hint to errors that do not carry their own.
// Portal errors already list suggestions and are returned unchanged.
func EnhanceError(err error) error {
	if err == nil {
		return nil
	}

	var pe *errors.PortalError
	if stderrors.As(err, &pe) {
		return err
	}

	if s := suggestionFor(err); s != "" {
		return NewErrorWithSuggestion(err, s)
	}
	return err
}

func suggestionFor(err error) string {
	var dnsErr *net.DNSError

	switch {
	case stderrors.Is(err, syscall.ECONNREFUSED):
		return "The portal API is not running at the configured URL. Start it, or run 'alumni devserver' for local use"
	case stderrors.As(err, &dnsErr):
		return fmt.Sprintf("Check the host name %q in ALUMNI_API_URL or --api-url", dnsErr.Name)
	case stderrors.Is(err, syscall.EHOSTUNREACH), stderrors.Is(err, syscall.ENETUNREACH):
		return "Check your network connection and firewall settings"
	case platform.IsTimeout(err), stderrors.Is(err, context.DeadlineExceeded):
		return "The portal API did not answer in time. Raise ALUMNI_TIMEOUT or try again later"
	case stderrors.Is(err, syscall.EADDRINUSE):
		return "Another process is listening on that address. Pick a free one with --addr"
	case stderrors.Is(err, fs.ErrPermission):
		return "Check permissions of ~/.alumni or set ALUMNI_TOKEN_FILE to a writable location"
	}
	return ""
}
