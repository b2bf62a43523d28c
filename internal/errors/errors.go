package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Authentication errors (AUTH-001 to AUTH-099)
	ErrCodeInvalidCredentials ErrorCode = "AUTH-001"
	ErrCodeRateLimited        ErrorCode = "AUTH-002"
	ErrCodeUnauthorized       ErrorCode = "AUTH-003"

	// Registration errors (REG-001 to REG-099)
	ErrCodeDuplicateAccount ErrorCode = "REG-001"
	ErrCodeValidationFailed ErrorCode = "REG-002"

	// Network errors (NET-001 to NET-099)
	ErrCodeNetworkUnreachable ErrorCode = "NET-001"

	// Generic errors (GEN-001 to GEN-099)
	ErrCodeGenericFailure ErrorCode = "GEN-001"

	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigInvalid ErrorCode = "CONFIG-001"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileReadFailed  ErrorCode = "IO-001"
	ErrCodeFileWriteFailed ErrorCode = "IO-002"
	ErrCodeFileUnmarshal   ErrorCode = "IO-003"
)

const docsBase = "https://github.com/felixgeelhaar/alumni#"

// PortalError represents an enhanced error with code, suggestions, and documentation
type PortalError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *PortalError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *PortalError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a PortalError with the same code.
// This lets callers match a category with errors.Is(err, errors.New(code, "")).
func (e *PortalError) Is(target error) bool {
	t, ok := target.(*PortalError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New creates a new PortalError
func New(code ErrorCode, message string) *PortalError {
	return &PortalError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new PortalError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *PortalError {
	return &PortalError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *PortalError) WithSuggestion(suggestion string) *PortalError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *PortalError) WithSuggestions(suggestions ...string) *PortalError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *PortalError) WithDocs(url string) *PortalError {
	e.DocsURL = url
	return e
}

// CodeOf returns the code of the first PortalError in err's chain,
// or the empty code if there is none.
func CodeOf(err error) ErrorCode {
	var pe *PortalError
	if stderrors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// HasCode reports whether err's chain contains a PortalError with the given code
func HasCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// NewNetworkUnreachableError creates an error for a request that got no response
func NewNetworkUnreachableError(cause error) *PortalError {
	return Wrap(ErrCodeNetworkUnreachable,
		"Unable to connect to the server. Please check your internet connection and try again.", cause).
		WithSuggestion("Check that the portal API is reachable at ALUMNI_API_URL").
		WithSuggestion("Run 'alumni doctor' to verify connectivity").
		WithDocs(docsBase + "configuration")
}

// NewRateLimitedError creates a too-many-attempts error
func NewRateLimitedError(cause error) *PortalError {
	return Wrap(ErrCodeRateLimited, "Too many attempts. Please try again later.", cause).
		WithSuggestion("Wait a minute before trying to log in again")
}

// NewInvalidCredentialsError creates a login rejection error
func NewInvalidCredentialsError(cause error) *PortalError {
	return Wrap(ErrCodeInvalidCredentials, "Invalid credentials. Please try again.", cause).
		WithSuggestion("Check your email address and password").
		WithSuggestion("Create an account with 'alumni register' if you do not have one")
}

// NewUnauthorizedError creates an error for a rejected bearer token
func NewUnauthorizedError(cause error) *PortalError {
	return Wrap(ErrCodeUnauthorized, "Your session has expired. Please log in again.", cause).
		WithSuggestion("Run 'alumni login' to start a new session")
}

// NewDuplicateAccountError creates a registration conflict error
func NewDuplicateAccountError(cause error) *PortalError {
	return Wrap(ErrCodeDuplicateAccount, "An account with this email already exists.", cause).
		WithSuggestion("Log in with 'alumni login' instead").
		WithSuggestion("Register with a different email address")
}

// NewValidationFailedError creates a registration validation error
func NewValidationFailedError(cause error) *PortalError {
	return Wrap(ErrCodeValidationFailed, "Please check your input and try again.", cause).
		WithSuggestion("Run 'alumni register' interactively to see field requirements")
}

// NewGenericFailureError creates a registration failure with no better category
func NewGenericFailureError(cause error) *PortalError {
	return Wrap(ErrCodeGenericFailure, "There was an error during registration. Please try again.", cause)
}

// NewSessionSaveError creates a login failure for a token that was issued but could not be stored
func NewSessionSaveError(cause error) *PortalError {
	return Wrap(ErrCodeGenericFailure, "Logged in, but your session could not be saved. Please try again.", cause).
		WithSuggestion("Check permissions of ~/.alumni or set ALUMNI_TOKEN_FILE to a writable location")
}

// NewConfigInvalidError creates a configuration validation error
func NewConfigInvalidError(details string) *PortalError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", details)).
		WithSuggestion("Check ALUMNI_* environment variables and ~/.alumni/config.yaml").
		WithDocs(docsBase + "configuration")
}

// NewFileReadError creates a file read error
func NewFileReadError(path string, cause error) *PortalError {
	return Wrap(ErrCodeFileReadFailed, fmt.Sprintf("failed to read file: %s", path), cause).
		WithSuggestion("Verify you have read permissions for the file")
}

// NewFileWriteError creates a file write error
func NewFileWriteError(path string, cause error) *PortalError {
	return Wrap(ErrCodeFileWriteFailed, fmt.Sprintf("failed to write file: %s", path), cause).
		WithSuggestion("Check if you have write permissions for the directory").
		WithSuggestion("Verify there is enough disk space")
}

// NewFileUnmarshalError creates an unmarshal error
func NewFileUnmarshalError(path string, format string, cause error) *PortalError {
	return Wrap(ErrCodeFileUnmarshal, fmt.Sprintf("failed to parse %s file: %s", format, path), cause).
		WithSuggestion(fmt.Sprintf("Validate the %s syntax", strings.ToUpper(format))).
		WithSuggestion("Delete the file to start over")
}
