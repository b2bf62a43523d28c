package exitcode

import (
	"os"
	"strings"

	"github.com/felixgeelhaar/alumni/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage or rejected input
	UsageError = 2

	// ConfigError indicates invalid configuration
	ConfigError = 3

	// StorageError indicates the token file could not be read or written
	StorageError = 4

	// AuthError indicates an authentication or authorization failure
	AuthError = 5

	// NetworkError indicates a network connectivity issue
	NetworkError = 6

	// Interrupted indicates the command was cancelled (Ctrl+C)
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}

	code := DetermineExitCode(err)
	Exit(code)
}

// DetermineExitCode maps an error to an exit code. Portal error codes decide first;
// other errors fall back to message heuristics.
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	if code := errors.CodeOf(err); code != "" {
		return fromCode(code)
	}

	errMsg := strings.ToLower(err.Error())

	// Authentication errors
	if strings.Contains(errMsg, "authentication") || strings.Contains(errMsg, "unauthorized") {
		return AuthError
	}
	if strings.Contains(errMsg, "not logged in") || strings.Contains(errMsg, "token") {
		return AuthError
	}

	// Network errors
	if strings.Contains(errMsg, "network") || strings.Contains(errMsg, "connection") {
		return NetworkError
	}
	if strings.Contains(errMsg, "timeout") || strings.Contains(errMsg, "unreachable") {
		return NetworkError
	}
	if strings.Contains(errMsg, "no such host") || strings.Contains(errMsg, "no route to host") {
		return NetworkError
	}

	// Usage errors
	if strings.Contains(errMsg, "invalid flag") || strings.Contains(errMsg, "unknown command") {
		return UsageError
	}
	if strings.Contains(errMsg, "required flag") || strings.Contains(errMsg, "missing argument") {
		return UsageError
	}
	if strings.Contains(errMsg, "unknown flag") || strings.Contains(errMsg, "accepts") && strings.Contains(errMsg, "arg") {
		return UsageError
	}

	// Default to general error
	return GeneralError
}

func fromCode(code errors.ErrorCode) int {
	switch {
	case code == errors.ErrCodeValidationFailed:
		return UsageError
	case strings.HasPrefix(string(code), "AUTH-"):
		return AuthError
	case strings.HasPrefix(string(code), "NET-"):
		return NetworkError
	case strings.HasPrefix(string(code), "CONFIG-"):
		return ConfigError
	case strings.HasPrefix(string(code), "IO-"):
		return StorageError
	default:
		return GeneralError
	}
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags, arguments or input)"
	case ConfigError:
		return "Configuration error"
	case StorageError:
		return "Token storage error"
	case AuthError:
		return "Authentication error"
	case NetworkError:
		return "Network error"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
