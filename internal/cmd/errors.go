package cmd

import (
	"fmt"

	"github.com/felixgeelhaar/alumni/internal/errors"
)

// errNotLoggedIn is returned by commands that need a session when there is none
func errNotLoggedIn() error {
	return errors.New(errors.ErrCodeUnauthorized, "not logged in").
		WithSuggestion("Run 'alumni login' to start a session")
}

// missingFlagError reports a value that could not be prompted for
func missingFlagError(flag string) error {
	return errors.New(errors.ErrCodeValidationFailed, fmt.Sprintf("required flag --%s not set", flag)).
		WithSuggestion("Run in a terminal without --no-input to be prompted")
}

// invalidInputError wraps local validation failures of user input
func invalidInputError(cause error) error {
	return errors.NewValidationFailedError(cause)
}
