// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Configuration errors. These are fatal and abort the run.
	ErrMissingColumn = errors.New("required column missing from rule table")
	ErrNoRules       = errors.New("rule table contains no usable rules")
	ErrMissingFile   = errors.New("input file not found")

	// Session errors.
	ErrNoRecords = errors.New("no invoices loaded")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
