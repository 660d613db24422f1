// Package action defines the result envelope returned by every mutating
// operation and the input validation boundary in front of them.
package action

import (
	"errors"
)

// ErrValidation is the cause of every Result produced by Invalid.
var ErrValidation = errors.New("the submitted data is not valid")

// Result is returned by all mutating operations.
//
// Errors holds per-field messages keyed by the JSON name of the field.
// Message is always set and can be shown to the user as is.
type Result struct {
	Success bool                `json:"success" example:"true"`
	Message string              `json:"message" example:"Assignment created"`
	Data    any                 `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`

	err error
}

// Ok returns a successful Result.
func Ok(message string, data any) Result {
	return Result{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// Fail returns a failed Result caused by err.
func Fail(err error) Result {
	return Result{
		Message: err.Error(),
		err:     err,
	}
}

// Invalid returns a failed Result with per-field errors.
func Invalid(fields map[string][]string) Result {
	return Result{
		Message: ErrValidation.Error(),
		Errors:  fields,
		err:     ErrValidation,
	}
}

// Err returns the error that caused the Result to fail, nil on success.
func (r Result) Err() error {
	return r.err
}
