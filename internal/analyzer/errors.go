package analyzer

import (
	"errors"
	"strings"

	"github.com/sozercan/algowhisperer/internal/prompt"
)

const (
	// GenericFailureMessage is the only thing a user ever sees when the
	// provider call fails.
	GenericFailureMessage = "Failed to process the request. Ensure the URL is accessible."

	// NoAnswerMessage replaces an empty provider answer.
	NoAnswerMessage = "I couldn't generate a response. Please try again."

	// DefaultSourceTitle is used for citations that arrive without a title.
	DefaultSourceTitle = "Source"
)

// ValidationError means the request was refused before anything was sent:
// the URL is unsupported, or the action or language is invalid.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Unwrap() error { return e.Err }

// NewValidationError wraps err for field. Errors from the prompt package lose
// their "invalid argument: " prefix so the reason reads well on its own.
func NewValidationError(field string, err error) *ValidationError {
	reason := err.Error()
	if errors.Is(err, prompt.ErrInvalidArgument) {
		reason = strings.TrimPrefix(reason, prompt.ErrInvalidArgument.Error()+": ")
	}
	return &ValidationError{Field: field, Reason: reason, Err: err}
}

// ProviderError hides the cause of a failed provider call behind
// GenericFailureMessage. The cause is available through Unwrap for logging.
type ProviderError struct {
	Provider string
	cause    error
}

func (e *ProviderError) Error() string { return GenericFailureMessage }

func (e *ProviderError) Unwrap() error { return e.cause }

// IsValidation reports whether err is, or wraps, a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsProvider reports whether err is, or wraps, a *ProviderError.
func IsProvider(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}
