package element

import (
	"errors"
	"fmt"
)

// Kind is the category of a resolution engine failure. Every failure path in
// this module ends in one of these kinds or in a re-raised caller error.
type Kind int

const (
	// KindUnknown marks errors that did not originate in this module, such
	// as raw driver or interaction failures.
	KindUnknown Kind = iota
	// KindNotFound indicates locator resolution yielded nothing within the
	// deadline.
	KindNotFound
	// KindState indicates a handle resolved but failed an expected-state
	// assertion (wrong displayed/enabled state, text validation failure).
	KindState
	// KindTimeout indicates a condition never became true or stable within
	// the deadline and no underlying error was captured.
	KindTimeout
	// KindConfiguration indicates invalid caller input (unknown state name,
	// invalid retry or cache parameters).
	KindConfiguration
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NOT_FOUND"
	case KindState:
		return "STATE"
	case KindTimeout:
		return "TIMEOUT"
	case KindConfiguration:
		return "CONFIGURATION"
	default:
		return "UNKNOWN"
	}
}

// Error is the typed error carried across package boundaries.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewNotFound creates a KindNotFound error.
func NewNotFound(message string, cause error) *Error {
	return &Error{Kind: KindNotFound, Message: message, Cause: cause}
}

// NewState creates a KindState error.
func NewState(message string, cause error) *Error {
	return &Error{Kind: KindState, Message: message, Cause: cause}
}

// NewTimeout creates a KindTimeout error.
func NewTimeout(message string, cause error) *Error {
	return &Error{Kind: KindTimeout, Message: message, Cause: cause}
}

// NewConfiguration creates a KindConfiguration error.
func NewConfiguration(message string, cause error) *Error {
	return &Error{Kind: KindConfiguration, Message: message, Cause: cause}
}

// ClassifyKind returns the Kind of err, or KindUnknown for nil and for
// errors that did not originate in this module.
func ClassifyKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return ClassifyKind(err) == kind
}
