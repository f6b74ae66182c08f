package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a domain lifecycle failure. Callers branch on the kind,
// never on message text.
type Kind string

const (
	KindValidation Kind = "validation"
	KindConflict   Kind = "conflict"
	KindNotFound   Kind = "not_found"
	KindProvider   Kind = "provider"
	KindState      Kind = "state"
)

// ErrProviderResourceNotFound is returned by provisioning clients when the
// external resource is already gone. Deletion flows treat it as success.
var ErrProviderResourceNotFound = errors.New("provider resource not found")

// DomainError carries a stable kind plus a human-readable message.
type DomainError struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *DomainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.cause
}

func Validation(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func State(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindState, Message: fmt.Sprintf(format, args...)}
}

func Provider(cause error, format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindProvider, Message: fmt.Sprintf(format, args...), cause: cause}
}

// KindOf extracts the kind from an error chain. The second return is false
// for errors that did not originate in this package.
func KindOf(err error) (Kind, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return "", false
}

func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
