// Package errs provides the unified error type used across bootprofile.
//
// Every subsystem (profile, database, filestore, server) returns *errs.Error
// for failures a caller may want to tell apart. The CLI turns the kind into an
// exit status and the HTTP server turns it into a status code.
//
// Usage:
//
//	// In the resolver, reject an unknown selector:
//	return errs.Newf(errs.ErrKindConfiguration, "unsupported database selector %q", sel)
//
//	// In a command, pick the exit status:
//	os.Exit(errs.ExitCode(err))
package errs

import (
	"errors"
	"fmt"
)

// ErrKind categorises an error without exposing subsystem-specific codes.
type ErrKind int

const (
	ErrKindUnknown          ErrKind = iota
	ErrKindNotFound                 // missing script, object or bucket
	ErrKindConnectionFailed         // cannot reach the backend
	ErrKindTimeout                  // context deadline / cancellation
	ErrKindQueryFailed              // SQL or storage operation error
	ErrKindInvalidInput             // bad arguments from the caller
	ErrKindPermissionDenied         // access denied / auth failure
	ErrKindConfiguration            // unsupported build parameter value
	ErrKindParse                    // numeric build parameter is not an integer
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindNotFound:
		return "not_found"
	case ErrKindConnectionFailed:
		return "connection_failed"
	case ErrKindTimeout:
		return "timeout"
	case ErrKindQueryFailed:
		return "query_failed"
	case ErrKindInvalidInput:
		return "invalid_input"
	case ErrKindPermissionDenied:
		return "permission_denied"
	case ErrKindConfiguration:
		return "configuration"
	case ErrKindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by all bootprofile subsystems.
type Error struct {
	Kind    ErrKind
	Message string
	Cause   error // original lower-level error, preserved for logging
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is / errors.As to traverse the cause chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// --- Constructors ---

// New creates an *Error with the given kind and message and no cause.
func New(kind ErrKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Newf is New with a format string.
func Newf(kind ErrKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an *Error with the given kind, message, and an underlying cause.
func Wrap(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// --- Predicates ---

// IsNotFound reports whether err represents a missing script, object or bucket.
func IsNotFound(err error) bool {
	return KindOf(err) == ErrKindNotFound
}

// IsTimeout reports whether err was caused by a deadline or context cancellation.
func IsTimeout(err error) bool {
	return KindOf(err) == ErrKindTimeout
}

// IsConnectionFailed reports whether err is a connectivity or auth failure.
func IsConnectionFailed(err error) bool {
	return KindOf(err) == ErrKindConnectionFailed
}

// IsQueryFailed reports whether err is a backend operation failure.
func IsQueryFailed(err error) bool {
	return KindOf(err) == ErrKindQueryFailed
}

// IsInvalidInput reports whether err was caused by bad input from the caller.
func IsInvalidInput(err error) bool {
	return KindOf(err) == ErrKindInvalidInput
}

// IsPermissionDenied reports whether err is an access control failure.
func IsPermissionDenied(err error) bool {
	return KindOf(err) == ErrKindPermissionDenied
}

// IsConfiguration reports whether err rejects a build parameter value,
// such as an unsupported database selector.
func IsConfiguration(err error) bool {
	return KindOf(err) == ErrKindConfiguration
}

// IsParse reports whether err comes from a numeric parameter that failed to parse.
func IsParse(err error) bool {
	return KindOf(err) == ErrKindParse
}

// IsClientError reports whether err was caused by the caller's parameters
// rather than by a backend.
func IsClientError(err error) bool {
	switch KindOf(err) {
	case ErrKindConfiguration, ErrKindParse, ErrKindInvalidInput:
		return true
	}
	return false
}

// KindOf extracts the ErrKind from any error in the chain.
func KindOf(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrKindUnknown
}

// Process exit statuses.
const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitConfiguration = 2
	ExitParse         = 3
)

// ExitCode maps err to the process exit status a command should return.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch KindOf(err) {
	case ErrKindConfiguration:
		return ExitConfiguration
	case ErrKindParse:
		return ExitParse
	default:
		return ExitFailure
	}
}
