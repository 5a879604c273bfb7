package core

import (
	"errors"
	"fmt"
)

// Authentication & authorization errors
var (
	// ErrInvalidCredentials covers both unknown email and wrong password.
	// The two cases are deliberately indistinguishable to callers so the
	// login surface cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password") // 401 Unauthorized

	// ErrNotAuthorized is returned when a caller acts on a session that is
	// not theirs.
	ErrNotAuthorized = errors.New("not authorized for this session") // 403 Forbidden
)

// Storage errors
var (
	// ErrAccountNotFound stays internal to the login path, where it
	// collapses into ErrInvalidCredentials before reaching callers.
	ErrAccountNotFound = errors.New("account not found")
)

// Config errors (server-side configuration)
var (
	ErrStoreRequired = errors.New("credential store is required") // 500
)

// ValidationError reports a malformed, user-correctable field value. It is
// surfaced verbatim to the caller.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Field validation failures (client input)
var (
	ErrEmailInvalid     = &ValidationError{Field: "email", Message: "the email you've entered is empty or invalid"}   // 406 Not Acceptable
	ErrNameInvalid      = &ValidationError{Field: "name", Message: "the username you've entered is empty or invalid"} // 406 Not Acceptable
	ErrPasswordRequired = &ValidationError{Field: "password", Message: "password is required"}                        // 406 Not Acceptable
)

// ConflictError reports a uniqueness violation on email or name at creation
// or update. Distinct from validation failures: the value is well-formed but
// taken.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s is already taken", e.Field)
}

// InternalError wraps a storage or cryptographic-primitive failure. The
// service logs it; callers get the kind but never the detail.
type InternalError struct {
	Op  string
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InternalError) Unwrap() error { return e.Err }

// StatusCode maps an error to its conventional HTTP-equivalent. The core
// defines no transport of its own; this is advisory for whichever layer
// renders the failure.
func StatusCode(err error) int {
	var validation *ValidationError
	var conflict *ConflictError

	switch {
	case err == nil:
		return 200
	case errors.As(err, &validation):
		return 406
	case errors.As(err, &conflict):
		return 409
	case errors.Is(err, ErrInvalidCredentials):
		return 401
	case errors.Is(err, ErrNotAuthorized):
		return 403
	default:
		return 500
	}
}
