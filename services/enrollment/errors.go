package enrollment

import "errors"

var (
	// ErrNotFound signals that a referenced application, enrollment,
	// payment proof or course does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict signals a uniqueness violation, e.g. a second application
	// for the same (user, course) pair.
	ErrConflict = errors.New("record already exists")

	// ErrInvalidState signals an operation attempted against a record whose
	// current state forbids it, e.g. submitting a payment proof before the
	// application is approved.
	ErrInvalidState = errors.New("operation not allowed in current state")
)
