package registry

import (
	"errors"
	"fmt"
)

// Common registration error conditions
var (
	// ErrDuplicateClass is returned when a class is registered twice
	ErrDuplicateClass = errors.New("class already registered")

	// ErrDuplicateName is returned when a class name is already taken by a
	// different type
	ErrDuplicateName = errors.New("class name already registered")

	// ErrUnknownClass is returned when a member is declared on a class that
	// was never registered
	ErrUnknownClass = errors.New("class not registered")

	// ErrNilClass is returned when a class handle does not resolve to a type
	ErrNilClass = errors.New("class handle resolves to no type")
)

// RegistrationError wraps a failure raised while registering a class or one
// of its members. The underlying host error is carried unchanged; callers
// can reach it through errors.Is / errors.As.
type RegistrationError struct {
	Class  string
	Member string
	Err    error
}

// Error implements the error interface
func (e *RegistrationError) Error() string {
	if e.Member != "" {
		return fmt.Sprintf("registration failed for %s.%s: %v", e.Class, e.Member, e.Err)
	}
	return fmt.Sprintf("registration failed for %s: %v", e.Class, e.Err)
}

// Unwrap returns the underlying cause.
func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// IsDuplicateClass returns true if the error is ErrDuplicateClass
func IsDuplicateClass(err error) bool {
	return errors.Is(err, ErrDuplicateClass)
}

// IsDuplicateName returns true if the error is ErrDuplicateName
func IsDuplicateName(err error) bool {
	return errors.Is(err, ErrDuplicateName)
}

// IsUnknownClass returns true if the error is ErrUnknownClass
func IsUnknownClass(err error) bool {
	return errors.Is(err, ErrUnknownClass)
}

func registrationErr(class, member string, err error) error {
	return &RegistrationError{Class: class, Member: member, Err: err}
}
