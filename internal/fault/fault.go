// Package fault defines the two error classes the bot distinguishes:
// validation errors abort the operation before any mutation, persistence
// errors keep the in-memory state and only warn the user.
package fault

import (
	"errors"
	"fmt"
)

var (
	ErrValidation  = errors.New("validation")
	ErrPersistence = errors.New("persistence")
)

func Validationf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrValidation)
}

func Persistence(err error) error {
	return fmt.Errorf("%v: %w", err, ErrPersistence)
}

func IsValidation(err error) bool  { return errors.Is(err, ErrValidation) }
func IsPersistence(err error) bool { return errors.Is(err, ErrPersistence) }

// Message strips the class marker for user-facing output.
func Message(err error) string {
	s := err.Error()
	for _, suffix := range []string{": " + ErrValidation.Error(), ": " + ErrPersistence.Error()} {
		if len(s) > len(suffix) && s[len(s)-len(suffix):] == suffix {
			return s[:len(s)-len(suffix)]
		}
	}
	return s
}
