// Package contact defines interest form submissions and the rules their fields must satisfy.
package contact

import (
	"errors"
	"fmt"
	"strings"
)

// Field limits in bytes.
const (
	MaxNameLength  = 199
	MaxEmailLength = 149
)

// Sentinel errors for caller-checkable field failures.
var (
	ErrEmptyName    = errors.New("contact: name cannot be empty")
	ErrNameTooLong  = errors.New("contact: name is too long")
	ErrInvalidName  = errors.New("contact: name must be a single line")
	ErrEmptyEmail   = errors.New("contact: email cannot be empty")
	ErrEmailTooLong = errors.New("contact: email is too long")
	ErrInvalidEmail = errors.New("contact: invalid email format")
)

// Submission is a single name/email pair collected from the form.
type Submission struct {
	Name  string
	Email string
}

// Validate checks both fields, reporting the name failure first.
func (s Submission) Validate() error {
	if err := CheckName(s.Name); err != nil {
		return err
	}
	return CheckEmail(s.Email)
}

// CheckName reports whether name can be stored.
// Whitespace-only names are accepted; only the empty string is rejected as empty.
func CheckName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrNameTooLong, len(name), MaxNameLength)
	}
	// A line break would let a name forge an entry marker line in the record file.
	if strings.ContainsAny(name, "\r\n") {
		return ErrInvalidName
	}
	return nil
}

// CheckEmail reports whether email can be stored.
func CheckEmail(email string) error {
	if email == "" {
		return ErrEmptyEmail
	}
	if len(email) > MaxEmailLength {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrEmailTooLong, len(email), MaxEmailLength)
	}
	if !ValidEmail(email) {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return nil
}
