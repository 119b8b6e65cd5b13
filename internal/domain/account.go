package domain

import (
	"fmt"
	"strings"
)

// Account validation errors. All of them wrap ErrValidation.
var (
	ErrBlankUsername    = fmt.Errorf("%w: username cannot be blank", ErrValidation)
	ErrBlankPassword    = fmt.Errorf("%w: password cannot be blank", ErrValidation)
	ErrPasswordTooShort = fmt.Errorf(
		"%w: password must be at least %d characters long",
		ErrValidation,
		MinPasswordLength,
	)
)

// MinPasswordLength is the minimum accepted password length, measured after
// surrounding whitespace has been stripped.
const MinPasswordLength = 4

// Account represents a registered account of the application.
//
// The password is held and compared as plain text. This mirrors the behavior
// of the system this service replaces and is a known security defect; a
// future version should store a salted one-way hash instead.
type Account struct {
	ID       int64  `json:"account_id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks the account against the registration rules: the username
// must be non-blank and the password must be non-blank and at least
// MinPasswordLength characters long. Both fields are trimmed of surrounding
// whitespace before being checked; the stored values are left untouched.
func (a *Account) Validate() error {
	username := strings.TrimSpace(a.Username)
	password := strings.TrimSpace(a.Password)

	if username == "" {
		return ErrBlankUsername
	}
	if password == "" {
		return ErrBlankPassword
	}
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}
