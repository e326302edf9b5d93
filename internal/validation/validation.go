// Package validation holds the input checks shared by every account mutator.
// Each check returns a Result that is either valid or names the offending
// field and a user-facing reason.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MinPasswordLen = 6
	MinNameLen     = 2
	// MaxHashedPasswordBytes is the longest password bcrypt accepts.
	MaxHashedPasswordBytes = 72
)

// Field names carried by an invalid Result.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldCurrentPassword = "currentPassword"
)

// User-facing reasons.
const (
	ReasonNameTooShort     = "name must be at least 2 characters"
	ReasonInvalidEmail     = "invalid email format"
	ReasonPasswordTooShort = "password must be at least 6 characters"
	ReasonPasswordTooLong  = "password must be at most 72 bytes"
	ReasonPasswordMismatch = "passwords do not match"
	ReasonEmailExists      = "email already exists"
	ReasonWrongPassword    = "current password is incorrect"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Result is Valid (the zero value) or Invalid{Field, Reason}.
type Result struct {
	Field  string
	Reason string
}

// Valid is the passing Result.
var Valid = Result{}

// Invalid builds a failing Result.
func Invalid(field, reason string) Result { return Result{Field: field, Reason: reason} }

// OK reports whether r is Valid.
func (r Result) OK() bool { return r.Reason == "" }

// Err converts r to an *Error, or nil when r is Valid.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &Error{Field: r.Field, Reason: r.Reason}
}

// Error is the error form of an invalid Result.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string { return e.Reason }

// First returns the first invalid Result, or Valid.
func First(results ...Result) Result {
	for _, r := range results {
		if !r.OK() {
			return r
		}
	}
	return Valid
}

// Email checks the mailbox shape of email.
func Email(email string) Result {
	if !emailRe.MatchString(strings.TrimSpace(email)) {
		return Invalid(FieldEmail, ReasonInvalidEmail)
	}
	return Valid
}

// Password checks the minimum length of password.
func Password(password string) Result {
	return passwordField(FieldPassword, password)
}

func passwordField(field, password string) Result {
	if utf8.RuneCountInString(password) < MinPasswordLen {
		return Invalid(field, ReasonPasswordTooShort)
	}
	return Valid
}

// Name checks the minimum length of a display name, ignoring surrounding space.
func Name(name string) Result {
	if utf8.RuneCountInString(strings.TrimSpace(name)) < MinNameLen {
		return Invalid(FieldName, ReasonNameTooShort)
	}
	return Valid
}

// Confirm checks that a repeated password matches.
func Confirm(password, confirm string) Result {
	if password != confirm {
		return Invalid(FieldConfirmPassword, ReasonPasswordMismatch)
	}
	return Valid
}

// Login validates the shape of login credentials.
func Login(email, password string) Result {
	return First(Email(email), Password(password))
}

// Registration validates the shape of a registration request.
func Registration(name, email, password string) Result {
	return First(Name(name), Email(email), Password(password))
}

// Profile validates an edited name and email.
func Profile(name, email string) Result {
	return First(Name(name), Email(email))
}

// PasswordChange validates a new password and its confirmation. The
// current password is checked against the account by the caller.
func PasswordChange(newPassword, confirm string) Result {
	return First(Password(newPassword), Confirm(newPassword, confirm))
}
