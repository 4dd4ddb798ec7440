package controller

import (
	"regexp"
	"strings"
	"unicode"
)

// FieldError annotates a single form field. Field values are never
// cleared by validation, only annotated.
type FieldError struct {
	Field   string
	Message string
}

// FieldErrors is the set of per-field validation failures for one
// submission. A non-empty set blocks the submission; no network call
// is made.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(parts, "; ")
}

// For returns the message for a field, or empty when the field is
// clean.
func (e FieldErrors) For(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

var (
	emailPattern    = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

const (
	minLoginPassword  = 6
	minSignupPassword = 8
	minUsername       = 3
	maxUsername       = 20
)

// ValidateLogin applies the login form rules. Returns nil when the
// form may be submitted.
func ValidateLogin(email, password string) FieldErrors {
	var errs FieldErrors

	switch {
	case strings.TrimSpace(email) == "":
		errs = append(errs, FieldError{"email", "Email is required"})
	case !emailPattern.MatchString(email):
		errs = append(errs, FieldError{"email", "Please enter a valid email address"})
	}

	switch {
	case password == "":
		errs = append(errs, FieldError{"password", "Password is required"})
	case len(password) < minLoginPassword:
		errs = append(errs, FieldError{"password", "Password must be at least 6 characters"})
	}

	return errs
}

// ValidateSignup applies the stricter signup form rules.
func ValidateSignup(username, email, password string) FieldErrors {
	var errs FieldErrors

	switch {
	case strings.TrimSpace(username) == "":
		errs = append(errs, FieldError{"username", "Username is required"})
	case len(username) < minUsername:
		errs = append(errs, FieldError{"username", "Username must be at least 3 characters"})
	case len(username) > maxUsername:
		errs = append(errs, FieldError{"username", "Username must be less than 20 characters"})
	case !usernamePattern.MatchString(username):
		errs = append(errs, FieldError{"username", "Username can only contain letters, numbers, and underscores"})
	}

	switch {
	case strings.TrimSpace(email) == "":
		errs = append(errs, FieldError{"email", "Email is required"})
	case !emailPattern.MatchString(email):
		errs = append(errs, FieldError{"email", "Please enter a valid email address"})
	}

	switch {
	case password == "":
		errs = append(errs, FieldError{"password", "Password is required"})
	case len(password) < minSignupPassword:
		errs = append(errs, FieldError{"password", "Password must be at least 8 characters"})
	case !passwordComplexityOK(password):
		errs = append(errs, FieldError{"password", "Password must contain at least one letter and one number"})
	}

	return errs
}

func passwordComplexityOK(password string) bool {
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}
