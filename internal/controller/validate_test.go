package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLogin(t *testing.T) {
	assert.Nil(t, ValidateLogin("user@example.com", "secret1"))

	errs := ValidateLogin("", "")
	require.Len(t, errs, 2)
	assert.Equal(t, "Email is required", errs.For("email"))
	assert.Equal(t, "Password is required", errs.For("password"))

	errs = ValidateLogin("not-an-email", "secret1")
	assert.Equal(t, "Please enter a valid email address", errs.For("email"))
	assert.Empty(t, errs.For("password"))

	errs = ValidateLogin("user@example.com", "short")
	assert.Equal(t, "Password must be at least 6 characters", errs.For("password"))

	// Six characters is the login boundary.
	assert.Nil(t, ValidateLogin("user@example.com", "sixxxx"))
}

func TestValidateSignupUsernameRules(t *testing.T) {
	valid := func(username string) FieldErrors {
		return ValidateSignup(username, "user@example.com", "passw0rd")
	}

	assert.Equal(t, "Username is required", valid("  ").For("username"))
	assert.Equal(t, "Username must be at least 3 characters", valid("ab").For("username"))
	assert.Empty(t, valid("abc").For("username"))
	assert.Empty(t, valid("abcdefghij_klmnopqrs").For("username")) // 20 chars
	assert.Equal(t, "Username must be less than 20 characters", valid("abcdefghij_klmnopqrst").For("username"))
	assert.Equal(t, "Username can only contain letters, numbers, and underscores", valid("bad name!").For("username"))
	assert.Empty(t, valid("good_name_42").For("username"))
}

func TestValidateSignupPasswordRules(t *testing.T) {
	valid := func(password string) FieldErrors {
		return ValidateSignup("maya", "user@example.com", password)
	}

	assert.Equal(t, "Password is required", valid("").For("password"))
	assert.Equal(t, "Password must be at least 8 characters", valid("pass1").For("password"))
	assert.Equal(t, "Password must contain at least one letter and one number", valid("lettersonly").For("password"))
	assert.Equal(t, "Password must contain at least one letter and one number", valid("12345678").For("password"))
	assert.Empty(t, valid("passw0rd").For("password"))
}

func TestValidateSignupCollectsAllFields(t *testing.T) {
	errs := ValidateSignup("", "bad", "x")
	require.Len(t, errs, 3)
	assert.NotEmpty(t, errs.For("username"))
	assert.NotEmpty(t, errs.For("email"))
	assert.NotEmpty(t, errs.For("password"))
	assert.Contains(t, errs.Error(), "username: ")
}

func TestFieldErrorsForUnknownField(t *testing.T) {
	errs := ValidateLogin("", "")
	assert.Empty(t, errs.For("guests"))
}
