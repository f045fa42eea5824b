package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "user@valygo.io", NormalizeEmail("  User@Valygo.IO "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestIsOneOf(t *testing.T) {
	allowed := []string{"active", "inactive"}
	assert.True(t, IsOneOf("active", allowed))
	assert.False(t, IsOneOf("Active", allowed))
	assert.False(t, IsOneOf("", allowed))
}

func TestFormatValidationError(t *testing.T) {
	type form struct {
		Email    string `validate:"required,email"`
		Password string `validate:"required,min=8"`
	}

	err := ValidateStruct(form{Email: "not-an-email", Password: "short"})
	require.Error(t, err)

	fields := FormatValidationError(err)
	assert.Equal(t, "Invalid email format", fields["email"])
	assert.Contains(t, fields["password"], "at least 8")
}
