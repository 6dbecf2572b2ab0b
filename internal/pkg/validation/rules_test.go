package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		want     bool
	}{
		{"simple", "alice", true},
		{"with digits", "alice42", true},
		{"with dots and dashes", "a.b-c_d", true},
		{"minimum length", "abc", true},
		{"maximum length", strings.Repeat("a", 30), true},
		{"too short", "ab", false},
		{"too long", strings.Repeat("a", 31), false},
		{"empty", "", false},
		{"spaces", "alice smith", false},
		{"special chars", "alice!", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidUsername(tt.username))
		})
	}
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{"simple", "alice@example.com", true},
		{"with plus", "alice+tag@example.com", true},
		{"subdomain", "alice@mail.example.co", true},
		{"missing at", "alice.example.com", false},
		{"missing domain", "alice@", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidEmail(tt.email))
		})
	}
}

func TestStringValidation(t *testing.T) {
	assert.True(t, NewStringValidation("hello").
		WithMinLength(3).
		WithMaxLength(10).
		Validate())

	assert.False(t, NewStringValidation("hi").
		WithMinLength(3).
		Validate())

	assert.False(t, NewStringValidation("").
		WithRequired(true).
		Validate())
}
