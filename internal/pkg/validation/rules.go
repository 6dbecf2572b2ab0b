package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// EmailPattern is the accepted email shape.
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,10}$`

	// UsernamePattern allows letters, digits, dots, dashes and underscores.
	UsernamePattern = `^[a-zA-Z0-9._\-]{3,30}$`

	// PasswordMinLength is the minimum accepted password length.
	PasswordMinLength = 8

	// NameMinLength / NameMaxLength bound first/last names.
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns.
var CompiledPatterns = struct {
	Email    *regexp.Regexp
	Username *regexp.Regexp
}{
	Email:    regexp.MustCompile(EmailPattern),
	Username: regexp.MustCompile(UsernamePattern),
}

// StringValidation validates a string value against a set of rules.
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation.
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    value,
		Required: true,
	}
}

// WithMinLength sets minimum length.
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length.
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets a regex pattern.
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired marks the field optional or required.
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation.
func (v *StringValidation) Validate() bool {
	if v.Required && v.Value == "" {
		return false
	}
	if !v.Required && v.Value == "" {
		return true
	}
	if v.MinLen > 0 && len(v.Value) < v.MinLen {
		return false
	}
	if v.MaxLen > 0 && len(v.Value) > v.MaxLen {
		return false
	}
	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}
	return true
}

// ValidUsername reports whether a username is acceptable.
func ValidUsername(username string) bool {
	return CompiledPatterns.Username.MatchString(username)
}

// ValidEmail reports whether an email is acceptable.
func ValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(email)
}
