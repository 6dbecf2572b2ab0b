package dto

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewErrorDetail(t *testing.T) {
	detail := NewErrorDetail(ErrorCodeResourceNotFound, "Studio not found").
		WithField("studioId", "unknown studio").
		WithDetails("id 42 does not exist")

	assert.Equal(t, ErrorCodeResourceNotFound, detail.Code)
	assert.Equal(t, "Studio not found", detail.Message)
	assert.Equal(t, "unknown studio", detail.Fields["studioId"])
	assert.Equal(t, "id 42 does not exist", detail.Details)
}

func TestHandleValidationError(t *testing.T) {
	type registerForm struct {
		Username        string `validate:"required,min=3"`
		Email           string `validate:"required,email"`
		Password        string `validate:"required,min=8"`
		ConfirmPassword string `validate:"required,eqfield=Password"`
	}

	validate := validator.New()
	err := validate.Struct(registerForm{
		Username:        "ab",
		Email:           "not-an-email",
		Password:        "longenough1",
		ConfirmPassword: "different1",
	})
	require.Error(t, err)

	detail := HandleValidationError(err)

	assert.Equal(t, ErrorCodeValidationFailed, detail.Code)
	assert.Equal(t, "Validation failed", detail.Message)
	assert.Equal(t, "must be at least 3", detail.Fields["username"])
	assert.Equal(t, "must be a valid email address", detail.Fields["email"])
	assert.Equal(t, "must match Password", detail.Fields["confirmPassword"])
	assert.NotContains(t, detail.Fields, "password")
}

func TestHandleValidationError_RequiredAndOneof(t *testing.T) {
	type rateForm struct {
		Rating string `validate:"required,oneof=1 2 3 4 5"`
	}

	validate := validator.New()

	detail := HandleValidationError(validate.Struct(rateForm{}))
	assert.Equal(t, "this field is required", detail.Fields["rating"])

	detail = HandleValidationError(validate.Struct(rateForm{Rating: "9"}))
	assert.Equal(t, "must be one of: 1 2 3 4 5", detail.Fields["rating"])
}

func TestHandleValidationError_NonValidatorError(t *testing.T) {
	detail := HandleValidationError(errors.New("unexpected EOF"))

	assert.Equal(t, ErrorCodeValidationFailed, detail.Code)
	assert.Empty(t, detail.Fields)
	assert.Equal(t, "unexpected EOF", detail.Details)
}
