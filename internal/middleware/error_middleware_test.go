package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekremsevim/studiohub/internal/app/models/dto"
	"github.com/ekremsevim/studiohub/internal/pkg/apperrors"
)

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"studio not found", apperrors.ErrStudioNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"wrapped not found", apperrors.NewResourceNotFoundError("Lesson not found"), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"forbidden with message", apperrors.NewForbiddenError("You do not own a studio"), http.StatusForbidden, dto.ErrorCodeForbidden},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{"username taken", apperrors.ErrUsernameAlreadyExists, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"email taken", apperrors.ErrEmailAlreadyExists, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"studio already owned", apperrors.ErrStudioAlreadyOwned, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"validation error", apperrors.NewValidationError("degrees", "Degrees must be a JSON array of strings"), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"invalid rating", apperrors.ErrInvalidRatingValue, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"unknown error", errors.New("connection reset"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(recorder)

			HandleAPIError(c, tt.err)

			require.Equal(t, tt.wantStatus, recorder.Code)

			var envelope dto.APIResponse
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
			assert.False(t, envelope.Success)
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantCode, envelope.Error.Code)
		})
	}
}

func TestHandleAPIError_CustomMessageAndField(t *testing.T) {
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	HandleAPIError(c, apperrors.NewValidationError("rating", "Rating must be between 1 and 5"))

	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var envelope dto.APIResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "Rating must be between 1 and 5", envelope.Error.Message)
	assert.Equal(t, "Rating must be between 1 and 5", envelope.Error.Fields["rating"])
}

func TestHandleAPIError_InternalErrorIsOpaque(t *testing.T) {
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	HandleAPIError(c, errors.New("pq: relation does not exist"))

	var envelope dto.APIResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "An unexpected error occurred", envelope.Error.Message)
	assert.NotContains(t, recorder.Body.String(), "relation")
}
