package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekremsevim/studiohub/internal/app/models/dto"
	"github.com/ekremsevim/studiohub/internal/pkg/apperrors"
	"github.com/ekremsevim/studiohub/internal/pkg/logger"
)

// HandleAPIError maps service errors onto HTTP responses. Controllers call
// it for every error a service returns, so status codes and error codes stay
// consistent across the API.
func HandleAPIError(c *gin.Context, err error) {
	var customErr *apperrors.CustomError
	message := err.Error()
	var field string
	if errors.As(err, &customErr) {
		if customErr.Message != "" {
			message = customErr.Message
		}
		field = customErr.Field
	}

	switch {
	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrStudioNotFound,
		apperrors.ErrLessonNotFound,
		apperrors.ErrPostNotFound,
		apperrors.ErrCommentNotFound,
		apperrors.ErrMeetingNotFound,
		apperrors.ErrInvitationNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, message, field)

	case apperrors.Is(err, apperrors.ErrPermissionDenied, apperrors.ErrNotStudioOwner):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, message, field)

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials", "")

	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired", "")

	case apperrors.Is(err, apperrors.ErrTokenInvalid, apperrors.ErrInvalidFormat):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token", "")

	// Already-taken identifiers are validation failures of the payload, not
	// conflicts on a targeted resource.
	case apperrors.Is(err, apperrors.ErrUsernameAlreadyExists,
		apperrors.ErrEmailAlreadyExists,
		apperrors.ErrResourceAlreadyExists,
		apperrors.ErrStudioAlreadyOwned):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, message, field)

	case apperrors.Is(err, apperrors.ErrValidationFailed,
		apperrors.ErrBadRequest,
		apperrors.ErrPasswordMismatch,
		apperrors.ErrUsernameCooldown,
		apperrors.ErrInvalidRatingValue,
		apperrors.ErrInvalidSearchType,
		apperrors.ErrInvalidLessonType,
		apperrors.ErrMissingLessonContent,
		apperrors.ErrInvalidInvitationState):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, message, field)

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "An unexpected error occurred", "")
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message, field string) {
	detail := dto.NewErrorDetail(code, message)
	if field != "" {
		detail.WithField(field, message)
	}
	c.JSON(status, dto.NewErrorResponse(detail))
}
