package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekremsevim/studiohub/internal/app/models/dto"
	"github.com/ekremsevim/studiohub/internal/app/services"
	"github.com/ekremsevim/studiohub/internal/pkg/apperrors"
)

type stubAuthService struct {
	services.AuthService
	registerFn func(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	loginFn    func(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	logoutFn   func(ctx context.Context, userID int64) error
}

func (s *stubAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	return s.registerFn(ctx, req)
}

func (s *stubAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	return s.loginFn(ctx, req)
}

func (s *stubAuthService) Logout(ctx context.Context, userID int64) error {
	return s.logoutFn(ctx, userID)
}

func newAuthRouter(stub *stubAuthService) *gin.Engine {
	router := newTestRouter()
	controller := NewAuthController(stub)
	router.POST("/auth/register", controller.Register)
	router.POST("/auth/login", controller.Login)
	router.POST("/auth/logout", controller.Logout)
	return router
}

func TestRegister_Created(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
			assert.Equal(t, "newuser", req.Username)
			return &dto.TokenResponse{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 3600, TokenType: "Bearer"}, nil
		},
	}
	router := newAuthRouter(stub)

	body := jsonBody(t, dto.RegisterRequest{
		Username:        "newuser",
		Email:           "new@example.com",
		FirstName:       "New",
		LastName:        "User",
		Password:        "password123",
		PasswordConfirm: "password123",
	})
	recorder := performRequest(t, router, http.MethodPost, "/auth/register", body)

	require.Equal(t, http.StatusCreated, recorder.Code)
	var tokens dto.TokenResponse
	envelope := decodeResponse(t, recorder, &tokens)
	assert.True(t, envelope.Success)
	assert.Equal(t, "access", tokens.AccessToken)
	assert.Equal(t, "Bearer", tokens.TokenType)
}

func TestRegister_BindingFailure(t *testing.T) {
	router := newAuthRouter(&stubAuthService{})

	// password confirmation mismatch fails binding before the service runs
	body := jsonBody(t, dto.RegisterRequest{
		Username:        "newuser",
		Email:           "new@example.com",
		FirstName:       "New",
		LastName:        "User",
		Password:        "password123",
		PasswordConfirm: "different123",
	})
	recorder := performRequest(t, router, http.MethodPost, "/auth/register", body)

	requireErrorCode(t, recorder, http.StatusBadRequest, dto.ErrorCodeValidationFailed)
}

func TestRegister_UsernameTaken(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, _ *dto.RegisterRequest) (*dto.TokenResponse, error) {
			return nil, apperrors.ErrUsernameAlreadyExists
		},
	}
	router := newAuthRouter(stub)

	body := jsonBody(t, dto.RegisterRequest{
		Username:        "taken",
		Email:           "taken@example.com",
		FirstName:       "Ta",
		LastName:        "Ken",
		Password:        "password123",
		PasswordConfirm: "password123",
	})
	recorder := performRequest(t, router, http.MethodPost, "/auth/register", body)

	requireErrorCode(t, recorder, http.StatusBadRequest, dto.ErrorCodeValidationFailed)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
			return nil, apperrors.ErrInvalidCredentials
		},
	}
	router := newAuthRouter(stub)

	body := jsonBody(t, dto.LoginRequest{Username: "someone", Password: "wrongpass"})
	recorder := performRequest(t, router, http.MethodPost, "/auth/login", body)

	requireErrorCode(t, recorder, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials)
}

func TestLogout(t *testing.T) {
	var gotUserID int64
	stub := &stubAuthService{
		logoutFn: func(_ context.Context, userID int64) error {
			gotUserID = userID
			return nil
		},
	}
	router := newAuthRouter(stub)

	recorder := performRequest(t, router, http.MethodPost, "/auth/logout", nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, testUserID, gotUserID)
}
