package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/ekremsevim/studiohub/internal/app/models"
	"github.com/ekremsevim/studiohub/internal/app/models/dto"
	"github.com/ekremsevim/studiohub/internal/app/repositories"
	"github.com/ekremsevim/studiohub/internal/db"
	"github.com/ekremsevim/studiohub/internal/pkg/apperrors"
	"github.com/ekremsevim/studiohub/internal/pkg/auth"
	"github.com/ekremsevim/studiohub/internal/pkg/dberrors"
	"github.com/ekremsevim/studiohub/internal/pkg/validation"
)

// AuthService handles registration, login and token lifecycle.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID int64) error
	GetCurrentUser(ctx context.Context, userID int64) (*dto.CurrentUserResponse, error)
	DeleteAccount(ctx context.Context, userID int64) error
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	db          *db.PostgresDB
	userRepo    *repositories.UserRepository
	profileRepo *repositories.ProfileRepository
	tokenRepo   *repositories.TokenRepository
	studioRepo  *repositories.StudioRepository
	jwtService  *auth.JWTService
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	database *db.PostgresDB,
	userRepo *repositories.UserRepository,
	profileRepo *repositories.ProfileRepository,
	tokenRepo *repositories.TokenRepository,
	studioRepo *repositories.StudioRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		db:          database,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		tokenRepo:   tokenRepo,
		studioRepo:  studioRepo,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// Register creates a user with an empty profile and signs them in.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validation.ValidUsername(username) {
		return nil, apperrors.NewValidationError("username",
			"Username must be 3-30 characters of letters, digits, dots, dashes or underscores")
	}
	if !validation.ValidEmail(email) {
		return nil, apperrors.NewValidationError("email", "Invalid email address")
	}
	if req.Password != req.PasswordConfirm {
		return nil, apperrors.NewCustomError(apperrors.ErrPasswordMismatch, "Passwords do not match").
			WithField("passwordConfirm")
	}

	exists, err := s.userRepo.UsernameExists(ctx, username, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewCustomError(apperrors.ErrUsernameAlreadyExists, "Username is already taken").
			WithField("username")
	}
	exists, err = s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "Email is already registered").
			WithField("email")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username:  username,
		Email:     email,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Password:  hashedPassword,
		Role:      models.RoleMember,
		IsActive:  true,
	}

	// User and profile rows are created together or not at all.
	err = db.WithTransaction(ctx, s.db.Pool, func(tx pgx.Tx) error {
		userID, err := s.userRepo.WithTx(tx).Create(ctx, user)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "users_username_key") {
				return apperrors.NewCustomError(apperrors.ErrUsernameAlreadyExists, "Username is already taken").
					WithField("username")
			}
			if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
				return apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "Email is already registered").
					WithField("email")
			}
			return err
		}
		user.ID = userID
		return s.profileRepo.WithTx(tx).Create(ctx, userID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("username", user.Username).Msg("User registered")

	return s.issueTokens(ctx, user)
}

// Login authenticates by username (or email) and password.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	identifier := strings.TrimSpace(req.Username)

	var user *models.User
	var err error
	if strings.Contains(identifier, "@") {
		user, err = s.userRepo.GetByEmail(ctx, strings.ToLower(identifier))
	} else {
		user, err = s.userRepo.GetByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		s.logger.Warn().Int64("userID", user.ID).Msg("Failed login attempt")
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// RefreshToken rotates a refresh token into a fresh pair.
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	stored, err := s.tokenRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if stored.Expired() {
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.Revoke(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes every refresh token of the user.
func (s *authServiceImpl) Logout(ctx context.Context, userID int64) error {
	return s.tokenRepo.RevokeAllForUser(ctx, userID)
}

// GetCurrentUser assembles the account, profile and owned-studio view.
func (s *authServiceImpl) GetCurrentUser(ctx context.Context, userID int64) (*dto.CurrentUserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.CurrentUserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      string(user.Role),
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err == nil {
		resp.Profile = buildProfileResponse(profile)
	} else if !errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, err
	}

	studio, err := s.studioRepo.GetByOwnerID(ctx, userID)
	if err == nil {
		count, err := s.studioRepo.SubscriberCount(ctx, studio.ID)
		if err != nil {
			return nil, err
		}
		card := buildStudioCard(studio, nil, count)
		resp.Studio = &card
	} else if !errors.Is(err, apperrors.ErrStudioNotFound) {
		return nil, err
	}

	return resp, nil
}

// DeleteAccount removes the user. Owned studio, posts, comments, likes,
// subscriptions and invitations cascade away with the row.
func (s *authServiceImpl) DeleteAccount(ctx context.Context, userID int64) error {
	if err := s.tokenRepo.RevokeAllForUser(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.Info().Int64("userID", userID).Msg("Account deleted")
	return nil
}

func (s *authServiceImpl) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, err := s.jwtService.GenerateTokenPair(
		user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	err = s.tokenRepo.Create(ctx, user.ID, refreshToken, s.jwtService.GetRefreshTokenExpiry())
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		TokenType:    "Bearer",
	}, nil
}
