package services

import (
	"context"
	"mime/multipart"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/ekremsevim/studiohub/internal/app/models/dto"
	"github.com/ekremsevim/studiohub/internal/app/repositories"
	"github.com/ekremsevim/studiohub/internal/pkg/apperrors"
	"github.com/ekremsevim/studiohub/internal/pkg/filestorage"
	"github.com/ekremsevim/studiohub/internal/pkg/validation"
)

// UsernameCooldown is the minimum wait between username changes.
const UsernameCooldown = 30 * 24 * time.Hour

// ProfileService handles profile reads and updates.
type ProfileService interface {
	GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest, picture *multipart.FileHeader) (*dto.ProfileResponse, error)
	UploadCV(ctx context.Context, userID int64, file *multipart.FileHeader) (*dto.ProfileResponse, error)
	DeleteCV(ctx context.Context, userID int64) error
}

// profileServiceImpl implements ProfileService
type profileServiceImpl struct {
	profileRepo *repositories.ProfileRepository
	userRepo    *repositories.UserRepository
	fileStorage filestorage.FileStorage
	logger      zerolog.Logger
}

// NewProfileService creates a new ProfileService.
func NewProfileService(
	profileRepo *repositories.ProfileRepository,
	userRepo *repositories.UserRepository,
	fileStorage filestorage.FileStorage,
	logger zerolog.Logger,
) ProfileService {
	return &profileServiceImpl{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

// GetProfile returns a user's profile.
func (s *profileServiceImpl) GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return buildProfileResponse(profile), nil
}

// UpdateProfile applies a partial profile update. Nil request fields are left
// untouched; a username change is subject to the 30-day cooldown.
func (s *profileServiceImpl) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest, picture *multipart.FileHeader) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		if err := s.changeUsername(ctx, userID, *req.Username, profile.UsernameLastChanged); err != nil {
			return nil, err
		}
	}

	if req.Headline != nil {
		profile.Headline = strings.TrimSpace(*req.Headline)
	}
	if req.ContactEmail != nil {
		email := strings.TrimSpace(*req.ContactEmail)
		if email != "" && !validation.ValidEmail(email) {
			return nil, apperrors.NewValidationError("contactEmail", "Invalid email address")
		}
		profile.ContactEmail = email
	}
	if req.Degrees != nil {
		degrees, err := parseDegrees(*req.Degrees)
		if err != nil {
			return nil, err
		}
		profile.Degrees = degrees
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	if picture != nil {
		oldURL := profile.ProfilePictureURL
		url, err := s.fileStorage.SaveFileWithPath(picture, filestorage.ProfilePicturesDir)
		if err != nil {
			return nil, err
		}
		if err := s.profileRepo.SetProfilePicture(ctx, userID, &url); err != nil {
			return nil, err
		}
		profile.ProfilePictureURL = &url
		if oldURL != nil {
			if err := s.fileStorage.DeleteFile(*oldURL); err != nil {
				s.logger.Warn().Err(err).Str("file", *oldURL).Msg("Failed to delete old profile picture")
			}
		}
	}

	return buildProfileResponse(profile), nil
}

// UploadCV stores a CV file and replaces any previous one.
func (s *profileServiceImpl) UploadCV(ctx context.Context, userID int64, file *multipart.FileHeader) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	url, err := s.fileStorage.SaveFileWithPath(file, filestorage.CVFilesDir)
	if err != nil {
		return nil, err
	}
	if err := s.profileRepo.SetCVFile(ctx, userID, &url); err != nil {
		return nil, err
	}

	if profile.CVFileURL != nil {
		if err := s.fileStorage.DeleteFile(*profile.CVFileURL); err != nil {
			s.logger.Warn().Err(err).Str("file", *profile.CVFileURL).Msg("Failed to delete old CV file")
		}
	}
	profile.CVFileURL = &url

	return buildProfileResponse(profile), nil
}

// DeleteCV removes the stored CV, if any.
func (s *profileServiceImpl) DeleteCV(ctx context.Context, userID int64) error {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if profile.CVFileURL == nil {
		return nil
	}

	if err := s.profileRepo.SetCVFile(ctx, userID, nil); err != nil {
		return err
	}
	if err := s.fileStorage.DeleteFile(*profile.CVFileURL); err != nil {
		s.logger.Warn().Err(err).Str("file", *profile.CVFileURL).Msg("Failed to delete CV file")
	}
	return nil
}

func (s *profileServiceImpl) changeUsername(ctx context.Context, userID int64, username string, lastChanged *time.Time) error {
	username = strings.TrimSpace(username)

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Username == username {
		return nil
	}

	if !validation.ValidUsername(username) {
		return apperrors.NewValidationError("username",
			"Username must be 3-30 characters of letters, digits, dots, dashes or underscores")
	}
	if !UsernameChangeAllowed(lastChanged, time.Now()) {
		return apperrors.NewCustomError(apperrors.ErrUsernameCooldown,
			"Username can be changed once every 30 days").WithField("username")
	}

	taken, err := s.userRepo.UsernameExists(ctx, username, userID)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.NewCustomError(apperrors.ErrUsernameAlreadyExists, "Username is already taken").
			WithField("username")
	}

	if err := s.userRepo.UpdateUsername(ctx, userID, username); err != nil {
		return err
	}
	return s.profileRepo.StampUsernameChange(ctx, userID, time.Now())
}

// UsernameChangeAllowed reports whether the cooldown since the last change
// has elapsed. A nil lastChanged means the username was never changed.
func UsernameChangeAllowed(lastChanged *time.Time, now time.Time) bool {
	if lastChanged == nil {
		return true
	}
	return now.Sub(*lastChanged) >= UsernameCooldown
}

// parseDegrees decodes the JSON-encoded degree list carried in the multipart
// form. Malformed input is a validation error, not a server fault.
func parseDegrees(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}, nil
	}

	var degrees []string
	if err := json.Unmarshal([]byte(raw), &degrees); err != nil {
		return nil, apperrors.NewValidationError("degrees", "Degrees must be a JSON array of strings")
	}

	out := make([]string, 0, len(degrees))
	for _, d := range degrees {
		d = strings.TrimSpace(d)
		if d != "" {
			out = append(out, d)
		}
	}
	return out, nil
}
