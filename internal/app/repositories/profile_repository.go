package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"

	"github.com/ekremsevim/studiohub/internal/app/models"
	"github.com/ekremsevim/studiohub/internal/pkg/apperrors"
)

// ProfileRepository handles database operations for user profiles.
type ProfileRepository struct {
	db Querier
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(db Querier) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// WithTx returns a copy of the repository bound to a transaction.
func (r *ProfileRepository) WithTx(tx pgx.Tx) *ProfileRepository {
	return &ProfileRepository{db: tx}
}

// Create inserts an empty profile row for a user.
func (r *ProfileRepository) Create(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `INSERT INTO profiles (user_id) VALUES ($1)`, userID)
	if err != nil {
		return fmt.Errorf("error creating profile: %w", err)
	}
	return nil
}

// GetByUserID retrieves the profile belonging to a user.
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	query := `
		SELECT id, user_id, headline, contact_email, profile_picture_url, cv_file_url,
			degrees, username_last_changed, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	var p models.Profile
	var degreesRaw []byte
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.ID,
		&p.UserID,
		&p.Headline,
		&p.ContactEmail,
		&p.ProfilePictureURL,
		&p.CVFileURL,
		&degreesRaw,
		&p.UsernameLastChanged,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error scanning profile: %w", err)
	}

	if len(degreesRaw) > 0 {
		if err := json.Unmarshal(degreesRaw, &p.Degrees); err != nil {
			return nil, fmt.Errorf("error decoding degrees: %w", err)
		}
	}
	if p.Degrees == nil {
		p.Degrees = []string{}
	}

	return &p, nil
}

// Update persists the mutable profile fields.
func (r *ProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	degrees := profile.Degrees
	if degrees == nil {
		degrees = []string{}
	}
	degreesRaw, err := json.Marshal(degrees)
	if err != nil {
		return fmt.Errorf("error encoding degrees: %w", err)
	}

	query := `
		UPDATE profiles
		SET headline = $1, contact_email = $2, degrees = $3, updated_at = NOW()
		WHERE user_id = $4
	`
	result, err := r.db.Exec(ctx, query,
		profile.Headline, profile.ContactEmail, degreesRaw, profile.UserID)
	if err != nil {
		return fmt.Errorf("error updating profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// SetProfilePicture stores the profile picture URL.
func (r *ProfileRepository) SetProfilePicture(ctx context.Context, userID int64, url *string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE profiles SET profile_picture_url = $1, updated_at = NOW() WHERE user_id = $2`, url, userID)
	if err != nil {
		return fmt.Errorf("error updating profile picture: %w", err)
	}
	return nil
}

// SetCVFile stores the CV file URL. A nil url clears it.
func (r *ProfileRepository) SetCVFile(ctx context.Context, userID int64, url *string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE profiles SET cv_file_url = $1, updated_at = NOW() WHERE user_id = $2`, url, userID)
	if err != nil {
		return fmt.Errorf("error updating cv file: %w", err)
	}
	return nil
}

// StampUsernameChange records the moment of a username change.
func (r *ProfileRepository) StampUsernameChange(ctx context.Context, userID int64, at time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE profiles SET username_last_changed = $1, updated_at = NOW() WHERE user_id = $2`, at, userID)
	if err != nil {
		return fmt.Errorf("error stamping username change: %w", err)
	}
	return nil
}
