package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/ekremsevim/studiohub/internal/app/models"
	"github.com/ekremsevim/studiohub/internal/app/models/dto"
	"github.com/ekremsevim/studiohub/internal/app/repositories"
	"github.com/ekremsevim/studiohub/internal/db"
	"github.com/ekremsevim/studiohub/internal/pkg/apperrors"
	"github.com/ekremsevim/studiohub/internal/pkg/dberrors"
	"github.com/ekremsevim/studiohub/internal/pkg/filestorage"
)

// StudioService handles studio lifecycle, subscriptions and ratings.
type StudioService interface {
	CreateStudio(ctx context.Context, ownerID int64, req *dto.CreateStudioRequest, cover *multipart.FileHeader) (*dto.StudioCard, error)
	GetStudio(ctx context.Context, studioID, viewerID int64) (*dto.StudioDetailResponse, error)
	GetOwnStudio(ctx context.Context, ownerID int64) (*dto.StudioDetailResponse, error)
	UpdateStudio(ctx context.Context, ownerID int64, req *dto.UpdateStudioRequest) (*dto.StudioCard, error)
	UpdateCover(ctx context.Context, ownerID int64, cover *multipart.FileHeader) (*dto.StudioCard, error)
	DeleteStudio(ctx context.Context, ownerID int64) error
	GetDashboard(ctx context.Context, ownerID int64) (*dto.StudioDashboardResponse, error)
	Subscribe(ctx context.Context, studioID, userID int64) error
	Unsubscribe(ctx context.Context, studioID, userID int64) error
	RateStudio(ctx context.Context, studioID, userID int64, rating int) (float64, error)
	ListSubscribers(ctx context.Context, ownerID int64, search string) ([]dto.SubscriberResponse, error)
	RemoveSubscriber(ctx context.Context, ownerID, subscriberID int64) error
}

// studioServiceImpl implements StudioService
type studioServiceImpl struct {
	db          *db.PostgresDB
	studioRepo  *repositories.StudioRepository
	lessonRepo  *repositories.LessonRepository
	userRepo    *repositories.UserRepository
	tagRepo     *repositories.TagRepository
	fileStorage filestorage.FileStorage
	logger      zerolog.Logger
}

// NewStudioService creates a new StudioService.
func NewStudioService(
	database *db.PostgresDB,
	studioRepo *repositories.StudioRepository,
	lessonRepo *repositories.LessonRepository,
	userRepo *repositories.UserRepository,
	tagRepo *repositories.TagRepository,
	fileStorage filestorage.FileStorage,
	logger zerolog.Logger,
) StudioService {
	return &studioServiceImpl{
		db:          database,
		studioRepo:  studioRepo,
		lessonRepo:  lessonRepo,
		userRepo:    userRepo,
		tagRepo:     tagRepo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

// CreateStudio opens a studio for the user and promotes them to TEACHER.
// Each user owns at most one studio.
func (s *studioServiceImpl) CreateStudio(ctx context.Context, ownerID int64, req *dto.CreateStudioRequest, cover *multipart.FileHeader) (*dto.StudioCard, error) {
	owned, err := s.studioRepo.OwnerHasStudio(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owned {
		return nil, apperrors.NewCustomError(apperrors.ErrStudioAlreadyOwned, "You already own a studio")
	}

	studio := &models.Studio{
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(req.Name),
		JobTitle:    strings.TrimSpace(req.JobTitle),
		Description: strings.TrimSpace(req.Description),
	}

	if cover != nil {
		url, err := s.fileStorage.SaveFileWithPath(cover, filestorage.StudioCoversDir)
		if err != nil {
			return nil, err
		}
		studio.CoverImageURL = &url
	}

	tagNames := normalizeTagNames(req.Tags)

	// Studio row, tag attachments and the TEACHER grant land together.
	err = db.WithTransaction(ctx, s.db.Pool, func(tx pgx.Tx) error {
		studioRepo := s.studioRepo.WithTx(tx)

		studioID, err := studioRepo.Create(ctx, studio)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "studios_owner_id_key") {
				return apperrors.NewCustomError(apperrors.ErrStudioAlreadyOwned, "You already own a studio")
			}
			return err
		}
		studio.ID = studioID

		if len(tagNames) > 0 {
			tags, err := s.tagRepo.WithTx(tx).GetOrCreateAll(ctx, tagNames)
			if err != nil {
				return err
			}
			tagIDs := make([]int64, 0, len(tags))
			for _, t := range tags {
				tagIDs = append(tagIDs, t.ID)
			}
			if err := studioRepo.ReplaceTags(ctx, studioID, tagIDs); err != nil {
				return err
			}
			studio.Tags = tags
		}

		return s.userRepo.WithTx(tx).UpdateRole(ctx, ownerID, models.RoleTeacher)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studioID", studio.ID).Int64("ownerID", ownerID).Msg("Studio created")

	card := buildStudioCard(studio, nil, 0)
	return &card, nil
}

// GetStudio returns the public studio view for a viewer.
func (s *studioServiceImpl) GetStudio(ctx context.Context, studioID, viewerID int64) (*dto.StudioDetailResponse, error) {
	studio, err := s.studioRepo.GetByID(ctx, studioID)
	if err != nil {
		return nil, err
	}
	return s.buildDetail(ctx, studio, viewerID)
}

// GetOwnStudio returns the owner's studio view.
func (s *studioServiceImpl) GetOwnStudio(ctx context.Context, ownerID int64) (*dto.StudioDetailResponse, error) {
	studio, err := s.ownedStudio(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.buildDetail(ctx, studio, ownerID)
}

// UpdateStudio applies a partial update to the owner's studio. A non-nil tag
// list replaces the attached tags entirely.
func (s *studioServiceImpl) UpdateStudio(ctx context.Context, ownerID int64, req *dto.UpdateStudioRequest) (*dto.StudioCard, error) {
	studio, err := s.ownedStudio(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name", "Name cannot be empty")
		}
		studio.Name = name
	}
	if req.JobTitle != nil {
		studio.JobTitle = strings.TrimSpace(*req.JobTitle)
	}
	if req.Description != nil {
		studio.Description = strings.TrimSpace(*req.Description)
	}

	if err := s.studioRepo.Update(ctx, studio); err != nil {
		return nil, err
	}

	if req.Tags != nil {
		tags, err := s.tagRepo.GetOrCreateAll(ctx, normalizeTagNames(*req.Tags))
		if err != nil {
			return nil, err
		}
		tagIDs := make([]int64, 0, len(tags))
		for _, t := range tags {
			tagIDs = append(tagIDs, t.ID)
		}
		if err := s.studioRepo.ReplaceTags(ctx, studio.ID, tagIDs); err != nil {
			return nil, err
		}
		studio.Tags = tags
	}

	count, err := s.studioRepo.SubscriberCount(ctx, studio.ID)
	if err != nil {
		return nil, err
	}

	card := buildStudioCard(studio, nil, count)
	return &card, nil
}

// UpdateCover replaces the owner's studio cover image.
func (s *studioServiceImpl) UpdateCover(ctx context.Context, ownerID int64, cover *multipart.FileHeader) (*dto.StudioCard, error) {
	studio, err := s.ownedStudio(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	url, err := s.fileStorage.SaveFileWithPath(cover, filestorage.StudioCoversDir)
	if err != nil {
		return nil, err
	}
	if err := s.studioRepo.UpdateCoverImage(ctx, studio.ID, &url); err != nil {
		return nil, err
	}

	if studio.CoverImageURL != nil {
		if err := s.fileStorage.DeleteFile(*studio.CoverImageURL); err != nil {
			s.logger.Warn().Err(err).Str("file", *studio.CoverImageURL).Msg("Failed to delete old cover image")
		}
	}
	studio.CoverImageURL = &url

	count, err := s.studioRepo.SubscriberCount(ctx, studio.ID)
	if err != nil {
		return nil, err
	}

	card := buildStudioCard(studio, nil, count)
	return &card, nil
}

// DeleteStudio closes the owner's studio and demotes them back to MEMBER.
// Lessons, subscriptions and ratings cascade with the row.
func (s *studioServiceImpl) DeleteStudio(ctx context.Context, ownerID int64) error {
	studio, err := s.ownedStudio(ctx, ownerID)
	if err != nil {
		return err
	}

	err = db.WithTransaction(ctx, s.db.Pool, func(tx pgx.Tx) error {
		if err := s.studioRepo.WithTx(tx).Delete(ctx, studio.ID); err != nil {
			return err
		}
		return s.userRepo.WithTx(tx).UpdateRole(ctx, ownerID, models.RoleMember)
	})
	if err != nil {
		return err
	}

	if studio.CoverImageURL != nil {
		if err := s.fileStorage.DeleteFile(*studio.CoverImageURL); err != nil {
			s.logger.Warn().Err(err).Str("file", *studio.CoverImageURL).Msg("Failed to delete cover image")
		}
	}

	s.logger.Info().Int64("studioID", studio.ID).Int64("ownerID", ownerID).Msg("Studio deleted")
	return nil
}

// GetDashboard aggregates the owner-only studio metrics.
func (s *studioServiceImpl) GetDashboard(ctx context.Context, ownerID int64) (*dto.StudioDashboardResponse, error) {
	studio, err := s.ownedStudio(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	subscriberCount, err := s.studioRepo.SubscriberCount(ctx, studio.ID)
	if err != nil {
		return nil, err
	}
	avgRating, err := s.studioRepo.AverageRating(ctx, studio.ID)
	if err != nil {
		return nil, err
	}
	lessonCount, err := s.lessonRepo.CountByStudio(ctx, studio.ID)
	if err != nil {
		return nil, err
	}
	recent, err := s.lessonRepo.RecentByStudio(ctx, studio.ID, 5)
	if err != nil {
		return nil, err
	}

	return &dto.StudioDashboardResponse{
		SubscriberCount: subscriberCount,
		AverageRating:   avgRating,
		LessonCount:     lessonCount,
		RecentLessons:   buildLessonCards(recent, studio.Name),
	}, nil
}

// Subscribe adds the user to the studio's subscriber set. Subscribing twice
// is a no-op, not an error.
func (s *studioServiceImpl) Subscribe(ctx context.Context, studioID, userID int64) error {
	studio, err := s.studioRepo.GetByID(ctx, studioID)
	if err != nil {
		return err
	}
	if studio.OwnerID == userID {
		return apperrors.NewBadRequestError("You cannot subscribe to your own studio")
	}
	return s.studioRepo.Subscribe(ctx, studioID, userID)
}

// Unsubscribe removes the user from the studio's subscriber set.
func (s *studioServiceImpl) Unsubscribe(ctx context.Context, studioID, userID int64) error {
	if _, err := s.studioRepo.GetByID(ctx, studioID); err != nil {
		return err
	}
	return s.studioRepo.Unsubscribe(ctx, studioID, userID)
}

// RateStudio records a 1-5 star rating; re-rating overwrites the previous
// value. Returns the new average.
func (s *studioServiceImpl) RateStudio(ctx context.Context, studioID, userID int64, rating int) (float64, error) {
	if rating < 1 || rating > 5 {
		return 0, apperrors.NewCustomError(apperrors.ErrInvalidRatingValue, "Rating must be between 1 and 5").
			WithField("rating")
	}

	studio, err := s.studioRepo.GetByID(ctx, studioID)
	if err != nil {
		return 0, err
	}
	if studio.OwnerID == userID {
		return 0, apperrors.NewBadRequestError("You cannot rate your own studio")
	}

	if err := s.studioRepo.UpsertRating(ctx, studioID, userID, rating); err != nil {
		return 0, err
	}
	return s.studioRepo.AverageRating(ctx, studioID)
}

// ListSubscribers lists the owner's subscribers, optionally filtered by a
// name or username substring.
func (s *studioServiceImpl) ListSubscribers(ctx context.Context, ownerID int64, search string) ([]dto.SubscriberResponse, error) {
	studio, err := s.ownedStudio(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	rows, err := s.studioRepo.SearchSubscribers(ctx, studio.ID, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}

	subscribers := make([]dto.SubscriberResponse, 0, len(rows))
	for _, r := range rows {
		subscribers = append(subscribers, dto.SubscriberResponse{
			ID:           r.ID,
			Username:     r.Username,
			FirstName:    r.FirstName,
			LastName:     r.LastName,
			SubscribedAt: r.SubscribedAt,
		})
	}
	return subscribers, nil
}

// RemoveSubscriber evicts a subscriber from the owner's studio.
func (s *studioServiceImpl) RemoveSubscriber(ctx context.Context, ownerID, subscriberID int64) error {
	studio, err := s.ownedStudio(ctx, ownerID)
	if err != nil {
		return err
	}
	return s.studioRepo.Unsubscribe(ctx, studio.ID, subscriberID)
}

// ownedStudio loads the caller's studio, translating "no studio" into a
// permission error for owner-only operations.
func (s *studioServiceImpl) ownedStudio(ctx context.Context, ownerID int64) (*models.Studio, error) {
	studio, err := s.studioRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudioNotFound) {
			return nil, apperrors.NewForbiddenError("You do not own a studio")
		}
		return nil, err
	}
	return studio, nil
}

func (s *studioServiceImpl) buildDetail(ctx context.Context, studio *models.Studio, viewerID int64) (*dto.StudioDetailResponse, error) {
	owner, err := s.userRepo.GetByID(ctx, studio.OwnerID)
	if err != nil {
		return nil, err
	}
	count, err := s.studioRepo.SubscriberCount(ctx, studio.ID)
	if err != nil {
		return nil, err
	}
	avgRating, err := s.studioRepo.AverageRating(ctx, studio.ID)
	if err != nil {
		return nil, err
	}
	subscribed, err := s.studioRepo.IsSubscribed(ctx, studio.ID, viewerID)
	if err != nil {
		return nil, err
	}
	lessons, err := s.lessonRepo.ListByStudio(ctx, studio.ID)
	if err != nil {
		return nil, err
	}

	return &dto.StudioDetailResponse{
		StudioCard:    buildStudioCard(studio, owner, count),
		AverageRating: avgRating,
		IsSubscribed:  subscribed,
		Lessons:       buildLessonCards(lessons, studio.Name),
		CreatedAt:     studio.CreatedAt,
	}, nil
}
