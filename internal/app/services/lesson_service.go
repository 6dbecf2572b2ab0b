package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ekremsevim/studiohub/internal/app/models"
	"github.com/ekremsevim/studiohub/internal/app/models/dto"
	"github.com/ekremsevim/studiohub/internal/app/repositories"
	"github.com/ekremsevim/studiohub/internal/pkg/apperrors"
	"github.com/ekremsevim/studiohub/internal/pkg/filestorage"
)

// LessonService handles course content inside studios. All writes are
// owner-only; a lesson that does not exist and a lesson owned by someone
// else produce the same permission error.
type LessonService interface {
	CreateLesson(ctx context.Context, ownerID int64, req *dto.CreateLessonRequest, payload, cover *multipart.FileHeader) (*dto.LessonDetailResponse, error)
	GetLesson(ctx context.Context, lessonID int64) (*dto.LessonDetailResponse, error)
	UpdateLesson(ctx context.Context, ownerID, lessonID int64, req *dto.UpdateLessonRequest) (*dto.LessonDetailResponse, error)
	DeleteLesson(ctx context.Context, ownerID, lessonID int64) error
	ListOwnLessons(ctx context.Context, ownerID int64) ([]dto.LessonCard, error)
}

// lessonServiceImpl implements LessonService
type lessonServiceImpl struct {
	lessonRepo  *repositories.LessonRepository
	studioRepo  *repositories.StudioRepository
	tagRepo     *repositories.TagRepository
	fileStorage filestorage.FileStorage
	logger      zerolog.Logger
}

// NewLessonService creates a new LessonService.
func NewLessonService(
	lessonRepo *repositories.LessonRepository,
	studioRepo *repositories.StudioRepository,
	tagRepo *repositories.TagRepository,
	fileStorage filestorage.FileStorage,
	logger zerolog.Logger,
) LessonService {
	return &lessonServiceImpl{
		lessonRepo:  lessonRepo,
		studioRepo:  studioRepo,
		tagRepo:     tagRepo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

// CreateLesson adds a lesson to the caller's studio. The lesson type decides
// where the content comes from: markdown text or a video URL arrive in the
// form, file lessons carry their payload as an upload.
func (s *lessonServiceImpl) CreateLesson(ctx context.Context, ownerID int64, req *dto.CreateLessonRequest, payload, cover *multipart.FileHeader) (*dto.LessonDetailResponse, error) {
	studio, err := s.studioRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudioNotFound) {
			return nil, apperrors.NewForbiddenError("You do not own a studio")
		}
		return nil, err
	}

	lessonType := models.LessonType(req.LessonType)
	if !lessonType.Valid() {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidLessonType, "Unknown lesson type").
			WithField("lessonType")
	}

	content, err := s.resolveContent(lessonType, req.Content, payload)
	if err != nil {
		return nil, err
	}

	lesson := &models.Lesson{
		StudioID:    studio.ID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		LessonType:  lessonType,
		Content:     content,
	}

	if cover != nil {
		url, err := s.fileStorage.SaveFileWithPath(cover, filestorage.LessonCoversDir)
		if err != nil {
			return nil, err
		}
		lesson.CoverImageURL = &url
	}

	lessonID, err := s.lessonRepo.Create(ctx, lesson)
	if err != nil {
		return nil, err
	}
	lesson.ID = lessonID

	if len(req.Tags) > 0 {
		tags, err := s.tagRepo.GetOrCreateAll(ctx, normalizeTagNames(req.Tags))
		if err != nil {
			return nil, err
		}
		tagIDs := make([]int64, 0, len(tags))
		for _, t := range tags {
			tagIDs = append(tagIDs, t.ID)
		}
		if err := s.lessonRepo.ReplaceTags(ctx, lessonID, tagIDs); err != nil {
			return nil, err
		}
		lesson.Tags = tags
	}

	s.logger.Info().Int64("lessonID", lessonID).Int64("studioID", studio.ID).
		Str("type", string(lessonType)).Msg("Lesson created")

	// Re-read for the database-assigned position and timestamps.
	created, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	return buildLessonDetail(created), nil
}

// GetLesson returns the full lesson view.
func (s *lessonServiceImpl) GetLesson(ctx context.Context, lessonID int64) (*dto.LessonDetailResponse, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	return buildLessonDetail(lesson), nil
}

// UpdateLesson applies a partial update to an owned lesson. The lesson type
// is fixed at creation.
func (s *lessonServiceImpl) UpdateLesson(ctx context.Context, ownerID, lessonID int64, req *dto.UpdateLessonRequest) (*dto.LessonDetailResponse, error) {
	lesson, err := s.lessonRepo.GetOwned(ctx, lessonID, ownerID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperrors.NewValidationError("title", "Title cannot be empty")
		}
		lesson.Title = title
	}
	if req.Description != nil {
		lesson.Description = strings.TrimSpace(*req.Description)
	}
	if req.Content != nil {
		content := strings.TrimSpace(*req.Content)
		if content == "" && lesson.LessonType != models.LessonTypeFile {
			return nil, apperrors.NewCustomError(apperrors.ErrMissingLessonContent, "Lesson content is required").
				WithField("content")
		}
		if content != "" {
			lesson.Content = content
		}
	}
	if req.Position != nil {
		if *req.Position < 1 {
			return nil, apperrors.NewValidationError("position", "Position must be a positive number")
		}
		lesson.Position = *req.Position
	}

	if err := s.lessonRepo.Update(ctx, lesson); err != nil {
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
		if err := s.lessonRepo.ReplaceTags(ctx, lessonID, tagIDs); err != nil {
			return nil, err
		}
		lesson.Tags = tags
	}

	return buildLessonDetail(lesson), nil
}

// DeleteLesson removes an owned lesson and its stored files.
func (s *lessonServiceImpl) DeleteLesson(ctx context.Context, ownerID, lessonID int64) error {
	lesson, err := s.lessonRepo.GetOwned(ctx, lessonID, ownerID)
	if err != nil {
		return err
	}

	if err := s.lessonRepo.Delete(ctx, lessonID); err != nil {
		return err
	}

	if lesson.LessonType == models.LessonTypeFile {
		if err := s.fileStorage.DeleteFile(lesson.Content); err != nil {
			s.logger.Warn().Err(err).Str("file", lesson.Content).Msg("Failed to delete lesson file")
		}
	}
	if lesson.CoverImageURL != nil {
		if err := s.fileStorage.DeleteFile(*lesson.CoverImageURL); err != nil {
			s.logger.Warn().Err(err).Str("file", *lesson.CoverImageURL).Msg("Failed to delete lesson cover")
		}
	}

	s.logger.Info().Int64("lessonID", lessonID).Msg("Lesson deleted")
	return nil
}

// ListOwnLessons returns the caller's studio lessons in curriculum order.
func (s *lessonServiceImpl) ListOwnLessons(ctx context.Context, ownerID int64) ([]dto.LessonCard, error) {
	studio, err := s.studioRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudioNotFound) {
			return nil, apperrors.NewForbiddenError("You do not own a studio")
		}
		return nil, err
	}

	lessons, err := s.lessonRepo.ListByStudio(ctx, studio.ID)
	if err != nil {
		return nil, err
	}
	return buildLessonCards(lessons, studio.Name), nil
}

// resolveContent picks the single content payload a lesson carries.
func (s *lessonServiceImpl) resolveContent(lessonType models.LessonType, formContent string, payload *multipart.FileHeader) (string, error) {
	switch lessonType {
	case models.LessonTypeFile:
		if payload == nil {
			return "", apperrors.NewCustomError(apperrors.ErrMissingLessonContent, "File lessons require an uploaded file").
				WithField("file")
		}
		return s.fileStorage.SaveFileWithPath(payload, filestorage.LessonFilesDir)
	case models.LessonTypeVideo:
		content := strings.TrimSpace(formContent)
		if content == "" {
			return "", apperrors.NewCustomError(apperrors.ErrMissingLessonContent, "Video lessons require a video URL").
				WithField("content")
		}
		return content, nil
	default: // markdown
		content := strings.TrimSpace(formContent)
		if content == "" {
			return "", apperrors.NewCustomError(apperrors.ErrMissingLessonContent, "Markdown lessons require content").
				WithField("content")
		}
		return content, nil
	}
}
