package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ekremsevim/studiohub/internal/app/models/dto"
	"github.com/ekremsevim/studiohub/internal/app/repositories"
	"github.com/ekremsevim/studiohub/internal/pkg/apperrors"
)

// ExploreService handles the public discovery search across studios,
// courses and teachers.
type ExploreService interface {
	Search(ctx context.Context, req *dto.ExploreRequest) (interface{}, error)
	SearchUsers(ctx context.Context, query string, limit int) ([]dto.UserResponse, error)
}

// exploreServiceImpl implements ExploreService
type exploreServiceImpl struct {
	studioRepo *repositories.StudioRepository
	lessonRepo *repositories.LessonRepository
	userRepo   *repositories.UserRepository
	logger     zerolog.Logger
}

// NewExploreService creates a new ExploreService.
func NewExploreService(
	studioRepo *repositories.StudioRepository,
	lessonRepo *repositories.LessonRepository,
	userRepo *repositories.UserRepository,
	logger zerolog.Logger,
) ExploreService {
	return &exploreServiceImpl{
		studioRepo: studioRepo,
		lessonRepo: lessonRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// Search dispatches on the requested result type. The response shape depends
// on the type, so the concrete wrapper travels as interface{}.
func (s *exploreServiceImpl) Search(ctx context.Context, req *dto.ExploreRequest) (interface{}, error) {
	searchType := strings.ToLower(strings.TrimSpace(req.Type))
	if searchType == "" {
		searchType = dto.SearchTypeStudio
	}
	query := strings.TrimSpace(req.Query)
	tags := normalizeTagNames(req.Tags)

	switch searchType {
	case dto.SearchTypeStudio:
		return s.searchStudios(ctx, query, tags)
	case dto.SearchTypeCourse:
		return s.searchCourses(ctx, query, tags)
	case dto.SearchTypeTeacher:
		return s.searchTeachers(ctx, query)
	default:
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidSearchType,
			"Search type must be one of: studio, course, teacher").WithField("type")
	}
}

// SearchUsers finds users by name or username for meeting invitations.
func (s *exploreServiceImpl) SearchUsers(ctx context.Context, query string, limit int) ([]dto.UserResponse, error) {
	users, err := s.userRepo.Search(ctx, strings.TrimSpace(query), limit)
	if err != nil {
		return nil, err
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *buildUserResponse(&users[i]))
	}
	return out, nil
}

func (s *exploreServiceImpl) searchStudios(ctx context.Context, query string, tags []string) (*dto.ExploreStudioResponse, error) {
	studios, err := s.studioRepo.Search(ctx, query, tags)
	if err != nil {
		return nil, err
	}

	cards := make([]dto.StudioCard, 0, len(studios))
	for i := range studios {
		count, err := s.studioRepo.SubscriberCount(ctx, studios[i].ID)
		if err != nil {
			return nil, err
		}
		cards = append(cards, buildStudioCard(&studios[i], nil, count))
	}

	return &dto.ExploreStudioResponse{Type: dto.SearchTypeStudio, Results: cards}, nil
}

func (s *exploreServiceImpl) searchCourses(ctx context.Context, query string, tags []string) (*dto.ExploreCourseResponse, error) {
	lessons, err := s.lessonRepo.Search(ctx, query, tags)
	if err != nil {
		return nil, err
	}

	cards := make([]dto.LessonCard, 0, len(lessons))
	for i := range lessons {
		studio, err := s.studioRepo.GetByID(ctx, lessons[i].StudioID)
		if err != nil {
			return nil, err
		}
		cards = append(cards, buildLessonCard(&lessons[i], studio.Name))
	}

	return &dto.ExploreCourseResponse{Type: dto.SearchTypeCourse, Results: cards}, nil
}

func (s *exploreServiceImpl) searchTeachers(ctx context.Context, query string) (*dto.ExploreTeacherResponse, error) {
	rows, err := s.studioRepo.SearchTeachers(ctx, query)
	if err != nil {
		return nil, err
	}

	cards := make([]dto.TeacherCard, 0, len(rows))
	for _, r := range rows {
		cards = append(cards, dto.TeacherCard{
			ID:         r.ID,
			Username:   r.Username,
			FirstName:  r.FirstName,
			LastName:   r.LastName,
			Headline:   r.Headline,
			StudioID:   r.StudioID,
			StudioName: r.StudioName,
		})
	}

	return &dto.ExploreTeacherResponse{Type: dto.SearchTypeTeacher, Results: cards}, nil
}
