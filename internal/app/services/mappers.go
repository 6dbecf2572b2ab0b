package services

import (
	"strings"

	"github.com/ekremsevim/studiohub/internal/app/models"
	"github.com/ekremsevim/studiohub/internal/app/models/dto"
)

// Mapping helpers shared across services. Card builders keep the list views
// consistent between studio detail, dashboards and explore results.

func buildTagResponses(tags []models.Tag) []dto.TagResponse {
	out := make([]dto.TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, dto.TagResponse{ID: t.ID, Name: t.Name})
	}
	return out
}

func buildUserResponse(user *models.User) *dto.UserResponse {
	if user == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      string(user.Role),
	}
}

func buildStudioCard(studio *models.Studio, owner *models.User, subscribersCount int) dto.StudioCard {
	return dto.StudioCard{
		ID:               studio.ID,
		Name:             studio.Name,
		JobTitle:         studio.JobTitle,
		Description:      studio.Description,
		CoverImageURL:    studio.CoverImageURL,
		Owner:            buildUserResponse(owner),
		Tags:             buildTagResponses(studio.Tags),
		SubscribersCount: subscribersCount,
	}
}

func buildLessonCard(lesson *models.Lesson, studioName string) dto.LessonCard {
	return dto.LessonCard{
		ID:            lesson.ID,
		Title:         lesson.Title,
		StudioID:      lesson.StudioID,
		StudioName:    studioName,
		CoverImageURL: lesson.CoverImageURL,
		LessonType:    string(lesson.LessonType),
		Tags:          buildTagResponses(lesson.Tags),
	}
}

func buildLessonCards(lessons []models.Lesson, studioName string) []dto.LessonCard {
	out := make([]dto.LessonCard, 0, len(lessons))
	for i := range lessons {
		out = append(out, buildLessonCard(&lessons[i], studioName))
	}
	return out
}

func buildLessonDetail(lesson *models.Lesson) *dto.LessonDetailResponse {
	return &dto.LessonDetailResponse{
		ID:            lesson.ID,
		StudioID:      lesson.StudioID,
		Title:         lesson.Title,
		Description:   lesson.Description,
		CoverImageURL: lesson.CoverImageURL,
		LessonType:    string(lesson.LessonType),
		Content:       lesson.Content,
		Position:      lesson.Position,
		Tags:          buildTagResponses(lesson.Tags),
		CreatedAt:     lesson.CreatedAt,
	}
}

func buildProfileResponse(profile *models.Profile) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		Headline:            profile.Headline,
		ContactEmail:        profile.ContactEmail,
		ProfilePictureURL:   profile.ProfilePictureURL,
		CVFileURL:           profile.CVFileURL,
		Degrees:             profile.Degrees,
		UsernameLastChanged: profile.UsernameLastChanged,
	}
}

// normalizeTagNames lowercases, trims and de-duplicates tag names while
// preserving first-seen order.
func normalizeTagNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
