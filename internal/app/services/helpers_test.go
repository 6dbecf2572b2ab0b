package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekremsevim/studiohub/internal/app/models"
	"github.com/ekremsevim/studiohub/internal/pkg/apperrors"
)

func TestUsernameChangeAllowed(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("never changed", func(t *testing.T) {
		assert.True(t, UsernameChangeAllowed(nil, now))
	})

	t.Run("changed within cooldown", func(t *testing.T) {
		changed := now.Add(-UsernameCooldown + time.Hour)
		assert.False(t, UsernameChangeAllowed(&changed, now))
	})

	t.Run("cooldown just elapsed", func(t *testing.T) {
		changed := now.Add(-UsernameCooldown)
		assert.True(t, UsernameChangeAllowed(&changed, now))
	})

	t.Run("changed long ago", func(t *testing.T) {
		changed := now.AddDate(-1, 0, 0)
		assert.True(t, UsernameChangeAllowed(&changed, now))
	})
}

func TestParseDegrees(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		degrees, err := parseDegrees("   ")
		require.NoError(t, err)
		assert.Empty(t, degrees)
	})

	t.Run("valid JSON array", func(t *testing.T) {
		degrees, err := parseDegrees(`["BSc Computer Science", " MSc Music Theory "]`)
		require.NoError(t, err)
		assert.Equal(t, []string{"BSc Computer Science", "MSc Music Theory"}, degrees)
	})

	t.Run("blank entries dropped", func(t *testing.T) {
		degrees, err := parseDegrees(`["", "PhD", "  "]`)
		require.NoError(t, err)
		assert.Equal(t, []string{"PhD"}, degrees)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := parseDegrees(`BSc, MSc`)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestNormalizeTagNames(t *testing.T) {
	got := normalizeTagNames([]string{"  Music ", "music", "PAINTING", "", "painting", "jazz"})
	assert.Equal(t, []string{"music", "painting", "jazz"}, got)

	assert.Empty(t, normalizeTagNames(nil))
	assert.Empty(t, normalizeTagNames([]string{"", "   "}))
}

func TestBuildStudioCard(t *testing.T) {
	coverURL := "uploads/studio_covers/a.jpg"
	studio := &models.Studio{
		ID:            7,
		Name:          "Night Owl Audio",
		JobTitle:      "Sound Engineer",
		Description:   "Mixing and mastering from scratch",
		CoverImageURL: &coverURL,
		Tags:          []models.Tag{{ID: 1, Name: "music"}},
	}
	owner := &models.User{ID: 3, Username: "selin", FirstName: "Selin", LastName: "Demir", Role: models.RoleTeacher}

	card := buildStudioCard(studio, owner, 12)

	assert.Equal(t, int64(7), card.ID)
	assert.Equal(t, "Night Owl Audio", card.Name)
	assert.Equal(t, 12, card.SubscribersCount)
	require.NotNil(t, card.CoverImageURL)
	assert.Equal(t, coverURL, *card.CoverImageURL)
	require.NotNil(t, card.Owner)
	assert.Equal(t, "selin", card.Owner.Username)
	assert.Equal(t, string(models.RoleTeacher), card.Owner.Role)
	require.Len(t, card.Tags, 1)
	assert.Equal(t, "music", card.Tags[0].Name)
}

func TestBuildLessonCards(t *testing.T) {
	lessons := []models.Lesson{
		{ID: 1, StudioID: 7, Title: "Gain staging", LessonType: models.LessonTypeVideo},
		{ID: 2, StudioID: 7, Title: "EQ basics", LessonType: models.LessonTypeMarkdown},
	}

	cards := buildLessonCards(lessons, "Night Owl Audio")

	require.Len(t, cards, 2)
	assert.Equal(t, "Gain staging", cards[0].Title)
	assert.Equal(t, "Night Owl Audio", cards[0].StudioName)
	assert.Equal(t, string(models.LessonTypeVideo), cards[0].LessonType)
	assert.Equal(t, string(models.LessonTypeMarkdown), cards[1].LessonType)
}
