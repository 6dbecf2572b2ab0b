//go:build integration
// +build integration

package repositories

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/ekremsevim/studiohub/internal/app/migrations"
	"github.com/ekremsevim/studiohub/internal/app/models"
	"github.com/ekremsevim/studiohub/internal/pkg/apperrors"
)

// setupTestDB starts a disposable PostgreSQL container, applies the
// migrations and returns a ready repository set.
func setupTestDB(t *testing.T) (*Repositories, *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("studiohub_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	migrator := migrations.NewMigrator(pool)
	require.NoError(t, migrator.MigrateFromDirectory(filepath.Join("..", "..", "..", "migrations")))

	return NewRepositories(pool), pool
}

func createTestUser(t *testing.T, repos *Repositories, username string) int64 {
	t.Helper()

	id, err := repos.UserRepository.Create(context.Background(), &models.User{
		Username:  username,
		Email:     fmt.Sprintf("%s@example.com", username),
		Password:  "not-a-real-hash",
		FirstName: "Test",
		LastName:  "User",
		Role:      models.RoleMember,
	})
	require.NoError(t, err)
	return id
}

func createTestStudio(t *testing.T, repos *Repositories, ownerID int64, name string) int64 {
	t.Helper()

	id, err := repos.StudioRepository.Create(context.Background(), &models.Studio{
		OwnerID:     ownerID,
		Name:        name,
		Description: "test studio",
	})
	require.NoError(t, err)
	return id
}

func TestUpsertRating_OverwritesPreviousValue(t *testing.T) {
	repos, _ := setupTestDB(t)
	ctx := context.Background()

	ownerID := createTestUser(t, repos, "owner")
	studioID := createTestStudio(t, repos, ownerID, "Night Owl Audio")
	raterID := createTestUser(t, repos, "rater")
	secondRaterID := createTestUser(t, repos, "rater2")

	require.NoError(t, repos.StudioRepository.UpsertRating(ctx, studioID, raterID, 4))
	avg, err := repos.StudioRepository.AverageRating(ctx, studioID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, avg, 0.001)

	// re-rating replaces, it never adds a second row
	require.NoError(t, repos.StudioRepository.UpsertRating(ctx, studioID, raterID, 2))
	avg, err = repos.StudioRepository.AverageRating(ctx, studioID)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, avg, 0.001)

	require.NoError(t, repos.StudioRepository.UpsertRating(ctx, studioID, secondRaterID, 4))
	avg, err = repos.StudioRepository.AverageRating(ctx, studioID)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, avg, 0.001)
}

func TestAverageRating_NoRatings(t *testing.T) {
	repos, _ := setupTestDB(t)

	ownerID := createTestUser(t, repos, "owner")
	studioID := createTestStudio(t, repos, ownerID, "Unrated Studio")

	avg, err := repos.StudioRepository.AverageRating(context.Background(), studioID)
	require.NoError(t, err)
	assert.Zero(t, avg)
}

func TestSubscribe_Idempotent(t *testing.T) {
	repos, _ := setupTestDB(t)
	ctx := context.Background()

	ownerID := createTestUser(t, repos, "owner")
	studioID := createTestStudio(t, repos, ownerID, "Night Owl Audio")
	subscriberID := createTestUser(t, repos, "student")

	require.NoError(t, repos.StudioRepository.Subscribe(ctx, studioID, subscriberID))
	require.NoError(t, repos.StudioRepository.Subscribe(ctx, studioID, subscriberID))

	count, err := repos.StudioRepository.SubscriberCount(ctx, studioID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, repos.StudioRepository.Unsubscribe(ctx, studioID, subscriberID))
	count, err = repos.StudioRepository.SubscriberCount(ctx, studioID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestTogglePostLike_RoundTrip(t *testing.T) {
	repos, _ := setupTestDB(t)
	ctx := context.Background()

	authorID := createTestUser(t, repos, "author")
	postID, err := repos.PostRepository.CreatePost(ctx, &models.Post{
		AuthorID: authorID,
		Title:    "First post",
		Content:  "hello",
	})
	require.NoError(t, err)

	liked, count, err := repos.PostRepository.TogglePostLike(ctx, postID, authorID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, count)

	liked, count, err = repos.PostRepository.TogglePostLike(ctx, postID, authorID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Zero(t, count)

	liked, count, err = repos.PostRepository.TogglePostLike(ctx, postID, authorID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, count)
}

func TestDeletePostOwned(t *testing.T) {
	repos, _ := setupTestDB(t)
	ctx := context.Background()

	authorID := createTestUser(t, repos, "author")
	otherID := createTestUser(t, repos, "other")

	attachment := "uploads/post_files/doc.pdf"
	postID, err := repos.PostRepository.CreatePost(ctx, &models.Post{
		AuthorID: authorID,
		Title:    "With attachment",
		Content:  "read this",
		FileURL:  &attachment,
	})
	require.NoError(t, err)

	// someone else's post and a missing post are the same permission error
	_, err = repos.PostRepository.DeletePostOwned(ctx, postID, otherID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	fileURL, err := repos.PostRepository.DeletePostOwned(ctx, postID, authorID)
	require.NoError(t, err)
	require.NotNil(t, fileURL)
	assert.Equal(t, attachment, *fileURL)

	_, err = repos.PostRepository.DeletePostOwned(ctx, postID, authorID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestTagGetOrCreate_Converges(t *testing.T) {
	repos, _ := setupTestDB(t)
	ctx := context.Background()

	first, err := repos.TagRepository.GetOrCreate(ctx, "music")
	require.NoError(t, err)
	second, err := repos.TagRepository.GetOrCreate(ctx, "music")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	tags, err := repos.TagRepository.GetOrCreateAll(ctx, []string{"painting", "music", "jazz"})
	require.NoError(t, err)
	require.Len(t, tags, 3)
	assert.Equal(t, "painting", tags[0].Name)
	assert.Equal(t, first.ID, tags[1].ID)
}

func TestLessonPositions(t *testing.T) {
	repos, _ := setupTestDB(t)
	ctx := context.Background()

	ownerID := createTestUser(t, repos, "owner")
	studioID := createTestStudio(t, repos, ownerID, "Night Owl Audio")

	var lessonIDs []int64
	for _, title := range []string{"Gain staging", "EQ basics", "Compression"} {
		id, err := repos.LessonRepository.Create(ctx, &models.Lesson{
			StudioID:   studioID,
			Title:      title,
			LessonType: models.LessonTypeMarkdown,
			Content:    "notes",
		})
		require.NoError(t, err)
		lessonIDs = append(lessonIDs, id)
	}

	lessons, err := repos.LessonRepository.ListByStudio(ctx, studioID)
	require.NoError(t, err)
	require.Len(t, lessons, 3)
	for i, lesson := range lessons {
		assert.Equal(t, i+1, lesson.Position)
	}

	// moving a lesson persists its new slot
	moved, err := repos.LessonRepository.GetByID(ctx, lessonIDs[2])
	require.NoError(t, err)
	moved.Position = 1
	require.NoError(t, repos.LessonRepository.Update(ctx, moved))

	reloaded, err := repos.LessonRepository.GetByID(ctx, lessonIDs[2])
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Position)
}
