package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ekremsevim/studiohub/internal/app/models"
	"github.com/ekremsevim/studiohub/internal/pkg/apperrors"
)

// LessonRepository handles database operations for lessons.
type LessonRepository struct {
	db Querier
}

// NewLessonRepository creates a new LessonRepository.
func NewLessonRepository(db Querier) *LessonRepository {
	return &LessonRepository{db: db}
}

// WithTx returns a copy of the repository bound to a transaction.
func (r *LessonRepository) WithTx(tx pgx.Tx) *LessonRepository {
	return &LessonRepository{db: tx}
}

const lessonColumns = `id, studio_id, title, description, cover_image_url, lesson_type, content, position, created_at, updated_at`

func scanLesson(row pgx.Row) (*models.Lesson, error) {
	var l models.Lesson
	err := row.Scan(
		&l.ID,
		&l.StudioID,
		&l.Title,
		&l.Description,
		&l.CoverImageURL,
		&l.LessonType,
		&l.Content,
		&l.Position,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLessonNotFound
		}
		return nil, fmt.Errorf("error scanning lesson: %w", err)
	}
	return &l, nil
}

// Create inserts a new lesson at the end of its studio's ordering and
// returns its ID.
func (r *LessonRepository) Create(ctx context.Context, lesson *models.Lesson) (int64, error) {
	query := `
		INSERT INTO lessons (studio_id, title, description, cover_image_url, lesson_type, content, position)
		VALUES ($1, $2, $3, $4, $5, $6,
			(SELECT COALESCE(MAX(position), 0) + 1 FROM lessons WHERE studio_id = $1))
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		lesson.StudioID, lesson.Title, lesson.Description, lesson.CoverImageURL,
		lesson.LessonType, lesson.Content).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating lesson: %w", err)
	}
	return id, nil
}

// GetByID retrieves a lesson with its tags.
func (r *LessonRepository) GetByID(ctx context.Context, id int64) (*models.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE id = $1`
	lesson, err := scanLesson(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	tags, err := r.tagsForLesson(ctx, id)
	if err != nil {
		return nil, err
	}
	lesson.Tags = tags

	return lesson, nil
}

// GetOwned retrieves a lesson only when it belongs to a studio owned by
// ownerID. A missing lesson and someone else's lesson are indistinguishable
// to the caller.
func (r *LessonRepository) GetOwned(ctx context.Context, lessonID, ownerID int64) (*models.Lesson, error) {
	query := `
		SELECT l.id, l.studio_id, l.title, l.description, l.cover_image_url,
		       l.lesson_type, l.content, l.position, l.created_at, l.updated_at
		FROM lessons l
		JOIN studios s ON s.id = l.studio_id
		WHERE l.id = $1 AND s.owner_id = $2
	`
	lesson, err := scanLesson(r.db.QueryRow(ctx, query, lessonID, ownerID))
	if err != nil {
		if errors.Is(err, apperrors.ErrLessonNotFound) {
			return nil, apperrors.ErrPermissionDenied
		}
		return nil, err
	}

	tags, err := r.tagsForLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	lesson.Tags = tags

	return lesson, nil
}

// Update persists the mutable lesson fields. The lesson type is fixed at
// creation and never updated.
func (r *LessonRepository) Update(ctx context.Context, lesson *models.Lesson) error {
	query := `
		UPDATE lessons
		SET title = $1, description = $2, content = $3, cover_image_url = $4, position = $5, updated_at = NOW()
		WHERE id = $6
	`
	result, err := r.db.Exec(ctx, query,
		lesson.Title, lesson.Description, lesson.Content, lesson.CoverImageURL, lesson.Position, lesson.ID)
	if err != nil {
		return fmt.Errorf("error updating lesson: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrLessonNotFound
	}
	return nil
}

// Delete removes a lesson.
func (r *LessonRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting lesson: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrLessonNotFound
	}
	return nil
}

// ListByStudio returns a studio's lessons in their curriculum order.
func (r *LessonRepository) ListByStudio(ctx context.Context, studioID int64) ([]models.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE studio_id = $1 ORDER BY position, id`
	return r.queryLessons(ctx, query, studioID)
}

// RecentByStudio returns a studio's newest lessons, capped at limit.
func (r *LessonRepository) RecentByStudio(ctx context.Context, studioID int64, limit int) ([]models.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE studio_id = $1 ORDER BY created_at DESC LIMIT $2`
	return r.queryLessons(ctx, query, studioID, limit)
}

// CountByStudio returns the number of lessons in a studio.
func (r *LessonRepository) CountByStudio(ctx context.Context, studioID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM lessons WHERE studio_id = $1`
	if err := r.db.QueryRow(ctx, query, studioID).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting lessons: %w", err)
	}
	return count, nil
}

// ReplaceTags detaches all tags from a lesson and attaches the given set.
func (r *LessonRepository) ReplaceTags(ctx context.Context, lessonID int64, tagIDs []int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM lesson_tags WHERE lesson_id = $1`, lessonID); err != nil {
		return fmt.Errorf("error clearing lesson tags: %w", err)
	}
	for _, tagID := range tagIDs {
		_, err := r.db.Exec(ctx,
			`INSERT INTO lesson_tags (lesson_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			lessonID, tagID)
		if err != nil {
			return fmt.Errorf("error attaching lesson tag: %w", err)
		}
	}
	return nil
}

// Search finds lessons by case-insensitive title substring and/or any of the
// given tag names, de-duplicated, for the explore page.
func (r *LessonRepository) Search(ctx context.Context, search string, tags []string) ([]models.Lesson, error) {
	builder := squirrel.Select("DISTINCT l.id", "l.studio_id", "l.title", "l.description",
		"l.cover_image_url", "l.lesson_type", "l.content", "l.position",
		"l.created_at", "l.updated_at").
		From("lessons l").
		OrderBy("l.id").
		PlaceholderFormat(squirrel.Dollar)

	if search != "" {
		builder = builder.Where(squirrel.ILike{"l.title": "%" + search + "%"})
	}
	if len(tags) > 0 {
		builder = builder.
			Join("lesson_tags lt ON lt.lesson_id = l.id").
			Join("tags t ON t.id = lt.tag_id").
			Where(squirrel.Eq{"t.name": tags})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	lessons, err := r.queryLessons(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	for i := range lessons {
		tags, err := r.tagsForLesson(ctx, lessons[i].ID)
		if err != nil {
			return nil, err
		}
		lessons[i].Tags = tags
	}

	return lessons, nil
}

func (r *LessonRepository) queryLessons(ctx context.Context, query string, args ...any) ([]models.Lesson, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	lessons := []models.Lesson{}
	for rows.Next() {
		var l models.Lesson
		err := rows.Scan(&l.ID, &l.StudioID, &l.Title, &l.Description, &l.CoverImageURL,
			&l.LessonType, &l.Content, &l.Position, &l.CreatedAt, &l.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning lesson row: %w", err)
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

func (r *LessonRepository) tagsForLesson(ctx context.Context, lessonID int64) ([]models.Tag, error) {
	query := `
		SELECT t.id, t.name
		FROM tags t
		JOIN lesson_tags lt ON lt.tag_id = t.id
		WHERE lt.lesson_id = $1
		ORDER BY t.name
	`

	rows, err := r.db.Query(ctx, query, lessonID)
	if err != nil {
		return nil, fmt.Errorf("error loading lesson tags: %w", err)
	}
	defer rows.Close()

	tags := []models.Tag{}
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("error scanning tag row: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
