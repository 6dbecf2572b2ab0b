package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ekremsevim/studiohub/internal/app/models"
	"github.com/ekremsevim/studiohub/internal/pkg/apperrors"
)

// StudioRepository handles database operations for studios, subscriptions and
// ratings.
type StudioRepository struct {
	db Querier
}

// NewStudioRepository creates a new StudioRepository.
func NewStudioRepository(db Querier) *StudioRepository {
	return &StudioRepository{db: db}
}

// WithTx returns a copy of the repository bound to a transaction.
func (r *StudioRepository) WithTx(tx pgx.Tx) *StudioRepository {
	return &StudioRepository{db: tx}
}

const studioColumns = `id, owner_id, name, job_title, description, cover_image_url, created_at, updated_at`

func scanStudio(row pgx.Row) (*models.Studio, error) {
	var s models.Studio
	err := row.Scan(
		&s.ID,
		&s.OwnerID,
		&s.Name,
		&s.JobTitle,
		&s.Description,
		&s.CoverImageURL,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudioNotFound
		}
		return nil, fmt.Errorf("error scanning studio: %w", err)
	}
	return &s, nil
}

// Create inserts a new studio and returns its ID. The unique constraint on
// owner_id backs the one-studio-per-owner invariant against races.
func (r *StudioRepository) Create(ctx context.Context, studio *models.Studio) (int64, error) {
	query := `
		INSERT INTO studios (owner_id, name, job_title, description, cover_image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		studio.OwnerID, studio.Name, studio.JobTitle, studio.Description, studio.CoverImageURL).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating studio: %w", err)
	}
	return id, nil
}

// GetByID retrieves a studio with its tags.
func (r *StudioRepository) GetByID(ctx context.Context, id int64) (*models.Studio, error) {
	query := `SELECT ` + studioColumns + ` FROM studios WHERE id = $1`
	studio, err := scanStudio(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	tags, err := r.tagsForStudio(ctx, id)
	if err != nil {
		return nil, err
	}
	studio.Tags = tags

	return studio, nil
}

// GetByOwnerID retrieves the studio owned by a user, with its tags.
func (r *StudioRepository) GetByOwnerID(ctx context.Context, ownerID int64) (*models.Studio, error) {
	query := `SELECT ` + studioColumns + ` FROM studios WHERE owner_id = $1`
	studio, err := scanStudio(r.db.QueryRow(ctx, query, ownerID))
	if err != nil {
		return nil, err
	}

	tags, err := r.tagsForStudio(ctx, studio.ID)
	if err != nil {
		return nil, err
	}
	studio.Tags = tags

	return studio, nil
}

// OwnerHasStudio checks whether a user already owns a studio.
func (r *StudioRepository) OwnerHasStudio(ctx context.Context, ownerID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM studios WHERE owner_id = $1)`
	if err := r.db.QueryRow(ctx, query, ownerID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking studio ownership: %w", err)
	}
	return exists, nil
}

// Update persists the mutable studio fields.
func (r *StudioRepository) Update(ctx context.Context, studio *models.Studio) error {
	query := `
		UPDATE studios
		SET name = $1, job_title = $2, description = $3, updated_at = NOW()
		WHERE id = $4
	`
	result, err := r.db.Exec(ctx, query,
		studio.Name, studio.JobTitle, studio.Description, studio.ID)
	if err != nil {
		return fmt.Errorf("error updating studio: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrStudioNotFound
	}
	return nil
}

// UpdateCoverImage stores the cover image URL.
func (r *StudioRepository) UpdateCoverImage(ctx context.Context, studioID int64, url *string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE studios SET cover_image_url = $1, updated_at = NOW() WHERE id = $2`, url, studioID)
	if err != nil {
		return fmt.Errorf("error updating cover image: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrStudioNotFound
	}
	return nil
}

// Delete removes a studio. Lessons, ratings and subscriptions cascade.
func (r *StudioRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM studios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting studio: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrStudioNotFound
	}
	return nil
}

// ReplaceTags detaches all tags from a studio and attaches the given set.
func (r *StudioRepository) ReplaceTags(ctx context.Context, studioID int64, tagIDs []int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM studio_tags WHERE studio_id = $1`, studioID); err != nil {
		return fmt.Errorf("error clearing studio tags: %w", err)
	}
	for _, tagID := range tagIDs {
		_, err := r.db.Exec(ctx,
			`INSERT INTO studio_tags (studio_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			studioID, tagID)
		if err != nil {
			return fmt.Errorf("error attaching studio tag: %w", err)
		}
	}
	return nil
}

// tagsForStudio loads the tags attached to a studio.
func (r *StudioRepository) tagsForStudio(ctx context.Context, studioID int64) ([]models.Tag, error) {
	query := `
		SELECT t.id, t.name
		FROM tags t
		JOIN studio_tags st ON st.tag_id = t.id
		WHERE st.studio_id = $1
		ORDER BY t.name
	`

	rows, err := r.db.Query(ctx, query, studioID)
	if err != nil {
		return nil, fmt.Errorf("error loading studio tags: %w", err)
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

// --- Subscriptions ---

// Subscribe adds a user to a studio's subscriber set. Repeat calls are no-ops.
func (r *StudioRepository) Subscribe(ctx context.Context, studioID, userID int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO studio_subscribers (studio_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		studioID, userID)
	if err != nil {
		return fmt.Errorf("error subscribing: %w", err)
	}
	return nil
}

// Unsubscribe removes a user from a studio's subscriber set. Removing a
// non-subscriber is a no-op.
func (r *StudioRepository) Unsubscribe(ctx context.Context, studioID, userID int64) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM studio_subscribers WHERE studio_id = $1 AND user_id = $2`,
		studioID, userID)
	if err != nil {
		return fmt.Errorf("error unsubscribing: %w", err)
	}
	return nil
}

// IsSubscribed checks whether a user subscribes to a studio.
func (r *StudioRepository) IsSubscribed(ctx context.Context, studioID, userID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM studio_subscribers WHERE studio_id = $1 AND user_id = $2)`
	if err := r.db.QueryRow(ctx, query, studioID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking subscription: %w", err)
	}
	return exists, nil
}

// SubscriberCount returns the number of subscribers of a studio.
func (r *StudioRepository) SubscriberCount(ctx context.Context, studioID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM studio_subscribers WHERE studio_id = $1`
	if err := r.db.QueryRow(ctx, query, studioID).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting subscribers: %w", err)
	}
	return count, nil
}

// SubscriberRow is one entry of the owner's subscriber listing.
type SubscriberRow struct {
	ID           int64
	Username     string
	FirstName    string
	LastName     string
	SubscribedAt time.Time
}

// SearchSubscribers lists a studio's subscribers, optionally filtered by a
// case-insensitive substring across username, first and last name.
func (r *StudioRepository) SearchSubscribers(ctx context.Context, studioID int64, search string) ([]SubscriberRow, error) {
	builder := squirrel.Select("u.id", "u.username", "u.first_name", "u.last_name", "ss.created_at").
		From("studio_subscribers ss").
		Join("users u ON u.id = ss.user_id").
		Where(squirrel.Eq{"ss.studio_id": studioID}).
		OrderBy("ss.created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if search != "" {
		pattern := "%" + search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"u.username": pattern},
			squirrel.ILike{"u.first_name": pattern},
			squirrel.ILike{"u.last_name": pattern},
		})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	subscribers := []SubscriberRow{}
	for rows.Next() {
		var s SubscriberRow
		if err := rows.Scan(&s.ID, &s.Username, &s.FirstName, &s.LastName, &s.SubscribedAt); err != nil {
			return nil, fmt.Errorf("error scanning subscriber row: %w", err)
		}
		subscribers = append(subscribers, s)
	}
	return subscribers, rows.Err()
}

// --- Ratings ---

// UpsertRating inserts or overwrites a user's rating of a studio.
func (r *StudioRepository) UpsertRating(ctx context.Context, studioID, userID int64, rating int) error {
	query := `
		INSERT INTO studio_ratings (studio_id, user_id, rating)
		VALUES ($1, $2, $3)
		ON CONFLICT ON CONSTRAINT studio_ratings_studio_id_user_id_key
		DO UPDATE SET rating = EXCLUDED.rating, updated_at = NOW()
	`
	if _, err := r.db.Exec(ctx, query, studioID, userID, rating); err != nil {
		return fmt.Errorf("error upserting rating: %w", err)
	}
	return nil
}

// AverageRating returns a studio's average rating, 0 when unrated.
func (r *StudioRepository) AverageRating(ctx context.Context, studioID int64) (float64, error) {
	var avg float64
	query := `SELECT COALESCE(AVG(rating), 0) FROM studio_ratings WHERE studio_id = $1`
	if err := r.db.QueryRow(ctx, query, studioID).Scan(&avg); err != nil {
		return 0, fmt.Errorf("error computing average rating: %w", err)
	}
	return avg, nil
}

// --- Explore queries ---

// Search finds studios by case-insensitive name substring and/or any of the
// given tag names, de-duplicated.
func (r *StudioRepository) Search(ctx context.Context, search string, tags []string) ([]models.Studio, error) {
	builder := squirrel.Select("DISTINCT s.id", "s.owner_id", "s.name", "s.job_title",
		"s.description", "s.cover_image_url", "s.created_at", "s.updated_at").
		From("studios s").
		OrderBy("s.id").
		PlaceholderFormat(squirrel.Dollar)

	if search != "" {
		builder = builder.Where(squirrel.ILike{"s.name": "%" + search + "%"})
	}
	if len(tags) > 0 {
		builder = builder.
			Join("studio_tags st ON st.studio_id = s.id").
			Join("tags t ON t.id = st.tag_id").
			Where(squirrel.Eq{"t.name": tags})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	studios := []models.Studio{}
	for rows.Next() {
		var s models.Studio
		err := rows.Scan(&s.ID, &s.OwnerID, &s.Name, &s.JobTitle,
			&s.Description, &s.CoverImageURL, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning studio row: %w", err)
		}
		studios = append(studios, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range studios {
		tags, err := r.tagsForStudio(ctx, studios[i].ID)
		if err != nil {
			return nil, err
		}
		studios[i].Tags = tags
	}

	return studios, nil
}

// TeacherRow is one explore result for users who own a studio.
type TeacherRow struct {
	ID         int64
	Username   string
	FirstName  string
	LastName   string
	Headline   string
	StudioID   int64
	StudioName string
}

// SearchTeachers finds users who own a studio, optionally filtered by a
// case-insensitive username substring.
func (r *StudioRepository) SearchTeachers(ctx context.Context, search string) ([]TeacherRow, error) {
	builder := squirrel.Select("u.id", "u.username", "u.first_name", "u.last_name",
		"COALESCE(p.headline, '')", "s.id", "s.name").
		From("users u").
		Join("studios s ON s.owner_id = u.id").
		LeftJoin("profiles p ON p.user_id = u.id").
		OrderBy("u.username").
		PlaceholderFormat(squirrel.Dollar)

	if search != "" {
		builder = builder.Where(squirrel.ILike{"u.username": "%" + search + "%"})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	teachers := []TeacherRow{}
	for rows.Next() {
		var t TeacherRow
		err := rows.Scan(&t.ID, &t.Username, &t.FirstName, &t.LastName,
			&t.Headline, &t.StudioID, &t.StudioName)
		if err != nil {
			return nil, fmt.Errorf("error scanning teacher row: %w", err)
		}
		teachers = append(teachers, t)
	}
	return teachers, rows.Err()
}
