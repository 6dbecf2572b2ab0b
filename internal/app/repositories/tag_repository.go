package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ekremsevim/studiohub/internal/app/models"
)

// TagRepository handles database operations for tags.
type TagRepository struct {
	db Querier
}

// NewTagRepository creates a new TagRepository.
func NewTagRepository(db Querier) *TagRepository {
	return &TagRepository{db: db}
}

// WithTx returns a copy of the repository bound to a transaction.
func (r *TagRepository) WithTx(tx pgx.Tx) *TagRepository {
	return &TagRepository{db: tx}
}

// GetOrCreate resolves a tag name to a row, inserting it when missing. The
// upsert makes concurrent get-or-create calls converge on one row.
func (r *TagRepository) GetOrCreate(ctx context.Context, name string) (models.Tag, error) {
	query := `
		INSERT INTO tags (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name
	`

	var tag models.Tag
	if err := r.db.QueryRow(ctx, query, name).Scan(&tag.ID, &tag.Name); err != nil {
		return models.Tag{}, fmt.Errorf("error resolving tag %q: %w", name, err)
	}
	return tag, nil
}

// GetOrCreateAll resolves a list of tag names, preserving order and skipping
// empty names.
func (r *TagRepository) GetOrCreateAll(ctx context.Context, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		tag, err := r.GetOrCreate(ctx, name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
