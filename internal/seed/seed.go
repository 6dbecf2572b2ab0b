package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appRepos "github.com/ekremsevim/studiohub/internal/app/repositories"
)

// defaultTags are the curated starter tags offered on the explore page.
var defaultTags = []string{
	"music",
	"painting",
	"photography",
	"programming",
	"design",
	"writing",
	"cooking",
	"fitness",
	"languages",
	"mathematics",
}

// CreateDefaultData seeds the curated tag set. Existing tags are left alone.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	tagRepo := appRepos.NewTagRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default tags...")
	var finalErr error
	for _, name := range defaultTags {
		if _, err := tagRepo.GetOrCreate(ctx, name); err != nil {
			lgr.Error().Err(err).Str("tag", name).Msg("Error creating default tag")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Int("count", len(defaultTags)).Msg("Default tags in place")
	}
	return finalErr
}
