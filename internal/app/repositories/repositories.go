package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgx operations shared by pools and transactions.
// Repositories run against the pool by default; WithTx rebinds them to a
// transaction so multi-step writes stay atomic.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories bundles all repositories for dependency wiring.
type Repositories struct {
	UserRepository    *UserRepository
	ProfileRepository *ProfileRepository
	TokenRepository   *TokenRepository
	TagRepository     *TagRepository
	StudioRepository  *StudioRepository
	LessonRepository  *LessonRepository
	PostRepository    *PostRepository
	MeetingRepository *MeetingRepository
}

// NewRepositories creates all repositories bound to the connection pool.
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:    NewUserRepository(pool),
		ProfileRepository: NewProfileRepository(pool),
		TokenRepository:   NewTokenRepository(pool),
		TagRepository:     NewTagRepository(pool),
		StudioRepository:  NewStudioRepository(pool),
		LessonRepository:  NewLessonRepository(pool),
		PostRepository:    NewPostRepository(pool),
		MeetingRepository: NewMeetingRepository(pool),
	}
}
