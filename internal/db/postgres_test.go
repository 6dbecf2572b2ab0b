package db

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Service transaction closures take only the tx; the wrapper owns the context.
var _ TransactionFn = func(tx pgx.Tx) error { return nil }

func TestWithTransaction_BeginFailure(t *testing.T) {
	// nothing listens on port 1, so Begin fails before fn can run
	poolConfig, err := pgxpool.ParseConfig("postgres://app:pw@127.0.0.1:1/studiohub")
	require.NoError(t, err)

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	require.NoError(t, err)
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	called := false
	err = WithTransaction(ctx, pool, func(tx pgx.Tx) error {
		called = true
		return nil
	})

	require.Error(t, err)
	assert.False(t, called)
}
