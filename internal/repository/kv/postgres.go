package kv

import (
	"context"
	"errors"

	"skincare-storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgres stores entries in the storefront_kv table.
func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Get(ctx context.Context, key string) (string, error) {
	const q = `
SELECT value
FROM storefront_kv
WHERE key = $1
`
	var value string
	if err := r.pool.QueryRow(ctx, q, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		r.logger.Warn("kv repo: get failed", zap.String("key", key), zap.Error(err))
		return "", err
	}
	return value, nil
}

func (r *postgresRepo) Set(ctx context.Context, key, value string) error {
	const q = `
INSERT INTO storefront_kv (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE
SET value = EXCLUDED.value,
    updated_at = EXCLUDED.updated_at
`
	if _, err := r.pool.Exec(ctx, q, key, value); err != nil {
		r.logger.Warn("kv repo: set failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

func (r *postgresRepo) Remove(ctx context.Context, key string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM storefront_kv WHERE key = $1`, key); err != nil {
		r.logger.Warn("kv repo: remove failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}
