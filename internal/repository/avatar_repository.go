package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/crm-portal/internal/domain"
)

// AvatarRepository stores uploaded profile images keyed by owner.
type AvatarRepository interface {
	Get(ctx context.Context, userID string) (*domain.Avatar, error)
	Upsert(ctx context.Context, avatar *domain.Avatar) error
}

type avatarRepository struct {
	pool *pgxpool.Pool
}

// NewAvatarRepository returns a Postgres-backed implementation.
func NewAvatarRepository(pool *pgxpool.Pool) AvatarRepository {
	return &avatarRepository{pool: pool}
}

func (r *avatarRepository) Get(ctx context.Context, userID string) (*domain.Avatar, error) {
	const query = `
        SELECT user_id, content, mime_type, updated_at
        FROM avatars WHERE user_id=$1`

	var avatar domain.Avatar
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&avatar.UserID,
		&avatar.Content,
		&avatar.MimeType,
		&avatar.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &avatar, nil
}

func (r *avatarRepository) Upsert(ctx context.Context, avatar *domain.Avatar) error {
	const query = `
        INSERT INTO avatars (user_id, content, mime_type)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id) DO UPDATE
        SET content=EXCLUDED.content, mime_type=EXCLUDED.mime_type, updated_at=NOW()
        RETURNING updated_at`

	return r.pool.QueryRow(ctx, query,
		avatar.UserID,
		avatar.Content,
		avatar.MimeType,
	).Scan(&avatar.UpdatedAt)
}
