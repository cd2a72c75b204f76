package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/crm-portal/internal/domain"
)

// ProfileRepository defines persistence access for user profiles.
type ProfileRepository interface {
	Get(ctx context.Context, userID string) (*domain.UserProfile, error)
	Upsert(ctx context.Context, profile *domain.UserProfile) error
}

type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository returns a Postgres-backed implementation.
func NewProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepository{pool: pool}
}

func (r *profileRepository) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	const query = `
        SELECT user_id, name, bio, avatar_url, updated_at
        FROM profiles WHERE user_id=$1`

	var profile domain.UserProfile
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.Name,
		&profile.Bio,
		&profile.AvatarURL,
		&profile.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Upsert(ctx context.Context, profile *domain.UserProfile) error {
	const query = `
        INSERT INTO profiles (user_id, name, bio, avatar_url)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (user_id) DO UPDATE
        SET name=EXCLUDED.name, bio=EXCLUDED.bio, avatar_url=EXCLUDED.avatar_url, updated_at=NOW()
        RETURNING updated_at`

	return r.pool.QueryRow(ctx, query,
		profile.UserID,
		profile.Name,
		profile.Bio,
		profile.AvatarURL,
	).Scan(&profile.UpdatedAt)
}
