package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/crm-portal/internal/domain"
)

// AuditLogRepository stores append-only audit entries. The store assigns the
// timestamp at insert so ordering is monotonic across concurrent writers.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
	ListRecent(ctx context.Context, limit int) ([]domain.AuditLog, error)
}

type auditLogRepository struct {
	pool *pgxpool.Pool
}

// NewAuditLogRepository builds the repository.
func NewAuditLogRepository(pool *pgxpool.Pool) AuditLogRepository {
	return &auditLogRepository{pool: pool}
}

func (r *auditLogRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	const query = `
        INSERT INTO audit_logs (actor_id, action, details, before_state, after_state)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		entry.ActorID,
		entry.Action,
		[]byte(entry.Details.JSON()),
		encodeSnapshot(entry.Before),
		encodeSnapshot(entry.After),
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *auditLogRepository) ListRecent(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	const query = `
        SELECT id, actor_id, action, details, before_state, after_state, created_at
        FROM audit_logs ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AuditLog
	for rows.Next() {
		var (
			entry   domain.AuditLog
			details []byte
			before  []byte
			after   []byte
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.ActorID,
			&entry.Action,
			&details,
			&before,
			&after,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		if entry.Details, err = decodeDetails(details); err != nil {
			return nil, err
		}
		if entry.Before, err = decodeSnapshot(before); err != nil {
			return nil, err
		}
		if entry.After, err = decodeSnapshot(after); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func encodeSnapshot(v *domain.Value) []byte {
	if v == nil {
		return nil
	}
	return []byte(v.JSON())
}

func decodeDetails(data []byte) (domain.Value, error) {
	if len(data) == 0 {
		return domain.Null(), nil
	}
	return domain.ParseValue(data)
}

func decodeSnapshot(data []byte) (*domain.Value, error) {
	if len(data) == 0 {
		return nil, nil
	}
	val, err := domain.ParseValue(data)
	if err != nil {
		return nil, err
	}
	return &val, nil
}
