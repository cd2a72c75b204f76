package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/crm-portal/internal/domain"
)

// TodoRepository defines persistence access for owner-scoped todos.
type TodoRepository interface {
	Create(ctx context.Context, todo *domain.Todo) error
	GetByID(ctx context.Context, id string) (*domain.Todo, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Todo, error)
	SetCompleted(ctx context.Context, id string, completed bool) error
	Delete(ctx context.Context, id string) error
}

type todoRepository struct {
	pool *pgxpool.Pool
}

// NewTodoRepository returns a Postgres-backed implementation.
func NewTodoRepository(pool *pgxpool.Pool) TodoRepository {
	return &todoRepository{pool: pool}
}

func (r *todoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	const query = `
        INSERT INTO todos (owner_id, title, completed)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		todo.OwnerID,
		todo.Title,
		todo.Completed,
	).Scan(&todo.ID, &todo.CreatedAt)
}

func (r *todoRepository) GetByID(ctx context.Context, id string) (*domain.Todo, error) {
	const query = `
        SELECT id, owner_id, title, completed, created_at
        FROM todos WHERE id=$1`

	var todo domain.Todo
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&todo.ID,
		&todo.OwnerID,
		&todo.Title,
		&todo.Completed,
		&todo.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (r *todoRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Todo, error) {
	const query = `
        SELECT id, owner_id, title, completed, created_at
        FROM todos WHERE owner_id=$1 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Todo
	for rows.Next() {
		var todo domain.Todo
		if err := rows.Scan(
			&todo.ID,
			&todo.OwnerID,
			&todo.Title,
			&todo.Completed,
			&todo.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, todo)
	}
	return result, rows.Err()
}

func (r *todoRepository) SetCompleted(ctx context.Context, id string, completed bool) error {
	const query = `UPDATE todos SET completed=$1 WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, completed, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *todoRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM todos WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
