package service

import (
	"context"
	"strings"

	"github.com/spec-kit/crm-portal/internal/auth"
	"github.com/spec-kit/crm-portal/internal/domain"
	"github.com/spec-kit/crm-portal/internal/repository"
	apperrors "github.com/spec-kit/crm-portal/pkg/util"
)

// TodoService manages todos scoped strictly to their owner. Another user's
// todo is reported as absent rather than forbidden.
type TodoService struct {
	todos repository.TodoRepository
}

// NewTodoService constructs the service.
func NewTodoService(todos repository.TodoRepository) *TodoService {
	return &TodoService{todos: todos}
}

// List returns the caller's todos.
func (s *TodoService) List(ctx context.Context, actor *domain.Identity) ([]domain.Todo, error) {
	if !auth.IsAllowed(actor) {
		return nil, apperrors.NewUnauthenticated()
	}
	todos, err := s.todos.ListByOwner(ctx, actor.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return todos, nil
}

// Add creates a todo owned by the caller.
func (s *TodoService) Add(ctx context.Context, actor *domain.Identity, title string) (*domain.Todo, error) {
	if !auth.IsAllowed(actor) {
		return nil, apperrors.NewUnauthenticated()
	}
	if strings.TrimSpace(title) == "" {
		return nil, apperrors.NewValidationError("title")
	}

	todo := &domain.Todo{
		OwnerID:   actor.ID,
		Title:     title,
		Completed: false,
	}
	if err := s.todos.Create(ctx, todo); err != nil {
		return nil, apperrors.MapError(err)
	}
	return todo, nil
}

// Toggle sets the completed flag; the only mutable field on a todo.
func (s *TodoService) Toggle(ctx context.Context, actor *domain.Identity, id string, completed bool) (*domain.Todo, error) {
	if !auth.IsAllowed(actor) {
		return nil, apperrors.NewUnauthenticated()
	}

	todo, err := s.ownedTodo(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.todos.SetCompleted(ctx, id, completed); err != nil {
		return nil, apperrors.MapError(err)
	}
	todo.Completed = completed
	return todo, nil
}

// Delete removes the caller's todo.
func (s *TodoService) Delete(ctx context.Context, actor *domain.Identity, id string) error {
	if !auth.IsAllowed(actor) {
		return apperrors.NewUnauthenticated()
	}

	if _, err := s.ownedTodo(ctx, actor, id); err != nil {
		return err
	}
	if err := s.todos.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *TodoService) ownedTodo(ctx context.Context, actor *domain.Identity, id string) (*domain.Todo, error) {
	todo, err := s.todos.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if todo.OwnerID != actor.ID {
		return nil, apperrors.NewNotFound("todo")
	}
	return todo, nil
}
