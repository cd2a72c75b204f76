package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/crm-portal/internal/domain"
	apperrors "github.com/spec-kit/crm-portal/pkg/util"
)

func TestTodoAddAndList(t *testing.T) {
	svc := NewTodoService(newFakeTodoRepo())
	ctx := context.Background()

	todo, err := svc.Add(ctx, actorUser(), "write report")
	require.NoError(t, err)
	assert.Equal(t, "actor-1", todo.OwnerID)
	assert.False(t, todo.Completed)

	todos, err := svc.List(ctx, actorUser())
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "write report", todos[0].Title)
}

func TestTodoAddEmptyTitle(t *testing.T) {
	svc := NewTodoService(newFakeTodoRepo())

	_, err := svc.Add(context.Background(), actorUser(), "   ")
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 400, domainErr.HTTPStatus)
}

func TestTodoListOwnerScoped(t *testing.T) {
	svc := NewTodoService(newFakeTodoRepo())
	ctx := context.Background()
	other := &domain.Identity{ID: "actor-2", Role: domain.RoleUser}

	_, err := svc.Add(ctx, actorUser(), "mine")
	require.NoError(t, err)
	_, err = svc.Add(ctx, other, "theirs")
	require.NoError(t, err)

	todos, err := svc.List(ctx, actorUser())
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "mine", todos[0].Title)
}

func TestTodoToggle(t *testing.T) {
	svc := NewTodoService(newFakeTodoRepo())
	ctx := context.Background()

	todo, err := svc.Add(ctx, actorUser(), "task")
	require.NoError(t, err)

	toggled, err := svc.Toggle(ctx, actorUser(), todo.ID, true)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)
}

// Another owner's todo is indistinguishable from a missing one.
func TestTodoForeignLooksMissing(t *testing.T) {
	svc := NewTodoService(newFakeTodoRepo())
	ctx := context.Background()
	other := &domain.Identity{ID: "actor-2", Role: domain.RoleUser}

	todo, err := svc.Add(ctx, other, "theirs")
	require.NoError(t, err)

	_, err = svc.Toggle(ctx, actorUser(), todo.ID, true)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 404, domainErr.HTTPStatus)

	err = svc.Delete(ctx, actorUser(), todo.ID)
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 404, domainErr.HTTPStatus)
}

func TestTodoDelete(t *testing.T) {
	repo := newFakeTodoRepo()
	svc := NewTodoService(repo)
	ctx := context.Background()

	todo, err := svc.Add(ctx, actorUser(), "task")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, actorUser(), todo.ID))
	assert.Empty(t, repo.byID)
}
