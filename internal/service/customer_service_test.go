package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/crm-portal/internal/config"
	"github.com/spec-kit/crm-portal/internal/domain"
	apperrors "github.com/spec-kit/crm-portal/pkg/util"
)

func newCustomerFixture() (*CustomerService, *fakeCustomerRepo, *fakeAuditRepo) {
	customers := newFakeCustomerRepo()
	auditRepo := &fakeAuditRepo{}
	audit := NewAuditService(config.AuditConfig{ListLimit: 100}, auditRepo, zap.NewNop())
	svc := NewCustomerService(CustomerDependencies{
		CustomerRepo: customers,
		Audit:        audit,
	})
	return svc, customers, auditRepo
}

func actorUser() *domain.Identity {
	return &domain.Identity{ID: "actor-1", Email: "user@example.com", Role: domain.RoleUser}
}

func TestCustomerCreateAudited(t *testing.T) {
	svc, _, auditRepo := newCustomerFixture()

	customer, err := svc.Create(context.Background(), actorUser(), CustomerInput{
		Name:   "Acme",
		Email:  "acme@example.com",
		Status: domain.CustomerStatusActive,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, customer.ID)

	entries := auditRepo.byAction(domain.ActionCreateCustomer)
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, "actor-1", entry.ActorID)
	assert.Nil(t, entry.Before)
	require.NotNil(t, entry.After)

	status, ok := entry.After.Get("status")
	require.True(t, ok)
	assert.True(t, status.Equal(domain.String("Active")))
}

func TestCustomerCreateValidation(t *testing.T) {
	svc, _, auditRepo := newCustomerFixture()

	_, err := svc.Create(context.Background(), actorUser(), CustomerInput{Status: "bogus"})
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 400, domainErr.HTTPStatus)
	assert.Equal(t, []string{"name", "email", "status"}, domainErr.Details["fields"])

	// rejected mutations leave no audit trace
	assert.Empty(t, auditRepo.entries)
}

func TestCustomerCreateRequiresAuth(t *testing.T) {
	svc, _, _ := newCustomerFixture()

	_, err := svc.Create(context.Background(), nil, CustomerInput{
		Name: "Acme", Email: "acme@example.com", Status: domain.CustomerStatusActive,
	})
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 401, domainErr.HTTPStatus)
	assert.Equal(t, "Unauthorized", domainErr.Message)
}

func TestCustomerUpdateDiffSingleField(t *testing.T) {
	svc, _, auditRepo := newCustomerFixture()
	ctx := context.Background()

	created, err := svc.Create(ctx, actorUser(), CustomerInput{
		Name: "Acme", Email: "acme@example.com", Status: domain.CustomerStatusActive,
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, actorUser(), created.ID, CustomerInput{
		Name: "Acme", Email: "acme@example.com", Status: domain.CustomerStatusInactive,
	})
	require.NoError(t, err)

	entries := auditRepo.byAction(domain.ActionUpdateCustomer)
	require.Len(t, entries, 1)
	changes := entries[0].Changes()
	require.Len(t, changes, 1)
	assert.Equal(t, "status", changes[0].Key)
	assert.True(t, changes[0].Before.Equal(domain.String("Active")))
	assert.True(t, changes[0].After.Equal(domain.String("Inactive")))
}

func TestCustomerUpdateMissing(t *testing.T) {
	svc, _, _ := newCustomerFixture()

	_, err := svc.Update(context.Background(), actorUser(), "nope", CustomerInput{
		Name: "Acme", Email: "acme@example.com", Status: domain.CustomerStatusActive,
	})
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 404, domainErr.HTTPStatus)
}

func TestCustomerDeleteAudited(t *testing.T) {
	svc, customers, auditRepo := newCustomerFixture()
	ctx := context.Background()

	created, err := svc.Create(ctx, actorUser(), CustomerInput{
		Name: "Acme", Email: "acme@example.com", Status: domain.CustomerStatusActive,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, actorUser(), created.ID))
	assert.Empty(t, customers.byID)

	entries := auditRepo.byAction(domain.ActionDeleteCustomer)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].Before)
	assert.Nil(t, entries[0].After)
}

// Deleting an id that never existed still succeeds and still gets audited,
// with no before snapshot to show.
func TestCustomerDeleteMissingSucceeds(t *testing.T) {
	svc, _, auditRepo := newCustomerFixture()

	require.NoError(t, svc.Delete(context.Background(), actorUser(), "ghost"))

	entries := auditRepo.byAction(domain.ActionDeleteCustomer)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].Before)
	assert.Nil(t, entries[0].After)
}

func TestCustomerListAuditsCount(t *testing.T) {
	svc, _, auditRepo := newCustomerFixture()
	ctx := context.Background()

	for _, name := range []string{"A", "B"} {
		_, err := svc.Create(ctx, actorUser(), CustomerInput{
			Name: name, Email: name + "@example.com", Status: domain.CustomerStatusPending,
		})
		require.NoError(t, err)
	}

	customers, err := svc.List(ctx, actorUser())
	require.NoError(t, err)
	assert.Len(t, customers, 2)

	entries := auditRepo.byAction(domain.ActionListCustomers)
	require.Len(t, entries, 1)
	count, ok := entries[0].Details.Get("count")
	require.True(t, ok)
	assert.True(t, count.Equal(domain.Number(2)))
}

// A failed audit write never surfaces to the caller; the mutation has already
// committed.
func TestCustomerMutationSurvivesAuditFailure(t *testing.T) {
	svc, customers, auditRepo := newCustomerFixture()
	auditRepo.failErr = errStoreDown

	created, err := svc.Create(context.Background(), actorUser(), CustomerInput{
		Name: "Acme", Email: "acme@example.com", Status: domain.CustomerStatusActive,
	})
	require.NoError(t, err)
	assert.Contains(t, customers.byID, created.ID)
	assert.Empty(t, auditRepo.entries)
}
