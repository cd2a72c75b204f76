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

func TestAuditListNewestFirstAndCapped(t *testing.T) {
	auditRepo := &fakeAuditRepo{}
	svc := NewAuditService(config.AuditConfig{ListLimit: 3}, auditRepo, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		svc.Record(ctx, "actor-1", domain.ActionCreateCustomer,
			domain.NewMap(domain.F("n", domain.Number(float64(i)))), nil, nil)
	}

	entries, err := svc.List(ctx, actorUser())
	require.NoError(t, err)
	require.Len(t, entries, 3)
	// newest first
	assert.True(t, entries[0].CreatedAt.After(entries[1].CreatedAt))
	assert.True(t, entries[1].CreatedAt.After(entries[2].CreatedAt))
}

func TestAuditListRequiresAuth(t *testing.T) {
	svc := NewAuditService(config.AuditConfig{ListLimit: 100}, &fakeAuditRepo{}, zap.NewNop())

	_, err := svc.List(context.Background(), nil)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 401, domainErr.HTTPStatus)
}

func TestAuditRecordBestEffort(t *testing.T) {
	auditRepo := &fakeAuditRepo{failErr: errStoreDown}
	svc := NewAuditService(config.AuditConfig{ListLimit: 100}, auditRepo, zap.NewNop())

	// must not panic or propagate anything
	svc.Record(context.Background(), "actor-1", domain.ActionDeleteCustomer,
		domain.NewMap(domain.F("customerId", domain.String("c1"))), nil, nil)
	assert.Empty(t, auditRepo.entries)
}

func TestAuditDefaultLimit(t *testing.T) {
	svc := NewAuditService(config.AuditConfig{}, &fakeAuditRepo{}, zap.NewNop())
	assert.Equal(t, 100, svc.listLimit)
}
