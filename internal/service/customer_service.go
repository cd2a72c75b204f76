package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/crm-portal/internal/auth"
	"github.com/spec-kit/crm-portal/internal/domain"
	"github.com/spec-kit/crm-portal/internal/events"
	"github.com/spec-kit/crm-portal/internal/repository"
	apperrors "github.com/spec-kit/crm-portal/pkg/util"
)

// CustomerService coordinates customer CRUD with audit logging. Mutations
// require authentication only; there is no role restriction on customers.
type CustomerService struct {
	customers  repository.CustomerRepository
	audit      *AuditService
	dispatcher events.Dispatcher
}

// CustomerDependencies bundles requirements for the customer service.
type CustomerDependencies struct {
	CustomerRepo repository.CustomerRepository
	Audit        *AuditService
	Dispatcher   events.Dispatcher
}

// CustomerInput describes a create/update payload.
type CustomerInput struct {
	Name   string
	Email  string
	Status domain.CustomerStatus
}

// NewCustomerService constructs the service.
func NewCustomerService(deps CustomerDependencies) *CustomerService {
	return &CustomerService{
		customers:  deps.CustomerRepo,
		audit:      deps.Audit,
		dispatcher: deps.Dispatcher,
	}
}

// List returns all customers and audits the read with a record count.
func (s *CustomerService) List(ctx context.Context, actor *domain.Identity) ([]domain.Customer, error) {
	if !auth.IsAllowed(actor) {
		return nil, apperrors.NewUnauthenticated()
	}
	customers, err := s.customers.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.audit.Record(ctx, actor.ID, domain.ActionListCustomers,
		domain.NewMap(domain.F("count", domain.Number(float64(len(customers))))),
		nil, nil)
	return customers, nil
}

// Create persists a new customer and audits it with an after snapshot.
func (s *CustomerService) Create(ctx context.Context, actor *domain.Identity, input CustomerInput) (*domain.Customer, error) {
	if !auth.IsAllowed(actor) {
		return nil, apperrors.NewUnauthenticated()
	}
	if err := validateCustomerInput(input); err != nil {
		return nil, err
	}

	customer := &domain.Customer{
		Name:   input.Name,
		Email:  input.Email,
		Status: input.Status,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, apperrors.MapError(err)
	}

	after := customer.Snapshot()
	s.audit.Record(ctx, actor.ID, domain.ActionCreateCustomer,
		domain.NewMap(domain.F("customerId", domain.String(customer.ID))),
		nil, &after)
	s.publish(ctx, events.EventCustomerCreated, customer.ID, actor.ID, events.CustomerMutatedPayload{
		Name:   customer.Name,
		Status: customer.Status,
	})
	return customer, nil
}

// Update overwrites a customer and audits it with before/after snapshots. The
// before read and the write are not transactional; a concurrent writer can
// make the before snapshot advisory only.
func (s *CustomerService) Update(ctx context.Context, actor *domain.Identity, id string, input CustomerInput) (*domain.Customer, error) {
	if !auth.IsAllowed(actor) {
		return nil, apperrors.NewUnauthenticated()
	}
	if err := validateCustomerInput(input); err != nil {
		return nil, err
	}

	var before *domain.Value
	existing, err := s.customers.GetByID(ctx, id)
	switch {
	case err == nil:
		snap := existing.Snapshot()
		before = &snap
	case errors.Is(err, pgx.ErrNoRows):
		// fall through; the update itself reports the missing row
	default:
		return nil, apperrors.MapError(err)
	}

	customer := &domain.Customer{
		ID:     id,
		Name:   input.Name,
		Email:  input.Email,
		Status: input.Status,
	}
	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, apperrors.MapError(err)
	}

	updated, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	after := updated.Snapshot()
	s.audit.Record(ctx, actor.ID, domain.ActionUpdateCustomer,
		domain.NewMap(domain.F("customerId", domain.String(id))),
		before, &after)
	s.publish(ctx, events.EventCustomerUpdated, id, actor.ID, events.CustomerMutatedPayload{
		Name:   updated.Name,
		Status: updated.Status,
	})
	return updated, nil
}

// Delete removes a customer and audits it with the before snapshot. There is
// deliberately no existence check: deleting an absent id still reports
// success, matching documented behavior.
func (s *CustomerService) Delete(ctx context.Context, actor *domain.Identity, id string) error {
	if !auth.IsAllowed(actor) {
		return apperrors.NewUnauthenticated()
	}

	var before *domain.Value
	existing, err := s.customers.GetByID(ctx, id)
	switch {
	case err == nil:
		snap := existing.Snapshot()
		before = &snap
	case errors.Is(err, pgx.ErrNoRows):
		// absent record; delete still reports success
	default:
		return apperrors.MapError(err)
	}

	if err := s.customers.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}

	s.audit.Record(ctx, actor.ID, domain.ActionDeleteCustomer,
		domain.NewMap(domain.F("customerId", domain.String(id))),
		before, nil)
	s.publish(ctx, events.EventCustomerDeleted, id, actor.ID, events.CustomerMutatedPayload{})
	return nil
}

func (s *CustomerService) publish(ctx context.Context, eventType events.EventType, resourceID, actorID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		ResourceID: resourceID,
		ActorID:    actorID,
		Timestamp:  time.Now(),
		Payload:    payload,
	})
}

func validateCustomerInput(input CustomerInput) error {
	var fields []string
	if strings.TrimSpace(input.Name) == "" {
		fields = append(fields, "name")
	}
	if strings.TrimSpace(input.Email) == "" {
		fields = append(fields, "email")
	}
	if !domain.ValidCustomerStatus(input.Status) {
		fields = append(fields, "status")
	}
	if len(fields) > 0 {
		return apperrors.NewValidationError(fields...)
	}
	return nil
}
