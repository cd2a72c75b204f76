package service

import (
	"context"
	"strings"

	"github.com/spec-kit/crm-portal/internal/auth"
	"github.com/spec-kit/crm-portal/internal/domain"
	"github.com/spec-kit/crm-portal/internal/repository"
	apperrors "github.com/spec-kit/crm-portal/pkg/util"
)

// ProjectService manages projects: readable by any authenticated caller,
// mutable by admins only.
type ProjectService struct {
	projects repository.ProjectRepository
}

// ProjectInput describes a create/update payload.
type ProjectInput struct {
	Title       string
	Description string
	Priority    domain.ProjectPriority
	ProjectKey  string
}

// NewProjectService constructs the service.
func NewProjectService(projects repository.ProjectRepository) *ProjectService {
	return &ProjectService{projects: projects}
}

// List returns all projects.
func (s *ProjectService) List(ctx context.Context, actor *domain.Identity) ([]domain.Project, error) {
	if !auth.IsAllowed(actor) {
		return nil, apperrors.NewUnauthenticated()
	}
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return projects, nil
}

// Get returns one project.
func (s *ProjectService) Get(ctx context.Context, actor *domain.Identity, id string) (*domain.Project, error) {
	if !auth.IsAllowed(actor) {
		return nil, apperrors.NewUnauthenticated()
	}
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return project, nil
}

// Create persists a new project. Admin only.
func (s *ProjectService) Create(ctx context.Context, actor *domain.Identity, input ProjectInput) (*domain.Project, error) {
	if !auth.IsAllowed(actor, domain.RoleAdmin) {
		return nil, apperrors.NewForbidden("admin role required")
	}
	if err := validateProjectInput(input); err != nil {
		return nil, err
	}

	project := &domain.Project{
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		ProjectKey:  input.ProjectKey,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, apperrors.MapError(err)
	}
	return project, nil
}

// Update overwrites a project. Admin only.
func (s *ProjectService) Update(ctx context.Context, actor *domain.Identity, id string, input ProjectInput) (*domain.Project, error) {
	if !auth.IsAllowed(actor, domain.RoleAdmin) {
		return nil, apperrors.NewForbidden("admin role required")
	}
	if err := validateProjectInput(input); err != nil {
		return nil, err
	}

	project := &domain.Project{
		ID:          id,
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		ProjectKey:  input.ProjectKey,
	}
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, apperrors.MapError(err)
	}
	return project, nil
}

// Delete removes a project. Admin only.
func (s *ProjectService) Delete(ctx context.Context, actor *domain.Identity, id string) error {
	if !auth.IsAllowed(actor, domain.RoleAdmin) {
		return apperrors.NewForbidden("admin role required")
	}
	if err := s.projects.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func validateProjectInput(input ProjectInput) error {
	var fields []string
	if strings.TrimSpace(input.Title) == "" {
		fields = append(fields, "title")
	}
	if strings.TrimSpace(input.Description) == "" {
		fields = append(fields, "description")
	}
	if !domain.ValidProjectPriority(input.Priority) {
		fields = append(fields, "priority")
	}
	if strings.TrimSpace(input.ProjectKey) == "" {
		fields = append(fields, "projectId")
	}
	if len(fields) > 0 {
		return apperrors.NewValidationError(fields...)
	}
	return nil
}
