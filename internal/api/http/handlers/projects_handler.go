package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-portal/internal/api/dto"
	"github.com/spec-kit/crm-portal/internal/auth"
	"github.com/spec-kit/crm-portal/internal/domain"
	"github.com/spec-kit/crm-portal/internal/service"
	apperrors "github.com/spec-kit/crm-portal/pkg/util"
)

// ProjectsHandler manages project endpoints. Mutations are admin-only; the
// route group enforces it and the service gates it again with the same policy
// function.
type ProjectsHandler struct {
	service *service.ProjectService
}

// NewProjectsHandler constructs handler.
func NewProjectsHandler(projectService *service.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{service: projectService}
}

// List GET /api/projects.
func (h *ProjectsHandler) List(c *fiber.Ctx) error {
	actor, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated()
	}
	projects, err := h.service.List(c.Context(), actor)
	if err != nil {
		return err
	}
	items := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		items = append(items, projectResponse(&projects[i]))
	}
	return c.JSON(items)
}

// Get GET /api/projects/:id.
func (h *ProjectsHandler) Get(c *fiber.Ctx) error {
	actor, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated()
	}
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return apperrors.NewBadRequest("Invalid project ID")
	}
	project, err := h.service.Get(c.Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(projectResponse(project))
}

// Create POST /api/projects.
func (h *ProjectsHandler) Create(c *fiber.Ctx) error {
	actor, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated()
	}
	var req dto.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	project, err := h.service.Create(c.Context(), actor, projectInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(projectResponse(project))
}

// Update PUT /api/projects/:id.
func (h *ProjectsHandler) Update(c *fiber.Ctx) error {
	actor, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated()
	}
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return apperrors.NewBadRequest("Invalid project ID")
	}
	var req dto.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	project, err := h.service.Update(c.Context(), actor, id, projectInput(req))
	if err != nil {
		return err
	}
	return c.JSON(projectResponse(project))
}

// Delete DELETE /api/projects/:id.
func (h *ProjectsHandler) Delete(c *fiber.Ctx) error {
	actor, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated()
	}
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return apperrors.NewBadRequest("Invalid project ID")
	}

	if err := h.service.Delete(c.Context(), actor, id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Project deleted successfully"})
}

func projectInput(req dto.ProjectRequest) service.ProjectInput {
	return service.ProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.ProjectPriority(req.Priority),
		ProjectKey:  req.ProjectID,
	}
}

func projectResponse(project *domain.Project) dto.ProjectResponse {
	return dto.ProjectResponse{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		Priority:    string(project.Priority),
		ProjectID:   project.ProjectKey,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}
