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

// TodosHandler manages the caller's todos.
type TodosHandler struct {
	service *service.TodoService
}

// NewTodosHandler constructs handler.
func NewTodosHandler(todoService *service.TodoService) *TodosHandler {
	return &TodosHandler{service: todoService}
}

// List GET /api/todos.
func (h *TodosHandler) List(c *fiber.Ctx) error {
	actor, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated()
	}
	todos, err := h.service.List(c.Context(), actor)
	if err != nil {
		return err
	}
	items := make([]dto.TodoResponse, 0, len(todos))
	for i := range todos {
		items = append(items, todoResponse(&todos[i]))
	}
	return c.JSON(items)
}

// Add POST /api/todos.
func (h *TodosHandler) Add(c *fiber.Ctx) error {
	actor, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated()
	}
	var req dto.AddTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	todo, err := h.service.Add(c.Context(), actor, req.Title)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(todoResponse(todo))
}

// Toggle PUT /api/todos/:id.
func (h *TodosHandler) Toggle(c *fiber.Ctx) error {
	actor, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated()
	}
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return apperrors.NewBadRequest("Invalid todo ID")
	}
	var req dto.ToggleTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	todo, err := h.service.Toggle(c.Context(), actor, id, req.Completed)
	if err != nil {
		return err
	}
	return c.JSON(todoResponse(todo))
}

// Delete DELETE /api/todos/:id.
func (h *TodosHandler) Delete(c *fiber.Ctx) error {
	actor, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated()
	}
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return apperrors.NewBadRequest("Invalid todo ID")
	}

	if err := h.service.Delete(c.Context(), actor, id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Todo deleted successfully"})
}

func todoResponse(todo *domain.Todo) dto.TodoResponse {
	return dto.TodoResponse{
		ID:        todo.ID,
		Title:     todo.Title,
		Completed: todo.Completed,
		UserID:    todo.OwnerID,
	}
}
