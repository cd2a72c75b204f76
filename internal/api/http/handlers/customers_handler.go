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

// CustomersHandler manages customer endpoints.
type CustomersHandler struct {
	service *service.CustomerService
}

// NewCustomersHandler constructs handler.
func NewCustomersHandler(customerService *service.CustomerService) *CustomersHandler {
	return &CustomersHandler{service: customerService}
}

// List GET /api/customers.
func (h *CustomersHandler) List(c *fiber.Ctx) error {
	actor, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated()
	}
	customers, err := h.service.List(c.Context(), actor)
	if err != nil {
		return err
	}
	items := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		items = append(items, customerResponse(&customers[i]))
	}
	return c.JSON(items)
}

// Create POST /api/customers.
func (h *CustomersHandler) Create(c *fiber.Ctx) error {
	actor, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated()
	}
	var req dto.CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	customer, err := h.service.Create(c.Context(), actor, service.CustomerInput{
		Name:   req.Name,
		Email:  req.Email,
		Status: domain.CustomerStatus(req.Status),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(customerResponse(customer))
}

// Update PUT /api/customers/:id.
func (h *CustomersHandler) Update(c *fiber.Ctx) error {
	actor, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated()
	}
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return apperrors.NewBadRequest("Invalid customer ID")
	}
	var req dto.CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	customer, err := h.service.Update(c.Context(), actor, id, service.CustomerInput{
		Name:   req.Name,
		Email:  req.Email,
		Status: domain.CustomerStatus(req.Status),
	})
	if err != nil {
		return err
	}
	return c.JSON(customerResponse(customer))
}

// Delete DELETE /api/customers/:id.
func (h *CustomersHandler) Delete(c *fiber.Ctx) error {
	actor, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated()
	}
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return apperrors.NewBadRequest("Invalid customer ID")
	}

	if err := h.service.Delete(c.Context(), actor, id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Customer deleted successfully"})
}

func customerResponse(customer *domain.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:        customer.ID,
		Name:      customer.Name,
		Email:     customer.Email,
		Status:    string(customer.Status),
		CreatedAt: customer.CreatedAt,
		UpdatedAt: customer.UpdatedAt,
	}
}
