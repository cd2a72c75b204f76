package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-portal/internal/api/dto"
	"github.com/spec-kit/crm-portal/internal/auth"
	"github.com/spec-kit/crm-portal/internal/domain"
	"github.com/spec-kit/crm-portal/internal/service"
	apperrors "github.com/spec-kit/crm-portal/pkg/util"
)

// AuditLogsHandler serves the audit trail view.
type AuditLogsHandler struct {
	service *service.AuditService
}

// NewAuditLogsHandler constructs handler.
func NewAuditLogsHandler(auditService *service.AuditService) *AuditLogsHandler {
	return &AuditLogsHandler{service: auditService}
}

// List GET /api/audit-logs. Newest first, capped at the configured limit;
// each entry carries the rendered field-level changes.
func (h *AuditLogsHandler) List(c *fiber.Ctx) error {
	actor, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated()
	}
	entries, err := h.service.List(c.Context(), actor)
	if err != nil {
		return err
	}
	items := make([]dto.AuditLogResponse, 0, len(entries))
	for i := range entries {
		items = append(items, auditLogResponse(&entries[i]))
	}
	return c.JSON(items)
}

func auditLogResponse(entry *domain.AuditLog) dto.AuditLogResponse {
	resp := dto.AuditLogResponse{
		ID:        entry.ID,
		UserID:    entry.ActorID,
		Action:    entry.Action,
		Details:   json.RawMessage(entry.Details.JSON()),
		Timestamp: entry.CreatedAt,
	}
	if entry.Before != nil {
		resp.Before = json.RawMessage(entry.Before.JSON())
	}
	if entry.After != nil {
		resp.After = json.RawMessage(entry.After.JSON())
	}
	for _, change := range entry.Changes() {
		item := dto.FieldChangeItem{Key: change.Key, Before: nullJSON, After: nullJSON}
		if change.Before != nil {
			item.Before = json.RawMessage(change.Before.JSON())
		}
		if change.After != nil {
			item.After = json.RawMessage(change.After.JSON())
		}
		resp.Changes = append(resp.Changes, item)
	}
	return resp
}

var nullJSON = json.RawMessage("null")
