package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-portal/internal/api/dto"
	"github.com/spec-kit/crm-portal/internal/domain"
	"github.com/spec-kit/crm-portal/internal/service"
	apperrors "github.com/spec-kit/crm-portal/pkg/util"
)

// ProfileHandler serves the profile endpoints. No credential check is applied
// here: the routes trust the caller-supplied userId. This reproduces the
// behavior of the system this replaces and is flagged as an access-control
// gap pending a product decision.
type ProfileHandler struct {
	service *service.ProfileService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: profileService}
}

// Get GET /api/user/profile?userId=.
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	userID := c.Query("userId")
	profile, err := h.service.Get(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(profileResponse(profile))
}

// Update PUT /api/user/profile.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	profile, err := h.service.Update(c.Context(), service.ProfileUpdateInput{
		UserID: req.UserID,
		Name:   req.Name,
		Bio:    req.Bio,
		Image:  req.Image,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.UpdateProfileResponse{
		Message:  "Profile updated successfully",
		Name:     profile.Name,
		Bio:      profile.Bio,
		ImageURL: profile.AvatarURL,
	})
}

// Avatar GET /api/user/avatar/:userId.
func (h *ProfileHandler) Avatar(c *fiber.Ctx) error {
	avatar, err := h.service.Avatar(c.Context(), c.Params("userId"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, avatar.MimeType)
	return c.Send(avatar.Content)
}

func profileResponse(profile *domain.UserProfile) dto.ProfileResponse {
	return dto.ProfileResponse{
		UserID:   profile.UserID,
		Name:     profile.Name,
		Bio:      profile.Bio,
		ImageURL: profile.AvatarURL,
	}
}
