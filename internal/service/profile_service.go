package service

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/crm-portal/internal/config"
	"github.com/spec-kit/crm-portal/internal/domain"
	"github.com/spec-kit/crm-portal/internal/repository"
	apperrors "github.com/spec-kit/crm-portal/pkg/util"
)

// ProfileService manages user profiles and avatar images.
//
// Known access-control gap, carried forward deliberately: the profile
// endpoints perform no credential check and trust the caller-supplied userId,
// exactly as the system this replaces did. Closing the hole changes observable
// behavior and needs a product decision first.
type ProfileService struct {
	profiles       repository.ProfileRepository
	avatars        repository.AvatarRepository
	maxAvatarBytes int
}

// ProfileUpdateInput describes a profile update. Image, when set, is a base64
// data URL (data:<mime>;base64,<payload>).
type ProfileUpdateInput struct {
	UserID string
	Name   string
	Bio    string
	Image  string
}

// NewProfileService constructs the service.
func NewProfileService(cfg config.ProfileConfig, profiles repository.ProfileRepository, avatars repository.AvatarRepository) *ProfileService {
	maxBytes := cfg.MaxAvatarBytes
	if maxBytes <= 0 {
		maxBytes = 4 << 20
	}
	return &ProfileService{profiles: profiles, avatars: avatars, maxAvatarBytes: maxBytes}
}

// Get returns the profile for the given user id.
func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.NewBadRequest("Invalid user ID")
	}
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, apperrors.MapError(err)
	}
	return profile, nil
}

// Update upserts name and bio, and stores a new avatar when an image is
// supplied. The avatar lands in the avatar store and the profile keeps the
// URL it is served from.
func (s *ProfileService) Update(ctx context.Context, input ProfileUpdateInput) (*domain.UserProfile, error) {
	if strings.TrimSpace(input.UserID) == "" {
		return nil, apperrors.NewBadRequest("Invalid user ID")
	}

	profile := &domain.UserProfile{
		UserID: input.UserID,
		Name:   input.Name,
		Bio:    input.Bio,
	}
	if existing, err := s.profiles.Get(ctx, input.UserID); err == nil {
		profile.AvatarURL = existing.AvatarURL
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	if input.Image != "" {
		content, mimeType, err := decodeDataURL(input.Image, s.maxAvatarBytes)
		if err != nil {
			return nil, err
		}
		avatar := &domain.Avatar{
			UserID:   input.UserID,
			Content:  content,
			MimeType: mimeType,
		}
		if err := s.avatars.Upsert(ctx, avatar); err != nil {
			return nil, apperrors.MapError(err)
		}
		profile.AvatarURL = "/api/user/avatar/" + input.UserID
	}

	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, apperrors.MapError(err)
	}
	return profile, nil
}

// Avatar returns the stored image for serving.
func (s *ProfileService) Avatar(ctx context.Context, userID string) (*domain.Avatar, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.NewBadRequest("Invalid user ID")
	}
	avatar, err := s.avatars.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("avatar")
		}
		return nil, apperrors.MapError(err)
	}
	return avatar, nil
}

func decodeDataURL(dataURL string, maxBytes int) ([]byte, string, error) {
	if !strings.HasPrefix(dataURL, "data:") {
		return nil, "", apperrors.NewValidationError("image")
	}
	header, payload, found := strings.Cut(dataURL, ",")
	if !found {
		return nil, "", apperrors.NewValidationError("image")
	}
	meta := strings.TrimPrefix(header, "data:")
	mimeType, encoding, _ := strings.Cut(meta, ";")
	if encoding != "base64" {
		return nil, "", apperrors.NewValidationError("image")
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	content, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", apperrors.NewValidationError("image")
	}
	if len(content) > maxBytes {
		return nil, "", apperrors.NewBadRequest("image exceeds size limit")
	}
	return content, mimeType, nil
}
