package dto

// ProfileResponse is the public profile for an account.
type ProfileResponse struct {
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Bio      string `json:"bio"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// UpdateProfileRequest payload. Image, when present, is a base64 data URL.
type UpdateProfileRequest struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Bio    string `json:"bio"`
	Image  string `json:"image,omitempty"`
}

// UpdateProfileResponse confirms the update and echoes the stored fields.
type UpdateProfileResponse struct {
	Message  string `json:"message"`
	Name     string `json:"name"`
	Bio      string `json:"bio"`
	ImageURL string `json:"imageUrl,omitempty"`
}
