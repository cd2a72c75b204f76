package domain

import "time"

// UserProfile is the one-to-one public profile for an account.
type UserProfile struct {
	UserID    string
	Name      string
	Bio       string
	AvatarURL string
	UpdatedAt time.Time
}

// Avatar holds the uploaded profile image served at the profile's AvatarURL.
type Avatar struct {
	UserID    string
	Content   []byte
	MimeType  string
	UpdatedAt time.Time
}
