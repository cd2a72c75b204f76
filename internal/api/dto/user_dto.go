package dto

import "time"

// UserResponse is one account as shown in user management.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// ChangeRoleRequest payload for the admin role change.
type ChangeRoleRequest struct {
	Role string `json:"role"`
}
