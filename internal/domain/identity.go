package domain

import "time"

// Role governs route visibility and mutation rights.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ValidRole reports whether the value is one of the two known roles.
func ValidRole(r Role) bool {
	return r == RoleUser || r == RoleAdmin
}

// Identity is the verified (id, role) pair derived from a caller's credential.
type Identity struct {
	ID    string
	Email string
	Role  Role
}

// User is the stored account document backing an Identity. Accounts are
// created at sign-up with role "user" and are never deleted.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity projects the stored account onto the resolver's view of it.
func (u *User) Identity() *Identity {
	return &Identity{ID: u.ID, Email: u.Email, Role: u.Role}
}

// Snapshot captures the account's audited fields as a structured value.
func (u *User) Snapshot() Value {
	return NewMap(
		F("id", String(u.ID)),
		F("email", String(u.Email)),
		F("role", String(string(u.Role))),
	)
}
