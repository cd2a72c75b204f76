package domain

import "time"

// Todo is strictly scoped to its owner; there is no sharing.
type Todo struct {
	ID        string
	OwnerID   string
	Title     string
	Completed bool
	CreatedAt time.Time
}
