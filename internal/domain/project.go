package domain

import "time"

// ProjectPriority orders projects in the project list.
type ProjectPriority string

const (
	ProjectPriorityLow    ProjectPriority = "low"
	ProjectPriorityMedium ProjectPriority = "medium"
	ProjectPriorityHigh   ProjectPriority = "high"
)

// ValidProjectPriority reports whether the priority is one of the known values.
func ValidProjectPriority(p ProjectPriority) bool {
	switch p {
	case ProjectPriorityLow, ProjectPriorityMedium, ProjectPriorityHigh:
		return true
	}
	return false
}

// Project is readable by any authenticated caller; only admins mutate it.
// ProjectKey is the human-assigned identifier shown alongside the title.
type Project struct {
	ID          string
	Title       string
	Description string
	Priority    ProjectPriority
	ProjectKey  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
