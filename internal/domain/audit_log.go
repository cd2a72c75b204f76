package domain

import "time"

// Audit actions recorded by the portal.
const (
	ActionListCustomers  = "GET_ALL_CUSTOMERS"
	ActionCreateCustomer = "CREATE_CUSTOMER"
	ActionUpdateCustomer = "UPDATE_CUSTOMER"
	ActionDeleteCustomer = "DELETE_CUSTOMER"
	ActionUpdateUserRole = "UPDATE_USER_ROLE"
)

// AuditLog is an immutable record of a gated action. Entries are append-only:
// never mutated, never deleted. CreatedAt is assigned by the store at write
// time so ordering stays monotonic across concurrent writers.
type AuditLog struct {
	ID        string
	ActorID   string
	Action    string
	Details   Value
	Before    *Value
	After     *Value
	CreatedAt time.Time
}

// Changes renders the entry's before/after pair as field-level changes.
func (a *AuditLog) Changes() []FieldChange {
	return Diff(a.Before, a.After)
}
