package domain

import "time"

// CustomerStatus is the lifecycle state shown in the customer table.
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "Active"
	CustomerStatusInactive CustomerStatus = "Inactive"
	CustomerStatusPending  CustomerStatus = "Pending"
)

// ValidCustomerStatus reports whether the status is one of the known values.
func ValidCustomerStatus(s CustomerStatus) bool {
	switch s {
	case CustomerStatusActive, CustomerStatusInactive, CustomerStatusPending:
		return true
	}
	return false
}

// Customer is a managed customer record. Any authenticated caller may mutate
// customers; every mutation is audited.
type Customer struct {
	ID        string
	Name      string
	Email     string
	Status    CustomerStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Snapshot captures the customer's audited fields as a structured value.
func (c *Customer) Snapshot() Value {
	return NewMap(
		F("id", String(c.ID)),
		F("name", String(c.Name)),
		F("email", String(c.Email)),
		F("status", String(string(c.Status))),
	)
}
