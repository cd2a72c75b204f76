package dto

import (
	"encoding/json"
	"time"
)

// AuditLogResponse is one audit entry with its rendered field changes.
type AuditLogResponse struct {
	ID        string            `json:"id"`
	UserID    string            `json:"userId"`
	Action    string            `json:"action"`
	Details   json.RawMessage   `json:"details"`
	Before    json.RawMessage   `json:"before,omitempty"`
	After     json.RawMessage   `json:"after,omitempty"`
	Changes   []FieldChangeItem `json:"changes,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// FieldChangeItem is one key-level difference between before and after.
type FieldChangeItem struct {
	Key    string          `json:"key"`
	Before json.RawMessage `json:"before"`
	After  json.RawMessage `json:"after"`
}
