package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// AuditEvent records one confirmed admin action and how it ended.
type AuditEvent struct {
	ID        uuid.UUID `json:"id"`
	Action    string    `json:"action"`
	RecordID  string    `json:"recordId"`
	Endpoint  string    `json:"endpoint"`
	Outcome   string    `json:"outcome"`
	Message   string    `json:"message,omitempty"`
	Actor     string    `json:"actor,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
