package domain

import "time"

// AuditActionKind classifies an audit trail entry.
type AuditActionKind string

const (
	AuditApproved AuditActionKind = "APPROVED"
	AuditRejected AuditActionKind = "REJECTED"
	AuditEdited   AuditActionKind = "EDITED"
)

// AuditEntry is one immutable event in an order's approval history. Entries
// are append-only; the single exception is the compensating deletion of
// REJECTED entries during reactivation.
type AuditEntry struct {
	AuditID      string          `json:"auditID"`
	OrderID      string          `json:"orderID"`
	ActorID      string          `json:"actorID"`
	Kind         AuditActionKind `json:"kind"`
	LevelReached int             `json:"levelReached"`
	Comment      string          `json:"comment"`
	RecordedAt   time.Time       `json:"recordedAt"`
}
