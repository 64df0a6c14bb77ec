package models

import "time"

// AuditEntry is one row of the append-only approval audit log.
type AuditEntry struct {
	AuditID      string    `json:"auditID" db:"audit_id"`
	OrderID      string    `json:"orderID" db:"order_id"`
	ActorID      string    `json:"actorID" db:"actor_id"`
	Kind         string    `json:"kind" db:"kind"`
	LevelReached int       `json:"levelReached" db:"level_reached"`
	Comment      string    `json:"comment" db:"comment"`
	RecordedAt   time.Time `json:"recordedAt" db:"recorded_at"`
}

// Approver maps one approval level to a user. Read-only reference data.
type Approver struct {
	Level       int    `json:"level" db:"level"`
	UserID      string `json:"userID" db:"user_id"`
	DisplayName string `json:"displayName" db:"display_name"`
	Email       string `json:"email" db:"email"`
}
