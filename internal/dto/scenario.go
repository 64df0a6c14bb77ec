package dto

import (
	"time"

	"github.com/freightdesk/freight_approval_app/internal/core/domain"
)

// ApproverResponse is the API representation of a directory entry.
type ApproverResponse struct {
	Level       int    `json:"level"`
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// ScenarioResponse reports the resolver's classification of an order.
type ScenarioResponse struct {
	Success              bool              `json:"success"`
	Scenario             string            `json:"scenario"`
	ActApprov            int               `json:"actApprov"`
	RequiredAuthLevel    int               `json:"requiredAuthLevel"`
	NextApprover         *ApproverResponse `json:"nextApprover"`
	ReactivationRequired bool              `json:"reactivationRequired"`
	OrderID              string            `json:"orderId"`
}

// ToScenarioResponse maps a domain resolution to the wire shape.
func ToScenarioResponse(r domain.Resolution) ScenarioResponse {
	resp := ScenarioResponse{
		Success:              true,
		Scenario:             string(r.Scenario),
		ActApprov:            r.ActApprov,
		RequiredAuthLevel:    r.RequiredLevel,
		ReactivationRequired: r.Reactivated,
		OrderID:              r.OrderID,
	}
	if r.NextApprover != nil {
		resp.NextApprover = &ApproverResponse{
			Level:       r.NextApprover.Level,
			UserID:      r.NextApprover.UserID,
			DisplayName: r.NextApprover.DisplayName,
			Email:       r.NextApprover.Email,
		}
	}
	return resp
}

// AuditEntryResponse is the API representation of one audit trail entry.
type AuditEntryResponse struct {
	AuditID      string    `json:"auditId"`
	OrderID      string    `json:"orderId"`
	ActorID      string    `json:"actorId"`
	Kind         string    `json:"kind"`
	LevelReached int       `json:"levelReached"`
	Comment      string    `json:"comment"`
	RecordedAt   time.Time `json:"recordedAt"`
}

// AuditTrailResponse is a paginated audit trail listing.
type AuditTrailResponse struct {
	Entries   []AuditEntryResponse `json:"entries"`
	NextToken *string              `json:"nextToken,omitempty"`
}

// ToAuditEntryResponse maps a domain audit entry to the wire shape.
func ToAuditEntryResponse(e domain.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		AuditID:      e.AuditID,
		OrderID:      e.OrderID,
		ActorID:      e.ActorID,
		Kind:         string(e.Kind),
		LevelReached: e.LevelReached,
		Comment:      e.Comment,
		RecordedAt:   e.RecordedAt,
	}
}
