package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ApprovalStatus is the workflow position of an order. It is a tagged value:
// either "rejected" or "in progress at level n" (n == requiredLevel means
// fully approved). Rejected orders carry no level, so comparing a rejected
// order's level against the required level is impossible by construction.
type ApprovalStatus struct {
	rejected bool
	level    int
}

// StatusInProgress returns the status for an order approved up to level.
// Level 0 means no approval has happened yet.
func StatusInProgress(level int) ApprovalStatus {
	if level < 0 {
		level = 0
	}
	return ApprovalStatus{level: level}
}

// StatusRejected returns the rejected status.
func StatusRejected() ApprovalStatus {
	return ApprovalStatus{rejected: true}
}

// IsRejected reports whether the order is rejected and awaiting reactivation.
func (s ApprovalStatus) IsRejected() bool {
	return s.rejected
}

// Level returns the current approval counter. ok is false for rejected
// orders, which have no meaningful level.
func (s ApprovalStatus) Level() (level int, ok bool) {
	if s.rejected {
		return 0, false
	}
	return s.level, true
}

func (s ApprovalStatus) String() string {
	if s.rejected {
		return "REJECTED"
	}
	return fmt.Sprintf("LEVEL_%d", s.level)
}

// Scenario is the resolver's classification of an order.
type Scenario string

const (
	// ScenarioInProgress means at least one approval level is still pending.
	ScenarioInProgress Scenario = "IN_PROGRESS"
	// ScenarioRejected means the order was rejected and needs reactivation.
	ScenarioRejected Scenario = "REJECTED_NEEDS_REACTIVATION"
	// ScenarioFullyApproved is terminal; no further action is required.
	ScenarioFullyApproved Scenario = "FULLY_APPROVED"
)

// Order is a freight expense authorization request. The approval status is
// the only field the resolver mutates; plant and carrier are display-only.
type Order struct {
	OrderID       string          `json:"orderID"`
	RequesterID   string          `json:"requesterID"`
	Plant         string          `json:"plant"`
	Carrier       string          `json:"carrier"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currencyCode"`
	RequiredLevel int             `json:"requiredLevel"` // fixed at creation, >= 1
	Status        ApprovalStatus  `json:"-"`
	AuditFields
}

// Resolution is the outcome of resolving an order's scenario.
type Resolution struct {
	OrderID       string
	Scenario      Scenario
	ActApprov     int
	RequiredLevel int
	NextApprover  *Approver // nil when fully approved or the chain ends early
	Reactivated   bool
}

// CorrectiveAction is the sub-record attached to an order when a rejected
// submission is fixed and resubmitted through an edit request.
type CorrectiveAction struct {
	CorrectiveActionID string `json:"correctiveActionID"`
	OrderID            string `json:"orderID"`
	EditTokenID        string `json:"editTokenID"`
	Summary            string `json:"summary"`
	AuditFields
}
