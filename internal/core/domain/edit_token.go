package domain

import "time"

// EditTokenStatus is the lifecycle state of an edit request token.
// Transitions are strictly forward: CREATED -> APPROVED -> VALIDATED -> USED,
// each performed by a distinct actor.
type EditTokenStatus string

const (
	EditTokenCreated   EditTokenStatus = "CREATED"
	EditTokenApproved  EditTokenStatus = "APPROVED"
	EditTokenValidated EditTokenStatus = "VALIDATED"
	EditTokenUsed      EditTokenStatus = "USED"
)

// next returns the only status reachable from s, or "" when s is terminal.
func (s EditTokenStatus) next() EditTokenStatus {
	switch s {
	case EditTokenCreated:
		return EditTokenApproved
	case EditTokenApproved:
		return EditTokenValidated
	case EditTokenValidated:
		return EditTokenUsed
	}
	return ""
}

// CanTransitionTo reports whether moving from s to target is a legal forward
// step. Skipping a state is never legal.
func (s EditTokenStatus) CanTransitionTo(target EditTokenStatus) bool {
	return s.next() == target && target != ""
}

// EditRequestToken gates permission to modify a previously rejected order.
// It is bound to one order and one requester for its whole lifetime.
type EditRequestToken struct {
	TokenID     string          `json:"tokenID"`
	OrderID     string          `json:"orderID"`
	RequesterID string          `json:"requesterID"`
	Status      EditTokenStatus `json:"status"`
	ApprovedBy  string          `json:"approvedBy,omitempty"`
	ApprovedAt  *time.Time      `json:"approvedAt,omitempty"`
	ValidatedAt *time.Time      `json:"validatedAt,omitempty"`
	UsedAt      *time.Time      `json:"usedAt,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}
