package models

import "time"

// ActionToken is a single-order, single-use approval link credential.
type ActionToken struct {
	TokenID     string     `json:"tokenID" db:"token_id"`
	TokenHash   string     `json:"-" db:"token_hash"`
	OrderID     string     `json:"orderID" db:"order_id"`
	Intent      string     `json:"intent" db:"intent"`
	RecipientID string     `json:"recipientID" db:"recipient_id"`
	ExpiresAt   time.Time  `json:"expiresAt" db:"expires_at"`
	ConsumedAt  *time.Time `json:"consumedAt,omitempty" db:"consumed_at"`
	ConsumedBy  *string    `json:"consumedBy,omitempty" db:"consumed_by"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}

// BulkActionToken is an action token bound to an ordered set of orders. The
// order ids live in bulk_action_token_orders, keyed by position.
type BulkActionToken struct {
	TokenID     string     `json:"tokenID" db:"token_id"`
	TokenHash   string     `json:"-" db:"token_hash"`
	RecipientID string     `json:"recipientID" db:"recipient_id"`
	ExpiresAt   time.Time  `json:"expiresAt" db:"expires_at"`
	ConsumedAt  *time.Time `json:"consumedAt,omitempty" db:"consumed_at"`
	ConsumedBy  *string    `json:"consumedBy,omitempty" db:"consumed_by"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	OrderIDs    []string   `json:"orderIDs" db:"-"`
}

// EditRequestToken gates modification of a rejected order; four-state
// forward-only lifecycle enforced by conditional updates on status.
type EditRequestToken struct {
	TokenID     string     `json:"tokenID" db:"token_id"`
	OrderID     string     `json:"orderID" db:"order_id"`
	RequesterID string     `json:"requesterID" db:"requester_id"`
	Status      string     `json:"status" db:"status"`
	ApprovedBy  *string    `json:"approvedBy,omitempty" db:"approved_by"`
	ApprovedAt  *time.Time `json:"approvedAt,omitempty" db:"approved_at"`
	ValidatedAt *time.Time `json:"validatedAt,omitempty" db:"validated_at"`
	UsedAt      *time.Time `json:"usedAt,omitempty" db:"used_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}
