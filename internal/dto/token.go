package dto

import "time"

// MintActionTokenRequest is sent by the notification sender when it prepares
// an outbound email. Exactly one of OrderID / OrderIDs must be set: one order
// for a single-action link, several for a bulk digest link.
type MintActionTokenRequest struct {
	OrderID     string   `json:"orderId"`
	OrderIDs    []string `json:"orderIds"`
	Intent      string   `json:"intent" binding:"omitempty,actionintent"`
	RecipientID string   `json:"recipientId" binding:"required"`
	TTLSeconds  *int64   `json:"ttlSeconds,omitempty"`
}

// MintActionTokenResponse returns the plaintext token exactly once.
type MintActionTokenResponse struct {
	Success   bool      `json:"success"`
	Token     string    `json:"token"`
	TokenID   string    `json:"tokenId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// EditTokenResponse is the `{success, message, ...}` shape shared by the edit
// token actions.
type EditTokenResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	TokenID string `json:"tokenId,omitempty"`
	OrderID string `json:"orderId,omitempty"`
	Status  string `json:"status,omitempty"`
}

// ApproveEditTokenRequest is the form body of the edit token approve action.
type ApproveEditTokenRequest struct {
	TokenID string `form:"tokenId" json:"tokenId" binding:"required"`
}
