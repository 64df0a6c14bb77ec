package domain

import "time"

// ActionIntent is the decision a token applies to its order(s).
type ActionIntent string

const (
	IntentApprove ActionIntent = "approve"
	IntentReject  ActionIntent = "reject"
)

// ActionToken is a single-use credential minted for one order when a
// notification is sent. The plaintext secret is embedded in the outbound link
// and never stored; only its digest is persisted. The intent is fixed at mint
// time.
type ActionToken struct {
	TokenID     string       `json:"tokenID"`
	TokenHash   string       `json:"-"`
	OrderID     string       `json:"orderID"`
	Intent      ActionIntent `json:"intent"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	ConsumedAt  *time.Time   `json:"consumedAt,omitempty"`
	ConsumedBy  string       `json:"consumedBy,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	RecipientID string       `json:"recipientID"`
}

// IsConsumed reports whether the token has already been redeemed.
func (t ActionToken) IsConsumed() bool {
	return t.ConsumedAt != nil
}

// IsExpired reports whether the token is past its expiry at the given instant.
func (t ActionToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// BulkActionToken is an action token scoped to an ordered set of orders from
// a digest email. The intent is chosen by the caller at redemption time and
// applied uniformly to every order in scope.
type BulkActionToken struct {
	TokenID     string     `json:"tokenID"`
	TokenHash   string     `json:"-"`
	OrderIDs    []string   `json:"orderIDs"`
	ExpiresAt   time.Time  `json:"expiresAt"`
	ConsumedAt  *time.Time `json:"consumedAt,omitempty"`
	ConsumedBy  string     `json:"consumedBy,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	RecipientID string     `json:"recipientID"`
}

// IsConsumed reports whether the token has already been redeemed.
func (t BulkActionToken) IsConsumed() bool {
	return t.ConsumedAt != nil
}

// IsExpired reports whether the token is past its expiry at the given instant.
func (t BulkActionToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// PerOrderError records one order's failure during a bulk application.
type PerOrderError struct {
	OrderID string `json:"orderID"`
	Reason  string `json:"reason"`
}

// BulkResult summarizes a bulk token application. Partial success is the
// expected, reported outcome.
type BulkResult struct {
	Total          int             `json:"total"`
	Successful     int             `json:"successful"`
	Failed         int             `json:"failed"`
	PerOrderErrors []PerOrderError `json:"perOrderErrors"`
}
