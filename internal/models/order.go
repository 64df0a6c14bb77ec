package models

import (
	"github.com/shopspring/decimal"
)

// Order represents a freight expense authorization request row. The rejected
// flag plus act_approv together encode the workflow position; the domain
// layer folds them into a tagged ApprovalStatus.
type Order struct {
	OrderID       string          `json:"orderID" db:"order_id"`
	RequesterID   string          `json:"requesterID" db:"requester_id"`
	Plant         string          `json:"plant" db:"plant"`
	Carrier       string          `json:"carrier" db:"carrier"`
	Description   string          `json:"description" db:"description"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	CurrencyCode  string          `json:"currencyCode" db:"currency_code"`
	RequiredLevel int             `json:"requiredLevel" db:"required_level"`
	ActApprov     int             `json:"actApprov" db:"act_approv"`
	Rejected      bool            `json:"rejected" db:"rejected"`
	AuditFields
}

// CorrectiveAction is the sub-record written when a rejected order is fixed
// and resubmitted through an edit request.
type CorrectiveAction struct {
	CorrectiveActionID string `json:"correctiveActionID" db:"corrective_action_id"`
	OrderID            string `json:"orderID" db:"order_id"`
	EditTokenID        string `json:"editTokenID" db:"edit_token_id"`
	Summary            string `json:"summary" db:"summary"`
	AuditFields
}
