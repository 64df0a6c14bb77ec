package dto

import (
	"time"

	"github.com/freightdesk/freight_approval_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest is the payload for registering a new freight expense order.
type CreateOrderRequest struct {
	Plant         string          `json:"plant" binding:"required"`
	Carrier       string          `json:"carrier" binding:"required"`
	Description   string          `json:"description" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode  string          `json:"currencyCode" binding:"required,len=3"`
	RequiredLevel int             `json:"requiredLevel" binding:"required,min=1"`
}

// OrderResponse is the API representation of an order.
type OrderResponse struct {
	OrderID       string          `json:"orderId"`
	RequesterID   string          `json:"requesterId"`
	Plant         string          `json:"plant"`
	Carrier       string          `json:"carrier"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currencyCode"`
	RequiredLevel int             `json:"requiredAuthLevel"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToOrderResponse maps a domain order to its API representation.
func ToOrderResponse(o domain.Order) OrderResponse {
	return OrderResponse{
		OrderID:       o.OrderID,
		RequesterID:   o.RequesterID,
		Plant:         o.Plant,
		Carrier:       o.Carrier,
		Description:   o.Description,
		Amount:        o.Amount,
		CurrencyCode:  o.CurrencyCode,
		RequiredLevel: o.RequiredLevel,
		Status:        o.Status.String(),
		CreatedAt:     o.CreatedAt,
	}
}

// OrderData carries the requester-editable fields submitted with an edit
// resubmission.
type OrderData struct {
	Plant           string          `json:"plant" binding:"required"`
	Carrier         string          `json:"carrier" binding:"required"`
	Description     string          `json:"description" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode    string          `json:"currencyCode" binding:"required,len=3"`
	CorrectiveNotes string          `json:"correctiveNotes"`
}

// UpdateOrderRequest is the payload of the guarded order update. All three
// identifiers are required.
type UpdateOrderRequest struct {
	OrderID     string    `json:"orderId" binding:"required"`
	TokenID     string    `json:"tokenId" binding:"required"`
	CurrentData OrderData `json:"currentData" binding:"required"`
}

// UpdateOrderResponse acknowledges a guarded order update.
type UpdateOrderResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OrderID string `json:"orderId"`
	TokenID string `json:"tokenId"`
}
