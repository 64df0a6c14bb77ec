package services

import (
	"context"
	"time"

	"github.com/freightdesk/freight_approval_app/internal/core/domain"
	"github.com/freightdesk/freight_approval_app/internal/dto"
)

// ActionTokenSvcFacade mints and redeems the single-use credentials embedded
// in notification links. The plaintext secret is returned exactly once at
// mint time and never stored.
type ActionTokenSvcFacade interface {
	// MintSingle creates a token for one order with a fixed intent.
	MintSingle(ctx context.Context, orderID string, intent domain.ActionIntent, recipientID string, ttl time.Duration) (string, *domain.ActionToken, error)

	// MintBulk creates a token spanning an ordered set of orders; the intent
	// is chosen by the redeemer.
	MintBulk(ctx context.Context, orderIDs []string, recipientID string, ttl time.Duration) (string, *domain.BulkActionToken, error)

	// RedeemSingle consumes a single-order token and applies its intent in
	// one transaction. Exactly one of two concurrent redemptions succeeds;
	// the other observes apperrors.ErrAlreadyUsed.
	RedeemSingle(ctx context.Context, plaintext string) (*domain.Resolution, domain.ActionIntent, error)

	// ApplyBulk consumes a bulk token and applies intent to every order in
	// scope, each in its own transaction. Partial success is reported, never
	// a full abort.
	ApplyBulk(ctx context.Context, plaintext string, intent domain.ActionIntent) (*domain.BulkResult, error)
}

// EditTokenSvcFacade drives the four-state edit request lifecycle
// (CREATED -> APPROVED -> VALIDATED -> USED) and the guarded order update.
type EditTokenSvcFacade interface {
	// CreateEditToken opens an edit request for a rejected order on behalf of
	// its requester.
	CreateEditToken(ctx context.Context, orderID string, requesterID string) (*domain.EditRequestToken, error)

	// ApproveEditToken records the next approver's authorization. The actor
	// must match the approver the resolver reports for the order.
	ApproveEditToken(ctx context.Context, tokenID string, approverID string) (*domain.EditRequestToken, error)

	// ValidateEditToken confirms the token against the order id the requester
	// is looking at.
	ValidateEditToken(ctx context.Context, tokenID string, orderID string) (*domain.EditRequestToken, error)

	// MarkEditTokenUsed finalizes the token after a durable save.
	MarkEditTokenUsed(ctx context.Context, tokenID string) error

	// UpdateOrder applies the corrected order data in one transaction: token
	// consumption, scenario re-resolution, field update, corrective-action
	// sub-record and an EDITED audit entry. A consumed token yields
	// apperrors.ErrAlreadyUsed with no further mutation.
	UpdateOrder(ctx context.Context, req dto.UpdateOrderRequest, actorID string) error
}
