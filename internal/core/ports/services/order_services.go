package services

import (
	"context"

	"github.com/freightdesk/freight_approval_app/internal/core/domain"
	"github.com/freightdesk/freight_approval_app/internal/dto"
)

// OrderSvcFacade defines order intake and read operations. Approval state is
// never mutated through this facade; that is the resolver's job.
type OrderSvcFacade interface {
	// CreateOrder registers a new freight expense order at approval level zero.
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest, creatorUserID string) (*domain.Order, error)

	// GetOrderByID returns a single order.
	GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error)
}

// OrderStateResolverSvc classifies an order into one of the three scenarios
// and performs reactivation of rejected orders as a side effect of resolution.
type OrderStateResolverSvc interface {
	// Resolve loads the order, reactivates it if rejected (restoring the
	// highest previously approved level and removing the rejection audit
	// entries in the same transaction), and reports the scenario together
	// with the next approver, if any.
	Resolve(ctx context.Context, orderID string) (*domain.Resolution, error)
}

// ApproverDirectorySvc resolves approval levels to approvers.
type ApproverDirectorySvc interface {
	// ResolveApprover returns the approver owning the level, or (nil, nil)
	// when the chain terminates at that level. Chain termination is not an
	// error; it means no further action is needed.
	ResolveApprover(ctx context.Context, level int) (*domain.Approver, error)

	// ListApprovers returns the full chain ordered by level.
	ListApprovers(ctx context.Context) ([]domain.Approver, error)
}

// AuditTrailSvcFacade exposes the approval audit trail.
type AuditTrailSvcFacade interface {
	// Append records one state-changing event. Storage failures surface to
	// the caller; an entry is never silently dropped.
	Append(ctx context.Context, entry domain.AuditEntry) error

	// ListByOrder returns an order's trail oldest-first with token pagination.
	ListByOrder(ctx context.Context, orderID string, limit int, nextToken *string) ([]domain.AuditEntry, *string, error)
}
