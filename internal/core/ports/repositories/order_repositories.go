package repositories

import (
	"context"
	"time"

	"github.com/freightdesk/freight_approval_app/internal/models"
	"github.com/jackc/pgx/v5"
)

// OrderRepository defines data access for freight expense orders.
type OrderRepository interface {
	// CreateOrder persists a new order.
	CreateOrder(ctx context.Context, order models.Order) error

	// FindOrderByID retrieves an order without locking it.
	FindOrderByID(ctx context.Context, orderID string) (*models.Order, error)

	// LockOrderByID retrieves an order under SELECT ... FOR UPDATE. Only
	// meaningful on a tx-bound repository; the lock is held until the
	// surrounding transaction ends.
	LockOrderByID(ctx context.Context, orderID string) (*models.Order, error)

	// UpdateApprovalState writes the approval counter / rejected flag pair.
	UpdateApprovalState(ctx context.Context, orderID string, actApprov int, rejected bool, updatedBy string, updatedAt time.Time) error

	// UpdateOrderFields updates the requester-editable fields of an order.
	UpdateOrderFields(ctx context.Context, order models.Order) error

	// SaveCorrectiveAction persists the corrective-action sub-record written
	// during an edit resubmission.
	SaveCorrectiveAction(ctx context.Context, action models.CorrectiveAction) error
}

// OrderRepositoryFacade extends OrderRepository with transaction capabilities.
type OrderRepositoryFacade interface {
	OrderRepository
	TransactionManager

	// WithTx returns a repository bound to the given transaction.
	WithTx(tx pgx.Tx) OrderRepository
}
