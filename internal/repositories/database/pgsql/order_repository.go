package pgsql

import (
	"errors"
	"time"

	"context"

	"github.com/freightdesk/freight_approval_app/internal/apperrors"
	portsrepo "github.com/freightdesk/freight_approval_app/internal/core/ports/repositories"
	"github.com/freightdesk/freight_approval_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxOrderRepository struct {
	BaseRepository
}

// newPgxOrderRepository creates a new instance of PgxOrderRepository
func newPgxOrderRepository(pool *pgxpool.Pool) portsrepo.OrderRepositoryFacade {
	return &PgxOrderRepository{BaseRepository: newBaseRepository(pool)}
}

const (
	selectOrderFields = `
		order_id, requester_id, plant, carrier, description,
		amount, currency_code, required_level, act_approv, rejected,
		created_at, created_by, last_updated_at, last_updated_by
	`

	insertOrderQuery = `
		INSERT INTO orders (
			order_id, requester_id, plant, carrier, description,
			amount, currency_code, required_level, act_approv, rejected,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	findOrderByIDQuery = `
		SELECT ` + selectOrderFields + `
		FROM orders
		WHERE order_id = $1
	`

	lockOrderByIDQuery = findOrderByIDQuery + `
		FOR UPDATE
	`

	updateApprovalStateQuery = `
		UPDATE orders
		SET act_approv = $2, rejected = $3, last_updated_by = $4, last_updated_at = $5
		WHERE order_id = $1
	`

	updateOrderFieldsQuery = `
		UPDATE orders
		SET plant = $2, carrier = $3, description = $4, amount = $5,
		    currency_code = $6, last_updated_by = $7, last_updated_at = $8
		WHERE order_id = $1
	`

	insertCorrectiveActionQuery = `
		INSERT INTO corrective_actions (
			corrective_action_id, order_id, edit_token_id, summary,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
)

// CreateOrder persists a new order.
func (r *PgxOrderRepository) CreateOrder(ctx context.Context, order models.Order) error {
	_, err := r.db.Exec(ctx, insertOrderQuery,
		order.OrderID,
		order.RequesterID,
		order.Plant,
		order.Carrier,
		order.Description,
		order.Amount,
		order.CurrencyCode,
		order.RequiredLevel,
		order.ActApprov,
		order.Rejected,
		order.CreatedAt,
		order.CreatedBy,
		order.LastUpdatedAt,
		order.LastUpdatedBy,
	)
	if err != nil {
		return mapStorageErr(err, "insert order")
	}
	return nil
}

// FindOrderByID retrieves an order without locking it.
func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*models.Order, error) {
	return r.scanOrderRow(r.db.QueryRow(ctx, findOrderByIDQuery, orderID))
}

// LockOrderByID retrieves an order under SELECT ... FOR UPDATE. The lock only
// has effect on a tx-bound repository.
func (r *PgxOrderRepository) LockOrderByID(ctx context.Context, orderID string) (*models.Order, error) {
	return r.scanOrderRow(r.db.QueryRow(ctx, lockOrderByIDQuery, orderID))
}

func (r *PgxOrderRepository) scanOrderRow(row pgx.Row) (*models.Order, error) {
	var order models.Order
	err := row.Scan(
		&order.OrderID,
		&order.RequesterID,
		&order.Plant,
		&order.Carrier,
		&order.Description,
		&order.Amount,
		&order.CurrencyCode,
		&order.RequiredLevel,
		&order.ActApprov,
		&order.Rejected,
		&order.CreatedAt,
		&order.CreatedBy,
		&order.LastUpdatedAt,
		&order.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, mapStorageErr(err, "scan order")
	}
	return &order, nil
}

// UpdateApprovalState writes the approval counter / rejected flag pair.
func (r *PgxOrderRepository) UpdateApprovalState(ctx context.Context, orderID string, actApprov int, rejected bool, updatedBy string, updatedAt time.Time) error {
	tag, err := r.db.Exec(ctx, updateApprovalStateQuery, orderID, actApprov, rejected, updatedBy, updatedAt)
	if err != nil {
		return mapStorageErr(err, "update approval state")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateOrderFields updates the requester-editable fields of an order.
func (r *PgxOrderRepository) UpdateOrderFields(ctx context.Context, order models.Order) error {
	tag, err := r.db.Exec(ctx, updateOrderFieldsQuery,
		order.OrderID,
		order.Plant,
		order.Carrier,
		order.Description,
		order.Amount,
		order.CurrencyCode,
		order.LastUpdatedBy,
		order.LastUpdatedAt,
	)
	if err != nil {
		return mapStorageErr(err, "update order fields")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveCorrectiveAction persists the edit resubmission sub-record.
func (r *PgxOrderRepository) SaveCorrectiveAction(ctx context.Context, action models.CorrectiveAction) error {
	_, err := r.db.Exec(ctx, insertCorrectiveActionQuery,
		action.CorrectiveActionID,
		action.OrderID,
		action.EditTokenID,
		action.Summary,
		action.CreatedAt,
		action.CreatedBy,
		action.LastUpdatedAt,
		action.LastUpdatedBy,
	)
	if err != nil {
		return mapStorageErr(err, "insert corrective action")
	}
	return nil
}

// WithTx returns a repository bound to the given transaction.
func (r *PgxOrderRepository) WithTx(tx pgx.Tx) portsrepo.OrderRepository {
	return &PgxOrderRepository{BaseRepository: r.BaseRepository.withTx(tx)}
}
