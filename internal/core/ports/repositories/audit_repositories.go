package repositories

import (
	"context"

	"github.com/freightdesk/freight_approval_app/internal/models"
	"github.com/jackc/pgx/v5"
)

// AuditRepository defines data access for the append-only approval audit log.
type AuditRepository interface {
	// Append inserts one audit entry. It either succeeds or returns a storage
	// error; entries are never silently dropped.
	Append(ctx context.Context, entry models.AuditEntry) error

	// QueryMaxLevel returns the maximum level_reached among entries for the
	// order whose kind differs from excludeKind, or zero if none exist.
	QueryMaxLevel(ctx context.Context, orderID string, excludeKind string) (int, error)

	// DeleteByOrderAndKind removes entries of the given kind for the order.
	// This is the compensating deletion used by reactivation and the only
	// permitted mutation of the trail.
	DeleteByOrderAndKind(ctx context.Context, orderID string, kind string) (int64, error)

	// ListByOrder returns the order's trail oldest-first, paginated with an
	// opaque next token.
	ListByOrder(ctx context.Context, orderID string, limit int, nextToken *string) ([]models.AuditEntry, *string, error)
}

// AuditRepositoryFacade extends AuditRepository with transaction capabilities.
type AuditRepositoryFacade interface {
	AuditRepository
	TransactionManager

	// WithTx returns a repository bound to the given transaction.
	WithTx(tx pgx.Tx) AuditRepository
}
