package repositories

import (
	"context"
	"time"

	"github.com/freightdesk/freight_approval_app/internal/models"
	"github.com/jackc/pgx/v5"
)

// EditTokenRepository defines data access for edit request tokens.
type EditTokenRepository interface {
	// Create persists a new edit token in status CREATED.
	Create(ctx context.Context, token models.EditRequestToken) error

	// FindByID retrieves an edit token by id.
	FindByID(ctx context.Context, tokenID string) (*models.EditRequestToken, error)

	// TransitionStatus performs a conditional status update guarded by the
	// expected current status. Returns apperrors.ErrInvalidTransition when
	// the token exists but is not in fromStatus, apperrors.ErrNotFound when
	// it does not exist. actorID is recorded for the APPROVED transition.
	TransitionStatus(ctx context.Context, tokenID string, fromStatus, toStatus string, actorID *string, at time.Time) error
}

// EditTokenRepositoryFacade extends EditTokenRepository with transaction
// capabilities.
type EditTokenRepositoryFacade interface {
	EditTokenRepository
	TransactionManager

	// WithTx returns a repository bound to the given transaction.
	WithTx(tx pgx.Tx) EditTokenRepository
}
