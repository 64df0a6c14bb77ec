package repositories

import (
	"context"
	"time"

	"github.com/freightdesk/freight_approval_app/internal/models"
	"github.com/jackc/pgx/v5"
)

// ActionTokenRepository defines data access for single and bulk action tokens.
// Tokens are looked up by the digest of the plaintext secret; the plaintext
// itself is never stored.
type ActionTokenRepository interface {
	// CreateActionToken persists a freshly minted single-order token.
	CreateActionToken(ctx context.Context, token models.ActionToken) error

	// CreateBulkActionToken persists a bulk token and its ordered order set.
	CreateBulkActionToken(ctx context.Context, token models.BulkActionToken) error

	// FindByTokenHash retrieves a single-order token regardless of state.
	FindByTokenHash(ctx context.Context, tokenHash string) (*models.ActionToken, error)

	// ConsumeByHash atomically marks an unconsumed, unexpired token consumed
	// and returns it. Returns apperrors.ErrAlreadyUsed or apperrors.ErrExpired
	// when the conditional update does not apply, apperrors.ErrNotFound when
	// no such token exists.
	ConsumeByHash(ctx context.Context, tokenHash string, consumedBy string, now time.Time) (*models.ActionToken, error)

	// LockBulkByHash retrieves a bulk token under SELECT ... FOR UPDATE,
	// holding the row lock until the surrounding transaction ends. State
	// checks (consumed/expired) are left to the caller.
	LockBulkByHash(ctx context.Context, tokenHash string) (*models.BulkActionToken, error)

	// MarkBulkConsumed stamps a bulk token consumed.
	MarkBulkConsumed(ctx context.Context, tokenID string, consumedBy string, now time.Time) error
}

// ActionTokenRepositoryFacade extends ActionTokenRepository with transaction
// capabilities.
type ActionTokenRepositoryFacade interface {
	ActionTokenRepository
	TransactionManager

	// WithTx returns a repository bound to the given transaction.
	WithTx(tx pgx.Tx) ActionTokenRepository
}
