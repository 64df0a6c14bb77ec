package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/freightdesk/freight_approval_app/internal/apperrors"
	"github.com/freightdesk/freight_approval_app/internal/core/domain"
	portsrepo "github.com/freightdesk/freight_approval_app/internal/core/ports/repositories"
	"github.com/freightdesk/freight_approval_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxEditTokenRepository struct {
	BaseRepository
}

// newPgxEditTokenRepository creates a new instance of PgxEditTokenRepository
func newPgxEditTokenRepository(pool *pgxpool.Pool) portsrepo.EditTokenRepositoryFacade {
	return &PgxEditTokenRepository{BaseRepository: newBaseRepository(pool)}
}

const (
	selectEditTokenFields = `
		token_id, order_id, requester_id, status,
		approved_by, approved_at, validated_at, used_at, created_at
	`

	insertEditTokenQuery = `
		INSERT INTO edit_request_tokens (
			token_id, order_id, requester_id, status, created_at
		) VALUES ($1, $2, $3, $4, $5)
	`

	findEditTokenByIDQuery = `
		SELECT ` + selectEditTokenFields + `
		FROM edit_request_tokens
		WHERE token_id = $1
	`

	// Guarded by the expected current status so a concurrent transition
	// cannot be applied twice or out of order.
	transitionEditTokenQuery = `
		UPDATE edit_request_tokens
		SET status = $3,
		    approved_by = COALESCE($4, approved_by),
		    approved_at = CASE WHEN $3 = 'APPROVED' THEN $5 ELSE approved_at END,
		    validated_at = CASE WHEN $3 = 'VALIDATED' THEN $5 ELSE validated_at END,
		    used_at = CASE WHEN $3 = 'USED' THEN $5 ELSE used_at END
		WHERE token_id = $1 AND status = $2
	`
)

// Create persists a new edit token in status CREATED.
func (r *PgxEditTokenRepository) Create(ctx context.Context, token models.EditRequestToken) error {
	_, err := r.db.Exec(ctx, insertEditTokenQuery,
		token.TokenID,
		token.OrderID,
		token.RequesterID,
		token.Status,
		token.CreatedAt,
	)
	if err != nil {
		return mapStorageErr(err, "insert edit token")
	}
	return nil
}

// FindByID retrieves an edit token by id.
func (r *PgxEditTokenRepository) FindByID(ctx context.Context, tokenID string) (*models.EditRequestToken, error) {
	var token models.EditRequestToken
	err := r.db.QueryRow(ctx, findEditTokenByIDQuery, tokenID).Scan(
		&token.TokenID,
		&token.OrderID,
		&token.RequesterID,
		&token.Status,
		&token.ApprovedBy,
		&token.ApprovedAt,
		&token.ValidatedAt,
		&token.UsedAt,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, mapStorageErr(err, "scan edit token")
	}
	return &token, nil
}

// TransitionStatus performs the conditional forward transition. When the
// guarded update matches no row, a follow-up read distinguishes a missing
// token from one in the wrong state.
func (r *PgxEditTokenRepository) TransitionStatus(ctx context.Context, tokenID string, fromStatus, toStatus string, actorID *string, at time.Time) error {
	tag, err := r.db.Exec(ctx, transitionEditTokenQuery, tokenID, fromStatus, toStatus, actorID, at)
	if err != nil {
		return mapStorageErr(err, "transition edit token")
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	existing, findErr := r.FindByID(ctx, tokenID)
	if findErr != nil {
		return findErr
	}
	if existing.Status == string(domain.EditTokenUsed) {
		return apperrors.ErrAlreadyUsed
	}
	return apperrors.ErrInvalidTransition
}

// WithTx returns a repository bound to the given transaction.
func (r *PgxEditTokenRepository) WithTx(tx pgx.Tx) portsrepo.EditTokenRepository {
	return &PgxEditTokenRepository{BaseRepository: r.BaseRepository.withTx(tx)}
}
