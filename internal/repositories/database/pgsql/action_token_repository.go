package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/freightdesk/freight_approval_app/internal/apperrors"
	portsrepo "github.com/freightdesk/freight_approval_app/internal/core/ports/repositories"
	"github.com/freightdesk/freight_approval_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxActionTokenRepository struct {
	BaseRepository
}

// newPgxActionTokenRepository creates a new instance of PgxActionTokenRepository
func newPgxActionTokenRepository(pool *pgxpool.Pool) portsrepo.ActionTokenRepositoryFacade {
	return &PgxActionTokenRepository{BaseRepository: newBaseRepository(pool)}
}

const (
	selectActionTokenFields = `
		token_id, token_hash, order_id, intent, recipient_id,
		expires_at, consumed_at, consumed_by, created_at
	`

	insertActionTokenQuery = `
		INSERT INTO action_tokens (
			token_id, token_hash, order_id, intent, recipient_id,
			expires_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	findActionTokenByHashQuery = `
		SELECT ` + selectActionTokenFields + `
		FROM action_tokens
		WHERE token_hash = $1
	`

	// The consumed_at IS NULL guard makes consumption atomic: of two
	// concurrent redemptions exactly one update applies.
	consumeActionTokenQuery = `
		UPDATE action_tokens
		SET consumed_at = $3, consumed_by = $2
		WHERE token_hash = $1 AND consumed_at IS NULL AND expires_at > $3
		RETURNING ` + selectActionTokenFields

	selectBulkTokenFields = `
		token_id, token_hash, recipient_id, expires_at, consumed_at, consumed_by, created_at
	`

	insertBulkTokenQuery = `
		INSERT INTO bulk_action_tokens (
			token_id, token_hash, recipient_id, expires_at, created_at
		) VALUES ($1, $2, $3, $4, $5)
	`

	insertBulkTokenOrderQuery = `
		INSERT INTO bulk_action_token_orders (token_id, position, order_id)
		VALUES ($1, $2, $3)
	`

	lockBulkTokenByHashQuery = `
		SELECT ` + selectBulkTokenFields + `
		FROM bulk_action_tokens
		WHERE token_hash = $1
		FOR UPDATE
	`

	listBulkTokenOrdersQuery = `
		SELECT order_id
		FROM bulk_action_token_orders
		WHERE token_id = $1
		ORDER BY position ASC
	`

	markBulkConsumedQuery = `
		UPDATE bulk_action_tokens
		SET consumed_at = $3, consumed_by = $2
		WHERE token_id = $1 AND consumed_at IS NULL
	`
)

// CreateActionToken persists a freshly minted single-order token.
func (r *PgxActionTokenRepository) CreateActionToken(ctx context.Context, token models.ActionToken) error {
	_, err := r.db.Exec(ctx, insertActionTokenQuery,
		token.TokenID,
		token.TokenHash,
		token.OrderID,
		token.Intent,
		token.RecipientID,
		token.ExpiresAt,
		token.CreatedAt,
	)
	if err != nil {
		return mapStorageErr(err, "insert action token")
	}
	return nil
}

// CreateBulkActionToken persists a bulk token and its ordered order set.
func (r *PgxActionTokenRepository) CreateBulkActionToken(ctx context.Context, token models.BulkActionToken) error {
	_, err := r.db.Exec(ctx, insertBulkTokenQuery,
		token.TokenID,
		token.TokenHash,
		token.RecipientID,
		token.ExpiresAt,
		token.CreatedAt,
	)
	if err != nil {
		return mapStorageErr(err, "insert bulk action token")
	}

	for i, orderID := range token.OrderIDs {
		if _, err := r.db.Exec(ctx, insertBulkTokenOrderQuery, token.TokenID, i, orderID); err != nil {
			return mapStorageErr(err, "insert bulk token order")
		}
	}
	return nil
}

// FindByTokenHash retrieves a single-order token regardless of state.
func (r *PgxActionTokenRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*models.ActionToken, error) {
	return r.scanActionToken(r.db.QueryRow(ctx, findActionTokenByHashQuery, tokenHash))
}

// ConsumeByHash atomically marks an unconsumed, unexpired token consumed.
// When the guarded update matches no row, a follow-up read distinguishes
// AlreadyUsed from Expired from NotFound.
func (r *PgxActionTokenRepository) ConsumeByHash(ctx context.Context, tokenHash string, consumedBy string, now time.Time) (*models.ActionToken, error) {
	token, err := r.scanActionToken(r.db.QueryRow(ctx, consumeActionTokenQuery, tokenHash, consumedBy, now))
	if err == nil {
		return token, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	existing, findErr := r.FindByTokenHash(ctx, tokenHash)
	if findErr != nil {
		return nil, findErr
	}
	if existing.ConsumedAt != nil {
		return nil, apperrors.ErrAlreadyUsed
	}
	return nil, apperrors.ErrExpired
}

func (r *PgxActionTokenRepository) scanActionToken(row pgx.Row) (*models.ActionToken, error) {
	var token models.ActionToken
	err := row.Scan(
		&token.TokenID,
		&token.TokenHash,
		&token.OrderID,
		&token.Intent,
		&token.RecipientID,
		&token.ExpiresAt,
		&token.ConsumedAt,
		&token.ConsumedBy,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, mapStorageErr(err, "scan action token")
	}
	return &token, nil
}

// LockBulkByHash retrieves a bulk token under SELECT ... FOR UPDATE and loads
// its ordered order set. The lock holds until the surrounding transaction ends.
func (r *PgxActionTokenRepository) LockBulkByHash(ctx context.Context, tokenHash string) (*models.BulkActionToken, error) {
	var token models.BulkActionToken
	err := r.db.QueryRow(ctx, lockBulkTokenByHashQuery, tokenHash).Scan(
		&token.TokenID,
		&token.TokenHash,
		&token.RecipientID,
		&token.ExpiresAt,
		&token.ConsumedAt,
		&token.ConsumedBy,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, mapStorageErr(err, "lock bulk action token")
	}

	rows, err := r.db.Query(ctx, listBulkTokenOrdersQuery, token.TokenID)
	if err != nil {
		return nil, mapStorageErr(err, "query bulk token orders")
	}
	defer rows.Close()

	for rows.Next() {
		var orderID string
		if err := rows.Scan(&orderID); err != nil {
			return nil, mapStorageErr(err, "scan bulk token order")
		}
		token.OrderIDs = append(token.OrderIDs, orderID)
	}
	if err := rows.Err(); err != nil {
		return nil, mapStorageErr(err, "iterate bulk token orders")
	}
	return &token, nil
}

// MarkBulkConsumed stamps a bulk token consumed.
func (r *PgxActionTokenRepository) MarkBulkConsumed(ctx context.Context, tokenID string, consumedBy string, now time.Time) error {
	tag, err := r.db.Exec(ctx, markBulkConsumedQuery, tokenID, consumedBy, now)
	if err != nil {
		return mapStorageErr(err, "mark bulk token consumed")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAlreadyUsed
	}
	return nil
}

// WithTx returns a repository bound to the given transaction.
func (r *PgxActionTokenRepository) WithTx(tx pgx.Tx) portsrepo.ActionTokenRepository {
	return &PgxActionTokenRepository{BaseRepository: r.BaseRepository.withTx(tx)}
}
