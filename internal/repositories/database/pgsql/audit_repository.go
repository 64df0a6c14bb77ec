package pgsql

import (
	"context"

	"github.com/freightdesk/freight_approval_app/internal/apperrors"
	portsrepo "github.com/freightdesk/freight_approval_app/internal/core/ports/repositories"
	"github.com/freightdesk/freight_approval_app/internal/models"
	"github.com/freightdesk/freight_approval_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new instance of PgxAuditRepository
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{BaseRepository: newBaseRepository(pool)}
}

const (
	selectAuditFields = `
		audit_id, order_id, actor_id, kind, level_reached, comment, recorded_at
	`

	insertAuditQuery = `
		INSERT INTO audit_entries (
			audit_id, order_id, actor_id, kind, level_reached, comment, recorded_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	queryMaxLevelQuery = `
		SELECT COALESCE(MAX(level_reached), 0)
		FROM audit_entries
		WHERE order_id = $1 AND kind <> $2
	`

	deleteByOrderAndKindQuery = `
		DELETE FROM audit_entries
		WHERE order_id = $1 AND kind = $2
	`

	listByOrderQuery = `
		SELECT ` + selectAuditFields + `
		FROM audit_entries
		WHERE order_id = $1
		ORDER BY recorded_at ASC, audit_id ASC
		LIMIT $2
	`

	listByOrderAfterQuery = `
		SELECT ` + selectAuditFields + `
		FROM audit_entries
		WHERE order_id = $1 AND recorded_at > $2
		ORDER BY recorded_at ASC, audit_id ASC
		LIMIT $3
	`
)

// Append inserts one audit entry. The trail is the only durable record of
// approval progression, so insert failures always surface.
func (r *PgxAuditRepository) Append(ctx context.Context, entry models.AuditEntry) error {
	_, err := r.db.Exec(ctx, insertAuditQuery,
		entry.AuditID,
		entry.OrderID,
		entry.ActorID,
		entry.Kind,
		entry.LevelReached,
		entry.Comment,
		entry.RecordedAt,
	)
	if err != nil {
		return mapStorageErr(err, "append audit entry")
	}
	return nil
}

// QueryMaxLevel returns the maximum level_reached among the order's entries
// whose kind differs from excludeKind, or zero if none exist.
func (r *PgxAuditRepository) QueryMaxLevel(ctx context.Context, orderID string, excludeKind string) (int, error) {
	var maxLevel int
	err := r.db.QueryRow(ctx, queryMaxLevelQuery, orderID, excludeKind).Scan(&maxLevel)
	if err != nil {
		return 0, mapStorageErr(err, "query max audit level")
	}
	return maxLevel, nil
}

// DeleteByOrderAndKind removes entries of the given kind for the order. Used
// exclusively by reactivation's compensating deletion.
func (r *PgxAuditRepository) DeleteByOrderAndKind(ctx context.Context, orderID string, kind string) (int64, error) {
	tag, err := r.db.Exec(ctx, deleteByOrderAndKindQuery, orderID, kind)
	if err != nil {
		return 0, mapStorageErr(err, "delete audit entries")
	}
	return tag.RowsAffected(), nil
}

// ListByOrder returns the trail oldest-first with token pagination keyed on
// recorded_at.
func (r *PgxAuditRepository) ListByOrder(ctx context.Context, orderID string, limit int, nextToken *string) ([]models.AuditEntry, *string, error) {
	fetchLimit := limit + 1

	var rows pgx.Rows
	var err error
	if nextToken != nil && *nextToken != "" {
		after, decodeErr := pagination.DecodeDateBasedToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.ErrValidation
		}
		rows, err = r.db.Query(ctx, listByOrderAfterQuery, orderID, after, fetchLimit)
	} else {
		rows, err = r.db.Query(ctx, listByOrderQuery, orderID, fetchLimit)
	}
	if err != nil {
		return nil, nil, mapStorageErr(err, "query audit trail")
	}
	defer rows.Close()

	entries := []models.AuditEntry{}
	for rows.Next() {
		var e models.AuditEntry
		if err := rows.Scan(
			&e.AuditID,
			&e.OrderID,
			&e.ActorID,
			&e.Kind,
			&e.LevelReached,
			&e.Comment,
			&e.RecordedAt,
		); err != nil {
			return nil, nil, mapStorageErr(err, "scan audit entry")
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, mapStorageErr(err, "iterate audit entries")
	}

	var newNextToken *string
	if len(entries) > limit {
		entries = entries[:limit]
		token := pagination.EncodeDateBasedToken(entries[len(entries)-1].RecordedAt)
		newNextToken = &token
	}
	return entries, newNextToken, nil
}

// WithTx returns a repository bound to the given transaction.
func (r *PgxAuditRepository) WithTx(tx pgx.Tx) portsrepo.AuditRepository {
	return &PgxAuditRepository{BaseRepository: r.BaseRepository.withTx(tx)}
}
