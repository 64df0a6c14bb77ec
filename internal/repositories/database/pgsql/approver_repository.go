package pgsql

import (
	"context"
	"errors"

	"github.com/freightdesk/freight_approval_app/internal/apperrors"
	portsrepo "github.com/freightdesk/freight_approval_app/internal/core/ports/repositories"
	"github.com/freightdesk/freight_approval_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxApproverRepository struct {
	BaseRepository
}

// newPgxApproverRepository creates a new instance of PgxApproverRepository
func newPgxApproverRepository(pool *pgxpool.Pool) portsrepo.ApproverRepository {
	return &PgxApproverRepository{BaseRepository: newBaseRepository(pool)}
}

const (
	findApproverByLevelQuery = `
		SELECT level, user_id, display_name, email
		FROM approvers
		WHERE level = $1
	`

	listApproversQuery = `
		SELECT level, user_id, display_name, email
		FROM approvers
		ORDER BY level ASC
	`
)

// FindByLevel returns the approver owning the level. ErrNotFound here means
// the chain terminates at that level, which callers treat as "no further
// action needed", not a fault.
func (r *PgxApproverRepository) FindByLevel(ctx context.Context, level int) (*models.Approver, error) {
	var approver models.Approver
	err := r.db.QueryRow(ctx, findApproverByLevelQuery, level).Scan(
		&approver.Level,
		&approver.UserID,
		&approver.DisplayName,
		&approver.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, mapStorageErr(err, "find approver by level")
	}
	return &approver, nil
}

// ListApprovers returns the full chain ordered by level.
func (r *PgxApproverRepository) ListApprovers(ctx context.Context) ([]models.Approver, error) {
	rows, err := r.db.Query(ctx, listApproversQuery)
	if err != nil {
		return nil, mapStorageErr(err, "query approvers")
	}
	defer rows.Close()

	approvers := []models.Approver{}
	for rows.Next() {
		var a models.Approver
		if err := rows.Scan(&a.Level, &a.UserID, &a.DisplayName, &a.Email); err != nil {
			return nil, mapStorageErr(err, "scan approver")
		}
		approvers = append(approvers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, mapStorageErr(err, "iterate approvers")
	}
	return approvers, nil
}
