package repositories

import (
	"context"

	"github.com/freightdesk/freight_approval_app/internal/models"
)

// ApproverRepository defines read access to the approver directory.
// The directory is static reference data; there are no write operations.
type ApproverRepository interface {
	// FindByLevel returns the approver owning the given level, or
	// apperrors.ErrNotFound when the chain terminates there.
	FindByLevel(ctx context.Context, level int) (*models.Approver, error)

	// ListApprovers returns the full chain ordered by level.
	ListApprovers(ctx context.Context) ([]models.Approver, error)
}
