package services

import (
	"context"
	"errors"
	"time"

	"github.com/freightdesk/freight_approval_app/internal/apperrors"
	"github.com/freightdesk/freight_approval_app/internal/core/domain"
	portsrepo "github.com/freightdesk/freight_approval_app/internal/core/ports/repositories"
	portssvc "github.com/freightdesk/freight_approval_app/internal/core/ports/services"
	"github.com/freightdesk/freight_approval_app/internal/utils/mapping"
)

// approverDirectoryService resolves approval levels against the static
// approver directory. Pure reads, no side effects.
type approverDirectoryService struct {
	BaseService
	approverRepo portsrepo.ApproverRepository
}

// NewApproverDirectoryService creates the directory service.
func NewApproverDirectoryService(approverRepo portsrepo.ApproverRepository, dbTimeout time.Duration) portssvc.ApproverDirectorySvc {
	return &approverDirectoryService{
		BaseService:  BaseService{DBTimeout: dbTimeout},
		approverRepo: approverRepo,
	}
}

var _ portssvc.ApproverDirectorySvc = (*approverDirectoryService)(nil)

// ResolveApprover returns the approver owning the level, or (nil, nil) when
// the chain terminates there.
func (s *approverDirectoryService) ResolveApprover(ctx context.Context, level int) (*domain.Approver, error) {
	if level < 1 {
		return nil, apperrors.ErrValidation
	}
	ctx, cancel := s.boundedCtx(ctx)
	defer cancel()

	model, err := s.approverRepo.FindByLevel(ctx, level)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Top of the hierarchy: no further action needed.
			return nil, nil
		}
		return nil, err
	}
	approver := mapping.ToDomainApprover(*model)
	return &approver, nil
}

// ListApprovers returns the full chain ordered by level.
func (s *approverDirectoryService) ListApprovers(ctx context.Context) ([]domain.Approver, error) {
	ctx, cancel := s.boundedCtx(ctx)
	defer cancel()

	ms, err := s.approverRepo.ListApprovers(ctx)
	if err != nil {
		return nil, err
	}
	approvers := make([]domain.Approver, len(ms))
	for i, m := range ms {
		approvers[i] = mapping.ToDomainApprover(m)
	}
	return approvers, nil
}
