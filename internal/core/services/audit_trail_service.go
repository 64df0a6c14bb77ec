package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/freightdesk/freight_approval_app/internal/apperrors"
	"github.com/freightdesk/freight_approval_app/internal/core/domain"
	portsrepo "github.com/freightdesk/freight_approval_app/internal/core/ports/repositories"
	portssvc "github.com/freightdesk/freight_approval_app/internal/core/ports/services"
	"github.com/freightdesk/freight_approval_app/internal/models"
	"github.com/freightdesk/freight_approval_app/internal/utils/mapping"
)

const defaultAuditPageSize = 50

// auditTrailService exposes the append-only approval audit log.
type auditTrailService struct {
	BaseService
	auditRepo portsrepo.AuditRepositoryFacade
}

// NewAuditTrailService creates the audit trail service.
func NewAuditTrailService(auditRepo portsrepo.AuditRepositoryFacade, dbTimeout time.Duration) portssvc.AuditTrailSvcFacade {
	return &auditTrailService{
		BaseService: BaseService{DBTimeout: dbTimeout},
		auditRepo:   auditRepo,
	}
}

var _ portssvc.AuditTrailSvcFacade = (*auditTrailService)(nil)

// Append records one state-changing event.
func (s *auditTrailService) Append(ctx context.Context, entry domain.AuditEntry) error {
	if entry.OrderID == "" || entry.ActorID == "" {
		return apperrors.ErrValidation
	}
	ctx, cancel := s.boundedCtx(ctx)
	defer cancel()

	model := models.AuditEntry{
		AuditID:      entry.AuditID,
		OrderID:      entry.OrderID,
		ActorID:      entry.ActorID,
		Kind:         string(entry.Kind),
		LevelReached: entry.LevelReached,
		Comment:      entry.Comment,
		RecordedAt:   entry.RecordedAt,
	}
	if model.AuditID == "" {
		model.AuditID = uuid.NewString()
	}
	if model.RecordedAt.IsZero() {
		model.RecordedAt = time.Now().UTC()
	}
	return s.auditRepo.Append(ctx, model)
}

// ListByOrder returns an order's trail oldest-first with token pagination.
func (s *auditTrailService) ListByOrder(ctx context.Context, orderID string, limit int, nextToken *string) ([]domain.AuditEntry, *string, error) {
	if limit <= 0 {
		limit = defaultAuditPageSize
	}
	ctx, cancel := s.boundedCtx(ctx)
	defer cancel()

	ms, newToken, err := s.auditRepo.ListByOrder(ctx, orderID, limit, nextToken)
	if err != nil {
		return nil, nil, err
	}
	return mapping.ToDomainAuditEntrySlice(ms), newToken, nil
}
