package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/freightdesk/freight_approval_app/internal/apperrors"
	"github.com/freightdesk/freight_approval_app/internal/core/domain"
	portsrepo "github.com/freightdesk/freight_approval_app/internal/core/ports/repositories"
	portssvc "github.com/freightdesk/freight_approval_app/internal/core/ports/services"
	"github.com/freightdesk/freight_approval_app/internal/dto"
	"github.com/freightdesk/freight_approval_app/internal/models"
	"github.com/freightdesk/freight_approval_app/internal/utils/mapping"
)

// editTokenService drives the four-state edit request lifecycle and the
// guarded order update for rejected orders.
type editTokenService struct {
	BaseService
	editRepo  portsrepo.EditTokenRepositoryFacade
	orderRepo portsrepo.OrderRepositoryFacade
	auditRepo portsrepo.AuditRepositoryFacade
	resolver  *orderStateResolver
}

// newEditTokenService creates the edit token service. It shares the
// resolver's transactional internals, so wiring happens in the container.
func newEditTokenService(editRepo portsrepo.EditTokenRepositoryFacade, orderRepo portsrepo.OrderRepositoryFacade, auditRepo portsrepo.AuditRepositoryFacade, resolver *orderStateResolver, dbTimeout time.Duration) *editTokenService {
	return &editTokenService{
		BaseService: BaseService{DBTimeout: dbTimeout},
		editRepo:    editRepo,
		orderRepo:   orderRepo,
		auditRepo:   auditRepo,
		resolver:    resolver,
	}
}

var _ portssvc.EditTokenSvcFacade = (*editTokenService)(nil)

// CreateEditToken opens an edit request for a rejected order. Only the
// order's own requester may open one, and only while the order is rejected.
func (s *editTokenService) CreateEditToken(ctx context.Context, orderID string, requesterID string) (*domain.EditRequestToken, error) {
	if orderID == "" || requesterID == "" {
		return nil, apperrors.ErrValidation
	}
	ctx, cancel := s.boundedCtx(ctx)
	defer cancel()

	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.RequesterID != requesterID {
		return nil, fmt.Errorf("order belongs to another requester: %w", apperrors.ErrValidation)
	}
	if !order.Rejected {
		return nil, fmt.Errorf("order %s is not rejected: %w", orderID, apperrors.ErrInvalidTransition)
	}

	model := models.EditRequestToken{
		TokenID:     uuid.NewString(),
		OrderID:     orderID,
		RequesterID: requesterID,
		Status:      string(domain.EditTokenCreated),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.editRepo.Create(ctx, model); err != nil {
		return nil, err
	}
	token := mapping.ToDomainEditRequestToken(model)
	return &token, nil
}

// ApproveEditToken records the next approver's authorization. The acting user
// must be the approver the resolver reports for the order; resolving also
// reactivates the rejected order so the chain can continue after the edit.
func (s *editTokenService) ApproveEditToken(ctx context.Context, tokenID string, approverID string) (*domain.EditRequestToken, error) {
	if tokenID == "" || approverID == "" {
		return nil, apperrors.ErrValidation
	}
	ctx, cancel := s.boundedCtx(ctx)
	defer cancel()

	token, err := s.editRepo.FindByID(ctx, tokenID)
	if err != nil {
		return nil, err
	}

	res, err := s.resolver.Resolve(ctx, token.OrderID)
	if err != nil {
		return nil, err
	}
	if res.NextApprover == nil || res.NextApprover.UserID != approverID {
		return nil, fmt.Errorf("user is not the pending approver for this order: %w", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	if err := s.editRepo.TransitionStatus(ctx, tokenID, string(domain.EditTokenCreated), string(domain.EditTokenApproved), &approverID, now); err != nil {
		return nil, err
	}

	token.Status = string(domain.EditTokenApproved)
	token.ApprovedBy = &approverID
	token.ApprovedAt = &now
	result := mapping.ToDomainEditRequestToken(*token)
	return &result, nil
}

// ValidateEditToken confirms the token against the order the requester is
// looking at.
func (s *editTokenService) ValidateEditToken(ctx context.Context, tokenID string, orderID string) (*domain.EditRequestToken, error) {
	if tokenID == "" || orderID == "" {
		return nil, apperrors.ErrValidation
	}
	ctx, cancel := s.boundedCtx(ctx)
	defer cancel()

	token, err := s.editRepo.FindByID(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	if token.OrderID != orderID {
		return nil, fmt.Errorf("token is bound to a different order: %w", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	if err := s.editRepo.TransitionStatus(ctx, tokenID, string(domain.EditTokenApproved), string(domain.EditTokenValidated), nil, now); err != nil {
		return nil, err
	}

	token.Status = string(domain.EditTokenValidated)
	token.ValidatedAt = &now
	result := mapping.ToDomainEditRequestToken(*token)
	return &result, nil
}

// MarkEditTokenUsed finalizes a token after a durable save.
func (s *editTokenService) MarkEditTokenUsed(ctx context.Context, tokenID string) error {
	if tokenID == "" {
		return apperrors.ErrValidation
	}
	ctx, cancel := s.boundedCtx(ctx)
	defer cancel()

	return s.editRepo.TransitionStatus(ctx, tokenID, string(domain.EditTokenValidated), string(domain.EditTokenUsed), nil, time.Now().UTC())
}

// UpdateOrder applies the corrected order data. Token consumption, scenario
// re-resolution, the field update, the corrective-action sub-record and the
// EDITED audit entry commit as one transaction; re-resolving under the order
// row lock detects an approval or rejection racing with the edit.
func (s *editTokenService) UpdateOrder(ctx context.Context, req dto.UpdateOrderRequest, actorID string) error {
	if req.OrderID == "" || req.TokenID == "" || actorID == "" {
		return apperrors.ErrValidation
	}
	ctx, cancel := s.boundedCtx(ctx)
	defer cancel()

	tx, err := s.editRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = s.editRepo.Rollback(ctx, tx)
	}()

	editRepo := s.editRepo.WithTx(tx)
	token, err := editRepo.FindByID(ctx, req.TokenID)
	if err != nil {
		return err
	}
	if token.OrderID != req.OrderID {
		return fmt.Errorf("token is bound to a different order: %w", apperrors.ErrValidation)
	}
	if token.RequesterID != actorID {
		return fmt.Errorf("token belongs to another requester: %w", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	// Consume first: an already-used token fails here with no mutation done.
	if err := editRepo.TransitionStatus(ctx, req.TokenID, string(domain.EditTokenValidated), string(domain.EditTokenUsed), nil, now); err != nil {
		if errors.Is(err, apperrors.ErrInvalidTransition) && token.Status == string(domain.EditTokenUsed) {
			return fmt.Errorf("edit token %s was already used: %w", req.TokenID, apperrors.ErrAlreadyUsed)
		}
		return err
	}

	res, err := s.resolver.resolveInTx(ctx, tx, req.OrderID)
	if err != nil {
		return err
	}
	if res.Scenario == domain.ScenarioFullyApproved {
		return fmt.Errorf("order %s was approved while the edit was pending: %w", req.OrderID, apperrors.ErrInvalidTransition)
	}

	ordRepo := s.orderRepo.WithTx(tx)
	if err := ordRepo.UpdateOrderFields(ctx, models.Order{
		OrderID:      req.OrderID,
		Plant:        req.CurrentData.Plant,
		Carrier:      req.CurrentData.Carrier,
		Description:  req.CurrentData.Description,
		Amount:       req.CurrentData.Amount,
		CurrencyCode: req.CurrentData.CurrencyCode,
		AuditFields: models.AuditFields{
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}); err != nil {
		return err
	}

	if err := ordRepo.SaveCorrectiveAction(ctx, models.CorrectiveAction{
		CorrectiveActionID: uuid.NewString(),
		OrderID:            req.OrderID,
		EditTokenID:        req.TokenID,
		Summary:            req.CurrentData.CorrectiveNotes,
		AuditFields: models.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}); err != nil {
		return err
	}

	audRepo := s.auditRepo.WithTx(tx)
	if err := audRepo.Append(ctx, models.AuditEntry{
		AuditID:      uuid.NewString(),
		OrderID:      req.OrderID,
		ActorID:      actorID,
		Kind:         string(domain.AuditEdited),
		LevelReached: res.ActApprov,
		Comment:      req.CurrentData.CorrectiveNotes,
		RecordedAt:   now,
	}); err != nil {
		return err
	}

	if err := s.editRepo.Commit(ctx, tx); err != nil {
		return err
	}

	s.LogInfo(ctx, "order updated through edit request",
		slog.String("order_id", req.OrderID),
		slog.String("edit_token_id", req.TokenID))
	return nil
}
