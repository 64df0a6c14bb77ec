package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/freightdesk/freight_approval_app/internal/apperrors"
	"github.com/freightdesk/freight_approval_app/internal/core/domain"
	portsrepo "github.com/freightdesk/freight_approval_app/internal/core/ports/repositories"
	portssvc "github.com/freightdesk/freight_approval_app/internal/core/ports/services"
	"github.com/freightdesk/freight_approval_app/internal/middleware"
	"github.com/freightdesk/freight_approval_app/internal/models"
	"github.com/jackc/pgx/v5"
)

// orderStateResolver classifies orders into the three scenarios and performs
// rejection reactivation. It is the only component that mutates the approval
// counter.
type orderStateResolver struct {
	BaseService
	orderRepo   portsrepo.OrderRepositoryFacade
	auditRepo   portsrepo.AuditRepositoryFacade
	approverSvc portssvc.ApproverDirectorySvc
}

// NewOrderStateResolver creates the resolver service.
func NewOrderStateResolver(orderRepo portsrepo.OrderRepositoryFacade, auditRepo portsrepo.AuditRepositoryFacade, approverSvc portssvc.ApproverDirectorySvc, dbTimeout time.Duration) portssvc.OrderStateResolverSvc {
	return newOrderStateResolver(orderRepo, auditRepo, approverSvc, dbTimeout)
}

func newOrderStateResolver(orderRepo portsrepo.OrderRepositoryFacade, auditRepo portsrepo.AuditRepositoryFacade, approverSvc portssvc.ApproverDirectorySvc, dbTimeout time.Duration) *orderStateResolver {
	return &orderStateResolver{
		BaseService: BaseService{DBTimeout: dbTimeout},
		orderRepo:   orderRepo,
		auditRepo:   auditRepo,
		approverSvc: approverSvc,
	}
}

var _ portssvc.OrderStateResolverSvc = (*orderStateResolver)(nil)

// Resolve runs the scenario algorithm in its own transaction. Reactivation of
// a rejected order (audit cleanup plus counter restore) commits atomically
// with the resolution that triggered it.
func (s *orderStateResolver) Resolve(ctx context.Context, orderID string) (*domain.Resolution, error) {
	ctx, cancel := s.boundedCtx(ctx)
	defer cancel()

	tx, err := s.orderRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = s.orderRepo.Rollback(ctx, tx)
	}()

	res, err := s.resolveInTx(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return res, nil
}

// resolveInTx is the scenario algorithm proper, evaluated in fixed order on
// repositories bound to the caller's transaction. The order row stays locked
// until that transaction ends.
func (s *orderStateResolver) resolveInTx(ctx context.Context, tx pgx.Tx, orderID string) (*domain.Resolution, error) {
	ordRepo := s.orderRepo.WithTx(tx)
	audRepo := s.auditRepo.WithTx(tx)

	order, err := ordRepo.LockOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	res := &domain.Resolution{
		OrderID:       orderID,
		ActApprov:     order.ActApprov,
		RequiredLevel: order.RequiredLevel,
	}

	if order.Rejected {
		// Reactivation: recover the highest level reached before the
		// rejection and remove the rejection entries, as one atomic unit
		// with the counter write.
		maxLevel, err := audRepo.QueryMaxLevel(ctx, orderID, string(domain.AuditRejected))
		if err != nil {
			return nil, err
		}
		removed, err := audRepo.DeleteByOrderAndKind(ctx, orderID, string(domain.AuditRejected))
		if err != nil {
			return nil, err
		}
		actor := callerOrSystem(ctx)
		if err := ordRepo.UpdateApprovalState(ctx, orderID, maxLevel, false, actor, time.Now().UTC()); err != nil {
			return nil, err
		}
		s.LogInfo(ctx, "order reactivated",
			slog.String("order_id", orderID),
			slog.Int("recovered_level", maxLevel),
			slog.Int64("rejection_entries_removed", removed))
		res.ActApprov = maxLevel
		res.Reactivated = true
	}

	if res.ActApprov > order.RequiredLevel {
		err := fmt.Errorf("order %s: approval counter %d above required level %d: %w",
			orderID, res.ActApprov, order.RequiredLevel, apperrors.ErrIntegrityViolation)
		s.LogError(ctx, err, "approval counter out of bounds", slog.String("order_id", orderID))
		return nil, err
	}

	if res.ActApprov == order.RequiredLevel {
		res.Scenario = domain.ScenarioFullyApproved
		return res, nil
	}

	res.Scenario = domain.ScenarioInProgress
	if order.Rejected {
		res.Scenario = domain.ScenarioRejected
	}
	approver, err := s.approverSvc.ResolveApprover(ctx, res.ActApprov+1)
	if err != nil {
		return nil, err
	}
	if approver == nil {
		// The chain ends before the required level; still in progress, just
		// nobody to notify.
		s.LogWarn(ctx, "no approver configured for next level",
			slog.String("order_id", orderID),
			slog.Int("level", res.ActApprov+1))
	}
	res.NextApprover = approver
	return res, nil
}

// applyDecisionInTx resolves the order inside the caller's transaction and
// applies an approve/reject decision on top of the resolved state. Used by
// token redemption so that token consumption and the order mutation commit
// together.
func (s *orderStateResolver) applyDecisionInTx(ctx context.Context, tx pgx.Tx, orderID, actorID string, intent domain.ActionIntent, comment string) (*domain.Resolution, error) {
	res, err := s.resolveInTx(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}
	if res.Scenario == domain.ScenarioFullyApproved {
		return nil, fmt.Errorf("order %s is already fully approved: %w", orderID, apperrors.ErrInvalidTransition)
	}

	ordRepo := s.orderRepo.WithTx(tx)
	audRepo := s.auditRepo.WithTx(tx)
	now := time.Now().UTC()

	switch intent {
	case domain.IntentApprove:
		newLevel := res.ActApprov + 1
		if err := ordRepo.UpdateApprovalState(ctx, orderID, newLevel, false, actorID, now); err != nil {
			return nil, err
		}
		if err := audRepo.Append(ctx, models.AuditEntry{
			AuditID:      uuid.NewString(),
			OrderID:      orderID,
			ActorID:      actorID,
			Kind:         string(domain.AuditApproved),
			LevelReached: newLevel,
			Comment:      comment,
			RecordedAt:   now,
		}); err != nil {
			return nil, err
		}
		res.ActApprov = newLevel
		res.NextApprover = nil
		res.Scenario = domain.ScenarioInProgress
		if newLevel == res.RequiredLevel {
			res.Scenario = domain.ScenarioFullyApproved
		} else {
			approver, err := s.approverSvc.ResolveApprover(ctx, newLevel+1)
			if err != nil {
				return nil, err
			}
			res.NextApprover = approver
		}
		return res, nil

	case domain.IntentReject:
		if err := ordRepo.UpdateApprovalState(ctx, orderID, res.ActApprov, true, actorID, now); err != nil {
			return nil, err
		}
		if err := audRepo.Append(ctx, models.AuditEntry{
			AuditID:      uuid.NewString(),
			OrderID:      orderID,
			ActorID:      actorID,
			Kind:         string(domain.AuditRejected),
			LevelReached: res.ActApprov,
			Comment:      comment,
			RecordedAt:   now,
		}); err != nil {
			return nil, err
		}
		res.Scenario = domain.ScenarioRejected
		res.NextApprover = nil
		return res, nil
	}

	return nil, fmt.Errorf("unknown action intent %q: %w", intent, apperrors.ErrValidation)
}

// callerOrSystem returns the authenticated caller id from the context, or
// "system" for flows with no session (token links, internal reactivation).
func callerOrSystem(ctx context.Context) string {
	if userID, ok := middleware.GetUserIDFromCtx(ctx); ok {
		return userID
	}
	return "system"
}
