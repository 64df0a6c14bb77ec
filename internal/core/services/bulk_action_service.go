package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/freightdesk/freight_approval_app/internal/apperrors"
	"github.com/freightdesk/freight_approval_app/internal/core/domain"
	"github.com/freightdesk/freight_approval_app/internal/utils"
)

// ApplyBulk consumes a bulk token and applies the caller-chosen intent to
// every order in scope. The token row stays locked for the duration, so a
// concurrent redeemer blocks and then observes AlreadyUsed. Each order runs
// in its own transaction: a failure on one order is recorded and processing
// continues with the next, never aborting the whole batch.
func (s *actionTokenService) ApplyBulk(ctx context.Context, plaintext string, intent domain.ActionIntent) (*domain.BulkResult, error) {
	if plaintext == "" {
		return nil, apperrors.ErrValidation
	}
	if intent != domain.IntentApprove && intent != domain.IntentReject {
		return nil, apperrors.ErrValidation
	}
	tokenHash := utils.HashToken(plaintext)

	tokenCtx, cancel := s.boundedCtx(ctx)
	defer cancel()

	tx, err := s.tokenRepo.Begin(tokenCtx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = s.tokenRepo.Rollback(tokenCtx, tx)
	}()

	tokRepo := s.tokenRepo.WithTx(tx)
	token, err := tokRepo.LockBulkByHash(tokenCtx, tokenHash)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if token.ConsumedAt != nil {
		return nil, apperrors.ErrAlreadyUsed
	}
	if now.After(token.ExpiresAt) {
		return nil, apperrors.ErrExpired
	}

	result := &domain.BulkResult{
		Total:          len(token.OrderIDs),
		PerOrderErrors: []domain.PerOrderError{},
	}
	for _, orderID := range token.OrderIDs {
		if err := s.applyOne(ctx, orderID, token.RecipientID, intent); err != nil {
			result.Failed++
			result.PerOrderErrors = append(result.PerOrderErrors, domain.PerOrderError{
				OrderID: orderID,
				Reason:  bulkFailureReason(err),
			})
			s.LogWarn(ctx, "bulk action failed for order",
				slog.String("order_id", orderID),
				slog.String("intent", string(intent)),
				slog.String("reason", err.Error()))
			continue
		}
		result.Successful++
	}

	// The token is consumed exactly once, after every order was attempted,
	// regardless of the per-order outcome mix.
	if err := tokRepo.MarkBulkConsumed(tokenCtx, token.TokenID, token.RecipientID, now); err != nil {
		return nil, err
	}
	if err := s.tokenRepo.Commit(tokenCtx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "bulk action token redeemed",
		slog.String("intent", string(intent)),
		slog.Int("total", result.Total),
		slog.Int("successful", result.Successful),
		slog.Int("failed", result.Failed))
	return result, nil
}

// applyOne applies the intent to a single order in an independent transaction
// with its own deadline, so a lock conflict on one order cannot block or roll
// back another.
func (s *actionTokenService) applyOne(ctx context.Context, orderID, actorID string, intent domain.ActionIntent) error {
	ctx, cancel := s.boundedCtx(ctx)
	defer cancel()

	tx, err := s.resolver.orderRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = s.resolver.orderRepo.Rollback(ctx, tx)
	}()

	if _, err := s.resolver.applyDecisionInTx(ctx, tx, orderID, actorID, intent, "actioned via digest link"); err != nil {
		return err
	}
	return s.resolver.orderRepo.Commit(ctx, tx)
}

// bulkFailureReason maps an error to a caller-safe reason string. Internal
// identifiers beyond the order id the caller already knows are never exposed.
func bulkFailureReason(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return "order not found"
	case errors.Is(err, apperrors.ErrInvalidTransition):
		return "order is already in a terminal state"
	case errors.Is(err, apperrors.ErrIntegrityViolation):
		return "order data is inconsistent"
	case errors.Is(err, apperrors.ErrTransientStorage):
		return "temporary storage problem, retry later"
	default:
		return "could not apply the action"
	}
}
