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
	"github.com/freightdesk/freight_approval_app/internal/models"
	"github.com/freightdesk/freight_approval_app/internal/utils"
	"github.com/freightdesk/freight_approval_app/internal/utils/mapping"
)

const tokenSecretBytes = 32

// actionTokenService mints and redeems single and bulk action tokens. The
// bulk application path lives in bulk_action_service.go.
type actionTokenService struct {
	BaseService
	tokenRepo portsrepo.ActionTokenRepositoryFacade
	resolver  *orderStateResolver
}

// newActionTokenService creates the action token service. It shares the
// resolver's transactional internals, so wiring happens in the container.
func newActionTokenService(tokenRepo portsrepo.ActionTokenRepositoryFacade, resolver *orderStateResolver, dbTimeout time.Duration) *actionTokenService {
	return &actionTokenService{
		BaseService: BaseService{DBTimeout: dbTimeout},
		tokenRepo:   tokenRepo,
		resolver:    resolver,
	}
}

var _ portssvc.ActionTokenSvcFacade = (*actionTokenService)(nil)

// MintSingle creates a token for one order with a fixed intent. The returned
// plaintext goes into the notification link and is never stored.
func (s *actionTokenService) MintSingle(ctx context.Context, orderID string, intent domain.ActionIntent, recipientID string, ttl time.Duration) (string, *domain.ActionToken, error) {
	if orderID == "" || recipientID == "" {
		return "", nil, apperrors.ErrValidation
	}
	if intent != domain.IntentApprove && intent != domain.IntentReject {
		return "", nil, apperrors.ErrValidation
	}

	plaintext, err := utils.GenerateSecureRandomString(tokenSecretBytes)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token secret: %w", err)
	}

	now := time.Now().UTC()
	model := models.ActionToken{
		TokenID:     uuid.NewString(),
		TokenHash:   utils.HashToken(plaintext),
		OrderID:     orderID,
		Intent:      string(intent),
		RecipientID: recipientID,
		ExpiresAt:   now.Add(ttl),
		CreatedAt:   now,
	}

	ctx, cancel := s.boundedCtx(ctx)
	defer cancel()

	if err := s.tokenRepo.CreateActionToken(ctx, model); err != nil {
		return "", nil, err
	}
	token := mapping.ToDomainActionToken(model)
	return plaintext, &token, nil
}

// MintBulk creates a token spanning an ordered set of orders.
func (s *actionTokenService) MintBulk(ctx context.Context, orderIDs []string, recipientID string, ttl time.Duration) (string, *domain.BulkActionToken, error) {
	if len(orderIDs) == 0 || recipientID == "" {
		return "", nil, apperrors.ErrValidation
	}

	plaintext, err := utils.GenerateSecureRandomString(tokenSecretBytes)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token secret: %w", err)
	}

	now := time.Now().UTC()
	model := models.BulkActionToken{
		TokenID:     uuid.NewString(),
		TokenHash:   utils.HashToken(plaintext),
		RecipientID: recipientID,
		ExpiresAt:   now.Add(ttl),
		CreatedAt:   now,
		OrderIDs:    orderIDs,
	}

	ctx, cancel := s.boundedCtx(ctx)
	defer cancel()

	if err := s.tokenRepo.CreateBulkActionToken(ctx, model); err != nil {
		return "", nil, err
	}
	token := mapping.ToDomainBulkActionToken(model)
	return plaintext, &token, nil
}

// RedeemSingle consumes a single-order token and applies its fixed intent.
// Consumption and the order mutation commit in one transaction, so a second
// concurrent redemption either sees AlreadyUsed or nothing at all.
func (s *actionTokenService) RedeemSingle(ctx context.Context, plaintext string) (*domain.Resolution, domain.ActionIntent, error) {
	if plaintext == "" {
		return nil, "", apperrors.ErrValidation
	}
	tokenHash := utils.HashToken(plaintext)

	ctx, cancel := s.boundedCtx(ctx)
	defer cancel()

	tx, err := s.tokenRepo.Begin(ctx)
	if err != nil {
		return nil, "", err
	}
	defer func() {
		_ = s.tokenRepo.Rollback(ctx, tx)
	}()

	tokRepo := s.tokenRepo.WithTx(tx)
	existing, err := tokRepo.FindByTokenHash(ctx, tokenHash)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	token, err := tokRepo.ConsumeByHash(ctx, tokenHash, existing.RecipientID, now)
	if err != nil {
		return nil, "", err
	}

	intent := domain.ActionIntent(token.Intent)
	res, err := s.resolver.applyDecisionInTx(ctx, tx, token.OrderID, token.RecipientID, intent, "actioned via notification link")
	if err != nil {
		return nil, "", err
	}

	if err := s.tokenRepo.Commit(ctx, tx); err != nil {
		return nil, "", err
	}

	s.LogInfo(ctx, "action token redeemed",
		slog.String("order_id", token.OrderID),
		slog.String("intent", token.Intent),
		slog.String("actor", token.RecipientID))
	return res, intent, nil
}
