package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/freightdesk/freight_approval_app/internal/apperrors"
	"github.com/freightdesk/freight_approval_app/internal/core/domain"
	portsrepo "github.com/freightdesk/freight_approval_app/internal/core/ports/repositories"
	portssvc "github.com/freightdesk/freight_approval_app/internal/core/ports/services"
	"github.com/freightdesk/freight_approval_app/internal/dto"
	"github.com/freightdesk/freight_approval_app/internal/utils/mapping"
)

// orderService handles order intake and reads. Approval state changes go
// through the resolver, never through here.
type orderService struct {
	BaseService
	orderRepo portsrepo.OrderRepositoryFacade
}

// NewOrderService creates the order intake service.
func NewOrderService(orderRepo portsrepo.OrderRepositoryFacade, dbTimeout time.Duration) portssvc.OrderSvcFacade {
	return &orderService{
		BaseService: BaseService{DBTimeout: dbTimeout},
		orderRepo:   orderRepo,
	}
}

var _ portssvc.OrderSvcFacade = (*orderService)(nil)

// CreateOrder registers a new freight expense order at approval level zero.
func (s *orderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest, creatorUserID string) (*domain.Order, error) {
	if creatorUserID == "" {
		return nil, apperrors.ErrValidation
	}
	if req.RequiredLevel < 1 {
		return nil, apperrors.ErrValidation
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.ErrValidation
	}

	now := time.Now().UTC()
	order := domain.Order{
		OrderID:       uuid.NewString(),
		RequesterID:   creatorUserID,
		Plant:         req.Plant,
		Carrier:       req.Carrier,
		Description:   req.Description,
		Amount:        req.Amount,
		CurrencyCode:  req.CurrencyCode,
		RequiredLevel: req.RequiredLevel,
		Status:        domain.StatusInProgress(0),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	ctx, cancel := s.boundedCtx(ctx)
	defer cancel()

	if err := s.orderRepo.CreateOrder(ctx, mapping.ToModelOrder(order)); err != nil {
		s.LogError(ctx, err, "failed to create order")
		return nil, err
	}
	return &order, nil
}

// GetOrderByID returns a single order.
func (s *orderService) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	if orderID == "" {
		return nil, apperrors.ErrValidation
	}
	ctx, cancel := s.boundedCtx(ctx)
	defer cancel()

	model, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order := mapping.ToDomainOrder(*model)
	return &order, nil
}
