package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/freightdesk/freight_approval_app/internal/core/domain"
	portsrepo "github.com/freightdesk/freight_approval_app/internal/core/ports/repositories"
	portssvc "github.com/freightdesk/freight_approval_app/internal/core/ports/services"
	"github.com/freightdesk/freight_approval_app/internal/models"
)

// --- Mock OrderRepository ---
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, order models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*models.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) LockOrderByID(ctx context.Context, orderID string) (*models.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateApprovalState(ctx context.Context, orderID string, actApprov int, rejected bool, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, orderID, actApprov, rejected, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateOrderFields(ctx context.Context, order models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) SaveCorrectiveAction(ctx context.Context, action models.CorrectiveAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

func (m *MockOrderRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockOrderRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockOrderRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockOrderRepository) WithTx(tx pgx.Tx) portsrepo.OrderRepository {
	return m
}

var _ portsrepo.OrderRepositoryFacade = (*MockOrderRepository)(nil)

// --- Mock AuditRepository ---
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Append(ctx context.Context, entry models.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) QueryMaxLevel(ctx context.Context, orderID string, excludeKind string) (int, error) {
	args := m.Called(ctx, orderID, excludeKind)
	return args.Int(0), args.Error(1)
}

func (m *MockAuditRepository) DeleteByOrderAndKind(ctx context.Context, orderID string, kind string) (int64, error) {
	args := m.Called(ctx, orderID, kind)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAuditRepository) ListByOrder(ctx context.Context, orderID string, limit int, nextToken *string) ([]models.AuditEntry, *string, error) {
	args := m.Called(ctx, orderID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]models.AuditEntry), token, args.Error(2)
}

func (m *MockAuditRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockAuditRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAuditRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAuditRepository) WithTx(tx pgx.Tx) portsrepo.AuditRepository {
	return m
}

var _ portsrepo.AuditRepositoryFacade = (*MockAuditRepository)(nil)

// --- Mock ApproverRepository ---
type MockApproverRepository struct {
	mock.Mock
}

func (m *MockApproverRepository) FindByLevel(ctx context.Context, level int) (*models.Approver, error) {
	args := m.Called(ctx, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Approver), args.Error(1)
}

func (m *MockApproverRepository) ListApprovers(ctx context.Context) ([]models.Approver, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Approver), args.Error(1)
}

var _ portsrepo.ApproverRepository = (*MockApproverRepository)(nil)

// --- Mock ApproverDirectorySvc ---
type MockApproverSvc struct {
	mock.Mock
}

func (m *MockApproverSvc) ResolveApprover(ctx context.Context, level int) (*domain.Approver, error) {
	args := m.Called(ctx, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Approver), args.Error(1)
}

func (m *MockApproverSvc) ListApprovers(ctx context.Context) ([]domain.Approver, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Approver), args.Error(1)
}

var _ portssvc.ApproverDirectorySvc = (*MockApproverSvc)(nil)

// --- Mock ActionTokenRepository ---
type MockActionTokenRepository struct {
	mock.Mock
}

func (m *MockActionTokenRepository) CreateActionToken(ctx context.Context, token models.ActionToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockActionTokenRepository) CreateBulkActionToken(ctx context.Context, token models.BulkActionToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockActionTokenRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*models.ActionToken, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ActionToken), args.Error(1)
}

func (m *MockActionTokenRepository) ConsumeByHash(ctx context.Context, tokenHash string, consumedBy string, now time.Time) (*models.ActionToken, error) {
	args := m.Called(ctx, tokenHash, consumedBy, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ActionToken), args.Error(1)
}

func (m *MockActionTokenRepository) LockBulkByHash(ctx context.Context, tokenHash string) (*models.BulkActionToken, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BulkActionToken), args.Error(1)
}

func (m *MockActionTokenRepository) MarkBulkConsumed(ctx context.Context, tokenID string, consumedBy string, now time.Time) error {
	args := m.Called(ctx, tokenID, consumedBy, now)
	return args.Error(0)
}

func (m *MockActionTokenRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockActionTokenRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockActionTokenRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockActionTokenRepository) WithTx(tx pgx.Tx) portsrepo.ActionTokenRepository {
	return m
}

var _ portsrepo.ActionTokenRepositoryFacade = (*MockActionTokenRepository)(nil)

// --- Mock EditTokenRepository ---
type MockEditTokenRepository struct {
	mock.Mock
}

func (m *MockEditTokenRepository) Create(ctx context.Context, token models.EditRequestToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockEditTokenRepository) FindByID(ctx context.Context, tokenID string) (*models.EditRequestToken, error) {
	args := m.Called(ctx, tokenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EditRequestToken), args.Error(1)
}

func (m *MockEditTokenRepository) TransitionStatus(ctx context.Context, tokenID string, fromStatus, toStatus string, actorID *string, at time.Time) error {
	args := m.Called(ctx, tokenID, fromStatus, toStatus, actorID, at)
	return args.Error(0)
}

func (m *MockEditTokenRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockEditTokenRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockEditTokenRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockEditTokenRepository) WithTx(tx pgx.Tx) portsrepo.EditTokenRepository {
	return m
}

var _ portsrepo.EditTokenRepositoryFacade = (*MockEditTokenRepository)(nil)
