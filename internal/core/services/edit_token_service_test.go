package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/freightdesk/freight_approval_app/internal/apperrors"
	"github.com/freightdesk/freight_approval_app/internal/core/domain"
	"github.com/freightdesk/freight_approval_app/internal/dto"
	"github.com/freightdesk/freight_approval_app/internal/models"
)

// --- Test Suite ---
type EditTokenServiceTestSuite struct {
	suite.Suite
	mockEditRepo    *MockEditTokenRepository
	mockOrderRepo   *MockOrderRepository
	mockAuditRepo   *MockAuditRepository
	mockApproverSvc *MockApproverSvc
	service         *editTokenService
}

func (suite *EditTokenServiceTestSuite) SetupTest() {
	suite.mockEditRepo = new(MockEditTokenRepository)
	suite.mockOrderRepo = new(MockOrderRepository)
	suite.mockAuditRepo = new(MockAuditRepository)
	suite.mockApproverSvc = new(MockApproverSvc)
	resolver := newOrderStateResolver(suite.mockOrderRepo, suite.mockAuditRepo, suite.mockApproverSvc, 5*time.Second)
	suite.service = newEditTokenService(suite.mockEditRepo, suite.mockOrderRepo, suite.mockAuditRepo, resolver, 5*time.Second)

	suite.mockEditRepo.On("Begin", mock.Anything).Return(nil, nil).Maybe()
	suite.mockEditRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.mockOrderRepo.On("Begin", mock.Anything).Return(nil, nil).Maybe()
	suite.mockOrderRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
}

// --- Create Test Cases ---

func (suite *EditTokenServiceTestSuite) TestCreateEditToken_Success() {
	ctx := context.Background()
	order := &models.Order{
		OrderID:     "order-1",
		RequesterID: "requester-1",
		Rejected:    true,
	}

	suite.mockOrderRepo.On("FindOrderByID", mock.Anything, "order-1").Return(order, nil).Once()
	suite.mockEditRepo.On("Create", mock.Anything, mock.MatchedBy(func(t models.EditRequestToken) bool {
		return t.OrderID == "order-1" && t.RequesterID == "requester-1" && t.Status == "CREATED" && t.TokenID != ""
	})).Return(nil).Once()

	token, err := suite.service.CreateEditToken(ctx, "order-1", "requester-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(token)
	suite.Equal(domain.EditTokenCreated, token.Status)
	suite.Equal("order-1", token.OrderID)

	suite.mockEditRepo.AssertExpectations(suite.T())
}

func (suite *EditTokenServiceTestSuite) TestCreateEditToken_OrderNotRejected() {
	ctx := context.Background()
	order := &models.Order{
		OrderID:     "order-1",
		RequesterID: "requester-1",
		Rejected:    false,
	}

	suite.mockOrderRepo.On("FindOrderByID", mock.Anything, "order-1").Return(order, nil).Once()

	token, err := suite.service.CreateEditToken(ctx, "order-1", "requester-1")

	suite.Require().Error(err)
	suite.Nil(token)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidTransition)

	suite.mockEditRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *EditTokenServiceTestSuite) TestCreateEditToken_WrongRequester() {
	ctx := context.Background()
	order := &models.Order{
		OrderID:     "order-1",
		RequesterID: "requester-1",
		Rejected:    true,
	}

	suite.mockOrderRepo.On("FindOrderByID", mock.Anything, "order-1").Return(order, nil).Once()

	token, err := suite.service.CreateEditToken(ctx, "order-1", "someone-else")

	suite.Require().Error(err)
	suite.Nil(token)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)

	suite.mockEditRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

// --- Approve Test Cases ---

func (suite *EditTokenServiceTestSuite) TestApproveEditToken_Success() {
	ctx := context.Background()
	token := &models.EditRequestToken{
		TokenID:     "token-1",
		OrderID:     "order-1",
		RequesterID: "requester-1",
		Status:      "CREATED",
	}
	order := &models.Order{
		OrderID:       "order-1",
		RequiredLevel: 3,
		ActApprov:     0,
		Rejected:      true,
	}

	suite.mockEditRepo.On("FindByID", mock.Anything, "token-1").Return(token, nil).Once()
	suite.mockOrderRepo.On("LockOrderByID", mock.Anything, "order-1").Return(order, nil).Once()
	suite.mockAuditRepo.On("QueryMaxLevel", mock.Anything, "order-1", "REJECTED").Return(1, nil).Once()
	suite.mockAuditRepo.On("DeleteByOrderAndKind", mock.Anything, "order-1", "REJECTED").Return(int64(1), nil).Once()
	suite.mockOrderRepo.On("UpdateApprovalState", mock.Anything, "order-1", 1, false, "system", mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockApproverSvc.On("ResolveApprover", mock.Anything, 2).Return(&domain.Approver{Level: 2, UserID: "approver-2"}, nil).Once()
	suite.mockOrderRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockEditRepo.On("TransitionStatus", mock.Anything, "token-1", "CREATED", "APPROVED", mock.MatchedBy(func(actor *string) bool {
		return actor != nil && *actor == "approver-2"
	}), mock.AnythingOfType("time.Time")).Return(nil).Once()

	result, err := suite.service.ApproveEditToken(ctx, "token-1", "approver-2")

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal(domain.EditTokenApproved, result.Status)
	suite.Equal("approver-2", result.ApprovedBy)

	suite.mockEditRepo.AssertExpectations(suite.T())
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *EditTokenServiceTestSuite) TestApproveEditToken_WrongApprover() {
	ctx := context.Background()
	token := &models.EditRequestToken{
		TokenID: "token-1",
		OrderID: "order-1",
		Status:  "CREATED",
	}
	order := &models.Order{
		OrderID:       "order-1",
		RequiredLevel: 3,
		ActApprov:     1,
	}

	suite.mockEditRepo.On("FindByID", mock.Anything, "token-1").Return(token, nil).Once()
	suite.mockOrderRepo.On("LockOrderByID", mock.Anything, "order-1").Return(order, nil).Once()
	suite.mockApproverSvc.On("ResolveApprover", mock.Anything, 2).Return(&domain.Approver{Level: 2, UserID: "approver-2"}, nil).Once()
	suite.mockOrderRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := suite.service.ApproveEditToken(ctx, "token-1", "not-the-approver")

	suite.Require().Error(err)
	suite.Nil(result)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)

	suite.mockEditRepo.AssertNotCalled(suite.T(), "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Validate Test Cases ---

func (suite *EditTokenServiceTestSuite) TestValidateEditToken_Success() {
	ctx := context.Background()
	token := &models.EditRequestToken{
		TokenID: "token-1",
		OrderID: "order-1",
		Status:  "APPROVED",
	}

	suite.mockEditRepo.On("FindByID", mock.Anything, "token-1").Return(token, nil).Once()
	suite.mockEditRepo.On("TransitionStatus", mock.Anything, "token-1", "APPROVED", "VALIDATED", (*string)(nil), mock.AnythingOfType("time.Time")).Return(nil).Once()

	result, err := suite.service.ValidateEditToken(ctx, "token-1", "order-1")

	suite.Require().NoError(err)
	suite.Equal(domain.EditTokenValidated, result.Status)
	suite.NotNil(result.ValidatedAt)

	suite.mockEditRepo.AssertExpectations(suite.T())
}

func (suite *EditTokenServiceTestSuite) TestValidateEditToken_OrderMismatch() {
	ctx := context.Background()
	token := &models.EditRequestToken{
		TokenID: "token-1",
		OrderID: "order-1",
		Status:  "APPROVED",
	}

	suite.mockEditRepo.On("FindByID", mock.Anything, "token-1").Return(token, nil).Once()

	result, err := suite.service.ValidateEditToken(ctx, "token-1", "other-order")

	suite.Require().Error(err)
	suite.Nil(result)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)

	suite.mockEditRepo.AssertNotCalled(suite.T(), "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EditTokenServiceTestSuite) TestValidateEditToken_SkippedApprovalFails() {
	ctx := context.Background()
	token := &models.EditRequestToken{
		TokenID: "token-1",
		OrderID: "order-1",
		Status:  "CREATED",
	}

	suite.mockEditRepo.On("FindByID", mock.Anything, "token-1").Return(token, nil).Once()
	suite.mockEditRepo.On("TransitionStatus", mock.Anything, "token-1", "APPROVED", "VALIDATED", (*string)(nil), mock.AnythingOfType("time.Time")).Return(apperrors.ErrInvalidTransition).Once()

	result, err := suite.service.ValidateEditToken(ctx, "token-1", "order-1")

	suite.Require().Error(err)
	suite.Nil(result)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidTransition)
}

func (suite *EditTokenServiceTestSuite) TestMarkEditTokenUsed() {
	ctx := context.Background()

	suite.mockEditRepo.On("TransitionStatus", mock.Anything, "token-1", "VALIDATED", "USED", (*string)(nil), mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.MarkEditTokenUsed(ctx, "token-1")

	suite.Require().NoError(err)
	suite.mockEditRepo.AssertExpectations(suite.T())
}

// --- UpdateOrder Test Cases ---

func updateOrderRequest() dto.UpdateOrderRequest {
	return dto.UpdateOrderRequest{
		OrderID: "order-1",
		TokenID: "token-1",
		CurrentData: dto.OrderData{
			Plant:           "HAM-01",
			Carrier:         "NorthSea Lines",
			Description:     "Container haulage, corrected weight class",
			Amount:          decimal.NewFromInt(1480),
			CurrencyCode:    "EUR",
			CorrectiveNotes: "fixed the weight class and the carrier rate",
		},
	}
}

func (suite *EditTokenServiceTestSuite) TestUpdateOrder_Success() {
	ctx := context.Background()
	req := updateOrderRequest()
	token := &models.EditRequestToken{
		TokenID:     "token-1",
		OrderID:     "order-1",
		RequesterID: "requester-1",
		Status:      "VALIDATED",
	}
	order := &models.Order{
		OrderID:       "order-1",
		RequesterID:   "requester-1",
		RequiredLevel: 3,
		ActApprov:     1,
	}

	suite.mockEditRepo.On("FindByID", mock.Anything, "token-1").Return(token, nil).Once()
	suite.mockEditRepo.On("TransitionStatus", mock.Anything, "token-1", "VALIDATED", "USED", (*string)(nil), mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockOrderRepo.On("LockOrderByID", mock.Anything, "order-1").Return(order, nil).Once()
	suite.mockApproverSvc.On("ResolveApprover", mock.Anything, 2).Return(&domain.Approver{Level: 2, UserID: "approver-2"}, nil).Once()
	suite.mockOrderRepo.On("UpdateOrderFields", mock.Anything, mock.MatchedBy(func(o models.Order) bool {
		return o.OrderID == "order-1" && o.Plant == "HAM-01" && o.Amount.Equal(decimal.NewFromInt(1480)) && o.LastUpdatedBy == "requester-1"
	})).Return(nil).Once()
	suite.mockOrderRepo.On("SaveCorrectiveAction", mock.Anything, mock.MatchedBy(func(a models.CorrectiveAction) bool {
		return a.OrderID == "order-1" && a.EditTokenID == "token-1" && a.Summary == "fixed the weight class and the carrier rate"
	})).Return(nil).Once()
	suite.mockAuditRepo.On("Append", mock.Anything, mock.MatchedBy(func(e models.AuditEntry) bool {
		return e.OrderID == "order-1" && e.Kind == "EDITED" && e.LevelReached == 1 && e.ActorID == "requester-1"
	})).Return(nil).Once()
	suite.mockEditRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	err := suite.service.UpdateOrder(ctx, req, "requester-1")

	suite.Require().NoError(err)
	suite.mockEditRepo.AssertExpectations(suite.T())
	suite.mockOrderRepo.AssertExpectations(suite.T())
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *EditTokenServiceTestSuite) TestUpdateOrder_TokenAlreadyUsed() {
	ctx := context.Background()
	req := updateOrderRequest()
	token := &models.EditRequestToken{
		TokenID:     "token-1",
		OrderID:     "order-1",
		RequesterID: "requester-1",
		Status:      "USED",
	}

	suite.mockEditRepo.On("FindByID", mock.Anything, "token-1").Return(token, nil).Once()
	suite.mockEditRepo.On("TransitionStatus", mock.Anything, "token-1", "VALIDATED", "USED", (*string)(nil), mock.AnythingOfType("time.Time")).Return(apperrors.ErrInvalidTransition).Once()

	err := suite.service.UpdateOrder(ctx, req, "requester-1")

	suite.Require().Error(err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrAlreadyUsed)

	suite.mockOrderRepo.AssertNotCalled(suite.T(), "UpdateOrderFields", mock.Anything, mock.Anything)
	suite.mockEditRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *EditTokenServiceTestSuite) TestUpdateOrder_OrderApprovedWhileEditPending() {
	ctx := context.Background()
	req := updateOrderRequest()
	token := &models.EditRequestToken{
		TokenID:     "token-1",
		OrderID:     "order-1",
		RequesterID: "requester-1",
		Status:      "VALIDATED",
	}
	order := &models.Order{
		OrderID:       "order-1",
		RequesterID:   "requester-1",
		RequiredLevel: 2,
		ActApprov:     2,
	}

	suite.mockEditRepo.On("FindByID", mock.Anything, "token-1").Return(token, nil).Once()
	suite.mockEditRepo.On("TransitionStatus", mock.Anything, "token-1", "VALIDATED", "USED", (*string)(nil), mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockOrderRepo.On("LockOrderByID", mock.Anything, "order-1").Return(order, nil).Once()

	err := suite.service.UpdateOrder(ctx, req, "requester-1")

	suite.Require().Error(err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidTransition)

	suite.mockOrderRepo.AssertNotCalled(suite.T(), "UpdateOrderFields", mock.Anything, mock.Anything)
	suite.mockEditRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *EditTokenServiceTestSuite) TestUpdateOrder_WrongRequester() {
	ctx := context.Background()
	req := updateOrderRequest()
	token := &models.EditRequestToken{
		TokenID:     "token-1",
		OrderID:     "order-1",
		RequesterID: "requester-1",
		Status:      "VALIDATED",
	}

	suite.mockEditRepo.On("FindByID", mock.Anything, "token-1").Return(token, nil).Once()

	err := suite.service.UpdateOrder(ctx, req, "imposter")

	suite.Require().Error(err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)

	suite.mockEditRepo.AssertNotCalled(suite.T(), "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEditTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EditTokenServiceTestSuite))
}
