package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/freightdesk/freight_approval_app/internal/apperrors"
	"github.com/freightdesk/freight_approval_app/internal/core/domain"
	"github.com/freightdesk/freight_approval_app/internal/models"
)

// --- Test Suite ---
type AuditTrailServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAuditRepository
	service  *auditTrailService
}

func (suite *AuditTrailServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAuditRepository)
	suite.service = &auditTrailService{
		BaseService: BaseService{DBTimeout: 5 * time.Second},
		auditRepo:   suite.mockRepo,
	}
}

// --- Test Cases ---

func (suite *AuditTrailServiceTestSuite) TestAppend_FillsDefaults() {
	ctx := context.Background()
	entry := domain.AuditEntry{
		OrderID: "order-1",
		ActorID: "approver-1",
		Kind:    domain.AuditApproved,
	}

	suite.mockRepo.On("Append", mock.Anything, mock.MatchedBy(func(m models.AuditEntry) bool {
		return m.AuditID != "" && !m.RecordedAt.IsZero() && m.Kind == "APPROVED"
	})).Return(nil).Once()

	err := suite.service.Append(ctx, entry)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AuditTrailServiceTestSuite) TestAppend_MissingActor() {
	ctx := context.Background()
	entry := domain.AuditEntry{OrderID: "order-1"}

	err := suite.service.Append(ctx, entry)

	suite.Require().Error(err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)

	suite.mockRepo.AssertNotCalled(suite.T(), "Append", mock.Anything, mock.Anything)
}

func (suite *AuditTrailServiceTestSuite) TestListByOrder_DefaultLimit() {
	ctx := context.Background()
	ms := []models.AuditEntry{
		{AuditID: "a-1", OrderID: "order-1", Kind: "APPROVED", LevelReached: 1},
		{AuditID: "a-2", OrderID: "order-1", Kind: "REJECTED", LevelReached: 1},
	}
	nextToken := "opaque-token"

	suite.mockRepo.On("ListByOrder", mock.Anything, "order-1", 50, (*string)(nil)).Return(ms, &nextToken, nil).Once()

	entries, token, err := suite.service.ListByOrder(ctx, "order-1", 0, nil)

	suite.Require().NoError(err)
	suite.Require().Len(entries, 2)
	suite.Equal(domain.AuditApproved, entries[0].Kind)
	suite.Equal(domain.AuditRejected, entries[1].Kind)
	suite.Require().NotNil(token)
	suite.Equal("opaque-token", *token)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AuditTrailServiceTestSuite) TestListByOrder_RepoError() {
	ctx := context.Background()

	suite.mockRepo.On("ListByOrder", mock.Anything, "order-1", 10, (*string)(nil)).Return(nil, nil, assert.AnError).Once()

	entries, token, err := suite.service.ListByOrder(ctx, "order-1", 10, nil)

	suite.Require().Error(err)
	suite.Nil(entries)
	suite.Nil(token)
}

func TestAuditTrailServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuditTrailServiceTestSuite))
}
