package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/fintrack/fintrack_backend/internal/apperrors"
	"github.com/fintrack/fintrack_backend/internal/core/domain"
	portssvc "github.com/fintrack/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack/fintrack_backend/internal/core/services"
	"github.com/fintrack/fintrack_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo *MockTransactionRepository
	service     portssvc.TransactionSvcFacade
	userID      string
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewTransactionService(suite.mockTxnRepo, "VND")
	suite.userID = uuid.NewString()
}

func (suite *TransactionServiceTestSuite) TestCreateDraftRecordsPending() {
	var saved domain.Transaction
	suite.mockTxnRepo.On("SaveTransaction", mock.Anything, mock.AnythingOfType("domain.Transaction")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Transaction) }).
		Return(nil)

	txn, err := suite.service.CreateDraft(context.Background(), suite.userID, dto.CreateTransactionRequest{
		Amount:      decimal.NewFromInt(150000),
		Type:        domain.TypeDailyCashflow,
		Group:       domain.GroupExpenses,
		Description: "groceries",
	})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.StatusPending, saved.Status)
	assert.Equal(suite.T(), "VND", saved.CurrencyCode)
	assert.Empty(suite.T(), saved.DebitAccountID, "legs stay unresolved until confirmation")
	assert.False(suite.T(), saved.TransactionDate.IsZero(), "missing date defaults to now")
	assert.Equal(suite.T(), txn.TransactionID, saved.TransactionID)
}

func (suite *TransactionServiceTestSuite) TestCreateDraftKeepsExplicitDate() {
	backdated := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	suite.mockTxnRepo.On("SaveTransaction", mock.Anything, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.TransactionDate.Equal(backdated)
	})).Return(nil)

	_, err := suite.service.CreateDraft(context.Background(), suite.userID, dto.CreateTransactionRequest{
		Amount:          decimal.NewFromInt(150000),
		Type:            domain.TypeDailyCashflow,
		Group:           domain.GroupExpenses,
		TransactionDate: &backdated,
	})

	require.NoError(suite.T(), err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateDraftRejectsNonPositiveAmount() {
	_, err := suite.service.CreateDraft(context.Background(), suite.userID, dto.CreateTransactionRequest{
		Amount: decimal.NewFromInt(-5000),
		Type:   domain.TypeDailyCashflow,
		Group:  domain.GroupExpenses,
	})

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateDraftAllowsNegativeRevaluation() {
	suite.mockTxnRepo.On("SaveTransaction", mock.Anything, mock.Anything).Return(nil)

	_, err := suite.service.CreateDraft(context.Background(), suite.userID, dto.CreateTransactionRequest{
		Amount: decimal.NewFromInt(-250000),
		Type:   domain.TypeAssetRevaluation,
		Group:  domain.GroupTxnAssets,
	})

	assert.NoError(suite.T(), err, "revaluations carry signed amounts")
}

func (suite *TransactionServiceTestSuite) TestDeleteDraftRejectsConfirmedEntries() {
	confirmed := &domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        suite.userID,
		Status:        domain.StatusConfirmed,
	}
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, confirmed.TransactionID).Return(confirmed, nil)

	err := suite.service.DeleteDraft(context.Background(), suite.userID, confirmed.TransactionID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrConflict)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "DeleteDraft", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestDeleteDraftHidesOtherUsersEntries() {
	foreign := &domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        uuid.NewString(),
		Status:        domain.StatusPending,
	}
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, foreign.TransactionID).Return(foreign, nil)

	err := suite.service.DeleteDraft(context.Background(), suite.userID, foreign.TransactionID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestListTransactionsRejectsUnknownStatus() {
	_, err := suite.service.ListTransactions(context.Background(), suite.userID, dto.ListTransactionsParams{Status: "DRAFTY"})

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestListTransactionsPassesTokenThrough() {
	token := "eyJvZmZzZXQiOiJhIn0"
	suite.mockTxnRepo.On("ListTransactions", mock.Anything, suite.userID, domain.StatusConfirmed, 20, &token).
		Return([]domain.Transaction{{TransactionID: uuid.NewString()}}, "next-page", nil)

	resp, err := suite.service.ListTransactions(context.Background(), suite.userID, dto.ListTransactionsParams{
		Status:    "CONFIRMED",
		Limit:     20,
		NextToken: &token,
	})

	require.NoError(suite.T(), err)
	require.Len(suite.T(), resp.Transactions, 1)
	require.NotNil(suite.T(), resp.NextToken)
	assert.Equal(suite.T(), "next-page", *resp.NextToken)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
