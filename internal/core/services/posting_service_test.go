package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fintrack/fintrack_backend/internal/apperrors"
	"github.com/fintrack/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrack/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack/fintrack_backend/internal/core/services"
	"github.com/fintrack/fintrack_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, status, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) SaveAccountsInTx(ctx context.Context, tx pgx.Tx, accounts []domain.Account) error {
	args := m.Called(ctx, tx, accounts)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) IncrementBalancesInTx(ctx context.Context, tx pgx.Tx, balanceDeltas map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, balanceDeltas, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateInvestmentDetailsInTx(ctx context.Context, tx pgx.Tx, updates map[string]domain.InvestmentDetails, userID string, now time.Time) error {
	args := m.Called(ctx, tx, updates, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) IncrementPnLInTx(ctx context.Context, tx pgx.Tx, deltas map[string]domain.PnLDelta, userID string, now time.Time) error {
	args := m.Called(ctx, tx, deltas, userID, now)
	return args.Error(0)
}

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindPendingByIDs(ctx context.Context, userID string, transactionIDs []string) (map[string]domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, userID string, status domain.TransactionStatus, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, userID, status, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

func (m *MockTransactionRepository) ListTransactionsByAccount(ctx context.Context, userID string, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, userID, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteDraft(ctx context.Context, userID string, transactionID string) error {
	args := m.Called(ctx, userID, transactionID)
	return args.Error(0)
}

func (m *MockTransactionRepository) ConfirmTransactionsInTx(ctx context.Context, tx pgx.Tx, transactions []domain.Transaction) error {
	args := m.Called(ctx, tx, transactions)
	return args.Error(0)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) CommitLedgerBatch(ctx context.Context, batch domain.LedgerBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

// --- Mock ReactionNotifier ---
// Notifications arrive on a goroutine, so the mock signals through a channel.
type MockNotifier struct {
	notified chan domain.Transaction
}

var _ portssvc.ReactionNotifier = (*MockNotifier)(nil)

func newMockNotifier() *MockNotifier {
	return &MockNotifier{notified: make(chan domain.Transaction, 1)}
}

func (m *MockNotifier) NotifyLargestExpense(_ context.Context, txn domain.Transaction, _ domain.BatchSummary) {
	m.notified <- txn
}

// --- Test Suite Setup ---
type PostingServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockTxnRepo     *MockTransactionRepository
	mockLedgerRepo  *MockLedgerRepository
	notifier        *MockNotifier
	service         portssvc.PostingSvcFacade
	userID          string
	cashAccount     domain.Account
	fundAccount     domain.Account
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.notifier = newMockNotifier()
	suite.service = services.NewPostingService(
		suite.mockAccountRepo,
		suite.mockTxnRepo,
		suite.mockLedgerRepo,
		suite.notifier,
		150,
		"VND",
	)

	suite.userID = uuid.NewString()
	suite.cashAccount = domain.Account{
		AccountID:    uuid.NewString(),
		UserID:       suite.userID,
		Name:         domain.DefaultCashAccountName,
		Group:        domain.GroupAssets,
		Category:     domain.CategoryCash,
		CurrencyCode: "VND",
		Status:       domain.AccountActive,
		Balance:      decimal.NewFromInt(1000000),
	}
	suite.fundAccount = domain.Account{
		AccountID:    uuid.NewString(),
		UserID:       suite.userID,
		Name:         domain.DefaultFundAccountName,
		Group:        domain.GroupCapital,
		Category:     domain.CategoryEquityFund,
		CurrencyCode: "VND",
		Status:       domain.AccountActive,
		Balance:      decimal.NewFromInt(1000000),
	}
}

func (suite *PostingServiceTestSuite) pendingExpense(amount int64) domain.Transaction {
	return domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        suite.userID,
		Amount:        decimal.NewFromInt(amount),
		Type:          domain.TypeDailyCashflow,
		Group:         domain.GroupExpenses,
		Status:        domain.StatusPending,
		CurrencyCode:  "VND",
	}
}

func (suite *PostingServiceTestSuite) TestConfirmDailyExpenseMovesBothSides() {
	draft := suite.pendingExpense(200000)
	snapshot := []domain.Account{suite.cashAccount, suite.fundAccount}

	suite.mockTxnRepo.On("FindPendingByIDs", mock.Anything, suite.userID, []string{draft.TransactionID}).
		Return(map[string]domain.Transaction{draft.TransactionID: draft}, nil)
	suite.mockAccountRepo.On("ListAccounts", mock.Anything, suite.userID).Return(snapshot, nil)

	var committed domain.LedgerBatch
	suite.mockLedgerRepo.On("CommitLedgerBatch", mock.Anything, mock.AnythingOfType("domain.LedgerBatch")).
		Run(func(args mock.Arguments) { committed = args.Get(1).(domain.LedgerBatch) }).
		Return(nil)

	resp, err := suite.service.ConfirmTransactions(context.Background(), suite.userID, dto.ConfirmTransactionsRequest{
		TransactionIDs: []string{draft.TransactionID},
	})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, resp.ConfirmedCount)
	assert.Equal(suite.T(), []string{draft.TransactionID}, resp.ConfirmedIDs)
	assert.Empty(suite.T(), resp.CreatedAccountIDs)

	// The expense debits the fund and credits cash: both shrink by 200000.
	assert.True(suite.T(), committed.BalanceDeltas[suite.fundAccount.AccountID].Equal(decimal.NewFromInt(-200000)))
	assert.True(suite.T(), committed.BalanceDeltas[suite.cashAccount.AccountID].Equal(decimal.NewFromInt(-200000)))
	assert.Equal(suite.T(), 1, committed.UsageDelta)
	assert.Equal(suite.T(), time.Now().UTC().Format("2006-01"), committed.UsageMonth)

	require.Len(suite.T(), committed.Transactions, 1)
	confirmed := committed.Transactions[0]
	assert.Equal(suite.T(), domain.StatusConfirmed, confirmed.Status)
	assert.Equal(suite.T(), suite.fundAccount.AccountID, confirmed.DebitAccountID)
	assert.Equal(suite.T(), suite.cashAccount.AccountID, confirmed.CreditAccountID)

	// Post-commit figures reflect the applied deltas.
	assert.True(suite.T(), resp.Summary.TotalAssets.Equal(decimal.NewFromInt(800000)))
	assert.True(suite.T(), resp.Summary.NetWorth.Equal(decimal.NewFromInt(800000)))

	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestConfirmAssetBuyComputesWeightedAverage() {
	draft := domain.Transaction{
		TransactionID:     uuid.NewString(),
		UserID:            suite.userID,
		Amount:            decimal.NewFromInt(1005000),
		Type:              domain.TypeAssetBuy,
		Group:             domain.GroupTxnAssets,
		Status:            domain.StatusPending,
		TargetAccountName: "VNM Fund",
		Category:          domain.CategoryEquityFund,
		Units:             decimal.NewFromInt(10),
		Price:             decimal.NewFromInt(100000),
		Fees:              decimal.NewFromInt(5000),
		CurrencyCode:      "VND",
	}
	snapshot := []domain.Account{suite.cashAccount}

	suite.mockTxnRepo.On("FindPendingByIDs", mock.Anything, suite.userID, []string{draft.TransactionID}).
		Return(map[string]domain.Transaction{draft.TransactionID: draft}, nil)
	suite.mockAccountRepo.On("ListAccounts", mock.Anything, suite.userID).Return(snapshot, nil)

	var committed domain.LedgerBatch
	suite.mockLedgerRepo.On("CommitLedgerBatch", mock.Anything, mock.AnythingOfType("domain.LedgerBatch")).
		Run(func(args mock.Arguments) { committed = args.Get(1).(domain.LedgerBatch) }).
		Return(nil)

	resp, err := suite.service.ConfirmTransactions(context.Background(), suite.userID, dto.ConfirmTransactionsRequest{
		TransactionIDs: []string{draft.TransactionID},
	})

	require.NoError(suite.T(), err)
	require.Len(suite.T(), resp.CreatedAccountIDs, 1)
	assetID := resp.CreatedAccountIDs[0]

	// New accounts are inserted pristine; the batch's own deltas carry the state.
	require.Len(suite.T(), committed.NewAccounts, 1)
	assert.True(suite.T(), committed.NewAccounts[0].Balance.IsZero())
	assert.Nil(suite.T(), committed.NewAccounts[0].Investment)
	assert.Equal(suite.T(), "VNM Fund", committed.NewAccounts[0].Name)

	// avg = (10*100000 + 5000) / 10 = 100500
	inv, ok := committed.InvestmentUpdates[assetID]
	require.True(suite.T(), ok)
	assert.True(suite.T(), inv.TotalUnits.Equal(decimal.NewFromInt(10)))
	assert.True(suite.T(), inv.AvgPrice.Equal(decimal.NewFromInt(100500)), "got %s", inv.AvgPrice)

	// The asset absorbs the full outlay and cash pays it.
	assert.True(suite.T(), committed.BalanceDeltas[assetID].Equal(decimal.NewFromInt(1005000)))
	assert.True(suite.T(), committed.BalanceDeltas[suite.cashAccount.AccountID].Equal(decimal.NewFromInt(-1005000)))

	require.Len(suite.T(), committed.InvestmentLogs, 1)
	assert.Equal(suite.T(), domain.LotBuy, committed.InvestmentLogs[0].Action)
}

func (suite *PostingServiceTestSuite) TestConfirmAssetSellRoutesRealizedToLinkedFund() {
	asset := domain.Account{
		AccountID:    uuid.NewString(),
		UserID:       suite.userID,
		Name:         "VNM Fund",
		Group:        domain.GroupAssets,
		Category:     domain.CategoryEquityFund,
		CurrencyCode: "VND",
		Status:       domain.AccountActive,
		Balance:      decimal.NewFromInt(1005000),
		LinkedFundID: suite.fundAccount.AccountID,
		Investment: &domain.InvestmentDetails{
			TotalUnits: decimal.NewFromInt(10),
			AvgPrice:   decimal.NewFromInt(100500),
		},
	}
	draft := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        suite.userID,
		Amount:        decimal.NewFromInt(479000), // proceeds: 4*120000 - 1000
		Type:          domain.TypeAssetSell,
		Group:         domain.GroupTxnAssets,
		Status:        domain.StatusPending,
		AssetLinkID:   asset.AccountID,
		Units:         decimal.NewFromInt(4),
		Price:         decimal.NewFromInt(120000),
		Fees:          decimal.NewFromInt(1000),
		CurrencyCode:  "VND",
	}
	snapshot := []domain.Account{suite.cashAccount, suite.fundAccount, asset}

	suite.mockTxnRepo.On("FindPendingByIDs", mock.Anything, suite.userID, []string{draft.TransactionID}).
		Return(map[string]domain.Transaction{draft.TransactionID: draft}, nil)
	suite.mockAccountRepo.On("ListAccounts", mock.Anything, suite.userID).Return(snapshot, nil)

	var committed domain.LedgerBatch
	suite.mockLedgerRepo.On("CommitLedgerBatch", mock.Anything, mock.AnythingOfType("domain.LedgerBatch")).
		Run(func(args mock.Arguments) { committed = args.Get(1).(domain.LedgerBatch) }).
		Return(nil)

	_, err := suite.service.ConfirmTransactions(context.Background(), suite.userID, dto.ConfirmTransactionsRequest{
		TransactionIDs: []string{draft.TransactionID},
	})
	require.NoError(suite.T(), err)

	// realized = 4*(120000 - 100500) - 1000 = 77000, landing on the linked fund.
	pnl := committed.PnLDeltas[asset.AccountID]
	assert.True(suite.T(), pnl.Realized.Equal(decimal.NewFromInt(77000)), "got %s", pnl.Realized)
	assert.True(suite.T(), committed.BalanceDeltas[suite.fundAccount.AccountID].Equal(decimal.NewFromInt(77000)))

	// The double entry moves the proceeds from the asset into cash.
	assert.True(suite.T(), committed.BalanceDeltas[suite.cashAccount.AccountID].Equal(decimal.NewFromInt(479000)))
	assert.True(suite.T(), committed.BalanceDeltas[asset.AccountID].Equal(decimal.NewFromInt(-479000)))

	// Average cost survives the sell; only units shrink.
	inv := committed.InvestmentUpdates[asset.AccountID]
	assert.True(suite.T(), inv.TotalUnits.Equal(decimal.NewFromInt(6)))
	assert.True(suite.T(), inv.AvgPrice.Equal(decimal.NewFromInt(100500)))
}

func (suite *PostingServiceTestSuite) TestConfirmRejectsOversizedBatchBeforeAnyWork() {
	ids := make([]string, 151)
	for i := range ids {
		ids[i] = uuid.NewString()
	}

	_, err := suite.service.ConfirmTransactions(context.Background(), suite.userID, dto.ConfirmTransactionsRequest{TransactionIDs: ids})

	assert.ErrorIs(suite.T(), err, services.ErrBatchTooLarge)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	// No reads, no writes: the mocks had no expectations and saw no calls.
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestConfirmMissingDraftFailsWholeBatch() {
	draft := suite.pendingExpense(50000)
	missingID := uuid.NewString()

	suite.mockTxnRepo.On("FindPendingByIDs", mock.Anything, suite.userID, []string{draft.TransactionID, missingID}).
		Return(map[string]domain.Transaction{draft.TransactionID: draft}, nil)
	suite.mockAccountRepo.On("ListAccounts", mock.Anything, suite.userID).
		Return([]domain.Account{suite.cashAccount, suite.fundAccount}, nil)

	_, err := suite.service.ConfirmTransactions(context.Background(), suite.userID, dto.ConfirmTransactionsRequest{
		TransactionIDs: []string{draft.TransactionID, missingID},
	})

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "CommitLedgerBatch", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestCommitFailurePropagatesAndSkipsNotification() {
	draft := suite.pendingExpense(200000)

	suite.mockTxnRepo.On("FindPendingByIDs", mock.Anything, suite.userID, []string{draft.TransactionID}).
		Return(map[string]domain.Transaction{draft.TransactionID: draft}, nil)
	suite.mockAccountRepo.On("ListAccounts", mock.Anything, suite.userID).
		Return([]domain.Account{suite.cashAccount, suite.fundAccount}, nil)
	suite.mockLedgerRepo.On("CommitLedgerBatch", mock.Anything, mock.Anything).
		Return(errors.New("deadlock detected"))

	_, err := suite.service.ConfirmTransactions(context.Background(), suite.userID, dto.ConfirmTransactionsRequest{
		TransactionIDs: []string{draft.TransactionID},
	})

	require.Error(suite.T(), err)
	select {
	case <-suite.notifier.notified:
		suite.T().Fatal("notifier must not fire for a failed commit")
	case <-time.After(50 * time.Millisecond):
	}
}

func (suite *PostingServiceTestSuite) TestNotifierReceivesLargestExpense() {
	small := suite.pendingExpense(50000)
	large := suite.pendingExpense(200000)
	income := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        suite.userID,
		Amount:        decimal.NewFromInt(900000),
		Type:          domain.TypeDailyCashflow,
		Group:         domain.GroupIncome,
		Status:        domain.StatusPending,
		CurrencyCode:  "VND",
	}
	ids := []string{small.TransactionID, large.TransactionID, income.TransactionID}

	suite.mockTxnRepo.On("FindPendingByIDs", mock.Anything, suite.userID, ids).
		Return(map[string]domain.Transaction{
			small.TransactionID:  small,
			large.TransactionID:  large,
			income.TransactionID: income,
		}, nil)
	suite.mockAccountRepo.On("ListAccounts", mock.Anything, suite.userID).
		Return([]domain.Account{suite.cashAccount, suite.fundAccount}, nil)
	suite.mockLedgerRepo.On("CommitLedgerBatch", mock.Anything, mock.Anything).Return(nil)

	resp, err := suite.service.ConfirmTransactions(context.Background(), suite.userID, dto.ConfirmTransactionsRequest{TransactionIDs: ids})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 3, resp.ConfirmedCount)

	select {
	case txn := <-suite.notifier.notified:
		assert.Equal(suite.T(), large.TransactionID, txn.TransactionID, "the income entry is larger but only expenses qualify")
	case <-time.After(time.Second):
		suite.T().Fatal("expected a notification for the largest expense")
	}
}

func (suite *PostingServiceTestSuite) TestConfirmedOrderFollowsRequestOrder() {
	first := suite.pendingExpense(10000)
	second := suite.pendingExpense(20000)
	ids := []string{second.TransactionID, first.TransactionID}

	suite.mockTxnRepo.On("FindPendingByIDs", mock.Anything, suite.userID, ids).
		Return(map[string]domain.Transaction{
			first.TransactionID:  first,
			second.TransactionID: second,
		}, nil)
	suite.mockAccountRepo.On("ListAccounts", mock.Anything, suite.userID).
		Return([]domain.Account{suite.cashAccount, suite.fundAccount}, nil)

	var committed domain.LedgerBatch
	suite.mockLedgerRepo.On("CommitLedgerBatch", mock.Anything, mock.AnythingOfType("domain.LedgerBatch")).
		Run(func(args mock.Arguments) { committed = args.Get(1).(domain.LedgerBatch) }).
		Return(nil)

	resp, err := suite.service.ConfirmTransactions(context.Background(), suite.userID, dto.ConfirmTransactionsRequest{TransactionIDs: ids})
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), ids, resp.ConfirmedIDs, "processing follows the request order, not storage order")
	require.Len(suite.T(), committed.Transactions, 2)
	assert.Equal(suite.T(), second.TransactionID, committed.Transactions[0].TransactionID)
}

func TestPostingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
