package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/aashray325/nimble-banking-hub/internal/apperrors"
	"github.com/aashray325/nimble-banking-hub/internal/core/domain"
	portssvc "github.com/aashray325/nimble-banking-hub/internal/core/ports/services"
	"github.com/aashray325/nimble-banking-hub/internal/core/services"
)

// MockLedgerRepository is a mock type for the LedgerRepository interface
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerRepository) ListAccountsByCustomer(ctx context.Context, customerID string) ([]domain.Account, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockLedgerRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) AtomicTransfer(ctx context.Context, source, destination *string, amount decimal.Decimal, kind domain.TransactionKind, description string, initiatedBy string) (*domain.Transaction, error) {
	args := m.Called(ctx, source, destination, amount, kind, description, initiatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// --- Test Suite Setup ---

type TransferServiceTestSuite struct {
	suite.Suite
	mockRepo *MockLedgerRepository
	service  portssvc.TransferSvcFacade
}

func (suite *TransferServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockLedgerRepository)
	suite.service = services.NewTransferService(suite.mockRepo, nil)
}

func activeAccount(customerID, number, balance string) *domain.Account {
	return &domain.Account{
		AccountID:     uuid.NewString(),
		AccountNumber: number,
		CustomerID:    customerID,
		Balance:       decimal.RequireFromString(balance),
		Status:        domain.AccountActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     time.Now().UTC(),
			LastUpdatedAt: time.Now().UTC(),
		},
	}
}

// --- Test Cases ---

func (suite *TransferServiceTestSuite) TestTransfer_Success() {
	ctx := context.Background()
	source := activeAccount("cust-1", "1000000001", "500")
	destination := activeAccount("cust-2", "1000000002", "50")
	amount := decimal.RequireFromString("120.50")

	expectedTxn := &domain.Transaction{
		TransactionID:        uuid.NewString(),
		SourceAccountID:      &source.AccountID,
		DestinationAccountID: &destination.AccountID,
		Amount:               amount,
		Kind:                 domain.KindTransfer,
	}

	suite.mockRepo.On("FindAccountByID", ctx, source.AccountID).Return(source, nil).Once()
	suite.mockRepo.On("FindAccountByNumber", ctx, destination.AccountNumber).Return(destination, nil).Once()
	suite.mockRepo.On("AtomicTransfer", ctx, &source.AccountID, &destination.AccountID, amount, domain.KindTransfer, "rent", "cust-1").Return(expectedTxn, nil).Once()

	txn, err := suite.service.Transfer(ctx, source.AccountID, destination.AccountNumber, amount, "rent", "cust-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal(expectedTxn.TransactionID, txn.TransactionID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestTransfer_InvalidAmount() {
	ctx := context.Background()

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.RequireFromString("-25")} {
		_, err := suite.service.Transfer(ctx, "acc-1", "1000000002", amount, "", "cust-1")
		suite.ErrorIs(err, apperrors.ErrInvalidAmount)
	}

	// Rejected before any repository access.
	suite.mockRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "AtomicTransfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestTransfer_SelfTransfer() {
	ctx := context.Background()
	// Balance is lower than the amount on purpose: self-transfer must win
	// over insufficient funds in the rejection order.
	source := activeAccount("cust-1", "1000000001", "10")

	suite.mockRepo.On("FindAccountByID", ctx, source.AccountID).Return(source, nil).Once()

	_, err := suite.service.Transfer(ctx, source.AccountID, source.AccountNumber, decimal.NewFromInt(100), "", "cust-1")

	suite.ErrorIs(err, apperrors.ErrSelfTransfer)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindAccountByNumber", mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "AtomicTransfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestTransfer_InsufficientFundsBeforeDestinationLookup() {
	ctx := context.Background()
	source := activeAccount("cust-1", "1000000001", "10")

	suite.mockRepo.On("FindAccountByID", ctx, source.AccountID).Return(source, nil).Once()

	// Destination does not even exist; the funds check must fire first.
	_, err := suite.service.Transfer(ctx, source.AccountID, "9999999999", decimal.NewFromInt(100), "", "cust-1")

	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindAccountByNumber", mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestTransfer_DestinationNotFound() {
	ctx := context.Background()
	source := activeAccount("cust-1", "1000000001", "500")

	suite.mockRepo.On("FindAccountByID", ctx, source.AccountID).Return(source, nil).Once()
	suite.mockRepo.On("FindAccountByNumber", ctx, "9999999999").Return(nil, apperrors.ErrAccountNotFound).Once()

	_, err := suite.service.Transfer(ctx, source.AccountID, "9999999999", decimal.NewFromInt(100), "", "cust-1")

	suite.ErrorIs(err, apperrors.ErrAccountNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "AtomicTransfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestTransfer_SourceNotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindAccountByID", ctx, "missing").Return(nil, apperrors.ErrAccountNotFound).Once()

	_, err := suite.service.Transfer(ctx, "missing", "1000000002", decimal.NewFromInt(100), "", "cust-1")

	suite.ErrorIs(err, apperrors.ErrAccountNotFound)
}

func (suite *TransferServiceTestSuite) TestDeposit_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	amount := decimal.NewFromInt(250)

	expectedTxn := &domain.Transaction{
		TransactionID:        uuid.NewString(),
		DestinationAccountID: &accountID,
		Amount:               amount,
		Kind:                 domain.KindDeposit,
	}

	suite.mockRepo.On("AtomicTransfer", ctx, (*string)(nil), &accountID, amount, domain.KindDeposit, "Cash deposit", "cust-1").Return(expectedTxn, nil).Once()

	txn, err := suite.service.Deposit(ctx, accountID, amount, "cust-1")

	suite.Require().NoError(err)
	suite.Nil(txn.SourceAccountID)
	suite.True(txn.IsBankBoundary())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestWithdraw_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	amount := decimal.NewFromInt(75)

	expectedTxn := &domain.Transaction{
		TransactionID:   uuid.NewString(),
		SourceAccountID: &accountID,
		Amount:          amount,
		Kind:            domain.KindWithdrawal,
	}

	suite.mockRepo.On("AtomicTransfer", ctx, &accountID, (*string)(nil), amount, domain.KindWithdrawal, "Cash withdrawal", "cust-1").Return(expectedTxn, nil).Once()

	txn, err := suite.service.Withdraw(ctx, accountID, amount, "cust-1")

	suite.Require().NoError(err)
	suite.Nil(txn.DestinationAccountID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestWithdraw_InsufficientFunds() {
	ctx := context.Background()
	accountID := uuid.NewString()
	amount := decimal.NewFromInt(75)

	suite.mockRepo.On("AtomicTransfer", ctx, &accountID, (*string)(nil), amount, domain.KindWithdrawal, "Cash withdrawal", "cust-1").Return(nil, apperrors.ErrInsufficientFunds).Once()

	_, err := suite.service.Withdraw(ctx, accountID, amount, "cust-1")

	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
}

func TestTransferServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransferServiceTestSuite))
}
