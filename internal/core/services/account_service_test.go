package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/aashray325/nimble-banking-hub/internal/apperrors"
	"github.com/aashray325/nimble-banking-hub/internal/core/domain"
	portssvc "github.com/aashray325/nimble-banking-hub/internal/core/ports/services"
	"github.com/aashray325/nimble-banking-hub/internal/core/services"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo *MockLedgerRepository
	mockLoanRepo   *MockLoanRepository
	service        portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockLoanRepo = new(MockLoanRepository)
	suite.service = services.NewAccountService(suite.mockLedgerRepo, suite.mockLoanRepo)
}

func (suite *AccountServiceTestSuite) TestGetAccount_Success() {
	ctx := context.Background()
	account := activeAccount("cust-1", "1000000001", "250")

	suite.mockLedgerRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()

	found, err := suite.service.GetAccount(ctx, account.AccountID)

	suite.Require().NoError(err)
	suite.Equal(account.AccountID, found.AccountID)
	suite.True(decimal.NewFromInt(250).Equal(found.Balance))
}

func (suite *AccountServiceTestSuite) TestGetAccount_NotFound() {
	ctx := context.Background()

	suite.mockLedgerRepo.On("FindAccountByID", ctx, "missing").Return(nil, apperrors.ErrAccountNotFound).Once()

	_, err := suite.service.GetAccount(ctx, "missing")

	suite.ErrorIs(err, apperrors.ErrAccountNotFound)
}

func (suite *AccountServiceTestSuite) TestListAccountsByCustomer_EmptyIsNotNil() {
	ctx := context.Background()

	suite.mockLedgerRepo.On("ListAccountsByCustomer", ctx, "cust-1").Return([]domain.Account(nil), nil).Once()

	accounts, err := suite.service.ListAccountsByCustomer(ctx, "cust-1")

	suite.Require().NoError(err)
	suite.NotNil(accounts)
	suite.Empty(accounts)
}

func (suite *AccountServiceTestSuite) TestListTransactions_UnknownAccount() {
	ctx := context.Background()

	suite.mockLedgerRepo.On("FindAccountByID", ctx, "missing").Return(nil, apperrors.ErrAccountNotFound).Once()

	_, err := suite.service.ListTransactions(ctx, "missing")

	suite.ErrorIs(err, apperrors.ErrAccountNotFound)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "ListTransactionsByAccountID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestListTransactions_Success() {
	ctx := context.Background()
	account := activeAccount("cust-1", "1000000001", "250")
	txns := []domain.Transaction{
		{TransactionID: uuid.NewString(), Kind: domain.KindDeposit},
		{TransactionID: uuid.NewString(), Kind: domain.KindTransfer},
	}

	suite.mockLedgerRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockLedgerRepo.On("ListTransactionsByAccountID", ctx, account.AccountID, 0).Return(txns, nil).Once()

	result, err := suite.service.ListTransactions(ctx, account.AccountID)

	suite.Require().NoError(err)
	suite.Len(result, 2)
}

func (suite *AccountServiceTestSuite) TestHasActiveLoans() {
	ctx := context.Background()

	testCases := []struct {
		name  string
		loans []domain.Loan
		want  bool
	}{
		{"no loans", nil, false},
		{"all paid", []domain.Loan{{Paid: true}, {Paid: true}}, false},
		{"one unpaid", []domain.Loan{{Paid: true}, {Paid: false}}, true},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			repo := new(MockLoanRepository)
			svc := services.NewAccountService(suite.mockLedgerRepo, repo)
			repo.On("ListLoansByCustomer", ctx, "cust-1").Return(tc.loans, nil).Once()

			active, err := svc.HasActiveLoans(ctx, "cust-1")

			suite.Require().NoError(err)
			suite.Equal(tc.want, active)
		})
	}
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
