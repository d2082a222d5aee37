package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aashray325/nimble-banking-hub/internal/apperrors"
	"github.com/aashray325/nimble-banking-hub/internal/core/domain"
	portsrepo "github.com/aashray325/nimble-banking-hub/internal/core/ports/repositories"
	portssvc "github.com/aashray325/nimble-banking-hub/internal/core/ports/services"
	"github.com/aashray325/nimble-banking-hub/internal/middleware"
)

// accountService is the read-only query surface over ledger and loan state.
// It performs no mutations; every read goes straight to the repositories so
// it always reflects the latest committed state.
type accountService struct {
	ledgerRepo portsrepo.LedgerRepository
	loanRepo   portsrepo.LoanRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(ledgerRepo portsrepo.LedgerRepository, loanRepo portsrepo.LoanRepository) portssvc.AccountSvcFacade {
	return &accountService{
		ledgerRepo: ledgerRepo,
		loanRepo:   loanRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// GetAccount retrieves an account by its unique identifier.
func (s *accountService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	account, err := s.ledgerRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrAccountNotFound) {
			logger.Error("Failed to find account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// ListAccountsByCustomer retrieves all accounts owned by a customer.
func (s *accountService) ListAccountsByCustomer(ctx context.Context, customerID string) ([]domain.Account, error) {
	accounts, err := s.ledgerRepo.ListAccountsByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

// ListTransactions retrieves the account's ledger entries, most recent first.
func (s *accountService) ListTransactions(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Surface a clean not-found instead of an empty history for bad IDs.
	if _, err := s.ledgerRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	txns, err := s.ledgerRepo.ListTransactionsByAccountID(ctx, accountID, 0)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, nil
}

// GetLoan retrieves a loan by its unique identifier.
func (s *accountService) GetLoan(ctx context.Context, loanID string) (*domain.Loan, error) {
	return s.loanRepo.FindLoanByID(ctx, loanID)
}

// ListLoansByCustomer retrieves all loans belonging to a customer.
func (s *accountService) ListLoansByCustomer(ctx context.Context, customerID string) ([]domain.Loan, error) {
	loans, err := s.loanRepo.ListLoansByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	if loans == nil {
		loans = []domain.Loan{}
	}
	return loans, nil
}

// HasActiveLoans reports whether any loan of the customer is unpaid.
func (s *accountService) HasActiveLoans(ctx context.Context, customerID string) (bool, error) {
	loans, err := s.loanRepo.ListLoansByCustomer(ctx, customerID)
	if err != nil {
		return false, fmt.Errorf("failed to list loans: %w", err)
	}
	for i := range loans {
		if !loans[i].Paid {
			return true, nil
		}
	}
	return false, nil
}
