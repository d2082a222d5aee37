package services

import (
	"context"

	"github.com/aashray325/nimble-banking-hub/internal/core/domain"
)

// AccountSvcFacade is the read-only query surface consumed by presentation
// code. All reads reflect the latest committed mutation.
type AccountSvcFacade interface {
	// GetAccount retrieves an account by its unique identifier.
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccountsByCustomer retrieves all accounts owned by a customer.
	ListAccountsByCustomer(ctx context.Context, customerID string) ([]domain.Account, error)

	// ListTransactions retrieves the account's ledger entries, most recent first.
	ListTransactions(ctx context.Context, accountID string) ([]domain.Transaction, error)

	// GetLoan retrieves a loan by its unique identifier.
	GetLoan(ctx context.Context, loanID string) (*domain.Loan, error)

	// ListLoansByCustomer retrieves all loans belonging to a customer.
	ListLoansByCustomer(ctx context.Context, customerID string) ([]domain.Loan, error)

	// HasActiveLoans reports whether any loan of the customer is unpaid.
	HasActiveLoans(ctx context.Context, customerID string) (bool, error)
}
