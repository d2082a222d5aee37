package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/aashray325/nimble-banking-hub/internal/core/domain"
)

// LedgerReader defines read operations over accounts and the transaction log.
type LedgerReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByNumber retrieves an account by its human-facing account number.
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// ListAccountsByCustomer retrieves all accounts owned by a customer.
	// The bank sentinel never appears in the result.
	ListAccountsByCustomer(ctx context.Context, customerID string) ([]domain.Account, error)

	// ListTransactionsByAccountID retrieves ledger entries touching the given
	// account, most recent first. A non-positive limit means no limit.
	ListTransactionsByAccountID(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error)
}

// LedgerWriter defines the mutation primitives of the ledger. Balance changes
// happen only through these; there is no way to set a balance directly.
type LedgerWriter interface {
	// SaveAccount persists a new account with a zero balance.
	SaveAccount(ctx context.Context, account domain.Account) error

	// AtomicTransfer debits the source (unless it is the bank counter-party),
	// credits the destination (unless it is the bank counter-party) and
	// appends exactly one transaction record, as a single indivisible unit.
	// A nil source or destination denotes the bank. On any rejection
	// (ErrInvalidAmount, ErrAccountNotFound, ErrInsufficientFunds) balances
	// and the log are left untouched.
	AtomicTransfer(ctx context.Context, source, destination *string, amount decimal.Decimal, kind domain.TransactionKind, description string, initiatedBy string) (*domain.Transaction, error)
}

// LedgerRepository combines ledger read and write operations.
type LedgerRepository interface {
	LedgerReader
	LedgerWriter
}
