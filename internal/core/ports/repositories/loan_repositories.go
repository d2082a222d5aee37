package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/aashray325/nimble-banking-hub/internal/core/domain"
)

// LoanReader defines read operations for loan data.
type LoanReader interface {
	// FindLoanByID retrieves a specific loan by its unique identifier.
	FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)

	// ListLoansByCustomer retrieves all loans belonging to a customer.
	ListLoansByCustomer(ctx context.Context, customerID string) ([]domain.Loan, error)
}

// LoanWriter defines the loan mutations. Both operations couple the loan
// record change with its ledger movement in one transactional unit so a
// crash can never leave a disbursed balance without a loan row (or a paid
// loan without its payment entry).
type LoanWriter interface {
	// DisburseLoan persists the loan and credits its account with the
	// principal, appending one LOAN_DISBURSEMENT entry, atomically.
	DisburseLoan(ctx context.Context, loan domain.Loan) (*domain.Transaction, error)

	// ApplyPayment debits the loan's account, appends one LOAN_PAYMENT entry
	// and decrements the loan's remaining amount, atomically. The amount is
	// re-validated against the remaining balance and the account balance
	// under the same lock that serializes the mutation.
	ApplyPayment(ctx context.Context, loanID string, amount decimal.Decimal, paidBy string) (*domain.Loan, *domain.Transaction, error)
}

// LoanRepository combines loan read and write operations.
type LoanRepository interface {
	LoanReader
	LoanWriter
}
