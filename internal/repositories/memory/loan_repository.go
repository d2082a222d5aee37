package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aashray325/nimble-banking-hub/internal/apperrors"
	"github.com/aashray325/nimble-banking-hub/internal/core/domain"
	portsrepo "github.com/aashray325/nimble-banking-hub/internal/core/ports/repositories"
)

// LoanRepository is the in-memory loan adapter. Loan state shares the
// ledger's single-writer boundary: disbursement and repayment take the
// ledger mutex, so the loan row change and its balance movement are one
// indivisible unit. A failure can never leave a credited balance without a
// loan record, or a decremented loan without its payment entry.
type LoanRepository struct {
	ledger *LedgerRepository
	loans  map[string]*domain.Loan // guarded by ledger.mu
}

// NewLoanRepository creates a loan store bound to the given ledger.
func NewLoanRepository(ledger *LedgerRepository) *LoanRepository {
	return &LoanRepository{
		ledger: ledger,
		loans:  make(map[string]*domain.Loan),
	}
}

var _ portsrepo.LoanRepository = (*LoanRepository)(nil)

// FindLoanByID retrieves a loan by its unique identifier.
func (r *LoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	r.ledger.mu.RLock()
	defer r.ledger.mu.RUnlock()

	loan, ok := r.loans[loanID]
	if !ok {
		return nil, fmt.Errorf("%w: loan %s", apperrors.ErrLoanNotFound, loanID)
	}
	cp := *loan
	return &cp, nil
}

// ListLoansByCustomer retrieves all loans belonging to a customer.
func (r *LoanRepository) ListLoansByCustomer(ctx context.Context, customerID string) ([]domain.Loan, error) {
	r.ledger.mu.RLock()
	defer r.ledger.mu.RUnlock()

	var loans []domain.Loan
	for _, loan := range r.loans {
		if loan.CustomerID == customerID {
			loans = append(loans, *loan)
		}
	}
	return loans, nil
}

// DisburseLoan persists the loan and credits its account with the principal
// atomically.
func (r *LoanRepository) DisburseLoan(ctx context.Context, loan domain.Loan) (*domain.Transaction, error) {
	r.ledger.mu.Lock()
	defer r.ledger.mu.Unlock()

	if _, exists := r.loans[loan.LoanID]; exists {
		return nil, fmt.Errorf("%w: loan %s", apperrors.ErrDuplicate, loan.LoanID)
	}

	txn, err := r.ledger.atomicTransferLocked(
		nil, // principal enters from the bank counter-party
		&loan.AccountID,
		loan.Principal,
		domain.KindLoanDisbursement,
		fmt.Sprintf("Disbursement of loan %s", loan.LoanID),
		loan.CreatedBy,
	)
	if err != nil {
		return nil, err
	}

	stored := loan
	r.loans[loan.LoanID] = &stored
	return txn, nil
}

// ApplyPayment debits the loan's account, appends the payment entry and
// decrements the remaining amount atomically. Preconditions are re-checked
// under the lock; a rejection leaves loan, balances and log untouched.
func (r *LoanRepository) ApplyPayment(ctx context.Context, loanID string, amount decimal.Decimal, paidBy string) (*domain.Loan, *domain.Transaction, error) {
	r.ledger.mu.Lock()
	defer r.ledger.mu.Unlock()

	loan, ok := r.loans[loanID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: loan %s", apperrors.ErrLoanNotFound, loanID)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, amount)
	}
	if amount.GreaterThan(loan.RemainingAmount) {
		return nil, nil, fmt.Errorf("%w: remaining %s, payment %s", apperrors.ErrPaymentExceedsBalance, loan.RemainingAmount, amount)
	}

	txn, err := r.ledger.atomicTransferLocked(
		&loan.AccountID,
		nil, // repayment leaves to the bank counter-party
		amount,
		domain.KindLoanPayment,
		fmt.Sprintf("Payment towards loan %s", loan.LoanID),
		paidBy,
	)
	if err != nil {
		return nil, nil, err
	}

	loan.RemainingAmount = loan.RemainingAmount.Sub(amount)
	loan.Paid = loan.RemainingAmount.LessThanOrEqual(decimal.Zero)
	loan.LastUpdatedAt = time.Now().UTC()
	loan.LastUpdatedBy = paidBy

	cp := *loan
	return &cp, txn, nil
}
