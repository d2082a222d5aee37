package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/aashray325/nimble-banking-hub/internal/apperrors"
	"github.com/aashray325/nimble-banking-hub/internal/core/domain"
	portsrepo "github.com/aashray325/nimble-banking-hub/internal/core/ports/repositories"
)

// PgxLoanRepository is the durable loan adapter. Disbursement and repayment
// couple the loan row change with its ledger movement inside one database
// transaction, closing the two-phase disburse-then-record gap.
type PgxLoanRepository struct {
	BaseRepository
}

// NewLoanRepository creates a new repository for loan data.
func NewLoanRepository(pool *pgxpool.Pool) *PgxLoanRepository {
	return &PgxLoanRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LoanRepository = (*PgxLoanRepository)(nil)

const loanColumns = `loan_id, customer_id, account_id, principal, annual_rate_percent, term_months, monthly_payment, remaining_amount, paid, created_at, created_by, last_updated_at, last_updated_by`

func scanLoan(row pgx.Row) (*domain.Loan, error) {
	var loan domain.Loan
	err := row.Scan(
		&loan.LoanID,
		&loan.CustomerID,
		&loan.AccountID,
		&loan.Principal,
		&loan.AnnualRatePercent,
		&loan.TermMonths,
		&loan.MonthlyPayment,
		&loan.RemainingAmount,
		&loan.Paid,
		&loan.CreatedAt,
		&loan.CreatedBy,
		&loan.LastUpdatedAt,
		&loan.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLoanNotFound
		}
		return nil, fmt.Errorf("failed to scan loan: %w", err)
	}
	return &loan, nil
}

// FindLoanByID retrieves a loan by its unique identifier.
func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE loan_id = $1;`
	return scanLoan(r.Pool.QueryRow(ctx, query, loanID))
}

// ListLoansByCustomer retrieves all loans belonging to a customer.
func (r *PgxLoanRepository) ListLoansByCustomer(ctx context.Context, customerID string) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE customer_id = $1 ORDER BY created_at;`
	rows, err := r.Pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query loans for customer %s: %w", customerID, err)
	}
	defer rows.Close()

	var loans []domain.Loan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, *loan)
	}
	return loans, rows.Err()
}

// DisburseLoan inserts the loan row, credits the account with the principal
// and appends the LOAN_DISBURSEMENT entry, all in one transaction.
func (r *PgxLoanRepository) DisburseLoan(ctx context.Context, loan domain.Loan) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO loans (` + loanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, query,
		loan.LoanID,
		loan.CustomerID,
		loan.AccountID,
		loan.Principal,
		loan.AnnualRatePercent,
		loan.TermMonths,
		loan.MonthlyPayment,
		loan.RemainingAmount,
		loan.Paid,
		loan.CreatedAt,
		loan.CreatedBy,
		loan.LastUpdatedAt,
		loan.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert loan %s: %w", loan.LoanID, err)
	}

	now := loan.CreatedAt
	if err := applyBalanceMovement(ctx, tx, nil, &loan.AccountID, loan.Principal, loan.CreatedBy, now); err != nil {
		return nil, err
	}

	txn := domain.Transaction{
		TransactionID:        uuid.NewString(),
		SourceAccountID:      nil,
		DestinationAccountID: &loan.AccountID,
		Amount:               loan.Principal,
		Kind:                 domain.KindLoanDisbursement,
		Description:          fmt.Sprintf("Disbursement of loan %s", loan.LoanID),
		CreatedAt:            now,
		CreatedBy:            loan.CreatedBy,
	}
	if err := insertTransaction(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &txn, nil
}

// ApplyPayment locks the loan row, re-validates the amount against the
// remaining balance, debits the account and decrements the loan, all in one
// transaction.
func (r *PgxLoanRepository) ApplyPayment(ctx context.Context, loanID string, amount decimal.Decimal, paidBy string) (*domain.Loan, *domain.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, amount)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT ` + loanColumns + ` FROM loans WHERE loan_id = $1 FOR UPDATE;`
	loan, err := scanLoan(tx.QueryRow(ctx, lockQuery, loanID))
	if err != nil {
		return nil, nil, err
	}

	if amount.GreaterThan(loan.RemainingAmount) {
		return nil, nil, fmt.Errorf("%w: remaining %s, payment %s", apperrors.ErrPaymentExceedsBalance, loan.RemainingAmount, amount)
	}

	now := time.Now().UTC()
	if err := applyBalanceMovement(ctx, tx, &loan.AccountID, nil, amount, paidBy, now); err != nil {
		return nil, nil, err
	}

	txn := domain.Transaction{
		TransactionID:        uuid.NewString(),
		SourceAccountID:      &loan.AccountID,
		DestinationAccountID: nil,
		Amount:               amount,
		Kind:                 domain.KindLoanPayment,
		Description:          fmt.Sprintf("Payment towards loan %s", loan.LoanID),
		CreatedAt:            now,
		CreatedBy:            paidBy,
	}
	if err := insertTransaction(ctx, tx, txn); err != nil {
		return nil, nil, err
	}

	loan.RemainingAmount = loan.RemainingAmount.Sub(amount)
	loan.Paid = loan.RemainingAmount.LessThanOrEqual(decimal.Zero)
	loan.LastUpdatedAt = now
	loan.LastUpdatedBy = paidBy

	updateQuery := `
		UPDATE loans
		SET remaining_amount = $2, paid = $3, last_updated_at = $4, last_updated_by = $5
		WHERE loan_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, loan.LoanID, loan.RemainingAmount, loan.Paid, loan.LastUpdatedAt, loan.LastUpdatedBy); err != nil {
		return nil, nil, fmt.Errorf("failed to update loan %s: %w", loan.LoanID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}
	return loan, &txn, nil
}
