package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aashray325/nimble-banking-hub/internal/apperrors"
	"github.com/aashray325/nimble-banking-hub/internal/core/domain"
	portsrepo "github.com/aashray325/nimble-banking-hub/internal/core/ports/repositories"
	portssvc "github.com/aashray325/nimble-banking-hub/internal/core/ports/services"
	"github.com/aashray325/nimble-banking-hub/internal/middleware"
	"github.com/aashray325/nimble-banking-hub/internal/platform/observability"
	"github.com/aashray325/nimble-banking-hub/internal/utils/amortization"
)

// Loan term bounds. Terms outside this range are rejected before any state exists.
const (
	minLoanTermMonths = 3
	maxLoanTermMonths = 60
)

// loanService validates loan applications, computes terms and drives the
// disbursement/repayment lifecycle. Every application that passes validation
// is approved; there is no rejected state.
type loanService struct {
	loanRepo   portsrepo.LoanRepository
	ledgerRepo portsrepo.LedgerRepository
	metrics    *observability.Metrics
}

// NewLoanService creates a new LoanService.
func NewLoanService(loanRepo portsrepo.LoanRepository, ledgerRepo portsrepo.LedgerRepository, metrics *observability.Metrics) portssvc.LoanSvcFacade {
	return &loanService{
		loanRepo:   loanRepo,
		ledgerRepo: ledgerRepo,
		metrics:    metrics,
	}
}

var _ portssvc.LoanSvcFacade = (*loanService)(nil)

// ApplyForLoan validates the application, computes the terms and disburses
// the principal into the customer's account. The loan record and the
// disbursement entry are persisted as one atomic unit by the repository.
func (s *loanService) ApplyForLoan(ctx context.Context, customerID string, amount decimal.Decimal, termMonths int) (loan *domain.Loan, err error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	start := time.Now()
	defer func() { s.metrics.ObserveLedgerOperation("loan_disbursement", err, start) }()

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, amount)
	}
	if termMonths < minLoanTermMonths || termMonths > maxLoanTermMonths {
		return nil, fmt.Errorf("%w: term must be between %d and %d months, got %d", apperrors.ErrInvalidTerm, minLoanTermMonths, maxLoanTermMonths, termMonths)
	}

	rate, monthlyPayment, err := amortization.Compute(amount, termMonths)
	if err != nil {
		return nil, err
	}

	account, err := s.disbursementAccount(ctx, customerID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	newLoan := domain.Loan{
		LoanID:            uuid.NewString(),
		CustomerID:        customerID,
		AccountID:         account.AccountID,
		Principal:         amount,
		AnnualRatePercent: rate,
		TermMonths:        termMonths,
		MonthlyPayment:    monthlyPayment,
		RemainingAmount:   amount,
		Paid:              false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     customerID,
			LastUpdatedAt: now,
			LastUpdatedBy: customerID,
		},
	}

	txn, err := s.loanRepo.DisburseLoan(ctx, newLoan)
	if err != nil {
		logger.Error("Failed to disburse loan", slog.String("error", err.Error()), slog.String("loan_id", newLoan.LoanID))
		return nil, fmt.Errorf("failed to disburse loan: %w", err)
	}

	logger.Info("Loan disbursed",
		slog.String("loan_id", newLoan.LoanID),
		slog.String("transaction_id", txn.TransactionID),
		slog.String("principal", amount.String()),
		slog.String("rate_percent", rate.String()),
		slog.Int("term_months", termMonths),
	)
	return &newLoan, nil
}

// MakeLoanPayment repays part of a loan from the account it was disbursed to.
// Preconditions are checked here for a clean rejection before any mutation;
// the repository re-validates them under its own lock.
func (s *loanService) MakeLoanPayment(ctx context.Context, loanID string, amount decimal.Decimal, paidBy string) (loan *domain.Loan, err error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	start := time.Now()
	defer func() { s.metrics.ObserveLedgerOperation("loan_payment", err, start) }()

	existing, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, amount)
	}
	if amount.GreaterThan(existing.RemainingAmount) {
		return nil, fmt.Errorf("%w: remaining %s, payment %s", apperrors.ErrPaymentExceedsBalance, existing.RemainingAmount, amount)
	}

	account, err := s.ledgerRepo.FindAccountByID(ctx, existing.AccountID)
	if err != nil {
		return nil, err
	}
	if account.Balance.LessThan(amount) {
		return nil, fmt.Errorf("%w: balance %s, payment %s", apperrors.ErrInsufficientFunds, account.Balance, amount)
	}

	updated, txn, err := s.loanRepo.ApplyPayment(ctx, loanID, amount, paidBy)
	if err != nil {
		logger.Error("Failed to apply loan payment", slog.String("error", err.Error()), slog.String("loan_id", loanID))
		return nil, err
	}

	logger.Info("Loan payment applied",
		slog.String("loan_id", loanID),
		slog.String("transaction_id", txn.TransactionID),
		slog.String("amount", amount.String()),
		slog.String("remaining", updated.RemainingAmount.String()),
		slog.Bool("paid", updated.Paid),
	)
	return updated, nil
}

// PaymentSchedule expands a loan into its month-by-month repayment plan.
func (s *loanService) PaymentSchedule(ctx context.Context, loanID string) ([]amortization.Installment, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return amortization.Schedule(loan.Principal, loan.TermMonths)
}

// disbursementAccount picks the customer's active account to credit the
// principal to.
func (s *loanService) disbursementAccount(ctx context.Context, customerID string) (*domain.Account, error) {
	accounts, err := s.ledgerRepo.ListAccountsByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].Status == domain.AccountActive {
			return &accounts[i], nil
		}
	}
	return nil, fmt.Errorf("%w: no active account for customer %s", apperrors.ErrAccountNotFound, customerID)
}
