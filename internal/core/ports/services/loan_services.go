package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/aashray325/nimble-banking-hub/internal/core/domain"
	"github.com/aashray325/nimble-banking-hub/internal/utils/amortization"
)

// LoanSvcFacade defines the loan lifecycle operations. Applications are
// auto-approved: only their preconditions can fail before a Loan exists.
type LoanSvcFacade interface {
	// ApplyForLoan validates the application, computes the rate and monthly
	// payment, and disburses the principal to the customer's account. The
	// loan record and the disbursement are persisted as one atomic unit.
	ApplyForLoan(ctx context.Context, customerID string, amount decimal.Decimal, termMonths int) (*domain.Loan, error)

	// MakeLoanPayment repays part of a loan from the account it was disbursed
	// to. Overpayment is rejected with ErrPaymentExceedsBalance, never
	// truncated to the remaining balance.
	MakeLoanPayment(ctx context.Context, loanID string, amount decimal.Decimal, paidBy string) (*domain.Loan, error)

	// PaymentSchedule expands a loan into its month-by-month repayment plan.
	PaymentSchedule(ctx context.Context, loanID string) ([]amortization.Installment, error)
}
