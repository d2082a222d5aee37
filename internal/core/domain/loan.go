package domain

import (
	"github.com/shopspring/decimal"
)

// Loan represents a disbursed amortizing loan. RemainingAmount starts at
// Principal and is monotonically non-increasing; Paid becomes true exactly
// once RemainingAmount reaches zero and never reverts. There is no rejected
// state: every well-formed application is auto-approved, only its
// preconditions can fail before a Loan exists.
type Loan struct {
	LoanID            string          `json:"loanID"` // Primary Key (UUID)
	CustomerID        string          `json:"customerID"`
	AccountID         string          `json:"accountID"` // Account the principal was disbursed to
	Principal         decimal.Decimal `json:"principal"`
	AnnualRatePercent decimal.Decimal `json:"annualRatePercent"`
	TermMonths        int             `json:"termMonths"`
	MonthlyPayment    decimal.Decimal `json:"monthlyPayment"`
	RemainingAmount   decimal.Decimal `json:"remainingAmount"`
	Paid              bool            `json:"paid"`
	AuditFields
}
