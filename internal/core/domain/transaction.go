package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind classifies a ledger entry by the operation that produced it.
type TransactionKind string

const (
	KindTransfer         TransactionKind = "TRANSFER"
	KindDeposit          TransactionKind = "DEPOSIT"
	KindWithdrawal       TransactionKind = "WITHDRAWAL"
	KindLoanDisbursement TransactionKind = "LOAN_DISBURSEMENT"
	KindLoanPayment      TransactionKind = "LOAN_PAYMENT"
)

// Transaction is a single immutable entry in the append-only ledger.
// A nil source or destination denotes the external bank counter-party:
// deposits and loan disbursements have no source, withdrawals and loan
// payments have no destination. Amount is always strictly positive;
// direction is encoded by which reference is populated.
type Transaction struct {
	TransactionID        string          `json:"transactionID"` // Primary Key (UUID)
	SourceAccountID      *string         `json:"sourceAccountID"`
	DestinationAccountID *string         `json:"destinationAccountID"`
	Amount               decimal.Decimal `json:"amount"`
	Kind                 TransactionKind `json:"kind"`
	Description          string          `json:"description"`
	CreatedAt            time.Time       `json:"createdAt"`
	CreatedBy            string          `json:"createdBy"`
}

// IsBankBoundary reports whether the entry moves money across the system
// boundary, i.e. one side is the external bank counter-party.
func (t Transaction) IsBankBoundary() bool {
	return t.SourceAccountID == nil || t.DestinationAccountID == nil
}
