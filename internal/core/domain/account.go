package domain

import (
	"github.com/shopspring/decimal"
)

// AccountStatus indicates whether an account can take part in new transactions.
type AccountStatus string

const (
	AccountActive AccountStatus = "ACTIVE"
	AccountClosed AccountStatus = "CLOSED"
)

// Account represents a customer's deposit account within the ledger.
// Balance is mutated only through the ledger repository primitives and is
// never negative.
type Account struct {
	AccountID     string          `json:"accountID"`     // Primary Key (UUID)
	AccountNumber string          `json:"accountNumber"` // Human-facing number, transfer destination
	CustomerID    string          `json:"customerID"`    // FK -> customers.customer_id
	Balance       decimal.Decimal `json:"balance"`
	Status        AccountStatus   `json:"status"`
	AuditFields
}
