package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/aashray325/nimble-banking-hub/internal/core/domain"
)

// TransferRequest defines the data needed to move money between two accounts.
type TransferRequest struct {
	ToAccountNumber string          `json:"toAccountNumber" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required,decimalgt0"`
	Description     string          `json:"description"`
}

// DepositRequest defines the data needed for a cash deposit from the bank boundary.
type DepositRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required,decimalgt0"`
}

// WithdrawalRequest defines the data needed for a cash withdrawal to the bank boundary.
type WithdrawalRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required,decimalgt0"`
}

// TransactionResponse defines the data returned for a single ledger entry.
// A nil source or destination account denotes the external bank counter-party.
type TransactionResponse struct {
	TransactionID        string                 `json:"transactionID"`
	SourceAccountID      *string                `json:"sourceAccountID"`
	DestinationAccountID *string                `json:"destinationAccountID"`
	Amount               decimal.Decimal        `json:"amount"`
	Kind                 domain.TransactionKind `json:"kind"`
	Description          string                 `json:"description"`
	CreatedAt            time.Time              `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:        txn.TransactionID,
		SourceAccountID:      txn.SourceAccountID,
		DestinationAccountID: txn.DestinationAccountID,
		Amount:               txn.Amount,
		Kind:                 txn.Kind,
		Description:          txn.Description,
		CreatedAt:            txn.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions to DTOs.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// ListTransactionsResponse wraps an account's transaction history.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}
