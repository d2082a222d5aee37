package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/aashray325/nimble-banking-hub/internal/core/domain"
)

// TransferSvcFacade defines the money-movement operations exposed to the
// presentation layer. Every operation either fully applies or leaves all
// balances and the transaction log untouched; rejections are surfaced
// verbatim and never retried.
type TransferSvcFacade interface {
	// Transfer moves amount from the source account to the account identified
	// by its human-facing number, recording one TRANSFER entry.
	Transfer(ctx context.Context, fromAccountID string, toAccountNumber string, amount decimal.Decimal, description string, initiatedBy string) (*domain.Transaction, error)

	// Deposit credits the account from the bank boundary, recording one DEPOSIT entry.
	Deposit(ctx context.Context, accountID string, amount decimal.Decimal, initiatedBy string) (*domain.Transaction, error)

	// Withdraw debits the account to the bank boundary, recording one WITHDRAWAL entry.
	Withdraw(ctx context.Context, accountID string, amount decimal.Decimal, initiatedBy string) (*domain.Transaction, error)
}
