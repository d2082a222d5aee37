package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aashray325/nimble-banking-hub/internal/apperrors"
	"github.com/aashray325/nimble-banking-hub/internal/core/domain"
	portsrepo "github.com/aashray325/nimble-banking-hub/internal/core/ports/repositories"
	portssvc "github.com/aashray325/nimble-banking-hub/internal/core/ports/services"
	"github.com/aashray325/nimble-banking-hub/internal/middleware"
	"github.com/aashray325/nimble-banking-hub/internal/platform/observability"
)

// transferService validates and executes money movements via the ledger
// repository. All validation happens before any mutation; the repository's
// AtomicTransfer is the only mutation path, so a rejection at any step leaves
// balances and the log exactly as they were.
type transferService struct {
	ledgerRepo portsrepo.LedgerRepository
	metrics    *observability.Metrics
}

// NewTransferService creates a new TransferService.
func NewTransferService(ledgerRepo portsrepo.LedgerRepository, metrics *observability.Metrics) portssvc.TransferSvcFacade {
	return &transferService{
		ledgerRepo: ledgerRepo,
		metrics:    metrics,
	}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// Transfer moves amount between two customer accounts. Rejection order:
// invalid amount, self transfer, insufficient funds, destination not found.
func (s *transferService) Transfer(ctx context.Context, fromAccountID string, toAccountNumber string, amount decimal.Decimal, description string, initiatedBy string) (txn *domain.Transaction, err error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	start := time.Now()
	defer func() { s.metrics.ObserveLedgerOperation("transfer", err, start) }()

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, amount)
	}

	source, err := s.ledgerRepo.FindAccountByID(ctx, fromAccountID)
	if err != nil {
		return nil, err
	}
	if source.AccountNumber == toAccountNumber {
		return nil, apperrors.ErrSelfTransfer
	}
	if source.Balance.LessThan(amount) {
		return nil, fmt.Errorf("%w: balance %s, requested %s", apperrors.ErrInsufficientFunds, source.Balance, amount)
	}

	destination, err := s.ledgerRepo.FindAccountByNumber(ctx, toAccountNumber)
	if err != nil {
		return nil, err
	}

	txn, err = s.ledgerRepo.AtomicTransfer(ctx, &source.AccountID, &destination.AccountID, amount, domain.KindTransfer, description, initiatedBy)
	if err != nil {
		logger.Error("Transfer failed in ledger", slog.String("error", err.Error()), slog.String("from", fromAccountID))
		return nil, err
	}

	logger.Info("Transfer completed",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("from", source.AccountID),
		slog.String("to", destination.AccountID),
		slog.String("amount", amount.String()),
	)
	return txn, nil
}

// Deposit credits the account from the bank boundary.
func (s *transferService) Deposit(ctx context.Context, accountID string, amount decimal.Decimal, initiatedBy string) (txn *domain.Transaction, err error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	start := time.Now()
	defer func() { s.metrics.ObserveLedgerOperation("deposit", err, start) }()

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, amount)
	}

	txn, err = s.ledgerRepo.AtomicTransfer(ctx, nil, &accountID, amount, domain.KindDeposit, "Cash deposit", initiatedBy)
	if err != nil {
		return nil, err
	}

	logger.Info("Deposit completed", slog.String("transaction_id", txn.TransactionID), slog.String("account_id", accountID), slog.String("amount", amount.String()))
	return txn, nil
}

// Withdraw debits the account to the bank boundary.
func (s *transferService) Withdraw(ctx context.Context, accountID string, amount decimal.Decimal, initiatedBy string) (txn *domain.Transaction, err error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	start := time.Now()
	defer func() { s.metrics.ObserveLedgerOperation("withdrawal", err, start) }()

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, amount)
	}

	txn, err = s.ledgerRepo.AtomicTransfer(ctx, &accountID, nil, amount, domain.KindWithdrawal, "Cash withdrawal", initiatedBy)
	if err != nil {
		return nil, err
	}

	logger.Info("Withdrawal completed", slog.String("transaction_id", txn.TransactionID), slog.String("account_id", accountID), slog.String("amount", amount.String()))
	return txn, nil
}
