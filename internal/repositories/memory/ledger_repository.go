package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aashray325/nimble-banking-hub/internal/apperrors"
	"github.com/aashray325/nimble-banking-hub/internal/core/domain"
	portsrepo "github.com/aashray325/nimble-banking-hub/internal/core/ports/repositories"
)

// LedgerRepository is the in-memory ledger adapter. A single mutex serializes
// every balance mutation, so the check-balance/mutate/append-log sequence of
// AtomicTransfer is one indivisible unit: two concurrent transfers debiting
// the same source can never both pass the balance check on a stale read.
// All operations are bounded and local; the mutex is never held across I/O.
type LedgerRepository struct {
	mu               sync.RWMutex
	accounts         map[string]*domain.Account
	accountsByNumber map[string]string // account number -> account ID
	transactions     []domain.Transaction
}

// NewLedgerRepository creates an empty in-memory ledger.
func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{
		accounts:         make(map[string]*domain.Account),
		accountsByNumber: make(map[string]string),
	}
}

var _ portsrepo.LedgerRepository = (*LedgerRepository)(nil)

// SaveAccount persists a new account.
func (r *LedgerRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[account.AccountID]; exists {
		return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, account.AccountID)
	}
	if _, exists := r.accountsByNumber[account.AccountNumber]; exists {
		return fmt.Errorf("%w: account number %s", apperrors.ErrDuplicate, account.AccountNumber)
	}

	stored := account
	r.accounts[account.AccountID] = &stored
	r.accountsByNumber[account.AccountNumber] = account.AccountID
	return nil
}

// FindAccountByID retrieves an account by its unique identifier.
func (r *LedgerRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	acc, ok := r.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrAccountNotFound, accountID)
	}
	cp := *acc
	return &cp, nil
}

// FindAccountByNumber retrieves an account by its human-facing number.
func (r *LedgerRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.accountsByNumber[accountNumber]
	if !ok {
		return nil, fmt.Errorf("%w: account number %s", apperrors.ErrAccountNotFound, accountNumber)
	}
	cp := *r.accounts[id]
	return &cp, nil
}

// ListAccountsByCustomer retrieves all accounts owned by a customer.
func (r *LedgerRepository) ListAccountsByCustomer(ctx context.Context, customerID string) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var accounts []domain.Account
	for _, acc := range r.accounts {
		if acc.CustomerID == customerID {
			accounts = append(accounts, *acc)
		}
	}
	return accounts, nil
}

// ListTransactionsByAccountID returns the entries touching the account, most
// recent first. The underlying log is append-only in creation order; the
// reversal here is a read-side projection only.
func (r *LedgerRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Transaction
	for i := len(r.transactions) - 1; i >= 0; i-- {
		txn := r.transactions[i]
		if touches(txn, accountID) {
			result = append(result, txn)
			if limit > 0 && len(result) >= limit {
				break
			}
		}
	}
	return result, nil
}

// AtomicTransfer implements the composite ledger primitive: debit source
// (unless bank), credit destination (unless bank), append one record.
func (r *LedgerRepository) AtomicTransfer(ctx context.Context, source, destination *string, amount decimal.Decimal, kind domain.TransactionKind, description string, initiatedBy string) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.atomicTransferLocked(source, destination, amount, kind, description, initiatedBy)
}

// atomicTransferLocked is the lock-free body of AtomicTransfer, shared with
// the loan repository so loan mutations join the same critical section.
// Callers must hold r.mu.
func (r *LedgerRepository) atomicTransferLocked(source, destination *string, amount decimal.Decimal, kind domain.TransactionKind, description string, initiatedBy string) (*domain.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, amount)
	}

	// Resolve both sides before mutating anything so a rejection leaves the
	// ledger byte-for-byte unchanged.
	var src, dst *domain.Account
	if source != nil {
		acc, ok := r.accounts[*source]
		if !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrAccountNotFound, *source)
		}
		if acc.Balance.LessThan(amount) {
			return nil, fmt.Errorf("%w: account %s has %s, needs %s", apperrors.ErrInsufficientFunds, *source, acc.Balance, amount)
		}
		src = acc
	}
	if destination != nil {
		acc, ok := r.accounts[*destination]
		if !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrAccountNotFound, *destination)
		}
		dst = acc
	}

	now := time.Now().UTC()
	if src != nil {
		r.debitLocked(src, amount, now, initiatedBy)
	}
	if dst != nil {
		r.creditLocked(dst, amount, now, initiatedBy)
	}

	txn := domain.Transaction{
		TransactionID:        uuid.NewString(),
		SourceAccountID:      copyRef(source),
		DestinationAccountID: copyRef(destination),
		Amount:               amount,
		Kind:                 kind,
		Description:          description,
		CreatedAt:            now,
		CreatedBy:            initiatedBy,
	}
	r.transactions = append(r.transactions, txn)

	return &txn, nil
}

// debitLocked reduces the balance. The caller has already verified funds.
func (r *LedgerRepository) debitLocked(acc *domain.Account, amount decimal.Decimal, now time.Time, by string) {
	acc.Balance = acc.Balance.Sub(amount)
	acc.LastUpdatedAt = now
	acc.LastUpdatedBy = by
}

// creditLocked increases the balance.
func (r *LedgerRepository) creditLocked(acc *domain.Account, amount decimal.Decimal, now time.Time, by string) {
	acc.Balance = acc.Balance.Add(amount)
	acc.LastUpdatedAt = now
	acc.LastUpdatedBy = by
}

// accountLocked returns the live account record. Callers must hold r.mu.
func (r *LedgerRepository) accountLocked(accountID string) (*domain.Account, bool) {
	acc, ok := r.accounts[accountID]
	return acc, ok
}

func touches(txn domain.Transaction, accountID string) bool {
	if txn.SourceAccountID != nil && *txn.SourceAccountID == accountID {
		return true
	}
	if txn.DestinationAccountID != nil && *txn.DestinationAccountID == accountID {
		return true
	}
	return false
}

func copyRef(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
