package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/aashray325/nimble-banking-hub/internal/apperrors"
	"github.com/aashray325/nimble-banking-hub/internal/core/domain"
	portsrepo "github.com/aashray325/nimble-banking-hub/internal/core/ports/repositories"
)

// PgxLedgerRepository is the durable ledger adapter. AtomicTransfer runs the
// debit, credit and log append inside one database transaction with the
// involved account rows locked via SELECT ... FOR UPDATE, so concurrent
// transfers touching the same account serialize at the row lock instead of
// racing the balance check.
type PgxLedgerRepository struct {
	BaseRepository
}

// NewLedgerRepository creates a new repository for account and transaction data.
func NewLedgerRepository(pool *pgxpool.Pool) *PgxLedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

const accountColumns = `account_id, account_number, customer_id, balance, status, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var acc domain.Account
	err := row.Scan(
		&acc.AccountID,
		&acc.AccountNumber,
		&acc.CustomerID,
		&acc.Balance,
		&acc.Status,
		&acc.CreatedAt,
		&acc.CreatedBy,
		&acc.LastUpdatedAt,
		&acc.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	return &acc, nil
}

// SaveAccount persists a new account.
func (r *PgxLedgerRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (account_id, account_number, customer_id, balance, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.AccountNumber,
		account.CustomerID,
		account.Balance,
		account.Status,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert account %s: %w", account.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its unique identifier.
func (r *PgxLedgerRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	return scanAccount(r.Pool.QueryRow(ctx, query, accountID))
}

// FindAccountByNumber retrieves an account by its human-facing number.
func (r *PgxLedgerRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1;`
	return scanAccount(r.Pool.QueryRow(ctx, query, accountNumber))
}

// ListAccountsByCustomer retrieves all accounts owned by a customer.
func (r *PgxLedgerRepository) ListAccountsByCustomer(ctx context.Context, customerID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE customer_id = $1 ORDER BY created_at;`
	rows, err := r.Pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for customer %s: %w", customerID, err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *acc)
	}
	return accounts, rows.Err()
}

// ListTransactionsByAccountID retrieves ledger entries touching the account,
// most recent first.
func (r *PgxLedgerRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error) {
	query := `
		SELECT transaction_id, source_account_id, destination_account_id, amount, kind, description, created_at, created_by
		FROM transactions
		WHERE source_account_id = $1 OR destination_account_id = $1
		ORDER BY created_at DESC, transaction_id DESC
	`
	args := []any{accountID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		var txn domain.Transaction
		if err := rows.Scan(
			&txn.TransactionID,
			&txn.SourceAccountID,
			&txn.DestinationAccountID,
			&txn.Amount,
			&txn.Kind,
			&txn.Description,
			&txn.CreatedAt,
			&txn.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}

// AtomicTransfer debits, credits and appends the log record in one database
// transaction.
func (r *PgxLedgerRepository) AtomicTransfer(ctx context.Context, source, destination *string, amount decimal.Decimal, kind domain.TransactionKind, description string, initiatedBy string) (*domain.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, amount)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	now := time.Now().UTC()
	if err := applyBalanceMovement(ctx, tx, source, destination, amount, initiatedBy, now); err != nil {
		return nil, err
	}

	txn := domain.Transaction{
		TransactionID:        uuid.NewString(),
		SourceAccountID:      source,
		DestinationAccountID: destination,
		Amount:               amount,
		Kind:                 kind,
		Description:          description,
		CreatedAt:            now,
		CreatedBy:            initiatedBy,
	}
	if err := insertTransaction(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &txn, nil
}

// applyBalanceMovement locks the involved account rows in ID order, verifies
// funds and writes the new balances. Shared with the loan repository so its
// compound operations reuse the same discipline inside their own tx.
func applyBalanceMovement(ctx context.Context, tx pgx.Tx, source, destination *string, amount decimal.Decimal, by string, now time.Time) error {
	ids := make([]string, 0, 2)
	if source != nil {
		ids = append(ids, *source)
	}
	if destination != nil {
		ids = append(ids, *destination)
	}
	// Locking in a stable order prevents deadlocks between concurrent
	// transfers that touch the same pair of accounts in opposite directions.
	sort.Strings(ids)

	locked := make(map[string]*domain.Account, len(ids))
	for _, id := range ids {
		if _, done := locked[id]; done {
			continue
		}
		acc, err := lockAccountForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		locked[id] = acc
	}

	if source != nil {
		src := locked[*source]
		if src.Balance.LessThan(amount) {
			return fmt.Errorf("%w: account %s has %s, needs %s", apperrors.ErrInsufficientFunds, *source, src.Balance, amount)
		}
		src.Balance = src.Balance.Sub(amount)
	}
	if destination != nil {
		dst := locked[*destination]
		dst.Balance = dst.Balance.Add(amount)
	}

	for _, acc := range locked {
		if err := updateAccountBalanceInTx(ctx, tx, acc.AccountID, acc.Balance, by, now); err != nil {
			return err
		}
	}
	return nil
}

func lockAccountForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 FOR UPDATE;`
	return scanAccount(tx.QueryRow(ctx, query, accountID))
}

func updateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, balance decimal.Decimal, by string, now time.Time) error {
	query := `
		UPDATE accounts
		SET balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	tag, err := tx.Exec(ctx, query, accountID, balance, now, by)
	if err != nil {
		return fmt.Errorf("failed to update balance for account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrAccountNotFound, accountID)
	}
	return nil
}

func insertTransaction(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	query := `
		INSERT INTO transactions (transaction_id, source_account_id, destination_account_id, amount, kind, description, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := tx.Exec(ctx, query,
		txn.TransactionID,
		txn.SourceAccountID,
		txn.DestinationAccountID,
		txn.Amount,
		txn.Kind,
		txn.Description,
		txn.CreatedAt,
		txn.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}
