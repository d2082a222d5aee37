package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aashray325/nimble-banking-hub/internal/apperrors"
	"github.com/aashray325/nimble-banking-hub/internal/core/domain"
	"github.com/aashray325/nimble-banking-hub/internal/repositories/memory"
)

func seedAccount(t *testing.T, repo *memory.LedgerRepository, number, balance string) *domain.Account {
	t.Helper()
	ctx := context.Background()

	account := domain.Account{
		AccountID:     uuid.NewString(),
		AccountNumber: number,
		CustomerID:    uuid.NewString(),
		Status:        domain.AccountActive,
	}
	require.NoError(t, repo.SaveAccount(ctx, account))

	opening := decimal.RequireFromString(balance)
	if opening.IsPositive() {
		_, err := repo.AtomicTransfer(ctx, nil, &account.AccountID, opening, domain.KindDeposit, "Opening deposit", account.CustomerID)
		require.NoError(t, err)
	}

	stored, err := repo.FindAccountByID(ctx, account.AccountID)
	require.NoError(t, err)
	return stored
}

func balanceOf(t *testing.T, repo *memory.LedgerRepository, accountID string) decimal.Decimal {
	t.Helper()
	acc, err := repo.FindAccountByID(context.Background(), accountID)
	require.NoError(t, err)
	return acc.Balance
}

func TestAtomicTransfer_MovesMoneyAndConserves(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewLedgerRepository()
	src := seedAccount(t, repo, "1000000001", "500")
	dst := seedAccount(t, repo, "1000000002", "100")

	txn, err := repo.AtomicTransfer(ctx, &src.AccountID, &dst.AccountID, decimal.RequireFromString("120.50"), domain.KindTransfer, "rent", src.CustomerID)
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("379.50").Equal(balanceOf(t, repo, src.AccountID)))
	assert.True(t, decimal.RequireFromString("220.50").Equal(balanceOf(t, repo, dst.AccountID)))

	// Internal transfers conserve the total.
	total := balanceOf(t, repo, src.AccountID).Add(balanceOf(t, repo, dst.AccountID))
	assert.True(t, decimal.NewFromInt(600).Equal(total), "total %s", total)

	require.NotNil(t, txn.SourceAccountID)
	require.NotNil(t, txn.DestinationAccountID)
	assert.False(t, txn.IsBankBoundary())
}

func TestAtomicTransfer_RejectionLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewLedgerRepository()
	src := seedAccount(t, repo, "1000000001", "100")
	dst := seedAccount(t, repo, "1000000002", "0")

	before, err := repo.ListTransactionsByAccountID(ctx, src.AccountID, 0)
	require.NoError(t, err)

	testCases := []struct {
		name        string
		source      *string
		destination *string
		amount      string
		wantErr     error
	}{
		{"zero amount", &src.AccountID, &dst.AccountID, "0", apperrors.ErrInvalidAmount},
		{"negative amount", &src.AccountID, &dst.AccountID, "-5", apperrors.ErrInvalidAmount},
		{"insufficient funds", &src.AccountID, &dst.AccountID, "100.01", apperrors.ErrInsufficientFunds},
		{"unknown destination", &src.AccountID, ptr("missing"), "10", apperrors.ErrAccountNotFound},
		{"unknown source", ptr("missing"), &dst.AccountID, "10", apperrors.ErrAccountNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := repo.AtomicTransfer(ctx, tc.source, tc.destination, decimal.RequireFromString(tc.amount), domain.KindTransfer, "", "cust")
			assert.ErrorIs(t, err, tc.wantErr)

			// No partial effects: balances and log are exactly as before.
			assert.True(t, decimal.NewFromInt(100).Equal(balanceOf(t, repo, src.AccountID)))
			assert.True(t, decimal.Zero.Equal(balanceOf(t, repo, dst.AccountID)))
			after, err := repo.ListTransactionsByAccountID(ctx, src.AccountID, 0)
			require.NoError(t, err)
			assert.Len(t, after, len(before))
		})
	}
}

func TestAtomicTransfer_BankBoundary(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewLedgerRepository()
	acc := seedAccount(t, repo, "1000000001", "0")

	_, err := repo.AtomicTransfer(ctx, nil, &acc.AccountID, decimal.NewFromInt(300), domain.KindDeposit, "Cash deposit", acc.CustomerID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(300).Equal(balanceOf(t, repo, acc.AccountID)))

	txn, err := repo.AtomicTransfer(ctx, &acc.AccountID, nil, decimal.NewFromInt(120), domain.KindWithdrawal, "Cash withdrawal", acc.CustomerID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(180).Equal(balanceOf(t, repo, acc.AccountID)))
	assert.Nil(t, txn.DestinationAccountID)
	assert.True(t, txn.IsBankBoundary())

	// Withdrawing more than the balance hits the same funds check.
	_, err = repo.AtomicTransfer(ctx, &acc.AccountID, nil, decimal.NewFromInt(1000), domain.KindWithdrawal, "", acc.CustomerID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
}

func TestListTransactionsByAccountID_MostRecentFirst(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewLedgerRepository()
	acc := seedAccount(t, repo, "1000000001", "0")

	descriptions := []string{"first", "second", "third"}
	for _, d := range descriptions {
		_, err := repo.AtomicTransfer(ctx, nil, &acc.AccountID, decimal.NewFromInt(10), domain.KindDeposit, d, acc.CustomerID)
		require.NoError(t, err)
	}

	txns, err := repo.ListTransactionsByAccountID(ctx, acc.AccountID, 0)
	require.NoError(t, err)
	require.Len(t, txns, 3)
	assert.Equal(t, "third", txns[0].Description)
	assert.Equal(t, "second", txns[1].Description)
	assert.Equal(t, "first", txns[2].Description)

	limited, err := repo.ListTransactionsByAccountID(ctx, acc.AccountID, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "third", limited[0].Description)
}

func TestAtomicTransfer_ConcurrentTransfersConserveTotal(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewLedgerRepository()
	a := seedAccount(t, repo, "1000000001", "1000")
	b := seedAccount(t, repo, "1000000002", "1000")

	const workers = 50
	amount := decimal.NewFromInt(10)

	var wg sync.WaitGroup
	wg.Add(workers * 2)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, _ = repo.AtomicTransfer(ctx, &a.AccountID, &b.AccountID, amount, domain.KindTransfer, "", a.CustomerID)
		}()
		go func() {
			defer wg.Done()
			_, _ = repo.AtomicTransfer(ctx, &b.AccountID, &a.AccountID, amount, domain.KindTransfer, "", b.CustomerID)
		}()
	}
	wg.Wait()

	balA := balanceOf(t, repo, a.AccountID)
	balB := balanceOf(t, repo, b.AccountID)
	assert.False(t, balA.IsNegative())
	assert.False(t, balB.IsNegative())
	assert.True(t, decimal.NewFromInt(2000).Equal(balA.Add(balB)), "total drifted: %s + %s", balA, balB)
}

func TestAtomicTransfer_ConcurrentOverdraftAttempts(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewLedgerRepository()
	acc := seedAccount(t, repo, "1000000001", "100")

	const workers = 10
	amount := decimal.NewFromInt(30)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, err := repo.AtomicTransfer(ctx, &acc.AccountID, nil, amount, domain.KindWithdrawal, "", acc.CustomerID); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// 100 / 30: at most three withdrawals can pass the funds check.
	assert.Equal(t, 3, succeeded)
	final := balanceOf(t, repo, acc.AccountID)
	assert.True(t, decimal.NewFromInt(10).Equal(final), "final balance %s", final)
}

func TestSaveAccount_DuplicateRejected(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewLedgerRepository()
	acc := seedAccount(t, repo, "1000000001", "0")

	err := repo.SaveAccount(ctx, domain.Account{AccountID: acc.AccountID, AccountNumber: "1000000009"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	err = repo.SaveAccount(ctx, domain.Account{AccountID: uuid.NewString(), AccountNumber: acc.AccountNumber})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func ptr(s string) *string {
	return &s
}
