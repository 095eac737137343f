package transfer_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unnamedbank/banking/internal/fixtures"
	domain "github.com/unnamedbank/banking/pkg/domain/account"
	"github.com/unnamedbank/banking/pkg/domain/client"
	"github.com/unnamedbank/banking/pkg/dto"
	transfersvc "github.com/unnamedbank/banking/pkg/service/transfer"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// seedPair creates two clients with one account each and returns the store
// and a principal acting as the first client.
func seedPair(fromBalance, toBalance string) (*fixtures.MemoryStore, *transfersvc.Principal) {
	store := fixtures.NewMemoryStore()
	ivanov := store.SeedClient(dto.ClientRead{Username: "ivanov", FullName: "Ivan Ivanov"})
	petrov := store.SeedClient(dto.ClientRead{Username: "petrov", FullName: "Petr Petrov"})
	store.SeedAccount(domain.Account{
		ClientID:       ivanov.ID,
		InitialBalance: dec(fromBalance),
		Balance:        dec(fromBalance),
	})
	store.SeedAccount(domain.Account{
		ClientID:       petrov.ID,
		InitialBalance: dec(toBalance),
		Balance:        dec(toBalance),
	})
	return store, &transfersvc.Principal{ClientID: ivanov.ID, Username: ivanov.Username}
}

func TestTransfer_Success(t *testing.T) {
	t.Parallel()
	store, principal := seedPair("100.00", "100.00")
	svc := transfersvc.New(fixtures.NewUoW(store), slog.Default())
	before := store.TotalBalance()

	created, err := svc.Transfer(context.Background(), principal, 1, 2, dec("30.00"))
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "30.00", created.Amount.StringFixed(2))

	assert.Equal(t, "70.00", store.Accounts[1].Balance.StringFixed(2))
	assert.Equal(t, "130.00", store.Accounts[2].Balance.StringFixed(2))
	assert.True(t, store.TotalBalance().Equal(before), "transfer must conserve money")

	require.Len(t, store.Transfers, 1)
	assert.Equal(t, store.Accounts[1].ID, store.Transfers[0].FromAccountID)
	assert.Equal(t, store.Accounts[2].ID, store.Transfers[0].ToAccountID)
}

func TestTransfer_ExactBalance(t *testing.T) {
	t.Parallel()
	store, principal := seedPair("50.00", "0.00")
	svc := transfersvc.New(fixtures.NewUoW(store), slog.Default())

	_, err := svc.Transfer(context.Background(), principal, 1, 2, dec("50.00"))
	require.NoError(t, err)
	assert.Equal(t, "0.00", store.Accounts[1].Balance.StringFixed(2))
	assert.Equal(t, "50.00", store.Accounts[2].Balance.StringFixed(2))
}

func TestTransfer_InsufficientBalance(t *testing.T) {
	t.Parallel()
	store, principal := seedPair("10.00", "100.00")
	svc := transfersvc.New(fixtures.NewUoW(store), slog.Default())

	_, err := svc.Transfer(context.Background(), principal, 1, 2, dec("10.01"))
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	// Nothing moved and no ledger row was written.
	assert.Equal(t, "10.00", store.Accounts[1].Balance.StringFixed(2))
	assert.Equal(t, "100.00", store.Accounts[2].Balance.StringFixed(2))
	assert.Empty(t, store.Transfers)
}

func TestTransfer_SameAccount(t *testing.T) {
	t.Parallel()
	store, principal := seedPair("100.00", "100.00")
	svc := transfersvc.New(fixtures.NewUoW(store), slog.Default())

	_, err := svc.Transfer(context.Background(), principal, 1, 1, dec("10.00"))
	assert.ErrorIs(t, err, domain.ErrSameAccountTransfer)
}

func TestTransfer_AmountNotPositive(t *testing.T) {
	t.Parallel()
	store, principal := seedPair("100.00", "100.00")
	svc := transfersvc.New(fixtures.NewUoW(store), slog.Default())

	_, err := svc.Transfer(context.Background(), principal, 1, 2, dec("0"))
	assert.ErrorIs(t, err, domain.ErrAmountNotPositive)

	_, err = svc.Transfer(context.Background(), principal, 1, 2, dec("-5.00"))
	assert.ErrorIs(t, err, domain.ErrAmountNotPositive)
}

func TestTransfer_UnknownClient(t *testing.T) {
	t.Parallel()
	store, principal := seedPair("100.00", "100.00")
	svc := transfersvc.New(fixtures.NewUoW(store), slog.Default())

	_, err := svc.Transfer(context.Background(), principal, 1, 42, dec("10.00"))
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	_, err = svc.Transfer(context.Background(), principal, 42, 2, dec("10.00"))
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestTransfer_NoPrincipal(t *testing.T) {
	t.Parallel()
	store, _ := seedPair("100.00", "100.00")
	svc := transfersvc.New(fixtures.NewUoW(store), slog.Default())

	_, err := svc.Transfer(context.Background(), nil, 1, 2, dec("10.00"))
	assert.ErrorIs(t, err, client.ErrUnauthorized)
}

func TestTransfer_ReverseDirection(t *testing.T) {
	t.Parallel()
	// The destination account has the lower id here, exercising the
	// lock-order swap path.
	store := fixtures.NewMemoryStore()
	petrov := store.SeedClient(dto.ClientRead{Username: "petrov", FullName: "Petr Petrov"})
	ivanov := store.SeedClient(dto.ClientRead{Username: "ivanov", FullName: "Ivan Ivanov"})
	store.SeedAccount(domain.Account{
		ClientID: petrov.ID, InitialBalance: dec("100.00"), Balance: dec("100.00")})
	store.SeedAccount(domain.Account{
		ClientID: ivanov.ID, InitialBalance: dec("100.00"), Balance: dec("100.00")})
	svc := transfersvc.New(fixtures.NewUoW(store), slog.Default())
	principal := &transfersvc.Principal{ClientID: ivanov.ID, Username: ivanov.Username}

	_, err := svc.Transfer(
		context.Background(), principal, ivanov.ID, petrov.ID, dec("25.00"))
	require.NoError(t, err)

	assert.Equal(t, "75.00", store.Accounts[2].Balance.StringFixed(2))
	assert.Equal(t, "125.00", store.Accounts[1].Balance.StringFixed(2))
	require.Len(t, store.Transfers, 1)
	assert.EqualValues(t, 2, store.Transfers[0].FromAccountID)
	assert.EqualValues(t, 1, store.Transfers[0].ToAccountID)
}
