package account_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unnamedbank/banking/pkg/domain/account"
)

func newAccount(initial, balance string) account.Account {
	return account.Account{
		ID:             1,
		ClientID:       1,
		InitialBalance: decimal.RequireFromString(initial),
		Balance:        decimal.RequireFromString(balance),
	}
}

func TestCap(t *testing.T) {
	t.Parallel()
	a := newAccount("100.00", "100.00")
	assert.True(t, a.Cap().Equal(decimal.RequireFromString("207.00")))
}

func TestAccrue_SingleTick(t *testing.T) {
	t.Parallel()
	a := newAccount("100.00", "100.00")
	next, err := a.Accrue()
	require.NoError(t, err)
	assert.Equal(t, "105.00", next.StringFixed(2))
}

func TestAccrue_RoundsHalfUp(t *testing.T) {
	t.Parallel()
	// 110.25 * 1.05 = 115.7625 rounds to 115.76,
	// 140.71 * 1.05 = 147.7455 rounds to 147.75.
	a := newAccount("200.00", "110.25")
	next, err := a.Accrue()
	require.NoError(t, err)
	assert.Equal(t, "115.76", next.StringFixed(2))

	a.Balance = decimal.RequireFromString("140.71")
	next, err = a.Accrue()
	require.NoError(t, err)
	assert.Equal(t, "147.75", next.StringFixed(2))
}

func TestAccrue_StopsAtCap(t *testing.T) {
	t.Parallel()
	require := require.New(t)
	a := newAccount("100.00", "100.00")

	ticks := 0
	for {
		next, err := a.Accrue()
		if err != nil {
			require.ErrorIs(err, account.ErrBalanceCapExceeded)
			break
		}
		a.Balance = next
		ticks++
		require.Less(ticks, 100, "accrual never hit the cap")
	}

	// Compound growth at 5% per tick saturates after 14 ticks; the 15th
	// would pass 207.00 and is refused.
	assert.Equal(t, 14, ticks)
	assert.Equal(t, "198.01", a.Balance.StringFixed(2))
	assert.True(t, a.Balance.LessThanOrEqual(a.Cap()))
}

func TestAccrue_AlreadyPastCap(t *testing.T) {
	t.Parallel()
	a := newAccount("100.00", "200.00")
	_, err := a.Accrue()
	assert.ErrorIs(t, err, account.ErrBalanceCapExceeded)
}
