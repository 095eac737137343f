// Package account holds the account and transfer entities together with the
// balance rules: the non-negative invariant, the accrual multiplier and the
// accrual cap derived from the initial balance.
package account

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound is returned when no account exists for the given
	// id or client id.
	ErrAccountNotFound = errors.New("invalid user ID")
	// ErrInsufficientBalance is returned when a debit would take the
	// balance below zero.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrSameAccountTransfer is returned when source and destination
	// resolve to the same account.
	ErrSameAccountTransfer = errors.New("cannot transfer money to the same account")
	// ErrAmountNotPositive is returned when a transfer amount is zero or
	// negative.
	ErrAmountNotPositive = errors.New("transfer amount must be positive")
	// ErrBalanceCapExceeded aborts an accrual tick when any account would
	// grow past its cap.
	ErrBalanceCapExceeded = errors.New("the maximum balance limit has been exceeded")
)

// BalanceScale is the persistence scale; results beyond it round half-up.
const BalanceScale = 2

// Accrual multipliers, exact decimals constructed from strings. The cap is
// relative to the balance the account was opened with.
var (
	AccrualRate    = decimal.RequireFromString("1.05")
	BalanceCapRate = decimal.RequireFromString("2.07")
)

// AccrualInterval is the wall-clock period of the interest job. The first
// tick fires one interval after startup.
const AccrualInterval = 60 * time.Second

// Account is the single bank account of a client. InitialBalance is frozen
// at creation and only anchors the accrual cap.
type Account struct {
	ID             uint
	ClientID       uint
	InitialBalance decimal.Decimal
	Balance        decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Cap returns the maximum balance this account may reach through accrual.
func (a *Account) Cap() decimal.Decimal {
	return a.InitialBalance.Mul(BalanceCapRate)
}

// Accrue returns the balance after one interest tick. ErrBalanceCapExceeded
// is returned when the result would pass the cap; the scheduled job treats
// that as fatal for the whole tick and rolls back.
func (a *Account) Accrue() (decimal.Decimal, error) {
	next := a.Balance.Mul(AccrualRate).Round(BalanceScale)
	if next.GreaterThan(a.Cap()) {
		return decimal.Zero, ErrBalanceCapExceeded
	}
	return next, nil
}

// Transfer is one append-only ledger row, written atomically with the
// debit/credit pair it records.
type Transfer struct {
	ID            uint
	FromAccountID uint
	ToAccountID   uint
	Amount        decimal.Decimal
	Timestamp     time.Time
}
