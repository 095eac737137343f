// Package account defines the account repository contract.
package account

import (
	"context"

	"github.com/shopspring/decimal"
	domain "github.com/unnamedbank/banking/pkg/domain/account"
	"github.com/unnamedbank/banking/pkg/dto"
)

// Repository is the typed gateway to the accounts table.
type Repository interface {
	Create(ctx context.Context, create dto.AccountCreate) (*domain.Account, error)
	Get(ctx context.Context, id uint) (*domain.Account, error)
	GetByClient(ctx context.Context, clientID uint) (*domain.Account, error)
	// GetForUpdate reads one row under SELECT ... FOR UPDATE. Callers
	// touching several accounts must lock in ascending id order.
	GetForUpdate(ctx context.Context, id uint) (*domain.Account, error)
	// List returns every account, locking the rows when forUpdate is set
	// (the accrual tick holds all of them until commit).
	List(ctx context.Context, forUpdate bool) ([]domain.Account, error)
	UpdateBalance(ctx context.Context, id uint, balance decimal.Decimal) error
	// UpdateBalances persists one batch of recomputed balances; all rows
	// belong to the same transaction.
	UpdateBalances(ctx context.Context, balances map[uint]decimal.Decimal) error
}
