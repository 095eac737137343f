package repository

import (
	"context"
	"database/sql"

	"github.com/unnamedbank/banking/pkg/repository"
	accountrepo "github.com/unnamedbank/banking/pkg/repository/account"
	clientrepo "github.com/unnamedbank/banking/pkg/repository/client"
	transferrepo "github.com/unnamedbank/banking/pkg/repository/transfer"
	"gorm.io/gorm"
)

// UoW provides the transaction boundary and repository access in one
// abstraction. All repositories resolved inside Do share the transaction
// session, which keeps the debit/credit/ledger writes of a transfer and the
// batch writes of an accrual tick atomic.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn in one transaction at repeatable-read isolation. A concurrent
// accrual tick and a transfer touching the same rows serialize on the row
// locks; the later committer observes a serialization failure and the error
// propagates to the caller for retry.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// Clients returns the client repository bound to the current session.
func (u *UoW) Clients() clientrepo.Repository {
	return NewClientRepository(u.session())
}

// Accounts returns the account repository bound to the current session.
func (u *UoW) Accounts() accountrepo.Repository {
	return NewAccountRepository(u.session())
}

// Transfers returns the ledger repository bound to the current session.
func (u *UoW) Transfers() transferrepo.Repository {
	return NewTransferRepository(u.session())
}
