// Package repository defines the persistence gateway contracts. The gorm
// implementations live in infra/repository.
package repository

import (
	"context"

	accountrepo "github.com/unnamedbank/banking/pkg/repository/account"
	clientrepo "github.com/unnamedbank/banking/pkg/repository/client"
	transferrepo "github.com/unnamedbank/banking/pkg/repository/transfer"
)

// UnitOfWork provides the transaction boundary and repository access in one
// abstraction, so every repository inside Do shares the same DB session.
// The implementation runs Do at repeatable-read isolation or stronger; a
// concurrent accrual tick and a transfer on the same accounts serialize, the
// later committer fails and retries.
type UnitOfWork interface {
	// Do runs fn inside one transaction, committing on nil and rolling
	// back on error.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	Clients() clientrepo.Repository
	Accounts() accountrepo.Repository
	Transfers() transferrepo.Repository
}
