// Package account owns account creation and the periodic interest accrual.
package account

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
	domain "github.com/unnamedbank/banking/pkg/domain/account"
	"github.com/unnamedbank/banking/pkg/dto"
	"github.com/unnamedbank/banking/pkg/repository"
)

// Service provides business logic for account operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates an account service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// CreateForClient opens the account during registration. It participates in
// the caller's transaction when invoked through the same UnitOfWork.
func (s *Service) CreateForClient(
	ctx context.Context,
	clientID uint,
	initialBalance decimal.Decimal,
) (created *domain.Account, err error) {
	log := s.logger.With("context", "CreateForClient", "clientID", clientID)
	log.Debug("CreateForClient called")

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		created, err = uow.Accounts().Create(ctx, dto.AccountCreate{
			ClientID:       clientID,
			InitialBalance: initialBalance,
		})
		return err
	})
	if err != nil {
		log.Error("CreateForClient failed", "error", err)
		return nil, err
	}
	log.Info("CreateForClient successful", "accountID", created.ID)
	return created, nil
}

// GetByClient resolves the account of a client.
func (s *Service) GetByClient(
	ctx context.Context,
	clientID uint,
) (acct *domain.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		acct, err = uow.Accounts().GetByClient(ctx, clientID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, domain.ErrAccountNotFound
	}
	return acct, nil
}

// Accrue applies one interest tick to every account inside one transaction.
// Either every balance grows by the multiplier or none does: the first
// account past its cap aborts the tick, the transaction rolls back and the
// error names the offending account.
func (s *Service) Accrue(ctx context.Context) error {
	log := s.logger.With("context", "Accrue")
	log.Info("Starting scheduled balance update")

	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts := uow.Accounts()
		all, err := accounts.List(ctx, true)
		if err != nil {
			return err
		}
		updated := make(map[uint]decimal.Decimal, len(all))
		for i := range all {
			next, err := all[i].Accrue()
			if err != nil {
				log.Error("Max balance exceeded", "accountID", all[i].ID)
				return &CapExceededError{AccountID: all[i].ID}
			}
			updated[all[i].ID] = next
		}
		return accounts.UpdateBalances(ctx, updated)
	})
	if err != nil {
		return err
	}
	log.Info("Scheduled balance update completed")
	return nil
}
