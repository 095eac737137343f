// Package transfer implements the atomic funds transfer between two client
// accounts.
package transfer

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	domain "github.com/unnamedbank/banking/pkg/domain/account"
	"github.com/unnamedbank/banking/pkg/domain/client"
	"github.com/unnamedbank/banking/pkg/dto"
	"github.com/unnamedbank/banking/pkg/repository"
)

// Principal is the authenticated identity derived from a verified bearer
// token.
type Principal struct {
	ClientID uint
	Username string
}

// Service provides the funds-transfer operation.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a transfer service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Transfer debits the source account, credits the destination and appends
// one ledger row, all in one transaction. Accounts are resolved through
// their owning client ids; row locks are taken in ascending account-id
// order so two reciprocal transfers cannot deadlock.
func (s *Service) Transfer(
	ctx context.Context,
	principal *Principal,
	fromClientID, toClientID uint,
	amount decimal.Decimal,
) (created *domain.Transfer, err error) {
	log := s.logger.With(
		"context", "Transfer",
		"fromClientID", fromClientID,
		"toClientID", toClientID,
	)
	log.Debug("Transfer called", "amount", amount)

	if principal == nil {
		log.Warn("Transfer without principal")
		return nil, client.ErrUnauthorized
	}
	if fromClientID == toClientID {
		log.Warn("Transfer to the same account")
		return nil, domain.ErrSameAccountTransfer
	}
	if !amount.IsPositive() {
		return nil, domain.ErrAmountNotPositive
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts := uow.Accounts()

		fromAccount, err := accounts.GetByClient(ctx, fromClientID)
		if err != nil {
			return err
		}
		if fromAccount == nil {
			return domain.ErrAccountNotFound
		}
		toAccount, err := accounts.GetByClient(ctx, toClientID)
		if err != nil {
			return err
		}
		if toAccount == nil {
			return domain.ErrAccountNotFound
		}

		// Re-read both rows under lock, lowest id first.
		first, second := fromAccount, toAccount
		if second.ID < first.ID {
			first, second = second, first
		}
		if first, err = accounts.GetForUpdate(ctx, first.ID); err != nil {
			return err
		}
		if second, err = accounts.GetForUpdate(ctx, second.ID); err != nil {
			return err
		}
		if first.ID == fromAccount.ID {
			fromAccount, toAccount = first, second
		} else {
			fromAccount, toAccount = second, first
		}

		if fromAccount.Balance.LessThan(amount) {
			log.Warn("Insufficient balance", "accountID", fromAccount.ID)
			return domain.ErrInsufficientBalance
		}

		debited := fromAccount.Balance.Sub(amount)
		credited := toAccount.Balance.Add(amount)
		if err := accounts.UpdateBalance(ctx, fromAccount.ID, debited); err != nil {
			return err
		}
		if err := accounts.UpdateBalance(ctx, toAccount.ID, credited); err != nil {
			return err
		}

		created, err = uow.Transfers().Create(ctx, dto.TransferCreate{
			FromAccountID: fromAccount.ID,
			ToAccountID:   toAccount.ID,
			Amount:        amount,
			Timestamp:     time.Now().UTC(),
		})
		return err
	})
	if err != nil {
		log.Error("Transfer failed", "error", err)
		return nil, err
	}
	log.Info("Transfer successful", "transferID", created.ID)
	return created, nil
}
