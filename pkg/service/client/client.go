// Package client implements registration, contact management and directory
// search.
package client

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/unnamedbank/banking/pkg/domain/client"
	"github.com/unnamedbank/banking/pkg/dto"
	"github.com/unnamedbank/banking/pkg/repository"
)

// Registration is the validated input of Register. Both contact channels
// are required at sign-up; they only become optional through DeleteContact.
type Registration struct {
	Username       string
	Password       string
	InitialBalance decimal.Decimal
	PhoneNumber    string
	Email          string
	BirthDate      time.Time
	FullName       string
}

// Service provides business logic for client operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a client service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Register creates the client and its account in one transaction. The
// entity constructor validates the input and hashes the password; the
// uniqueness probes give precise errors, and a probe race still fails at
// commit on the unique indexes and rolls everything back.
func (s *Service) Register(
	ctx context.Context,
	reg Registration,
) (created *dto.ClientRead, err error) {
	log := s.logger.With("context", "Register", "username", reg.Username)
	log.Debug("Register called")

	phone, email := reg.PhoneNumber, reg.Email
	entity, err := client.New(
		reg.Username, reg.Password, reg.FullName, &phone, &email, reg.BirthDate)
	if err != nil {
		log.Error("Register failed", "error", err)
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		clients := uow.Clients()
		if err := s.checkUnused(ctx, uow, reg.Username, reg.PhoneNumber, reg.Email); err != nil {
			return err
		}
		created, err = clients.Create(ctx, dto.ClientCreate{
			Username:    entity.Username,
			Password:    entity.Password,
			FullName:    entity.FullName,
			PhoneNumber: entity.PhoneNumber,
			Email:       entity.Email,
			BirthDate:   entity.BirthDate,
		})
		if err != nil {
			return err
		}
		_, err = uow.Accounts().Create(ctx, dto.AccountCreate{
			ClientID:       created.ID,
			InitialBalance: reg.InitialBalance,
		})
		return err
	})
	if err != nil {
		log.Error("Register failed", "error", err)
		return nil, err
	}
	log.Info("Register successful", "clientID", created.ID)
	return created, nil
}

func (s *Service) checkUnused(
	ctx context.Context,
	uow repository.UnitOfWork,
	username, phoneNumber, email string,
) error {
	clients := uow.Clients()
	if existing, err := clients.GetByUsername(ctx, username); err != nil {
		return err
	} else if existing != nil {
		return client.ErrUsernameTaken
	}
	if existing, err := clients.GetByPhone(ctx, phoneNumber); err != nil {
		return err
	} else if existing != nil {
		return client.ErrPhoneTaken
	}
	if existing, err := clients.GetByEmail(ctx, email); err != nil {
		return err
	} else if existing != nil {
		return client.ErrEmailTaken
	}
	return nil
}

// UpdateContact overwrites the provided contact channels. Omitted fields
// keep their previous value; clearing goes through DeleteContact. A value
// already used by a different client is rejected.
func (s *Service) UpdateContact(
	ctx context.Context,
	clientID uint,
	phoneNumber, email *string,
) (updated *dto.ClientRead, err error) {
	log := s.logger.With("context", "UpdateContact", "clientID", clientID)
	log.Debug("UpdateContact called")

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		clients := uow.Clients()
		existing, err := clients.Get(ctx, clientID)
		if err != nil {
			return err
		}
		if existing == nil {
			return client.ErrClientNotFound
		}
		if phoneNumber != nil {
			owner, err := clients.GetByPhone(ctx, *phoneNumber)
			if err != nil {
				return err
			}
			if owner != nil && owner.ID != clientID {
				return client.ErrPhoneTaken
			}
		}
		if email != nil {
			owner, err := clients.GetByEmail(ctx, *email)
			if err != nil {
				return err
			}
			if owner != nil && owner.ID != clientID {
				return client.ErrEmailTaken
			}
		}
		updated, err = clients.Update(ctx, clientID, dto.ClientUpdate{
			PhoneNumber: phoneNumber,
			Email:       email,
		})
		return err
	})
	if err != nil {
		log.Error("UpdateContact failed", "error", err)
		return nil, err
	}
	log.Info("UpdateContact successful")
	return updated, nil
}

// DeleteContact clears the requested channels. Clearing both at once is
// refused, as is anything that would leave the client unreachable.
func (s *Service) DeleteContact(
	ctx context.Context,
	clientID uint,
	deletePhone, deleteEmail bool,
) (updated *dto.ClientRead, err error) {
	log := s.logger.With("context", "DeleteContact", "clientID", clientID)
	log.Debug("DeleteContact called", "deletePhone", deletePhone, "deleteEmail", deleteEmail)

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		clients := uow.Clients()
		existing, err := clients.Get(ctx, clientID)
		if err != nil {
			return err
		}
		// The client must exist before any policy check applies.
		if existing == nil {
			return client.ErrClientNotFound
		}
		if deletePhone && deleteEmail {
			return client.ErrBothContactsDelete
		}
		remaining := &client.Client{
			PhoneNumber: existing.PhoneNumber,
			Email:       existing.Email,
		}
		if !remaining.HasContact(deletePhone, deleteEmail) {
			return client.ErrContactRequired
		}
		updated, err = clients.Update(ctx, clientID, dto.ClientUpdate{
			ClearPhone: deletePhone,
			ClearEmail: deleteEmail,
		})
		return err
	})
	if err != nil {
		log.Error("DeleteContact failed", "error", err)
		return nil, err
	}
	log.Info("DeleteContact successful")
	return updated, nil
}

// Search returns one page of the client directory. The filter is disjoint;
// the repository applies the first present criterion only.
func (s *Service) Search(
	ctx context.Context,
	filter dto.ClientFilter,
) (page *dto.ClientPage, err error) {
	log := s.logger.With("context", "Search")
	log.Debug("Search called", "page", filter.Page, "size", filter.Size, "sortBy", filter.SortBy)

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		page, err = uow.Clients().Search(ctx, filter)
		return err
	})
	if err != nil {
		log.Error("Search failed", "error", err)
		return nil, err
	}
	log.Info("Search successful", "total", page.TotalElements)
	return page, nil
}

// GetByUsername resolves a token subject to the stored client. Used by the
// auth gate to attach the principal.
func (s *Service) GetByUsername(
	ctx context.Context,
	username string,
) (c *dto.ClientRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		c, err = uow.Clients().GetByUsername(ctx, username)
		return err
	})
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, client.ErrClientNotFound
	}
	return c, nil
}
