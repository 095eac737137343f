// Package fixtures provides an in-memory UnitOfWork for service and handler
// tests. Do snapshots the store and restores it when the callback errors, so
// rollback-sensitive assertions hold without a database.
package fixtures

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	domain "github.com/unnamedbank/banking/pkg/domain/account"
	"github.com/unnamedbank/banking/pkg/dto"
	"github.com/unnamedbank/banking/pkg/repository"
	accountrepo "github.com/unnamedbank/banking/pkg/repository/account"
	clientrepo "github.com/unnamedbank/banking/pkg/repository/client"
	transferrepo "github.com/unnamedbank/banking/pkg/repository/transfer"
)

// MemoryStore is the backing state shared by the fake repositories.
type MemoryStore struct {
	Clients   map[uint]dto.ClientRead
	Accounts  map[uint]domain.Account
	Transfers []domain.Transfer

	nextClientID   uint
	nextAccountID  uint
	nextTransferID uint
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		Clients:  make(map[uint]dto.ClientRead),
		Accounts: make(map[uint]domain.Account),
	}
}

// SeedClient inserts a client row directly, bypassing the service layer.
func (s *MemoryStore) SeedClient(c dto.ClientRead) dto.ClientRead {
	if c.ID == 0 {
		s.nextClientID++
		c.ID = s.nextClientID
	} else if c.ID > s.nextClientID {
		s.nextClientID = c.ID
	}
	s.Clients[c.ID] = c
	return c
}

// SeedAccount inserts an account row directly.
func (s *MemoryStore) SeedAccount(a domain.Account) domain.Account {
	if a.ID == 0 {
		s.nextAccountID++
		a.ID = s.nextAccountID
	} else if a.ID > s.nextAccountID {
		s.nextAccountID = a.ID
	}
	s.Accounts[a.ID] = a
	return a
}

// TotalBalance sums every account balance, for conservation assertions.
func (s *MemoryStore) TotalBalance() decimal.Decimal {
	total := decimal.Zero
	for _, a := range s.Accounts {
		total = total.Add(a.Balance)
	}
	return total
}

func (s *MemoryStore) snapshot() *MemoryStore {
	clone := NewMemoryStore()
	clone.nextClientID = s.nextClientID
	clone.nextAccountID = s.nextAccountID
	clone.nextTransferID = s.nextTransferID
	for id, c := range s.Clients {
		clone.Clients[id] = c
	}
	for id, a := range s.Accounts {
		clone.Accounts[id] = a
	}
	clone.Transfers = append(clone.Transfers, s.Transfers...)
	return clone
}

func (s *MemoryStore) restore(from *MemoryStore) {
	s.Clients = from.Clients
	s.Accounts = from.Accounts
	s.Transfers = from.Transfers
	s.nextClientID = from.nextClientID
	s.nextAccountID = from.nextAccountID
	s.nextTransferID = from.nextTransferID
}

// UoW is the in-memory UnitOfWork.
type UoW struct {
	Store *MemoryStore
}

// NewUoW wraps a store in a UnitOfWork.
func NewUoW(store *MemoryStore) *UoW {
	return &UoW{Store: store}
}

// Do emulates the transaction boundary: state mutated by fn is rolled back
// when fn returns an error.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	before := u.Store.snapshot()
	if err := fn(u); err != nil {
		u.Store.restore(before)
		return err
	}
	return nil
}

// Clients returns the fake client repository.
func (u *UoW) Clients() clientrepo.Repository { return &clientRepo{store: u.Store} }

// Accounts returns the fake account repository.
func (u *UoW) Accounts() accountrepo.Repository { return &accountRepo{store: u.Store} }

// Transfers returns the fake ledger repository.
func (u *UoW) Transfers() transferrepo.Repository { return &transferRepo{store: u.Store} }

type clientRepo struct {
	store *MemoryStore
}

func (r *clientRepo) Create(
	ctx context.Context,
	create dto.ClientCreate,
) (*dto.ClientRead, error) {
	created := r.store.SeedClient(dto.ClientRead{
		Username:    create.Username,
		Password:    create.Password,
		FullName:    create.FullName,
		PhoneNumber: create.PhoneNumber,
		Email:       create.Email,
		BirthDate:   create.BirthDate,
		CreatedAt:   time.Now(),
	})
	return &created, nil
}

func (r *clientRepo) Get(ctx context.Context, id uint) (*dto.ClientRead, error) {
	if c, ok := r.store.Clients[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *clientRepo) GetByUsername(
	ctx context.Context,
	username string,
) (*dto.ClientRead, error) {
	return r.find(func(c dto.ClientRead) bool { return c.Username == username })
}

func (r *clientRepo) GetByPhone(
	ctx context.Context,
	phoneNumber string,
) (*dto.ClientRead, error) {
	return r.find(func(c dto.ClientRead) bool {
		return c.PhoneNumber != nil && *c.PhoneNumber == phoneNumber
	})
}

func (r *clientRepo) GetByEmail(
	ctx context.Context,
	email string,
) (*dto.ClientRead, error) {
	return r.find(func(c dto.ClientRead) bool {
		return c.Email != nil && *c.Email == email
	})
}

func (r *clientRepo) find(match func(dto.ClientRead) bool) (*dto.ClientRead, error) {
	for _, c := range r.store.Clients {
		if match(c) {
			found := c
			return &found, nil
		}
	}
	return nil, nil
}

func (r *clientRepo) Update(
	ctx context.Context,
	id uint,
	update dto.ClientUpdate,
) (*dto.ClientRead, error) {
	c, ok := r.store.Clients[id]
	if !ok {
		return nil, nil
	}
	if update.PhoneNumber != nil {
		phone := *update.PhoneNumber
		c.PhoneNumber = &phone
	}
	if update.Email != nil {
		email := *update.Email
		c.Email = &email
	}
	if update.ClearPhone {
		c.PhoneNumber = nil
	}
	if update.ClearEmail {
		c.Email = nil
	}
	r.store.Clients[id] = c
	return &c, nil
}

func (r *clientRepo) Search(
	ctx context.Context,
	filter dto.ClientFilter,
) (*dto.ClientPage, error) {
	var matched []dto.ClientRead
	for _, c := range r.store.Clients {
		switch {
		case filter.FullName != nil:
			pattern := strings.Trim(*filter.FullName, "%")
			if !strings.Contains(c.FullName, pattern) {
				continue
			}
		case filter.PhoneNumber != nil:
			if c.PhoneNumber == nil || *c.PhoneNumber != *filter.PhoneNumber {
				continue
			}
		case filter.Email != nil:
			if c.Email == nil || *c.Email != *filter.Email {
				continue
			}
		case filter.BirthDate != nil:
			if !c.BirthDate.After(*filter.BirthDate) {
				continue
			}
		}
		matched = append(matched, c)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	start := filter.Page * filter.Size
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Size
	if end > len(matched) {
		end = len(matched)
	}
	return &dto.ClientPage{
		Items:         matched[start:end],
		Page:          filter.Page,
		Size:          filter.Size,
		TotalElements: total,
	}, nil
}

type accountRepo struct {
	store *MemoryStore
}

func (r *accountRepo) Create(
	ctx context.Context,
	create dto.AccountCreate,
) (*domain.Account, error) {
	created := r.store.SeedAccount(domain.Account{
		ClientID:       create.ClientID,
		InitialBalance: create.InitialBalance,
		Balance:        create.InitialBalance,
	})
	return &created, nil
}

func (r *accountRepo) Get(ctx context.Context, id uint) (*domain.Account, error) {
	if a, ok := r.store.Accounts[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (r *accountRepo) GetByClient(
	ctx context.Context,
	clientID uint,
) (*domain.Account, error) {
	for _, a := range r.store.Accounts {
		if a.ClientID == clientID {
			found := a
			return &found, nil
		}
	}
	return nil, nil
}

func (r *accountRepo) GetForUpdate(ctx context.Context, id uint) (*domain.Account, error) {
	return r.Get(ctx, id)
}

func (r *accountRepo) List(ctx context.Context, forUpdate bool) ([]domain.Account, error) {
	accounts := make([]domain.Account, 0, len(r.store.Accounts))
	for _, a := range r.store.Accounts {
		accounts = append(accounts, a)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

func (r *accountRepo) UpdateBalance(
	ctx context.Context,
	id uint,
	balance decimal.Decimal,
) error {
	a := r.store.Accounts[id]
	a.Balance = balance
	r.store.Accounts[id] = a
	return nil
}

func (r *accountRepo) UpdateBalances(
	ctx context.Context,
	balances map[uint]decimal.Decimal,
) error {
	for id, balance := range balances {
		if err := r.UpdateBalance(ctx, id, balance); err != nil {
			return err
		}
	}
	return nil
}

type transferRepo struct {
	store *MemoryStore
}

func (r *transferRepo) Create(
	ctx context.Context,
	create dto.TransferCreate,
) (*domain.Transfer, error) {
	r.store.nextTransferID++
	created := domain.Transfer{
		ID:            r.store.nextTransferID,
		FromAccountID: create.FromAccountID,
		ToAccountID:   create.ToAccountID,
		Amount:        create.Amount,
		Timestamp:     create.Timestamp,
	}
	r.store.Transfers = append(r.store.Transfers, created)
	return &created, nil
}
