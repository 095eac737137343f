package repository

import (
	"context"

	"github.com/shopspring/decimal"
	domain "github.com/unnamedbank/banking/pkg/domain/account"
	"github.com/unnamedbank/banking/pkg/dto"
	accountrepo "github.com/unnamedbank/banking/pkg/repository/account"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates an account repository bound to the given
// session.
func NewAccountRepository(db *gorm.DB) accountrepo.Repository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(
	ctx context.Context,
	create dto.AccountCreate,
) (*domain.Account, error) {
	row := Account{
		ClientID:       create.ClientID,
		InitialBalance: create.InitialBalance,
		Balance:        create.InitialBalance,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return mapAccountToDomain(&row), nil
}

func (r *accountRepository) Get(ctx context.Context, id uint) (*domain.Account, error) {
	return r.getOne(ctx, r.db, "id = ?", id)
}

func (r *accountRepository) GetByClient(
	ctx context.Context,
	clientID uint,
) (*domain.Account, error) {
	return r.getOne(ctx, r.db, "client_id = ?", clientID)
}

func (r *accountRepository) GetForUpdate(
	ctx context.Context,
	id uint,
) (*domain.Account, error) {
	locked := r.db.Clauses(clause.Locking{Strength: "UPDATE"})
	return r.getOne(ctx, locked, "id = ?", id)
}

func (r *accountRepository) getOne(
	ctx context.Context,
	db *gorm.DB,
	query string,
	arg any,
) (*domain.Account, error) {
	var row Account
	err := db.WithContext(ctx).First(&row, query, arg).Error
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return mapAccountToDomain(&row), nil
}

func (r *accountRepository) List(
	ctx context.Context,
	forUpdate bool,
) ([]domain.Account, error) {
	db := r.db
	if forUpdate {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var rows []Account
	// Ascending id keeps the lock order compatible with transfers.
	if err := db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	accounts := make([]domain.Account, 0, len(rows))
	for i := range rows {
		accounts = append(accounts, *mapAccountToDomain(&rows[i]))
	}
	return accounts, nil
}

func (r *accountRepository) UpdateBalance(
	ctx context.Context,
	id uint,
	balance decimal.Decimal,
) error {
	return r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ?", id).
		Update("balance", balance).Error
}

func (r *accountRepository) UpdateBalances(
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

func mapAccountToDomain(row *Account) *domain.Account {
	return &domain.Account{
		ID:             row.ID,
		ClientID:       row.ClientID,
		InitialBalance: row.InitialBalance,
		Balance:        row.Balance,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
