package repository

import (
	"context"

	domain "github.com/unnamedbank/banking/pkg/domain/account"
	"github.com/unnamedbank/banking/pkg/dto"
	transferrepo "github.com/unnamedbank/banking/pkg/repository/transfer"
	"gorm.io/gorm"
)

type transferRepository struct {
	db *gorm.DB
}

// NewTransferRepository creates a ledger repository bound to the given
// session.
func NewTransferRepository(db *gorm.DB) transferrepo.Repository {
	return &transferRepository{db: db}
}

func (r *transferRepository) Create(
	ctx context.Context,
	create dto.TransferCreate,
) (*domain.Transfer, error) {
	row := Transfer{
		FromAccountID: create.FromAccountID,
		ToAccountID:   create.ToAccountID,
		Amount:        create.Amount,
		Timestamp:     create.Timestamp,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return &domain.Transfer{
		ID:            row.ID,
		FromAccountID: row.FromAccountID,
		ToAccountID:   row.ToAccountID,
		Amount:        row.Amount,
		Timestamp:     row.Timestamp,
	}, nil
}
