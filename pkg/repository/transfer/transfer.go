// Package transfer defines the ledger repository contract.
package transfer

import (
	"context"

	domain "github.com/unnamedbank/banking/pkg/domain/account"
	"github.com/unnamedbank/banking/pkg/dto"
)

// Repository appends to the transfers ledger. Rows are immutable; there is
// no update or delete.
type Repository interface {
	// Create appends one row and fills in the assigned id.
	Create(ctx context.Context, create dto.TransferCreate) (*domain.Transfer, error)
}
