// Package client defines the client repository contract.
package client

import (
	"context"

	"github.com/unnamedbank/banking/pkg/dto"
)

// Repository is the typed gateway to the clients table. Lookup misses are
// reported as (nil, nil); only transport failures surface as errors.
type Repository interface {
	// Create inserts the client and fills in the assigned id.
	Create(ctx context.Context, create dto.ClientCreate) (*dto.ClientRead, error)
	Get(ctx context.Context, id uint) (*dto.ClientRead, error)
	GetByUsername(ctx context.Context, username string) (*dto.ClientRead, error)
	GetByPhone(ctx context.Context, phoneNumber string) (*dto.ClientRead, error)
	GetByEmail(ctx context.Context, email string) (*dto.ClientRead, error)
	Update(ctx context.Context, id uint, update dto.ClientUpdate) (*dto.ClientRead, error)
	// Search returns one page matching the disjoint filter plus the total
	// count. SortBy must already be a whitelisted column.
	Search(ctx context.Context, filter dto.ClientFilter) (*dto.ClientPage, error)
}
