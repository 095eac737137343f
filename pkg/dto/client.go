// Package dto defines the shapes passed between services and repositories.
// They are explicit, compile-checked projections; the wire shapes live in
// the webapi layer.
package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientCreate carries the fields needed to insert a client row.
type ClientCreate struct {
	Username    string
	Password    string // already hashed
	FullName    string
	PhoneNumber *string
	Email       *string
	BirthDate   time.Time
}

// ClientRead is the repository read model. Password is the stored bcrypt
// hash; the webapi response projection drops it together with the username.
type ClientRead struct {
	ID          uint
	Username    string
	Password    string
	FullName    string
	PhoneNumber *string
	Email       *string
	BirthDate   time.Time
	CreatedAt   time.Time
}

// ClientUpdate mutates contact channels only; the username is immutable.
// A nil pointer leaves the field untouched, the Clear flags set it to NULL.
type ClientUpdate struct {
	PhoneNumber *string
	Email       *string
	ClearPhone  bool
	ClearEmail  bool
}

// ClientFilter is the disjoint search filter: the first non-nil field in
// declaration order wins, the rest are ignored.
type ClientFilter struct {
	FullName    *string    // SQL LIKE pattern, wildcards supplied by caller
	PhoneNumber *string    // exact
	Email       *string    // exact
	BirthDate   *time.Time // strictly after
	Page        int
	Size        int
	SortBy      string
}

// ClientPage is one page of search results plus the unpaged total.
type ClientPage struct {
	Items         []ClientRead
	Page          int
	Size          int
	TotalElements int64
}

// AccountCreate opens an account for a client; balance starts at the frozen
// initial balance.
type AccountCreate struct {
	ClientID       uint
	InitialBalance decimal.Decimal
}

// TransferCreate appends one ledger row.
type TransferCreate struct {
	FromAccountID uint
	ToAccountID   uint
	Amount        decimal.Decimal
	Timestamp     time.Time
}
