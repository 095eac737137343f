// Package repository holds the gorm models and repository implementations
// behind the pkg/repository contracts.
package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client represents a client record in the database. Each contact channel
// carries its own unique index; NULLs do not collide.
type Client struct {
	ID          uint      `gorm:"primaryKey"`
	Username    string    `gorm:"uniqueIndex;not null;size:50"`
	Password    string    `gorm:"not null"`
	FullName    string    `gorm:"not null;size:255"`
	PhoneNumber *string   `gorm:"uniqueIndex;size:20"`
	Email       *string   `gorm:"uniqueIndex;size:255"`
	BirthDate   time.Time `gorm:"type:date;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for the Client model.
func (Client) TableName() string { return "clients" }

// Account represents an account record. ClientID is unique: one account per
// client.
type Account struct {
	ID             uint            `gorm:"primaryKey"`
	ClientID       uint            `gorm:"uniqueIndex;not null"`
	InitialBalance decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	Balance        decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string { return "accounts" }

// Transfer represents one immutable ledger row.
type Transfer struct {
	ID            uint            `gorm:"primaryKey"`
	FromAccountID uint            `gorm:"not null;index"`
	ToAccountID   uint            `gorm:"not null;index"`
	Amount        decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	Timestamp     time.Time       `gorm:"not null"`
}

// TableName specifies the table name for the Transfer model.
func (Transfer) TableName() string { return "transfers" }
