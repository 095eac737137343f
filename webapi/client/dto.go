package client

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/unnamedbank/banking/pkg/dto"
)

// birthDateLayout is the wire format of all dates.
const birthDateLayout = "2006-01-02"

// RegisterRequest is the registration body. Every field is required; the
// contact channels only become optional later through the delete endpoint.
type RegisterRequest struct {
	Username       string          `json:"username" validate:"required"`
	Password       string          `json:"password" validate:"required"`
	InitialBalance decimal.Decimal `json:"initialBalance" validate:"required"`
	PhoneNumber    string          `json:"phoneNumber" validate:"required"`
	Email          string          `json:"email" validate:"required,email"`
	BirthDate      string          `json:"birthDate" validate:"required,datetime=2006-01-02"`
	FullName       string          `json:"fullName" validate:"required"`
}

// AuthenticateRequest carries the login credentials.
type AuthenticateRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ContactInfoRequest updates contact channels. Omitted fields keep their
// previous value.
type ContactInfoRequest struct {
	PhoneNumber *string `json:"phoneNumber"`
	Email       *string `json:"email" validate:"omitempty,email"`
}

// DeleteContactRequest clears contact channels.
type DeleteContactRequest struct {
	DeletePhoneNumber bool `json:"deletePhoneNumber"`
	DeleteEmail       bool `json:"deleteEmail"`
}

// ClientResponse is the wire projection of a client. Username and password
// are deliberately absent.
type ClientResponse struct {
	ID          uint    `json:"id"`
	FullName    string  `json:"fullName"`
	PhoneNumber *string `json:"phoneNumber"`
	Email       *string `json:"email"`
	BirthDate   string  `json:"birthDate"`
}

func toClientResponse(c *dto.ClientRead) ClientResponse {
	return ClientResponse{
		ID:          c.ID,
		FullName:    c.FullName,
		PhoneNumber: c.PhoneNumber,
		Email:       c.Email,
		BirthDate:   c.BirthDate.Format(birthDateLayout),
	}
}

func parseBirthDate(s string) (time.Time, error) {
	return time.Parse(birthDateLayout, s)
}
