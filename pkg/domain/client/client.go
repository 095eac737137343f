// Package client holds the client entity and the business rules around
// credentials and contact channels.
package client

import (
	"errors"
	"time"

	"github.com/unnamedbank/banking/pkg/utils"
)

var (
	// ErrClientNotFound is returned when a client cannot be found in the
	// repository.
	ErrClientNotFound = errors.New("user not found")
	// ErrUsernameTaken is returned when the requested username is already
	// registered.
	ErrUsernameTaken = errors.New("login already in use")
	// ErrPhoneTaken is returned when the phone number belongs to another
	// client.
	ErrPhoneTaken = errors.New("phone number already in use")
	// ErrEmailTaken is returned when the email belongs to another client.
	ErrEmailTaken = errors.New("email already in use")
	// ErrContactRequired is returned when an operation would leave a client
	// with neither a phone number nor an email.
	ErrContactRequired = errors.New(
		"cannot delete phone number, at least one contact method must remain")
	// ErrBothContactsDelete is returned when a delete request asks for both
	// contact channels at once.
	ErrBothContactsDelete = errors.New(
		"cannot delete both phone and email, at least one contact method must remain")
	// ErrUnauthorized is returned when no authenticated principal is
	// attached to the request, or credentials do not match.
	ErrUnauthorized = errors.New("client unauthorized")
	// ErrAccessDenied is returned when an authenticated principal acts on a
	// client other than itself.
	ErrAccessDenied = errors.New("access denied")
)

// Client represents a registered client. PhoneNumber and Email are nullable
// but at least one of them is always set.
type Client struct {
	ID          uint
	Username    string
	Password    string // bcrypt hash
	FullName    string
	PhoneNumber *string
	Email       *string
	BirthDate   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// New builds a Client with a hashed password. The username is immutable after
// creation; contact channels mutate through the client service only.
func New(
	username, password, fullName string,
	phoneNumber, email *string,
	birthDate time.Time,
) (*Client, error) {
	if username == "" {
		return nil, errors.New("username cannot be empty")
	}
	if fullName == "" {
		return nil, errors.New("full name cannot be empty")
	}
	if phoneNumber == nil && email == nil {
		return nil, ErrContactRequired
	}
	if email != nil && !utils.IsEmail(*email) {
		return nil, errors.New("email is not a valid address")
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &Client{
		Username:    username,
		Password:    hashed,
		FullName:    fullName,
		PhoneNumber: phoneNumber,
		Email:       email,
		BirthDate:   birthDate,
	}, nil
}

// HasContact reports whether the client would retain at least one contact
// channel after clearing the flagged fields.
func (c *Client) HasContact(clearPhone, clearEmail bool) bool {
	phone := c.PhoneNumber
	email := c.Email
	if clearPhone {
		phone = nil
	}
	if clearEmail {
		email = nil
	}
	return phone != nil || email != nil
}
