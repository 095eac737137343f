// Package common holds the response helpers shared by the webapi handlers.
package common

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	account "github.com/unnamedbank/banking/pkg/domain/account"
	client "github.com/unnamedbank/banking/pkg/domain/client"
)

// ProblemDetails is the body of every 5xx response: a problem+json document
// whose description explains the class of failure without leaking a stack
// trace.
type ProblemDetails struct {
	Status      int    `json:"status"`
	Detail      string `json:"detail"`
	Description string `json:"description"`
}

// ProblemJSON writes an application/problem+json response.
func ProblemJSON(c *fiber.Ctx, status int, detail, description string) error {
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(status).JSON(ProblemDetails{
		Status:      status,
		Detail:      detail,
		Description: description,
	})
}

// InternalError writes the generic 500 problem document.
func InternalError(c *fiber.Ctx, err error) error {
	return ProblemJSON(c, fiber.StatusInternalServerError,
		err.Error(), "Unknown internal server error.")
}

// BindAndValidate parses the request body and validates it. On failure it
// writes the 400 response and returns the error so the handler can bail.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		_ = c.Status(fiber.StatusBadRequest).SendString("Invalid request body")
		return nil, err
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		_ = c.Status(fiber.StatusBadRequest).SendString(err.Error())
		return nil, err
	}
	return &input, nil
}

// ErrorToStatusCode maps domain errors to HTTP status codes. Anything
// unmapped is an internal error.
func ErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, client.ErrClientNotFound),
		errors.Is(err, account.ErrAccountNotFound),
		errors.Is(err, account.ErrSameAccountTransfer):
		return fiber.StatusNotFound
	case errors.Is(err, client.ErrUsernameTaken),
		errors.Is(err, client.ErrPhoneTaken),
		errors.Is(err, client.ErrEmailTaken),
		errors.Is(err, client.ErrContactRequired),
		errors.Is(err, client.ErrBothContactsDelete),
		errors.Is(err, account.ErrInsufficientBalance),
		errors.Is(err, account.ErrAmountNotPositive):
		return fiber.StatusBadRequest
	case errors.Is(err, client.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, client.ErrAccessDenied):
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// errorMessages are the exact user-visible bodies of 4xx responses.
var errorMessages = map[error]string{
	client.ErrClientNotFound:       "User not found",
	client.ErrUsernameTaken:        "Login already in use",
	client.ErrPhoneTaken:           "Phone already in use",
	client.ErrEmailTaken:           "Email already in use",
	client.ErrContactRequired:      "Cannot delete phone number. At least one contact method must remain.",
	client.ErrBothContactsDelete:   "Cannot delete both phone and email. At least one contact method must remain.",
	client.ErrUnauthorized:         "Invalid or expired token",
	client.ErrAccessDenied:         "Access denied: Not authorized for this client",
	account.ErrAccountNotFound:     "Invalid user ID",
	account.ErrSameAccountTransfer: "Cannot transfer money to the same account",
	account.ErrInsufficientBalance: "Insufficient balance",
	account.ErrAmountNotPositive:   "Transfer amount must be positive",
}

// DomainError translates a service error into its wire response: a plain
// string body for 4xx, problem+json for everything else.
func DomainError(c *fiber.Ctx, err error) error {
	status := ErrorToStatusCode(err)
	if status == fiber.StatusInternalServerError {
		return InternalError(c, err)
	}
	message := err.Error()
	for sentinel, m := range errorMessages {
		if errors.Is(err, sentinel) {
			message = m
			break
		}
	}
	return c.Status(status).SendString(message)
}
