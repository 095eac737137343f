// Package client exposes the /api/clients endpoints.
package client

import (
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/unnamedbank/banking/pkg/config"
	"github.com/unnamedbank/banking/pkg/dto"
	"github.com/unnamedbank/banking/pkg/middleware"
	authsvc "github.com/unnamedbank/banking/pkg/service/auth"
	clientsvc "github.com/unnamedbank/banking/pkg/service/client"
	"github.com/unnamedbank/banking/webapi/common"
)

// Routes registers the client endpoints. Registration and authentication
// are public; contact management and search require a bearer token, and the
// per-client contact routes additionally bind the path id to the principal.
func Routes(
	app *fiber.App,
	clientSvc *clientsvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
	logger *slog.Logger,
) {
	api := app.Group("/api/clients")
	api.Post("/register", Register(clientSvc))
	api.Post("/authenticate", Authenticate(authSvc))

	jwt := middleware.JwtProtected(cfg.Jwt)
	principal := middleware.ClientPrincipal(clientSvc, logger)
	api.Put("/:clientId/contact", jwt, principal, UpdateContact(clientSvc))
	api.Delete("/:clientId/contact", jwt, principal, DeleteContact(clientSvc))
	api.Get("/", jwt, SearchClients(clientSvc))
}

// Register creates a client and its bank account.
func Register(clientSvc *clientsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterRequest](c)
		if input == nil {
			return err
		}
		if !input.InitialBalance.IsPositive() {
			return c.Status(fiber.StatusBadRequest).
				SendString("Initial balance must be positive")
		}
		birthDate, err := parseBirthDate(input.BirthDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).SendString("Invalid birth date")
		}
		_, err = clientSvc.Register(c.Context(), clientsvc.Registration{
			Username:       input.Username,
			Password:       input.Password,
			InitialBalance: input.InitialBalance,
			PhoneNumber:    input.PhoneNumber,
			Email:          input.Email,
			BirthDate:      birthDate,
			FullName:       input.FullName,
		})
		if err != nil {
			// Registration failures, duplicates included, surface as 500.
			return c.Status(fiber.StatusInternalServerError).
				SendString("Error creating client")
		}
		return c.Status(fiber.StatusCreated).SendString("Client created successfully!")
	}
}

// Authenticate verifies credentials and hands out a bearer token.
func Authenticate(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[AuthenticateRequest](c)
		if input == nil {
			return err
		}
		client, err := authSvc.Login(c.Context(), input.Username, input.Password)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).
				SendString("Invalid username or password")
		}
		token, err := authSvc.IssueToken(client.Username)
		if err != nil {
			return common.InternalError(c, err)
		}
		return c.SendString("Authentication successful! Access token: " + token)
	}
}

// UpdateContact overwrites the submitted contact channels of a client.
func UpdateContact(clientSvc *clientsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		clientID, ok := boundClientID(c)
		if !ok {
			return nil // response already written
		}
		input, err := common.BindAndValidate[ContactInfoRequest](c)
		if input == nil {
			return err
		}
		updated, err := clientSvc.UpdateContact(
			c.Context(), clientID, input.PhoneNumber, input.Email)
		if err != nil {
			return common.DomainError(c, err)
		}
		return c.JSON(toClientResponse(updated))
	}
}

// DeleteContact clears contact channels subject to the retention policy.
func DeleteContact(clientSvc *clientsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		clientID, ok := boundClientID(c)
		if !ok {
			return nil
		}
		input, err := common.BindAndValidate[DeleteContactRequest](c)
		if input == nil {
			return err
		}
		updated, err := clientSvc.DeleteContact(
			c.Context(), clientID, input.DeletePhoneNumber, input.DeleteEmail)
		if err != nil {
			return common.DomainError(c, err)
		}
		return c.JSON(toClientResponse(updated))
	}
}

// SearchClients pages through the directory with the disjoint filter.
func SearchClients(clientSvc *clientsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := dto.ClientFilter{
			Page:   c.QueryInt("page", 0),
			Size:   c.QueryInt("size", 10),
			SortBy: c.Query("sortBy", "id"),
		}
		if v := c.Query("fullName"); v != "" {
			filter.FullName = &v
		}
		if v := c.Query("phoneNumber"); v != "" {
			filter.PhoneNumber = &v
		}
		if v := c.Query("email"); v != "" {
			filter.Email = &v
		}
		if v := c.Query("birthDate"); v != "" {
			birthDate, err := parseBirthDate(v)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).SendString("Invalid birth date")
			}
			filter.BirthDate = &birthDate
		}
		if filter.Page < 0 || filter.Size <= 0 {
			return c.Status(fiber.StatusBadRequest).SendString("Invalid page or size")
		}

		page, err := clientSvc.Search(c.Context(), filter)
		if err != nil {
			return common.DomainError(c, err)
		}
		items := make([]ClientResponse, 0, len(page.Items))
		for i := range page.Items {
			items = append(items, toClientResponse(&page.Items[i]))
		}
		return c.JSON(items)
	}
}

// boundClientID parses the path id and enforces that it matches the
// authenticated principal. On failure the response is already written.
func boundClientID(c *fiber.Ctx) (uint, bool) {
	raw := c.Params("clientId")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).SendString("Invalid client ID")
		return 0, false
	}
	principal := middleware.PrincipalFromCtx(c)
	if principal == nil {
		_ = c.Status(fiber.StatusUnauthorized).SendString("Invalid or expired token")
		return 0, false
	}
	if principal.ClientID != uint(id) {
		_ = c.Status(fiber.StatusForbidden).
			SendString("Access denied: Not authorized for this client")
		return 0, false
	}
	return uint(id), true
}
