// Package transaction exposes the /api/transactions endpoint.
package transaction

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/unnamedbank/banking/pkg/config"
	"github.com/unnamedbank/banking/pkg/middleware"
	clientsvc "github.com/unnamedbank/banking/pkg/service/client"
	transfersvc "github.com/unnamedbank/banking/pkg/service/transfer"
	"github.com/unnamedbank/banking/webapi/common"
)

// TransferRequest is the funds-transfer body. The ids name clients, not
// accounts; the service resolves each client's account.
type TransferRequest struct {
	FromClientID uint            `json:"fromClientId" validate:"required"`
	ToClientID   uint            `json:"toClientId" validate:"required"`
	Amount       decimal.Decimal `json:"amount" validate:"required"`
}

// Routes registers the transaction endpoint behind the auth gate.
func Routes(
	app *fiber.App,
	transferSvc *transfersvc.Service,
	clientSvc *clientsvc.Service,
	cfg *config.App,
	logger *slog.Logger,
) {
	app.Post("/api/transactions",
		middleware.JwtProtected(cfg.Jwt),
		middleware.ClientPrincipal(clientSvc, logger),
		CreateTransaction(transferSvc),
	)
}

// CreateTransaction moves funds between two client accounts.
func CreateTransaction(transferSvc *transfersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[TransferRequest](c)
		if input == nil {
			return err
		}
		if !input.Amount.IsPositive() {
			return c.Status(fiber.StatusBadRequest).
				SendString("Transfer amount must be positive")
		}
		created, err := transferSvc.Transfer(
			c.Context(),
			middleware.PrincipalFromCtx(c),
			input.FromClientID,
			input.ToClientID,
			input.Amount,
		)
		if err != nil {
			return common.DomainError(c, err)
		}
		return c.SendString(
			fmt.Sprintf("Transaction successful! Transaction ID: %d", created.ID))
	}
}
