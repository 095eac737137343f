// Package webapi assembles the HTTP surface: middleware, routes and the
// translation of error kinds to status codes. It is purely an adapter over
// the services.
package webapi

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/unnamedbank/banking/pkg/config"
	authsvc "github.com/unnamedbank/banking/pkg/service/auth"
	clientsvc "github.com/unnamedbank/banking/pkg/service/client"
	transfersvc "github.com/unnamedbank/banking/pkg/service/transfer"
	clientweb "github.com/unnamedbank/banking/webapi/client"
	"github.com/unnamedbank/banking/webapi/common"
	transactionweb "github.com/unnamedbank/banking/webapi/transaction"
)

// Services bundles what the HTTP surface depends on.
type Services struct {
	Client   *clientsvc.Service
	Auth     *authsvc.Service
	Transfer *transfersvc.Service
}

// SetupApp initializes Fiber with the banking routes and middleware.
func SetupApp(svcs Services, cfg *config.App, log *slog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "banking",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok && e.Code < fiber.StatusInternalServerError {
				return c.Status(e.Code).SendString(e.Message)
			}
			return common.InternalError(c, err)
		},
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Banking service is running")
	})

	clientweb.Routes(app, svcs.Client, svcs.Auth, cfg, log)
	transactionweb.Routes(app, svcs.Transfer, svcs.Client, cfg, log)

	return app
}
