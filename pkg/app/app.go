// Package app wires configuration, database and services into one runnable
// unit shared by the server and the CLI.
package app

import (
	"fmt"
	"log/slog"

	"github.com/unnamedbank/banking/infra"
	infrarepo "github.com/unnamedbank/banking/infra/repository"
	"github.com/unnamedbank/banking/pkg/config"
	"github.com/unnamedbank/banking/pkg/repository"
	accountsvc "github.com/unnamedbank/banking/pkg/service/account"
	authsvc "github.com/unnamedbank/banking/pkg/service/auth"
	clientsvc "github.com/unnamedbank/banking/pkg/service/client"
	transfersvc "github.com/unnamedbank/banking/pkg/service/transfer"
)

// App bundles the constructed services and their shared dependencies.
type App struct {
	Config *config.App
	Logger *slog.Logger
	Uow    repository.UnitOfWork

	ClientService   *clientsvc.Service
	AccountService  *accountsvc.Service
	AuthService     *authsvc.Service
	TransferService *transfersvc.Service
}

// New connects to the database, runs the migrations and builds the service
// graph.
func New(cfg *config.App, logger *slog.Logger) (*App, error) {
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := infra.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	uow := infrarepo.NewUoW(db)
	return &App{
		Config:          cfg,
		Logger:          logger,
		Uow:             uow,
		ClientService:   clientsvc.New(uow, logger),
		AccountService:  accountsvc.New(uow, logger),
		AuthService:     authsvc.New(uow, cfg.Jwt, logger),
		TransferService: transfersvc.New(uow, logger),
	}, nil
}
