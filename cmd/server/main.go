package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/charmbracelet/log"
	"github.com/unnamedbank/banking/pkg/app"
	"github.com/unnamedbank/banking/pkg/config"
	"github.com/unnamedbank/banking/webapi"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	logger := app.SetupLogger(cfg.Log)

	application, err := app.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	// The accrual job lives for as long as the process; the first tick
	// fires one interval after start.
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	application.AccountService.StartAccrualScheduler(ctx)

	fiberApp := webapi.SetupApp(webapi.Services{
		Client:   application.ClientService,
		Auth:     application.AuthService,
		Transfer: application.TransferService,
	}, cfg, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Starting server", "env", cfg.Env, "address", addr)

	errCh := make(chan error, 1)
	go func() { errCh <- fiberApp.Listen(addr) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("Shutting down")
		return fiberApp.Shutdown()
	}
}
