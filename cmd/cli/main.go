// Command cli is a small operator utility: register a client from the
// terminal or force one accrual tick outside the schedule.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/unnamedbank/banking/pkg/app"
	"github.com/unnamedbank/banking/pkg/config"
	clientsvc "github.com/unnamedbank/banking/pkg/service/client"
	"golang.org/x/term"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		color.Red("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	logger := app.SetupLogger(cfg.Log)
	application, err := app.New(cfg, logger)
	if err != nil {
		color.Red("Failed to initialize: %v", err)
		os.Exit(1)
	}

	ctx := context.Background()
	switch os.Args[1] {
	case "register":
		register(ctx, application)
	case "balance":
		balance(ctx, application)
	case "accrue":
		if err := application.AccountService.Accrue(ctx); err != nil {
			color.Red("Accrual tick failed: %v", err)
			os.Exit(1)
		}
		color.Green("Accrual tick applied")
	default:
		usage()
	}
}

func usage() {
	fmt.Println("Usage: cli <command>")
	fmt.Println("Commands:")
	fmt.Println("  register   register a client interactively")
	fmt.Println("  balance    show the account balance of a client")
	fmt.Println("  accrue     apply one accrual tick now")
}

func balance(ctx context.Context, application *app.App) {
	raw := prompt("Client ID")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		color.Red("Invalid client ID")
		os.Exit(1)
	}
	acct, err := application.AccountService.GetByClient(ctx, uint(id))
	if err != nil {
		color.Red("Failed to look up account: %v", err)
		os.Exit(1)
	}
	color.Green("Account %d balance: %s (opened with %s)",
		acct.ID, acct.Balance.StringFixed(2), acct.InitialBalance.StringFixed(2))
}

func register(ctx context.Context, application *app.App) {
	username := prompt("Username")
	fullName := prompt("Full name")
	phone := prompt("Phone number")
	email := prompt("Email")
	birthDateRaw := prompt("Birth date (yyyy-mm-dd)")
	balanceRaw := prompt("Initial balance")

	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		color.Red("Failed to read password: %v", err)
		os.Exit(1)
	}

	birthDate, err := time.Parse("2006-01-02", birthDateRaw)
	if err != nil {
		color.Red("Invalid birth date: %v", err)
		os.Exit(1)
	}
	balance, err := decimal.NewFromString(balanceRaw)
	if err != nil || !balance.IsPositive() {
		color.Red("Initial balance must be a positive decimal")
		os.Exit(1)
	}

	created, err := application.ClientService.Register(ctx, clientsvc.Registration{
		Username:       username,
		Password:       string(passwordBytes),
		InitialBalance: balance,
		PhoneNumber:    phone,
		Email:          email,
		BirthDate:      birthDate,
		FullName:       fullName,
	})
	if err != nil {
		color.Red("Failed to register client: %v", err)
		os.Exit(1)
	}
	color.Green("Client %d (%s) registered", created.ID, created.Username)
}

func prompt(label string) string {
	fmt.Printf("%s: ", label)
	var value string
	if _, err := fmt.Scanln(&value); err != nil {
		color.Red("Failed to read input: %v", err)
		os.Exit(1)
	}
	return value
}
