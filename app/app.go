// File: app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go-atm-engine/config"
	"go-atm-engine/handler"
	"go-atm-engine/logger"
	"go-atm-engine/model"
	"go-atm-engine/repository"
	"go-atm-engine/router"
	"go-atm-engine/service"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
)

// App is one terminal session: one account, its session gate and its ledger.
type App struct {
	Config  *config.Config
	Account *model.Account
	Auth    *service.AuthService
	Ledger  *service.LedgerService
	Router  *router.Router
}

// New opens the configured account and wires all layers together.
func New(cfg *config.Config) (*App, error) {
	opening, err := decimal.NewFromString(cfg.Account.OpeningBalance)
	if err != nil {
		return nil, fmt.Errorf("invalid opening balance %q: %w", cfg.Account.OpeningBalance, err)
	}

	account, err := service.OpenAccount(service.OpenAccountParams{
		HolderID:         cfg.Account.HolderID,
		PIN:              cfg.Account.PIN,
		PINLength:        cfg.Account.PINLength,
		TransferPasscode: cfg.Account.TransferPasscode,
		OpeningBalance:   opening,
		BcryptCost:       cfg.Security.BcryptCost,
	})
	if err != nil {
		return nil, fmt.Errorf("could not open account: %w", err)
	}

	// Core
	authService := service.NewAuthService(account)
	transactionRepo := repository.NewTransactionRepository()
	ledgerService := service.NewLedgerService(account, authService, transactionRepo)
	transactionRouter := service.NewTransactionRouter(ledgerService)

	// Terminal
	sessionHandler := handler.NewSessionHandler(authService, cfg.Account.HolderID != "")
	accountHandler := handler.NewAccountHandler(ledgerService, cfg.Terminal.CurrencySymbol, cfg.Terminal.HistoryLimit)
	transactionHandler := handler.NewTransactionHandler(transactionRouter, cfg.Terminal.CurrencySymbol)

	return &App{
		Config:  cfg,
		Account: account,
		Auth:    authService,
		Ledger:  ledgerService,
		Router:  router.NewRouter(sessionHandler, accountHandler, transactionHandler, authService),
	}, nil
}

// Serve reads commands from in until EOF, an exit command, or ctx is done.
// The session is always closed on return.
func (a *App) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	defer a.Auth.Logout()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	fmt.Fprintln(out, "ATM ready. Type 'help' for commands.")
	for {
		fmt.Fprint(out, "> ")
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			if !a.Router.Dispatch(out, line) {
				fmt.Fprintln(out, "Goodbye.")
				return nil
			}
		}
	}
}

func Run() {
	flags := config.Flags()
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	configPath, _ := flags.GetString("config")

	cfg, err := config.LoadConfig(configPath, flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	logger.Log.Info("Configuration loaded successfully")

	atm, err := New(cfg)
	if err != nil {
		logger.Log.Fatalf("Error starting terminal: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := atm.Serve(ctx, os.Stdin, os.Stdout); err != nil {
		logger.Log.WithError(err).Error("Terminal input failed")
	}
	if ctx.Err() != nil {
		logger.Log.Warn("Shutdown signal received")
	}
	logger.Log.Info("Terminal exited properly")
}
