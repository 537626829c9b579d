package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"

	accountinadapter "mealtrack/internal/modules/account/adapter/in"
	accountoutadapter "mealtrack/internal/modules/account/adapter/out"
	accountin "mealtrack/internal/modules/account/port/in"
	accountservice "mealtrack/internal/modules/account/service"
	accountusecase "mealtrack/internal/modules/account/usecase"
	foodloginadapter "mealtrack/internal/modules/foodlog/adapter/in"
	foodlogoutadapter "mealtrack/internal/modules/foodlog/adapter/out"
	foodlogservice "mealtrack/internal/modules/foodlog/service"
	foodlogusecase "mealtrack/internal/modules/foodlog/usecase"
	"mealtrack/internal/platform/clock"
	"mealtrack/internal/platform/config"
	"mealtrack/internal/platform/logging"
	uiapp "mealtrack/internal/ui/app"
)

type App struct {
	FoodCLI    foodloginadapter.CLIHandler
	FoodTUI    foodloginadapter.TUIHandler
	AccountCLI accountinadapter.CLIHandler
	Config     config.Config
	Log        hclog.Logger

	account accountin.Usecase
	closers []io.Closer
}

func New(cfg config.Config) (*App, error) {
	log, logFile, err := logging.New(cfg)
	if err != nil {
		return nil, err
	}
	return wire(cfg, log, logFile)
}

func wire(cfg config.Config, log hclog.Logger, logFile io.Closer) (*App, error) {
	clk := clock.SystemClock{}
	app := &App{Config: cfg, Log: log}
	if logFile != nil {
		app.closers = append(app.closers, logFile)
	}

	accountUC := accountusecase.NewInteractor(accountservice.NewAccountService(
		clk,
		log,
		accountoutadapter.NewFileCredentialStore(cfg.CredentialsPath),
		accountoutadapter.NewJWTInspector(),
		accountservice.Overrides{UserID: cfg.UserID, Token: cfg.Token},
	))

	cache, err := foodlogoutadapter.NewSQLiteEntryCache(cfg.DBPath)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("new entry cache: %w", err)
	}
	if c, ok := cache.(io.Closer); ok {
		app.closers = append(app.closers, c)
	}

	foodUC := foodlogusecase.NewInteractor(foodlogservice.NewFoodLogService(
		clk,
		log,
		foodlogoutadapter.NewAccountPrincipalAdapter(accountUC),
		foodlogoutadapter.NewHTTPGateway(cfg.BaseURL, cfg.Timeout, log),
		cache,
		foodlogoutadapter.NewVaultJournal(cfg.JournalDir, clk),
		foodlogservice.Options{ReconcileTotals: cfg.ReconcileTotals},
	))

	app.FoodCLI = foodloginadapter.NewCLIHandler(foodUC)
	app.FoodTUI = foodloginadapter.NewTUIHandler(foodUC)
	app.AccountCLI = accountinadapter.NewCLIHandler(accountUC)
	app.account = accountUC
	log.Debug("app wired", "home", cfg.Home, "base_url", cfg.BaseURL, "reconcile_totals", cfg.ReconcileTotals)
	return app, nil
}

// Close releases the cache database and the log file, newest first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// RunTUI refuses to start without usable credentials, since the page cannot
// show request failures.
func RunTUI(app *App) error {
	if _, err := app.account.Current(context.Background()); err != nil {
		return fmt.Errorf("cannot start tracker: %w", err)
	}
	program := tea.NewProgram(uiapp.NewModel(app.FoodTUI), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
