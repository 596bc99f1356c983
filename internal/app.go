// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	router "minibank/internal/api"
	"minibank/internal/api/handler"
	"minibank/internal/config"
	"minibank/internal/metrics"
	"minibank/internal/migrations"
	"minibank/internal/repository"
	"minibank/internal/repository/postgres"
	"minibank/internal/service"
	"minibank/internal/util"
	"minibank/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	UserRepository        repository.UserRepository
	AccountRepository     repository.AccountRepository
	TransactionRepository repository.TransactionRepository

	// Services
	BankService service.BankService
	AuthService service.AuthService
	Simulator   *service.TransactionSimulator

	// Metrics
	Metrics metrics.Recorder

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance. A logger is attached
// immediately so initialization failures can be reported.
func NewApplication() *Application {
	return &Application{Logger: util.GetLogger()}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger()
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database and apply migrations
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	if err := app.runMigrations(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Logger.Info("Database migrations applied.")

	// 4. Initialize Repositories
	app.UserRepository = postgres.NewUserRepository()
	app.AccountRepository = postgres.NewAccountRepository()
	app.TransactionRepository = postgres.NewTransactionRepository()
	app.Logger.Info("Repositories initialized.")

	// 5. Initialize Metrics
	app.Metrics = metrics.NewInMemory("minibank")

	// 6. Initialize Services
	app.BankService = service.NewBankService(
		app.DB, // DBTxBeginner
		app.DB, // DBExecutor for non-transactional reads
		app.UserRepository,
		app.AccountRepository,
		app.TransactionRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
		app.Metrics,
		app.Logger,
	)

	app.Simulator = service.NewTransactionSimulator(app.BankService, app.Logger, 64)
	app.Simulator.Start()

	app.AuthService = service.NewAuthService(
		app.DB,
		app.DB,
		app.UserRepository,
		app.AccountRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
		[]byte(app.Config.JWTSecret),
		app.Config.JWTValidity,
		app.Simulator,
		app.Metrics,
		app.Logger,
	)
	app.Logger.Info("Services initialized.")

	// 7. Initialize HTTP Handlers and Router
	authHandler := handler.NewAuthHandler(app.AuthService, app.Logger)
	bankHandler := handler.NewBankHandler(app.BankService, app.Logger)
	app.HTTPHandler = router.NewRouter(authHandler, bankHandler, []byte(app.Config.JWTSecret), app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// runMigrations applies the embedded goose migrations.
func (app *Application) runMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, app.DB.DB, ".")
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")

	if app.Simulator != nil {
		app.Simulator.Stop()
		app.Logger.Info("Background simulator stopped.")
	}

	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}

	app.Logger.Info("Application shut down gracefully.")
	return nil
}
