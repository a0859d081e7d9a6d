package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/helpdesk-inventory/internal"
	"github.com/frahmantamala/helpdesk-inventory/internal/auth"
	authpg "github.com/frahmantamala/helpdesk-inventory/internal/auth/postgres"
	"github.com/frahmantamala/helpdesk-inventory/internal/core/events"
	"github.com/frahmantamala/helpdesk-inventory/internal/guard"
	"github.com/frahmantamala/helpdesk-inventory/internal/issue"
	issuepg "github.com/frahmantamala/helpdesk-inventory/internal/issue/postgres"
	"github.com/frahmantamala/helpdesk-inventory/internal/purchase"
	purchasepg "github.com/frahmantamala/helpdesk-inventory/internal/purchase/postgres"
	"github.com/frahmantamala/helpdesk-inventory/internal/report"
	reportpg "github.com/frahmantamala/helpdesk-inventory/internal/report/postgres"
	"github.com/frahmantamala/helpdesk-inventory/internal/stock"
	stockpg "github.com/frahmantamala/helpdesk-inventory/internal/stock/postgres"
	"github.com/frahmantamala/helpdesk-inventory/internal/transport/rest"
	"github.com/frahmantamala/helpdesk-inventory/internal/user"
	userpg "github.com/frahmantamala/helpdesk-inventory/internal/user/postgres"
	"github.com/frahmantamala/helpdesk-inventory/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	cfg := deps.Config
	lg := deps.Logger

	eventBus := events.NewEventBus(lg)
	events.RegisterLoggingHandlers(eventBus, lg)

	tokenGen := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)

	var normalizer auth.EmailNormalizer
	if cfg.Security.DemoEmailDomainFrom != "" {
		normalizer = auth.NewDemoDomainNormalizer(cfg.Security.DemoEmailDomainFrom, cfg.Security.DemoEmailDomainTo)
	}

	authRepo := authpg.NewRepository(deps.GormDB)
	authService := auth.NewService(authRepo, tokenGen, normalizer, cfg.Security.BCryptCost, lg)
	authHandler := auth.NewHandler(authService)

	rbac := auth.NewRBACAuthorization(auth.NewPermissionChecker(), lg)

	guardHandler := guard.NewHandler(guard.New(nil))

	userRepo := userpg.NewUserRepository(deps.GormDB)
	userService := user.NewService(userRepo, normalizer, cfg.Security.BCryptCost, lg)
	userHandler := user.NewHandler(userService)

	issueRepo := issuepg.NewIssueRepository(deps.GormDB)
	issueService := issue.NewService(issueRepo, eventBus, lg)
	issueHandler := issue.NewHandler(issueService)

	stockRepo := stockpg.NewStockRepository(deps.GormDB)
	stockService := stock.NewService(stockRepo, eventBus, cfg.Stock.CascadeUsageOnDelete, lg)
	stockHandler := stock.NewHandler(stockService)

	purchaseRepo := purchasepg.NewPurchaseRepository(deps.GormDB)
	purchaseService := purchase.NewService(purchaseRepo, eventBus, lg)
	purchaseHandler := purchase.NewHandler(purchaseService)

	reportRepo := reportpg.NewReportRepository(deps.DB)
	reportService := report.NewService(reportRepo, lg)
	reportHandler := report.NewHandler(reportService)

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, rest.Handlers{
		Auth:     authHandler,
		Guard:    guardHandler,
		User:     userHandler,
		Issue:    issueHandler,
		Stock:    stockHandler,
		Purchase: purchaseHandler,
		Report:   reportHandler,
	}, rbac, lg)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Format, config.Observability.Logging.Level)

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// gorm rides on the already-open pgx connection pool
	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: logger.LoggerWrapper(),
		DB:     db,
		GormDB: gormDB,
		Router: chi.NewRouter(),
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
