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

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/staffdesk/workforce-console/internal"
	"github.com/staffdesk/workforce-console/internal/department"
	departmentPostgres "github.com/staffdesk/workforce-console/internal/department/postgres"
	"github.com/staffdesk/workforce-console/internal/employee"
	employeePostgres "github.com/staffdesk/workforce-console/internal/employee/postgres"
	"github.com/staffdesk/workforce-console/internal/project"
	projectPostgres "github.com/staffdesk/workforce-console/internal/project/postgres"
	"github.com/staffdesk/workforce-console/internal/transport"
	"github.com/staffdesk/workforce-console/internal/transport/rest"
	"github.com/staffdesk/workforce-console/pkg/logger"
)

var apiServerCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the workforce API server",
	Long:  `Start the HTTP server exposing the employee, department and project API.`,
	Run: func(cmd *cobra.Command, args []string) {
		startAPIServer()
	},
}

type apiDependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startAPIServer() {
	deps, err := initializeAPIDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.API.Port)
	deps.Logger.Info("starting API server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.API.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.API.ReadTimeout,
		WriteTimeout:      deps.Config.API.WriteTimeout,
		IdleTimeout:       deps.Config.API.IdleTimeout,
	}

	runUntilSignal(server, deps.Logger, func() {
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	})
}

func initializeAPIDependencies() (*apiDependencies, error) {
	cfg, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)
	log := logger.L()

	db, err := initDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// The gorm handle shares the sqlx connection pool; TranslateError turns
	// driver unique-violation errors into gorm.ErrDuplicatedKey, which the
	// repositories rely on.
	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	baseHandler := transport.NewBaseHandler(log)

	employeeService := employee.NewService(employeePostgres.NewEmployeeRepository(gormDB), log)
	departmentService := department.NewService(departmentPostgres.NewDepartmentRepository(gormDB), log)
	projectService := project.NewService(projectPostgres.NewProjectRepository(gormDB), log)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(
		router,
		db.DB,
		cfg.API.AllowedOrigins,
		employee.NewHandler(baseHandler, employeeService),
		department.NewHandler(baseHandler, departmentService),
		project.NewHandler(baseHandler, projectService),
		log,
	)

	return &apiDependencies{
		Config: cfg,
		DB:     db,
		Router: router,
		Logger: log,
	}, nil
}

func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// runUntilSignal serves until SIGINT or SIGTERM, then drains with a bounded
// shutdown window before running cleanup.
func runUntilSignal(server *http.Server, log *slog.Logger, cleanup func()) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		log.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error("server shutdown error", "error", err)
		}
		cleanup()
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	log.Info("server stopped")
}
