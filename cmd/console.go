package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"

	"github.com/staffdesk/workforce-console/internal/console"
	"github.com/staffdesk/workforce-console/internal/transport/middleware"
	"github.com/staffdesk/workforce-console/pkg/logger"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Start the admin console",
	Long:  `Start the server-rendered admin console. It talks to the workforce API over HTTP at the configured backend URL.`,
	Run: func(cmd *cobra.Command, args []string) {
		startConsole()
	},
}

func startConsole() {
	cfg, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)
	log := logger.L()

	templates, err := console.NewTemplates()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse templates: %v\n", err)
		os.Exit(1)
	}

	client := console.NewClient(cfg.Console.BackendURL, cfg.Console.RequestTimeout, log)
	handler := console.NewHandler(client, templates, log)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(log))
	router.Use(middleware.RecoveryMiddleware(log))
	handler.RegisterRoutes(router)

	addr := fmt.Sprintf(":%d", cfg.Console.Port)
	log.Info("starting console", "address", addr, "backend_url", cfg.Console.BackendURL)

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	runUntilSignal(server, log, func() {})
}
