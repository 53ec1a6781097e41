package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/staffdesk/workforce-console/internal/department"
	"github.com/staffdesk/workforce-console/internal/employee"
	"github.com/staffdesk/workforce-console/internal/project"
	"github.com/staffdesk/workforce-console/internal/transport/middleware"
	"github.com/staffdesk/workforce-console/internal/transport/swagger"
)

// RegisterAllRoutes wires the workforce API. Paths sit at the root (no /api
// prefix): the console's client adapter and the legacy frontend both address
// /employees, /departments, /projects directly.
func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	allowedOrigins string,
	employeeHandler *employee.Handler,
	departmentHandler *department.Handler,
	projectHandler *project.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// OpenAPI spec + Swagger UI
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Get("/health", healthHandler.healthCheckHandler)
	router.Get("/ping", healthHandler.pingHandler)

	employeeHandler.RegisterRoutes(router)
	departmentHandler.RegisterRoutes(router)
	projectHandler.RegisterRoutes(router)
}
