package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/cost-manager/internal/about"
	"github.com/frahmantamala/cost-manager/internal/expense"
	"github.com/frahmantamala/cost-manager/internal/logentry"
	"github.com/frahmantamala/cost-manager/internal/report"
	"github.com/frahmantamala/cost-manager/internal/transport/middleware"
	"github.com/frahmantamala/cost-manager/internal/user"
	"github.com/go-chi/chi"
	httpSwagger "github.com/swaggo/http-swagger"
)

func applyBase(router *chi.Mux, service string, db *sql.DB, logger *slog.Logger) {
	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.RequestLogger)
	router.Use(middleware.Metrics(service))

	healthHandler := NewHealthHandler(db)
	router.Get("/health", healthHandler.HealthCheck)
	router.Handle("/metrics", middleware.MetricsHandler())
}

// RegisterCostsRoutes wires the costs service: expense entry, totals and
// the monthly report.
func RegisterCostsRoutes(router *chi.Mux, db *sql.DB, expenseHandler *expense.Handler, reportHandler *report.Handler, logger *slog.Logger) {
	applyBase(router, "costs", db, logger)

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/openapi.yml"),
	))

	router.Route("/api", func(r chi.Router) {
		r.Post("/add", expenseHandler.AddExpense)
		r.Get("/total", expenseHandler.GetTotal)
		r.Get("/report", reportHandler.GetReport)
	})
}

func RegisterUsersRoutes(router *chi.Mux, db *sql.DB, userHandler *user.Handler, logger *slog.Logger) {
	applyBase(router, "users", db, logger)

	router.Route("/api", func(r chi.Router) {
		r.Get("/users", userHandler.ListUsers)
		r.Get("/users/{id}", userHandler.GetUser)
		r.Post("/add", userHandler.CreateUser)
	})
}

func RegisterLogsRoutes(router *chi.Mux, db *sql.DB, logHandler *logentry.Handler, logger *slog.Logger) {
	applyBase(router, "logs", db, logger)

	router.Route("/api", func(r chi.Router) {
		r.Get("/logs", logHandler.ListLogs)
		r.Post("/logs", logHandler.CreateLog)
	})
}

func RegisterAdminRoutes(router *chi.Mux, aboutHandler *about.Handler, logger *slog.Logger) {
	applyBase(router, "admin", nil, logger)

	router.Route("/api", func(r chi.Router) {
		r.Get("/about", aboutHandler.About)
	})
}
