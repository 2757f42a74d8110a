package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"restopos-backend/internal/handler"
	"restopos-backend/internal/metrics"
)

// NewRouter wires HTTP routes and middleware.
func NewRouter(logger *slog.Logger,
	reg *metrics.Registry,
	health handler.HealthHandler,
	orders handler.OrderHandler,
	inventory handler.InventoryHandler,
	menu handler.MenuHandler,
	staff handler.StaffHandler,
	expenses handler.ExpenseHandler,
	logs handler.ActivityLogHandler,
	dashboard handler.DashboardHandler,
	reports handler.ReportsHandler,
	settings handler.SettingsHandler,
	admin handler.AdminHandler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewLoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(httprate.LimitByIP(200, 1*time.Minute))

	health.RegisterRoutes(r)
	r.Method("GET", "/metrics", reg.Handler())

	orders.RegisterRoutes(r)
	inventory.RegisterRoutes(r)
	menu.RegisterRoutes(r)
	staff.RegisterRoutes(r)
	expenses.RegisterRoutes(r)
	logs.RegisterRoutes(r)
	dashboard.RegisterRoutes(r)
	reports.RegisterRoutes(r)
	settings.RegisterRoutes(r)
	admin.RegisterRoutes(r)

	return r
}
