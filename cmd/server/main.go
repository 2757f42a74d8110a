package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"restopos-backend/internal/analytics"
	"restopos-backend/internal/config"
	"restopos-backend/internal/handler"
	"restopos-backend/internal/metrics"
	"restopos-backend/internal/refresh"
	"restopos-backend/internal/server"
	"restopos-backend/internal/storage"
	"restopos-backend/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn := cfg.DataDir
	if cfg.StorageDriver == storage.DriverPostgres {
		dsn = cfg.DatabaseURL
	}
	backend, err := storage.Open(ctx, cfg.StorageDriver, dsn)
	if err != nil {
		logger.Error("failed to open storage", "driver", cfg.StorageDriver, "err", err)
		os.Exit(1)
	}
	defer backend.Close()

	reg := metrics.NewRegistry()
	notifier := refresh.LogNotifier{Log: logger}
	st := store.New(backend, logger, notifier, reg)
	if cfg.SeedData {
		if err := st.SeedIfEmpty(ctx); err != nil {
			logger.Error("failed to seed data", "err", err)
			os.Exit(1)
		}
	}

	engine := analytics.New(st, analytics.Config{
		VATRate:            cfg.VATRate,
		ParallelPrep:       cfg.ParallelPrep,
		DefaultPrepMinutes: cfg.DefaultPrepMin,
	})

	poller := refresh.NewPoller(st, engine, notifier, logger, reg, cfg.RefreshInterval)
	go poller.Run(ctx)

	// handlers
	healthHandler := handler.HealthHandler{}
	if checker, ok := backend.(handler.HealthChecker); ok {
		healthHandler.Checker = checker
	}
	orderHandler := handler.OrderHandler{Store: st}
	inventoryHandler := handler.InventoryHandler{Store: st, Engine: engine}
	menuHandler := handler.MenuHandler{Store: st}
	staffHandler := handler.StaffHandler{Store: st}
	expenseHandler := handler.ExpenseHandler{Store: st}
	logHandler := handler.ActivityLogHandler{Store: st}
	dashboardHandler := handler.DashboardHandler{Engine: engine}
	reportsHandler := handler.ReportsHandler{Store: st, Engine: engine}
	settingsHandler := handler.SettingsHandler{Store: st}
	adminHandler := handler.AdminHandler{Store: st}

	router := server.NewRouter(logger, reg, healthHandler, orderHandler, inventoryHandler, menuHandler, staffHandler, expenseHandler, logHandler, dashboardHandler, reportsHandler, settingsHandler, adminHandler)

	if err := server.Start(ctx, cfg, router, logger); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
