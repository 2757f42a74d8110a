package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"restopos-backend/internal/analytics"
)

type DashboardHandler struct {
	Engine *analytics.Engine
}

func (h DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard/summary", h.summary)
	r.Get("/dashboard/peak-hours", h.peakHours)
	r.Get("/dashboard/top-items", h.topItems)
	r.Get("/dashboard/sales", h.sales)
	r.Get("/dashboard/comparison", h.comparison)
	r.Get("/dashboard/cashiers", h.cashiers)
	r.Get("/dashboard/chef", h.chef)
	r.Get("/dashboard/wait-time", h.waitTime)
	r.Get("/dashboard/profit-items", h.profitItems)
}

func (h DashboardHandler) summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	comparison := h.Engine.TodayVsYesterday(ctx)
	writeJSON(w, http.StatusOK, map[string]any{
		"todaySales":     comparison.Today,
		"yesterdaySales": comparison.Yesterday,
		"changePercent":  comparison.ChangePercent,
		"waitTime":       h.Engine.EstimatedWaitTime(ctx),
		"lowStockCount":  len(h.Engine.LowStockItems(ctx)),
	})
}

func (h DashboardHandler) peakHours(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Engine.PeakHours(r.Context()))
}

func (h DashboardHandler) topItems(w http.ResponseWriter, r *http.Request) {
	limit := 5
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}
	writeJSON(w, http.StatusOK, h.Engine.TopSellingItems(r.Context(), limit))
}

func (h DashboardHandler) sales(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Engine.Last7DaysSales(r.Context()))
}

func (h DashboardHandler) comparison(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("period") {
	case "", "day":
		writeJSON(w, http.StatusOK, h.Engine.TodayVsYesterday(r.Context()))
	case "week":
		writeJSON(w, http.StatusOK, h.Engine.WeekComparison(r.Context()))
	default:
		writeError(w, http.StatusBadRequest, "invalid period (use day or week)")
	}
}

func (h DashboardHandler) cashiers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Engine.CashierPerformance(r.Context()))
}

func (h DashboardHandler) chef(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Engine.ChefPerformance(r.Context()))
}

func (h DashboardHandler) waitTime(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]float64{
		"estimatedMinutes": h.Engine.EstimatedWaitTime(r.Context()),
	})
}

func (h DashboardHandler) profitItems(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Engine.BestProfitItems(r.Context()))
}
