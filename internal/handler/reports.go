package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"restopos-backend/internal/analytics"
	"restopos-backend/internal/export"
	"restopos-backend/internal/store"
)

type ReportsHandler struct {
	Store  *store.Store
	Engine *analytics.Engine
}

func (h ReportsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/reports/reconciliation", h.reconciliation)
	r.Get("/reports/vat", h.vat)
	r.Get("/reports/export", h.export)
	r.Post("/reports/import", h.restore)
}

func (h ReportsHandler) reconciliation(w http.ResponseWriter, r *http.Request) {
	rec := h.Engine.DailyCashReconciliation(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"reconciliation": rec,
		"vat":            h.Engine.CalculateVAT(rec.TotalExpected, 0),
	})
}

func (h ReportsHandler) vat(w http.ResponseWriter, r *http.Request) {
	amount, err := strconv.ParseFloat(r.URL.Query().Get("amount"), 64)
	if err != nil || amount < 0 {
		writeError(w, http.StatusBadRequest, "invalid amount")
		return
	}
	var rate float64
	if v := r.URL.Query().Get("rate"); v != "" {
		rate, err = strconv.ParseFloat(v, 64)
		if err != nil || rate < 0 {
			writeError(w, http.StatusBadRequest, "invalid rate")
			return
		}
	}
	writeJSON(w, http.StatusOK, h.Engine.CalculateVAT(amount, rate))
}

func (h ReportsHandler) export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now()
	suffix := now.Format("2006-01-02")

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	switch format {
	case "json":
		blob, err := export.BackupJSON(ctx, h.Store, now)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"backup_%s.json\"", suffix))
		_, _ = w.Write(blob)
	case "csv":
		data, err := h.exportCSV(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"report_%s.csv\"", suffix))
		_, _ = w.Write(data)
	case "xlsx", "excel":
		rec := h.Engine.DailyCashReconciliation(ctx)
		blob, err := export.DailyReportXLSX(export.DailyReport{
			Date:           now,
			TotalSales:     h.Engine.TodaysSales(ctx),
			Comparison:     h.Engine.TodayVsYesterday(ctx),
			Reconciliation: rec,
			VAT:            h.Engine.CalculateVAT(rec.TotalExpected, 0),
			PeakHours:      h.Engine.PeakHours(ctx),
			TopItems:       h.Engine.TopSellingItems(ctx, 10),
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"report_%s.xlsx\"", suffix))
		_, _ = w.Write(blob)
	default:
		writeError(w, http.StatusBadRequest, "invalid format (use json, csv or xlsx)")
	}
}

func (h ReportsHandler) exportCSV(r *http.Request) ([]byte, error) {
	ctx := r.Context()
	switch entity := r.URL.Query().Get("entity"); entity {
	case "", "sales":
		headers := []string{"day", "sales", "orders"}
		var rows [][]any
		for _, d := range h.Engine.Last7DaysSales(ctx) {
			rows = append(rows, []any{d.Day, d.Sales, d.Orders})
		}
		return export.CSV(headers, rows), nil
	case "top-items":
		headers := []string{"name", "quantity", "revenue"}
		var rows [][]any
		for _, it := range h.Engine.TopSellingItems(ctx, 0) {
			rows = append(rows, []any{it.Name, it.Quantity, it.Revenue})
		}
		return export.CSV(headers, rows), nil
	case "inventory":
		headers := []string{"name", "category", "quantity", "unit", "minLevel", "supplier", "cost"}
		var rows [][]any
		for _, it := range h.Store.Inventory(ctx) {
			rows = append(rows, []any{it.Name, it.Category, it.Quantity, it.Unit, it.MinLevel, it.Supplier, it.Cost})
		}
		return export.CSV(headers, rows), nil
	case "expenses":
		headers := []string{"category", "description", "amount", "date", "paymentMethod"}
		var rows [][]any
		for _, e := range h.Store.Expenses(ctx) {
			rows = append(rows, []any{e.Category, e.Description, e.Amount, e.Date.Format("2006-01-02"), e.PaymentMethod})
		}
		return export.CSV(headers, rows), nil
	default:
		return nil, fmt.Errorf("unknown entity %q", entity)
	}
}

func (h ReportsHandler) restore(w http.ResponseWriter, r *http.Request) {
	blob, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 32<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read backup body")
		return
	}
	if err := export.RestoreJSON(r.Context(), h.Store, blob); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.Store.LogActivity(r.Context(), "System", "Data Imported", "backup restored")
	writeJSON(w, http.StatusOK, map[string]string{"result": "imported"})
}
