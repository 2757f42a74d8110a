package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"restopos-backend/internal/store"
)

type ActivityLogHandler struct {
	Store *store.Store
}

func (h ActivityLogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/logs", h.list)
}

func (h ActivityLogHandler) list(w http.ResponseWriter, r *http.Request) {
	logs := h.Store.Logs(r.Context())
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}
	// Newest entries are at the tail.
	if len(logs) > limit {
		logs = logs[len(logs)-limit:]
	}
	writeJSON(w, http.StatusOK, logs)
}
