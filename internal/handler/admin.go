package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"restopos-backend/internal/store"
)

type AdminHandler struct {
	Store *store.Store
}

func (h AdminHandler) RegisterRoutes(r chi.Router) {
	r.Delete("/admin/data", h.wipe)
}

// wipe clears every collection. Destructive; intended for resets and test
// environments.
func (h AdminHandler) wipe(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.ClearAll(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": "cleared"})
}
