package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"restopos-backend/internal/domain"
	"restopos-backend/internal/store"
)

type SettingsHandler struct {
	Store *store.Store
}

func (h SettingsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/settings", h.get)
	r.Put("/settings", h.save)
}

func (h SettingsHandler) get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Settings(r.Context()))
}

func (h SettingsHandler) save(w http.ResponseWriter, r *http.Request) {
	var cfg domain.Settings
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if cfg.VATRate < 0 || cfg.VATRate >= 100 {
		writeError(w, http.StatusBadRequest, "vatRate must be between 0 and 100")
		return
	}
	if err := h.Store.SaveSettings(r.Context(), cfg); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.Store.Settings(r.Context()))
}
