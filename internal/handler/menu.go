package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"restopos-backend/internal/domain"
	"restopos-backend/internal/store"
)

type MenuHandler struct {
	Store *store.Store
}

func (h MenuHandler) RegisterRoutes(r chi.Router) {
	r.Get("/menu", h.list)
	r.Put("/menu", h.replace)
}

func (h MenuHandler) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Menu(r.Context()))
}

func (h MenuHandler) replace(w http.ResponseWriter, r *http.Request) {
	var menu []domain.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&menu); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	for _, m := range menu {
		if m.Price < 0 || m.Cost < 0 {
			writeError(w, http.StatusBadRequest, "price and cost must not be negative")
			return
		}
	}
	if err := h.Store.SaveMenu(r.Context(), menu); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, menu)
}
