package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"restopos-backend/internal/domain"
	"restopos-backend/internal/store"
)

type StaffHandler struct {
	Store *store.Store
}

func (h StaffHandler) RegisterRoutes(r chi.Router) {
	r.Get("/staff", h.list)
	r.Put("/staff", h.replace)
}

func (h StaffHandler) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Staff(r.Context()))
}

func (h StaffHandler) replace(w http.ResponseWriter, r *http.Request) {
	var staff []domain.StaffMember
	if err := json.NewDecoder(r.Body).Decode(&staff); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.Store.SaveStaff(r.Context(), staff); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, staff)
}
