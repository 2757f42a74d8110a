package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"restopos-backend/internal/domain"
	"restopos-backend/internal/store"
)

type ExpenseHandler struct {
	Store *store.Store
}

func (h ExpenseHandler) RegisterRoutes(r chi.Router) {
	r.Get("/expenses", h.list)
	r.Post("/expenses", h.create)
}

func (h ExpenseHandler) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Expenses(r.Context()))
}

func (h ExpenseHandler) create(w http.ResponseWriter, r *http.Request) {
	var expense domain.Expense
	if err := json.NewDecoder(r.Body).Decode(&expense); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if expense.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be positive")
		return
	}
	if expense.Category == "" {
		writeError(w, http.StatusBadRequest, "category is required")
		return
	}
	created, err := h.Store.AddExpense(r.Context(), expense)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
