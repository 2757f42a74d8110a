package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"restopos-backend/internal/analytics"
	"restopos-backend/internal/domain"
	"restopos-backend/internal/store"
)

type InventoryHandler struct {
	Store  *store.Store
	Engine *analytics.Engine
}

func (h InventoryHandler) RegisterRoutes(r chi.Router) {
	r.Get("/inventory", h.list)
	r.Put("/inventory", h.replace)
	r.Post("/inventory", h.create)
	r.Patch("/inventory/{id}", h.update)
	r.Get("/inventory/low-stock", h.lowStock)
	r.Get("/inventory/running-out", h.runningOut)
}

func (h InventoryHandler) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Inventory(r.Context()))
}

func (h InventoryHandler) replace(w http.ResponseWriter, r *http.Request) {
	var items []domain.InventoryItem
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.Store.SaveInventory(r.Context(), items); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h InventoryHandler) create(w http.ResponseWriter, r *http.Request) {
	var item domain.InventoryItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if item.Name == "" {
		writeError(w, http.StatusBadRequest, "item name is required")
		return
	}
	if item.Quantity < 0 || item.MinLevel < 0 {
		writeError(w, http.StatusBadRequest, "quantity and minLevel must not be negative")
		return
	}
	created, err := h.Store.AddInventoryItem(r.Context(), item)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

type updateInventoryRequest struct {
	Name            *string  `json:"name"`
	Category        *string  `json:"category"`
	Quantity        *float64 `json:"quantity"`
	Unit            *string  `json:"unit"`
	MinLevel        *float64 `json:"minLevel"`
	Supplier        *string  `json:"supplier"`
	SupplierContact *string  `json:"supplierContact"`
	Cost            *float64 `json:"cost"`
}

func (h InventoryHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid inventory id")
		return
	}
	var req updateInventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		writeError(w, http.StatusBadRequest, "quantity must not be negative")
		return
	}

	item, err := h.Store.UpdateInventoryItem(r.Context(), id, store.InventoryUpdate{
		Name:            req.Name,
		Category:        req.Category,
		Quantity:        req.Quantity,
		Unit:            req.Unit,
		MinLevel:        req.MinLevel,
		Supplier:        req.Supplier,
		SupplierContact: req.SupplierContact,
		Cost:            req.Cost,
	})
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "inventory item not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h InventoryHandler) lowStock(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Engine.LowStockItems(r.Context()))
}

func (h InventoryHandler) runningOut(w http.ResponseWriter, r *http.Request) {
	days := 3
	if v := r.URL.Query().Get("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "invalid days")
			return
		}
		days = parsed
	}
	writeJSON(w, http.StatusOK, h.Engine.ItemsRunningOutSoon(r.Context(), days))
}
