package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"restopos-backend/internal/domain"
	"restopos-backend/internal/store"
)

type OrderHandler struct {
	Store *store.Store
}

func (h OrderHandler) RegisterRoutes(r chi.Router) {
	r.Get("/orders", h.list)
	r.Get("/orders/active", h.active)
	r.Post("/orders", h.create)
	r.Patch("/orders/{id}", h.update)
}

type createOrderRequest struct {
	Items         []domain.OrderItem   `json:"items"`
	Table         string               `json:"table"`
	Cashier       string               `json:"cashier"`
	CustomerName  string               `json:"customerName"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod"`
	Discount      float64              `json:"discount"`
}

func (h OrderHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "order must contain at least one item")
		return
	}
	var subtotal float64
	for _, it := range req.Items {
		if it.Quantity < 1 {
			writeError(w, http.StatusBadRequest, "item quantity must be at least 1")
			return
		}
		if it.Price < 0 {
			writeError(w, http.StatusBadRequest, "item price must not be negative")
			return
		}
		subtotal += it.Price * float64(it.Quantity)
	}
	if req.Discount < 0 || req.Discount > subtotal {
		writeError(w, http.StatusBadRequest, "discount must be between 0 and the order subtotal")
		return
	}
	switch req.PaymentMethod {
	case "", domain.PaymentCash, domain.PaymentCard, domain.PaymentMobile:
	default:
		writeError(w, http.StatusBadRequest, "invalid payment method")
		return
	}

	order, err := h.Store.AddOrder(r.Context(), domain.Order{
		Items:         req.Items,
		Status:        domain.OrderNew,
		Table:         req.Table,
		Cashier:       req.Cashier,
		CustomerName:  req.CustomerName,
		PaymentMethod: req.PaymentMethod,
		Total:         subtotal - req.Discount,
		Discount:      req.Discount,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h OrderHandler) list(w http.ResponseWriter, r *http.Request) {
	orders := h.Store.Orders(r.Context())
	if status := r.URL.Query().Get("status"); status != "" {
		filtered := orders[:0:0]
		for _, o := range orders {
			if o.Status == domain.OrderStatus(status) {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h OrderHandler) active(w http.ResponseWriter, r *http.Request) {
	var active []domain.Order
	for _, o := range h.Store.Orders(r.Context()) {
		if o.Status == domain.OrderNew || o.Status == domain.OrderPreparing {
			active = append(active, o)
		}
	}
	writeJSON(w, http.StatusOK, active)
}

type updateOrderRequest struct {
	Status        *domain.OrderStatus   `json:"status"`
	Table         *string               `json:"table"`
	Cashier       *string               `json:"cashier"`
	CustomerName  *string               `json:"customerName"`
	PaymentMethod *domain.PaymentMethod `json:"paymentMethod"`
	Discount      *float64              `json:"discount"`
	Total         *float64              `json:"total"`
}

func (h OrderHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	var req updateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Status != nil {
		switch *req.Status {
		case domain.OrderNew, domain.OrderPreparing, domain.OrderCompleted, domain.OrderServed:
		default:
			writeError(w, http.StatusBadRequest, "invalid order status")
			return
		}
	}

	order, err := h.Store.UpdateOrder(r.Context(), id, store.OrderUpdate{
		Status:        req.Status,
		Table:         req.Table,
		Cashier:       req.Cashier,
		CustomerName:  req.CustomerName,
		PaymentMethod: req.PaymentMethod,
		Discount:      req.Discount,
		Total:         req.Total,
	})
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, order)
}
