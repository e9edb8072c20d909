package api

import (
	"context"
	"net/http"

	"github.com/rktiwari00/woocart/internal/woo"
)

// OrderAPI is the slice of the store API the order history needs.
type OrderAPI interface {
	Order(ctx context.Context, id int64) (*woo.Order, error)
	CustomerOrders(ctx context.Context, customerID int64) ([]woo.Order, error)
}

// Session exposes the logged-in customer, if any.
type Session interface {
	CurrentUser() (*woo.Customer, bool)
}

// OrdersHandler serves the order history of the current session.
type OrdersHandler struct {
	orders  OrderAPI
	session Session
}

func NewOrdersHandler(orders OrderAPI, session Session) *OrdersHandler {
	return &OrdersHandler{
		orders:  orders,
		session: session,
	}
}

func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := h.session.CurrentUser()
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "sign in to view orders")
		return
	}

	orders, err := h.orders.CustomerOrders(r.Context(), user.ID)
	if err != nil {
		handleUpstreamError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.session.CurrentUser(); !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "sign in to view orders")
		return
	}

	id, ok := idParam(w, r, "order_id")
	if !ok {
		return
	}

	order, err := h.orders.Order(r.Context(), id)
	if err != nil {
		handleUpstreamError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}
