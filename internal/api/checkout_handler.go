package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rktiwari00/woocart/internal/checkout"
)

type CheckoutHandler struct {
	checkout *checkout.Service
}

func NewCheckoutHandler(c *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{checkout: c}
}

type BillingDTO struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	Country   string `json:"country"`
}

type PlaceOrderRequestDTO struct {
	Billing        BillingDTO `json:"billing"`
	PaymentMethod  string     `json:"payment_method"`
	ShippingMethod string     `json:"shipping_method"`
	CustomerID     int64      `json:"customer_id"`
}

func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.Billing.FirstName == "" || req.Billing.Address == "" || req.Billing.City == "" {
		respondError(w, http.StatusBadRequest, "invalid_billing", "billing name, address and city are required")
		return
	}

	order, err := h.checkout.PlaceOrder(r.Context(), checkout.PlaceOrderInput{
		Billing: checkout.BillingInfo{
			FirstName: req.Billing.FirstName,
			LastName:  req.Billing.LastName,
			Email:     req.Billing.Email,
			Phone:     req.Billing.Phone,
			Address:   req.Billing.Address,
			City:      req.Billing.City,
			State:     req.Billing.State,
			ZipCode:   req.Billing.ZipCode,
			Country:   req.Billing.Country,
		},
		PaymentMethod:  req.PaymentMethod,
		ShippingMethod: req.ShippingMethod,
		CustomerID:     req.CustomerID,
	})

	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", "cannot place an order with an empty cart")
	case errors.Is(err, checkout.ErrUnknownPayment):
		respondError(w, http.StatusBadRequest, "invalid_payment_method", "payment_method is not offered by this store")
	case errors.Is(err, checkout.ErrUnknownShippingMethod):
		respondError(w, http.StatusBadRequest, "invalid_shipping_method", "shipping_method is not offered by this store")
	case err != nil:
		handleUpstreamError(w, err)
	default:
		respondJSON(w, http.StatusCreated, order)
	}
}
