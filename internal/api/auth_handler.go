package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rktiwari00/woocart/internal/auth"
	"github.com/rktiwari00/woocart/internal/woo"
)

type AuthHandler struct {
	auth *auth.Service
}

func NewAuthHandler(a *auth.Service) *AuthHandler {
	return &AuthHandler{auth: a}
}

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequestDTO struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Email == "" {
		respondError(w, http.StatusBadRequest, "invalid_email", "email is required")
		return
	}

	user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		respondError(w, http.StatusUnauthorized, "invalid_credentials", "login failed")
		return
	}
	if err != nil {
		handleUpstreamError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	user, err := h.auth.Signup(r.Context(), auth.SignupInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		handleUpstreamError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.auth.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := h.auth.CurrentUser()
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "no active session")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

type AddressesResponse struct {
	Billing  woo.Address `json:"billing"`
	Shipping woo.Address `json:"shipping"`
}

type UpdateAddressesRequestDTO struct {
	Billing  *woo.Address `json:"billing"`
	Shipping *woo.Address `json:"shipping"`
}

func (h *AuthHandler) GetAddresses(w http.ResponseWriter, r *http.Request) {
	billing, shipping, err := h.auth.Addresses(r.Context())
	if errors.Is(err, auth.ErrNotLoggedIn) {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "no active session")
		return
	}
	if err != nil {
		handleUpstreamError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, AddressesResponse{Billing: billing, Shipping: shipping})
}

func (h *AuthHandler) UpdateAddresses(w http.ResponseWriter, r *http.Request) {
	var req UpdateAddressesRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Billing == nil && req.Shipping == nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "billing or shipping address is required")
		return
	}

	customer, err := h.auth.UpdateAddresses(r.Context(), req.Billing, req.Shipping)
	if errors.Is(err, auth.ErrNotLoggedIn) {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "no active session")
		return
	}
	if err != nil {
		handleUpstreamError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, AddressesResponse{Billing: customer.Billing, Shipping: customer.Shipping})
}
