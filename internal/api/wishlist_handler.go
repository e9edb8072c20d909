package api

import (
	"encoding/json"
	"net/http"

	"github.com/rktiwari00/woocart/internal/wishlist"
)

type WishlistHandler struct {
	wishlist *wishlist.Service
}

func NewWishlistHandler(w *wishlist.Service) *WishlistHandler {
	return &WishlistHandler{wishlist: w}
}

type AddWishlistItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
}

func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.wishlist.Products(r.Context()))
}

func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddWishlistItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}

	h.wishlist.Add(req.ProductID)
	respondJSON(w, http.StatusCreated, map[string][]int64{"ids": h.wishlist.IDs()})
}

func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "product_id")
	if !ok {
		return
	}

	h.wishlist.Remove(id)
	respondJSON(w, http.StatusOK, map[string][]int64{"ids": h.wishlist.IDs()})
}
