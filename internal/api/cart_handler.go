package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rktiwari00/woocart/internal/cart"
	"github.com/rktiwari00/woocart/internal/woo"
)

// ProductLookup resolves the product being added so the cart can
// snapshot its catalog fields.
type ProductLookup interface {
	Product(ctx context.Context, id int64) (*woo.Product, error)
}

type CartHandler struct {
	cart     *cart.Service
	products ProductLookup
	currency string
}

func NewCartHandler(c *cart.Service, products ProductLookup, currencySymbol string) *CartHandler {
	return &CartHandler{
		cart:     c,
		products: products,
		currency: currencySymbol,
	}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int64 `json:"quantity"`
}

type CartResponse struct {
	Items             []cart.LineItem `json:"items"`
	Count             int64           `json:"count"`
	Subtotal          float64         `json:"subtotal"`
	ShippingCost      float64         `json:"shipping_cost"`
	TotalWithShipping float64         `json:"total_with_shipping"`
	FreeShipping      bool            `json:"free_shipping"`
	CurrencySymbol    string          `json:"currency_symbol"`
}

func (h *CartHandler) cartResponse() CartResponse {
	return CartResponse{
		Items:             h.cart.Items(),
		Count:             h.cart.CartCount(),
		Subtotal:          h.cart.CartTotal(),
		ShippingCost:      h.cart.ShippingCost(),
		TotalWithShipping: h.cart.TotalWithShipping(),
		FreeShipping:      h.cart.IsFreeShipping(),
		CurrencySymbol:    h.currency,
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}

	product, err := h.products.Product(r.Context(), req.ProductID)
	if err != nil {
		handleUpstreamError(w, err)
		return
	}

	h.cart.AddItem(cartProduct(product), req.Quantity)
	respondJSON(w, http.StatusCreated, h.cartResponse())
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID, ok := idParam(w, r, "product_id")
	if !ok {
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	// Zero or negative quantity removes the item.
	h.cart.UpdateQuantity(productID, req.Quantity)
	respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := idParam(w, r, "product_id")
	if !ok {
		return
	}

	h.cart.RemoveItem(productID)
	respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.cart.ClearCart()
	respondJSON(w, http.StatusOK, h.cartResponse())
}

// cartProduct maps the store product shape down to the cart's typed
// input contract.
func cartProduct(p *woo.Product) cart.Product {
	images := make([]cart.ProductImage, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, cart.ProductImage{Src: img.Src})
	}

	return cart.Product{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		RegularPrice:  p.RegularPrice,
		SalePrice:     p.SalePrice,
		Images:        images,
		StockQuantity: p.StockQuantity,
		Variations:    p.Variations,
	}
}
