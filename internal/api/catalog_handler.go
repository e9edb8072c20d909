package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rktiwari00/woocart/internal/woo"
)

// Catalog is the read surface the product screens consume.
type Catalog interface {
	Products(ctx context.Context, q woo.ProductQuery) ([]woo.Product, error)
	Product(ctx context.Context, id int64) (*woo.Product, error)
	ProductVariations(ctx context.Context, productID int64) ([]woo.Variation, error)
	Categories(ctx context.Context) ([]woo.Category, error)
	Category(ctx context.Context, id int64) (*woo.Category, error)
}

// ReviewAPI backs the optional review routes.
type ReviewAPI interface {
	ProductReviews(ctx context.Context, productID int64) ([]woo.Review, error)
	CreateReview(ctx context.Context, req woo.ReviewRequest) (*woo.Review, error)
}

type CatalogHandler struct {
	catalog      Catalog
	reviews      ReviewAPI
	enableSearch bool
}

func NewCatalogHandler(catalog Catalog, reviews ReviewAPI, enableSearch bool) *CatalogHandler {
	return &CatalogHandler{
		catalog:      catalog,
		reviews:      reviews,
		enableSearch: enableSearch,
	}
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	q := woo.ProductQuery{
		Featured: query.Get("featured") == "true",
		OnSale:   query.Get("on_sale") == "true",
		OrderBy:  query.Get("orderby"),
	}
	// The search box is a feature flag; with it off the param is ignored.
	if h.enableSearch {
		q.Search = query.Get("search")
	}
	q.Page, _ = strconv.Atoi(query.Get("page"))
	q.PerPage, _ = strconv.Atoi(query.Get("per_page"))
	q.Category, _ = strconv.ParseInt(query.Get("category"), 10, 64)

	products, err := h.catalog.Products(r.Context(), q)
	if err != nil {
		handleUpstreamError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "product_id")
	if !ok {
		return
	}

	product, err := h.catalog.Product(r.Context(), id)
	if err != nil {
		handleUpstreamError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) ListVariations(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "product_id")
	if !ok {
		return
	}

	variations, err := h.catalog.ProductVariations(r.Context(), id)
	if err != nil {
		handleUpstreamError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, variations)
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		handleUpstreamError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, categories)
}

func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "category_id")
	if !ok {
		return
	}

	category, err := h.catalog.Category(r.Context(), id)
	if err != nil {
		handleUpstreamError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, category)
}

func (h *CatalogHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "product_id")
	if !ok {
		return
	}

	reviews, err := h.reviews.ProductReviews(r.Context(), id)
	if err != nil {
		handleUpstreamError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, reviews)
}

type CreateReviewRequestDTO struct {
	Reviewer      string `json:"reviewer"`
	ReviewerEmail string `json:"reviewer_email"`
	Review        string `json:"review"`
	Rating        int    `json:"rating"`
}

func (h *CatalogHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "product_id")
	if !ok {
		return
	}

	var req CreateReviewRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		respondError(w, http.StatusBadRequest, "invalid_rating", "rating must be between 1 and 5")
		return
	}

	review, err := h.reviews.CreateReview(r.Context(), woo.ReviewRequest{
		ProductID:     id,
		Reviewer:      req.Reviewer,
		ReviewerEmail: req.ReviewerEmail,
		Review:        req.Review,
		Rating:        req.Rating,
	})
	if err != nil {
		handleUpstreamError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, review)
}

func idParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_id", name+" must be a positive integer")
		return 0, false
	}
	return id, true
}
