package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type RouterConfig struct {
	Cart          *CartHandler
	Catalog       *CatalogHandler
	Checkout      *CheckoutHandler
	Orders        *OrdersHandler
	Auth          *AuthHandler
	Notifications *NotificationHandler
	Wishlist      *WishlistHandler

	EnableReviews  bool
	EnableWishlist bool
	RequestTimeout time.Duration
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cfg.Cart.GetCart)
			r.Delete("/", cfg.Cart.ClearCart)
			r.Post("/items", cfg.Cart.AddItem)
			r.Put("/items/{product_id}", cfg.Cart.UpdateQuantity)
			r.Delete("/items/{product_id}", cfg.Cart.RemoveItem)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", cfg.Catalog.ListProducts)
			r.Get("/{product_id}", cfg.Catalog.GetProduct)
			r.Get("/{product_id}/variations", cfg.Catalog.ListVariations)
			if cfg.EnableReviews {
				r.Get("/{product_id}/reviews", cfg.Catalog.ListReviews)
				r.Post("/{product_id}/reviews", cfg.Catalog.CreateReview)
			}
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", cfg.Catalog.ListCategories)
			r.Get("/{category_id}", cfg.Catalog.GetCategory)
		})

		r.Post("/checkout", cfg.Checkout.PlaceOrder)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", cfg.Orders.ListOrders)
			r.Get("/{order_id}", cfg.Orders.GetOrder)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", cfg.Auth.Login)
			r.Post("/signup", cfg.Auth.Signup)
			r.Post("/logout", cfg.Auth.Logout)
			r.Get("/me", cfg.Auth.Me)
			r.Get("/me/addresses", cfg.Auth.GetAddresses)
			r.Put("/me/addresses", cfg.Auth.UpdateAddresses)
		})

		if cfg.EnableWishlist {
			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", cfg.Wishlist.List)
				r.Post("/items", cfg.Wishlist.AddItem)
				r.Delete("/items/{product_id}", cfg.Wishlist.RemoveItem)
			})
		}

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", cfg.Notifications.List)
			r.Delete("/", cfg.Notifications.ClearAll)
			r.Post("/read-all", cfg.Notifications.MarkAllAsRead)
			r.Post("/{notification_id}/read", cfg.Notifications.MarkAsRead)
			r.Delete("/{notification_id}", cfg.Notifications.Delete)
			r.Get("/settings", cfg.Notifications.GetSettings)
			r.Put("/settings", cfg.Notifications.UpdateSettings)
		})
	})

	return otelhttp.NewHandler(r, "woocart")
}
