package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/techieonvacation/ex-earning/internal/cart"
	"go.uber.org/zap"
)

type RouterConfig struct {
	RequestTimeout     time.Duration
	MaxRequestBodySize int64
}

// NewRouter mounts the storefront API under /api/v1 plus /health.
func NewRouter(catalog Catalog, sessions *cart.Sessions, log *zap.Logger, cfg RouterConfig) http.Handler {
	sectionsHandler := NewSectionsHandler(catalog, log, cfg.RequestTimeout)
	productHandler := NewProductHandler(catalog, log, cfg.RequestTimeout)
	cartHandler := NewCartHandler(catalog, log, cfg.RequestTimeout)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(RequestLogger(log))
	r.Use(Recoverer(log))
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(MaxBody(cfg.MaxRequestBodySize))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/sections", func(r chi.Router) {
			r.Get("/", sectionsHandler.List)
			r.Post("/", sectionsHandler.Create)
			r.Put("/", sectionsHandler.Update)
			r.Delete("/", sectionsHandler.Delete)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Get("/{id}", productHandler.Get)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(CartSession(sessions))
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Get("/items/{id}", cartHandler.ItemStatus)
			r.Put("/items/{id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{id}", cartHandler.RemoveItem)
			r.Post("/open", cartHandler.OpenCart)
			r.Post("/close", cartHandler.CloseCart)
			r.Post("/toggle", cartHandler.ToggleCart)
			r.Post("/coupon", cartHandler.ApplyCoupon)
			r.Delete("/coupon", cartHandler.RemoveCoupon)
		})
	})

	return r
}
