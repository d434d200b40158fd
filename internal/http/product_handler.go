package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ProductHandler struct {
	catalog Catalog
	errs    errorResponder
	timeout time.Duration
}

func NewProductHandler(catalog Catalog, log *zap.Logger, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		errs:    errorResponder{log: log},
		timeout: timeout,
	}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.catalog.ListProducts(ctx)
	if err != nil {
		h.errs.handle(w, r, err, "Failed to fetch products")
		return
	}
	count := len(products)
	respondJSON(w, http.StatusOK, Response{Success: true, Data: products, Count: &count})
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "Product ID is required")
		return
	}

	product, err := h.catalog.GetProduct(ctx, id)
	if err != nil {
		h.errs.handle(w, r, err, "Failed to fetch product")
		return
	}
	respondData(w, product)
}
