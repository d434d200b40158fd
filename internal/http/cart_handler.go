package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/techieonvacation/ex-earning/internal/cart"
	"github.com/techieonvacation/ex-earning/internal/domain"
	"go.uber.org/zap"
)

const (
	minLineQuantity = 1
	maxLineQuantity = 10
)

type CartHandler struct {
	catalog Catalog
	errs    errorResponder
	timeout time.Duration
}

func NewCartHandler(catalog Catalog, log *zap.Logger, timeout time.Duration) *CartHandler {
	return &CartHandler{
		catalog: catalog,
		errs:    errorResponder{log: log},
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity *int `json:"quantity"`
}

type ApplyCouponRequestDTO struct {
	Code string `json:"code"`
}

type ItemStatusDTO struct {
	Quantity int  `json:"quantity"`
	InCart   bool `json:"inCart"`
}

// store returns the request's cart. A missing store is a routing bug and is
// answered with a 500.
func (h *CartHandler) store(w http.ResponseWriter, r *http.Request) (*cart.Store, bool) {
	s, err := cart.FromContext(r.Context())
	if err != nil {
		h.errs.handle(w, r, err, "Cart is unavailable")
		return nil, false
	}
	return s, true
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.store(w, r)
	if !ok {
		return
	}
	respondData(w, s.State())
}

// AddItem resolves the product from the catalog and adds it with the quantity
// clamped to 1..10.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	s, ok := h.store(w, r)
	if !ok {
		return
	}

	var req AddItemRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		h.errs.handle(w, r, err, "Failed to add item")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "productId is required")
		return
	}

	product, err := h.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		h.errs.handle(w, r, err, "Failed to add item")
		return
	}

	quantity := min(max(req.Quantity, minLineQuantity), maxLineQuantity)
	respondData(w, s.AddItem(domain.LineFromProduct(*product, quantity)))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	s, ok := h.store(w, r)
	if !ok {
		return
	}

	var req UpdateQuantityRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		h.errs.handle(w, r, err, "Failed to update item")
		return
	}
	if req.Quantity == nil {
		respondError(w, http.StatusBadRequest, "quantity is required")
		return
	}

	respondData(w, s.UpdateQuantity(chi.URLParam(r, "id"), *req.Quantity))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	s, ok := h.store(w, r)
	if !ok {
		return
	}
	respondData(w, s.RemoveItem(chi.URLParam(r, "id")))
}

func (h *CartHandler) ItemStatus(w http.ResponseWriter, r *http.Request) {
	s, ok := h.store(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	respondData(w, ItemStatusDTO{
		Quantity: s.GetItemQuantity(id),
		InCart:   s.IsItemInCart(id),
	})
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.store(w, r)
	if !ok {
		return
	}
	respondData(w, s.ClearCart())
}

func (h *CartHandler) OpenCart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.store(w, r)
	if !ok {
		return
	}
	respondData(w, s.OpenCart())
}

func (h *CartHandler) CloseCart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.store(w, r)
	if !ok {
		return
	}
	respondData(w, s.CloseCart())
}

func (h *CartHandler) ToggleCart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.store(w, r)
	if !ok {
		return
	}
	respondData(w, s.ToggleCart())
}

// ApplyCoupon prices the coupon against the current subtotal. The discount is
// fixed at that moment and is not recomputed when the cart changes later.
func (h *CartHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	s, ok := h.store(w, r)
	if !ok {
		return
	}

	var req ApplyCouponRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		h.errs.handle(w, r, err, "Failed to apply coupon")
		return
	}

	discount, code, ok := couponDiscount(req.Code, s.State().Subtotal)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid coupon code")
		return
	}
	respondData(w, s.ApplyCoupon(code, discount))
}

func (h *CartHandler) RemoveCoupon(w http.ResponseWriter, r *http.Request) {
	s, ok := h.store(w, r)
	if !ok {
		return
	}
	respondData(w, s.RemoveCoupon())
}
