package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/techieonvacation/ex-earning/internal/domain"
	"go.uber.org/zap"
)

// Catalog is the part of the catalog service the HTTP layer needs.
type Catalog interface {
	ListSections(ctx context.Context) ([]domain.SectionView, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateSection(ctx context.Context, in domain.SectionInput) (*domain.Section, error)
	CreateProduct(ctx context.Context, sectionID string, in domain.ProductInput) (*domain.Product, error)
	UpdateSection(ctx context.Context, id string, patch domain.SectionPatch) (*domain.Section, error)
	UpdateProduct(ctx context.Context, sectionID, productID string, patch domain.ProductPatch) (*domain.Product, error)
	ReorderProducts(ctx context.Context, sectionID string, ids []string) ([]domain.Product, error)
	ReorderSections(ctx context.Context, ids []string) ([]domain.Section, error)
	DeleteSection(ctx context.Context, id string) error
	DeleteProduct(ctx context.Context, sectionID, productID string) error
}

const (
	actionCreateSection   = "createSection"
	actionCreateProduct   = "createProduct"
	actionUpdateSection   = "updateSection"
	actionUpdateProduct   = "updateProduct"
	actionReorderProducts = "reorderProducts"
	actionReorderSections = "reorderSections"
	actionDeleteSection   = "deleteSection"
	actionDeleteProduct   = "deleteProduct"
)

// Each admin action decodes into its own command; the action field selects which.

type createSectionCommand struct {
	Section *domain.SectionInput `json:"section"`
}

type createProductCommand struct {
	SectionID string               `json:"sectionId"`
	Product   *domain.ProductInput `json:"product"`
}

type updateSectionCommand struct {
	SectionID string              `json:"sectionId"`
	Updates   domain.SectionPatch `json:"updates"`
}

type updateProductCommand struct {
	SectionID string              `json:"sectionId"`
	ProductID string              `json:"productId"`
	Updates   domain.ProductPatch `json:"updates"`
}

type reorderProductsCommand struct {
	SectionID string `json:"sectionId"`
	Updates   struct {
		ProductIDs []string `json:"productIds"`
		SectionID  string   `json:"sectionId"`
	} `json:"updates"`
}

type reorderSectionsCommand struct {
	Updates struct {
		SectionIDs []string `json:"sectionIds"`
	} `json:"updates"`
}

type SectionsHandler struct {
	catalog Catalog
	errs    errorResponder
	timeout time.Duration
}

func NewSectionsHandler(catalog Catalog, log *zap.Logger, timeout time.Duration) *SectionsHandler {
	return &SectionsHandler{
		catalog: catalog,
		errs:    errorResponder{log: log},
		timeout: timeout,
	}
}

func (h *SectionsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sections, err := h.catalog.ListSections(ctx)
	if err != nil {
		h.errs.handle(w, r, err, "Failed to fetch data")
		return
	}
	respondData(w, sections)
}

// readAction decodes the body once and returns the action tag with the raw body
// for the command decode.
func readAction(r *http.Request) (string, json.RawMessage, error) {
	var raw json.RawMessage
	if err := decodeJSON(r, &raw); err != nil {
		return "", nil, err
	}
	var tag struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal(raw, &tag); err != nil {
		return "", nil, domain.NewValidationError("request body must be a JSON object")
	}
	return tag.Action, raw, nil
}

func decodeCommand(raw json.RawMessage, cmd any) error {
	if err := json.Unmarshal(raw, cmd); err != nil {
		return domain.NewValidationError("invalid command: %s", err)
	}
	return nil
}

func (h *SectionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	const failed = "Failed to create"
	action, raw, err := readAction(r)
	if err != nil {
		h.errs.handle(w, r, err, failed)
		return
	}

	switch action {
	case actionCreateSection:
		var cmd createSectionCommand
		if err := decodeCommand(raw, &cmd); err != nil {
			h.errs.handle(w, r, err, failed)
			return
		}
		if cmd.Section == nil {
			h.errs.handle(w, r, domain.NewValidationError("section is required"), failed)
			return
		}
		section, err := h.catalog.CreateSection(ctx, *cmd.Section)
		if err != nil {
			h.errs.handle(w, r, err, failed)
			return
		}
		respondData(w, section)

	case actionCreateProduct:
		var cmd createProductCommand
		if err := decodeCommand(raw, &cmd); err != nil {
			h.errs.handle(w, r, err, failed)
			return
		}
		if cmd.Product == nil {
			h.errs.handle(w, r, domain.NewValidationError("product is required"), failed)
			return
		}
		product, err := h.catalog.CreateProduct(ctx, cmd.SectionID, *cmd.Product)
		if err != nil {
			h.errs.handle(w, r, err, failed)
			return
		}
		respondData(w, product)

	default:
		h.errs.handle(w, r, errInvalidAction, failed)
	}
}

func (h *SectionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	const failed = "Failed to update"
	action, raw, err := readAction(r)
	if err != nil {
		h.errs.handle(w, r, err, failed)
		return
	}

	var data any
	switch action {
	case actionUpdateSection:
		var cmd updateSectionCommand
		if err = decodeCommand(raw, &cmd); err == nil {
			data, err = h.catalog.UpdateSection(ctx, cmd.SectionID, cmd.Updates)
		}

	case actionUpdateProduct:
		var cmd updateProductCommand
		if err = decodeCommand(raw, &cmd); err == nil {
			data, err = h.catalog.UpdateProduct(ctx, cmd.SectionID, cmd.ProductID, cmd.Updates)
		}

	case actionReorderProducts:
		var cmd reorderProductsCommand
		if err = decodeCommand(raw, &cmd); err == nil {
			sectionID := cmd.Updates.SectionID
			if sectionID == "" {
				sectionID = cmd.SectionID
			}
			data, err = h.catalog.ReorderProducts(ctx, sectionID, cmd.Updates.ProductIDs)
		}

	case actionReorderSections:
		var cmd reorderSectionsCommand
		if err = decodeCommand(raw, &cmd); err == nil {
			data, err = h.catalog.ReorderSections(ctx, cmd.Updates.SectionIDs)
		}

	default:
		err = errInvalidAction
	}

	if err != nil {
		h.errs.handle(w, r, err, failed)
		return
	}
	respondData(w, data)
}

func (h *SectionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	const failed = "Failed to delete"
	q := r.URL.Query()
	sectionID, productID := q.Get("sectionId"), q.Get("productId")

	switch q.Get("action") {
	case actionDeleteSection:
		if err := h.catalog.DeleteSection(ctx, sectionID); err != nil {
			h.errs.handle(w, r, err, failed)
			return
		}
		respondJSON(w, http.StatusOK, Response{Success: true, Message: "Section deleted"})

	case actionDeleteProduct:
		if err := h.catalog.DeleteProduct(ctx, sectionID, productID); err != nil {
			h.errs.handle(w, r, err, failed)
			return
		}
		respondJSON(w, http.StatusOK, Response{Success: true, Message: "Product deleted"})

	default:
		h.errs.handle(w, r, errInvalidAction, failed)
	}
}
