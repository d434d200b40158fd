package domain

import (
	"strings"
	"time"
)

type SectionInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ViewAllLink string `json:"viewAllLink"`
	Status      Status `json:"status"`
}

func (in SectionInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return NewValidationError("section title is required")
	}
	return validateSectionStatus(in.Status)
}

// NewSection builds a section from validated input. An empty status defaults to active.
func NewSection(id string, in SectionInput, order int, now time.Time) Section {
	status := in.Status
	if status == "" {
		status = StatusActive
	}
	return Section{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Products:    []string{},
		ViewAllLink: in.ViewAllLink,
		Status:      status,
		Order:       order,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

type ProductInput struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	OriginalPrice float64  `json:"originalPrice"`
	Discount      float64  `json:"discount"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"reviewCount"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	Image         string   `json:"image"`
	IsNew         bool     `json:"isNew"`
	IsFeatured    bool     `json:"isFeatured"`
	IsBestSeller  bool     `json:"isBestSeller"`
	DownloadCount int      `json:"downloadCount"`
	FileSize      string   `json:"fileSize"`
	Format        string   `json:"format"`
	Compatibility []string `json:"compatibility"`
	Features      []string `json:"features"`
	Status        Status   `json:"status"`
}

func (in ProductInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return NewValidationError("product title is required")
	}
	if in.Price < 0 || in.OriginalPrice < 0 {
		return NewValidationError("product price must not be negative")
	}
	return validateProductStatus(in.Status)
}

func NewProduct(id, sectionID string, in ProductInput, order int, now time.Time) Product {
	status := in.Status
	if status == "" {
		status = StatusActive
	}
	return Product{
		ID:            id,
		Title:         in.Title,
		Description:   in.Description,
		Price:         in.Price,
		OriginalPrice: in.OriginalPrice,
		Discount:      in.Discount,
		Rating:        in.Rating,
		ReviewCount:   in.ReviewCount,
		Category:      in.Category,
		Tags:          nonNil(in.Tags),
		Image:         in.Image,
		IsNew:         in.IsNew,
		IsFeatured:    in.IsFeatured,
		IsBestSeller:  in.IsBestSeller,
		DownloadCount: in.DownloadCount,
		FileSize:      in.FileSize,
		Format:        in.Format,
		Compatibility: nonNil(in.Compatibility),
		Features:      nonNil(in.Features),
		CreatedAt:     now,
		UpdatedAt:     now,
		Order:         order,
		Status:        status,
		SectionID:     sectionID,
	}
}

func validateSectionStatus(s Status) error {
	switch s {
	case "", StatusActive, StatusInactive:
		return nil
	}
	return NewValidationError("invalid section status %q", s)
}

func validateProductStatus(s Status) error {
	switch s {
	case "", StatusActive, StatusInactive, StatusDraft:
		return nil
	}
	return NewValidationError("invalid product status %q", s)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
