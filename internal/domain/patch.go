package domain

import "time"

// SectionPatch carries the fields an admin may change on a section. Nil fields
// are left untouched. Order is only changed through an explicit reorder.
type SectionPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	ViewAllLink *string `json:"viewAllLink,omitempty"`
	Status      *Status `json:"status,omitempty"`
}

func (p SectionPatch) Validate() error {
	if p.Title != nil && *p.Title == "" {
		return NewValidationError("section title must not be empty")
	}
	if p.Status != nil {
		if *p.Status == "" {
			return NewValidationError("section status must not be empty")
		}
		return validateSectionStatus(*p.Status)
	}
	return nil
}

// Fields returns the changed fields keyed by their document names.
func (p SectionPatch) Fields() map[string]any {
	f := map[string]any{}
	if p.Title != nil {
		f["title"] = *p.Title
	}
	if p.Description != nil {
		f["description"] = *p.Description
	}
	if p.ViewAllLink != nil {
		f["viewAllLink"] = *p.ViewAllLink
	}
	if p.Status != nil {
		f["status"] = *p.Status
	}
	return f
}

func (p SectionPatch) Apply(s *Section, now time.Time) {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.ViewAllLink != nil {
		s.ViewAllLink = *p.ViewAllLink
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
	s.UpdatedAt = now
}

type ProductPatch struct {
	Title         *string   `json:"title,omitempty"`
	Description   *string   `json:"description,omitempty"`
	Price         *float64  `json:"price,omitempty"`
	OriginalPrice *float64  `json:"originalPrice,omitempty"`
	Discount      *float64  `json:"discount,omitempty"`
	Rating        *float64  `json:"rating,omitempty"`
	ReviewCount   *int      `json:"reviewCount,omitempty"`
	Category      *string   `json:"category,omitempty"`
	Tags          *[]string `json:"tags,omitempty"`
	Image         *string   `json:"image,omitempty"`
	IsNew         *bool     `json:"isNew,omitempty"`
	IsFeatured    *bool     `json:"isFeatured,omitempty"`
	IsBestSeller  *bool     `json:"isBestSeller,omitempty"`
	DownloadCount *int      `json:"downloadCount,omitempty"`
	FileSize      *string   `json:"fileSize,omitempty"`
	Format        *string   `json:"format,omitempty"`
	Compatibility *[]string `json:"compatibility,omitempty"`
	Features      *[]string `json:"features,omitempty"`
	Status        *Status   `json:"status,omitempty"`
}

func (p ProductPatch) Validate() error {
	if p.Title != nil && *p.Title == "" {
		return NewValidationError("product title must not be empty")
	}
	if (p.Price != nil && *p.Price < 0) || (p.OriginalPrice != nil && *p.OriginalPrice < 0) {
		return NewValidationError("product price must not be negative")
	}
	if p.Status != nil {
		if *p.Status == "" {
			return NewValidationError("product status must not be empty")
		}
		return validateProductStatus(*p.Status)
	}
	return nil
}

// Fields returns the changed fields keyed by their document names.
func (p ProductPatch) Fields() map[string]any {
	f := map[string]any{}
	set := func(name string, ok bool, v func() any) {
		if ok {
			f[name] = v()
		}
	}
	set("title", p.Title != nil, func() any { return *p.Title })
	set("description", p.Description != nil, func() any { return *p.Description })
	set("price", p.Price != nil, func() any { return *p.Price })
	set("originalPrice", p.OriginalPrice != nil, func() any { return *p.OriginalPrice })
	set("discount", p.Discount != nil, func() any { return *p.Discount })
	set("rating", p.Rating != nil, func() any { return *p.Rating })
	set("reviewCount", p.ReviewCount != nil, func() any { return *p.ReviewCount })
	set("category", p.Category != nil, func() any { return *p.Category })
	set("tags", p.Tags != nil, func() any { return nonNil(*p.Tags) })
	set("image", p.Image != nil, func() any { return *p.Image })
	set("isNew", p.IsNew != nil, func() any { return *p.IsNew })
	set("isFeatured", p.IsFeatured != nil, func() any { return *p.IsFeatured })
	set("isBestSeller", p.IsBestSeller != nil, func() any { return *p.IsBestSeller })
	set("downloadCount", p.DownloadCount != nil, func() any { return *p.DownloadCount })
	set("fileSize", p.FileSize != nil, func() any { return *p.FileSize })
	set("format", p.Format != nil, func() any { return *p.Format })
	set("compatibility", p.Compatibility != nil, func() any { return nonNil(*p.Compatibility) })
	set("features", p.Features != nil, func() any { return nonNil(*p.Features) })
	set("status", p.Status != nil, func() any { return *p.Status })
	return f
}

func (p ProductPatch) Apply(pr *Product, now time.Time) {
	if p.Title != nil {
		pr.Title = *p.Title
	}
	if p.Description != nil {
		pr.Description = *p.Description
	}
	if p.Price != nil {
		pr.Price = *p.Price
	}
	if p.OriginalPrice != nil {
		pr.OriginalPrice = *p.OriginalPrice
	}
	if p.Discount != nil {
		pr.Discount = *p.Discount
	}
	if p.Rating != nil {
		pr.Rating = *p.Rating
	}
	if p.ReviewCount != nil {
		pr.ReviewCount = *p.ReviewCount
	}
	if p.Category != nil {
		pr.Category = *p.Category
	}
	if p.Tags != nil {
		pr.Tags = nonNil(*p.Tags)
	}
	if p.Image != nil {
		pr.Image = *p.Image
	}
	if p.IsNew != nil {
		pr.IsNew = *p.IsNew
	}
	if p.IsFeatured != nil {
		pr.IsFeatured = *p.IsFeatured
	}
	if p.IsBestSeller != nil {
		pr.IsBestSeller = *p.IsBestSeller
	}
	if p.DownloadCount != nil {
		pr.DownloadCount = *p.DownloadCount
	}
	if p.FileSize != nil {
		pr.FileSize = *p.FileSize
	}
	if p.Format != nil {
		pr.Format = *p.Format
	}
	if p.Compatibility != nil {
		pr.Compatibility = nonNil(*p.Compatibility)
	}
	if p.Features != nil {
		pr.Features = nonNil(*p.Features)
	}
	if p.Status != nil {
		pr.Status = *p.Status
	}
	pr.UpdatedAt = now
}
