package service

import (
	"context"
	"fmt"

	"github.com/techieonvacation/ex-earning/internal/domain"
	"go.uber.org/zap"
)

var defaultSection = domain.SectionInput{
	Title:       "Top Viral Bundle",
	Description: "Featured trending products and bundles",
	ViewAllLink: "/products/trending",
	Status:      domain.StatusActive,
}

var defaultProduct = domain.ProductInput{
	Title:         "Premium Reels Bundle 2024",
	Description:   "Get access to 500+ high-quality reels templates for Instagram, TikTok, and YouTube Shorts. Perfect for influencers and content creators.",
	Price:         2999,
	OriginalPrice: 5999,
	Discount:      50,
	Rating:        4.8,
	ReviewCount:   1247,
	Category:      "Reels Bundle",
	Tags:          []string{"Instagram", "TikTok", "YouTube Shorts", "Templates"},
	Image:         "https://sasitag.in/wp-content/uploads/2024/09/1000-Viral-Hooks-Reels-e1725331139794.jpg",
	IsNew:         true,
	IsFeatured:    true,
	IsBestSeller:  true,
	DownloadCount: 15420,
	FileSize:      "2.5 GB",
	Format:        "MP4, MOV",
	Compatibility: []string{"iOS", "Android", "Desktop"},
	Features:      []string{"500+ Templates", "HD Quality", "Easy Customization", "Commercial License"},
	Status:        domain.StatusActive,
}

// EnsureDefaults seeds the starter section and product into an empty catalog.
// It reports whether anything was written.
func (s *CatalogService) EnsureDefaults(ctx context.Context) (bool, error) {
	count, err := s.repo.CountSections(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count sections: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	section, err := s.CreateSection(ctx, defaultSection)
	if err != nil {
		return false, fmt.Errorf("failed to seed section: %w", err)
	}
	product, err := s.CreateProduct(ctx, section.ID, defaultProduct)
	if err != nil {
		return false, fmt.Errorf("failed to seed product: %w", err)
	}

	s.log.Info("seeded default catalog",
		zap.String("section_id", section.ID),
		zap.String("product_id", product.ID),
	)
	return true, nil
}
