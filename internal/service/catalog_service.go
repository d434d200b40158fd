package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/techieonvacation/ex-earning/internal/cache"
	"github.com/techieonvacation/ex-earning/internal/domain"
	"github.com/techieonvacation/ex-earning/internal/events"
	"github.com/techieonvacation/ex-earning/internal/logger"
	"github.com/techieonvacation/ex-earning/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrProductUnavailable is returned for products that exist but are not active.
var ErrProductUnavailable = fmt.Errorf("product unavailable: %w", repository.ErrNotFound)

const sideEffectTimeout = 2 * time.Second

type CatalogService struct {
	repo      repository.Repository
	cache     cache.SectionCache
	publisher events.Publisher
	log       *zap.Logger
	sfg       singleflight.Group
	now       func() time.Time
}

func NewCatalogService(repo repository.Repository, c cache.SectionCache, p events.Publisher, log *zap.Logger) *CatalogService {
	return &CatalogService{
		repo:      repo,
		cache:     c,
		publisher: p,
		log:       log,
		now:       time.Now,
	}
}

// ListSections serves the section listing from cache, falling back to the
// repository. Concurrent misses share one repository call.
func (s *CatalogService) ListSections(ctx context.Context) ([]domain.SectionView, error) {
	v, err, _ := s.sfg.Do("sections", func() (interface{}, error) {
		sections, err := s.cache.Get(ctx)
		if err == nil {
			return sections, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			logger.With(ctx, s.log).Warn("section cache get failed", zap.Error(err))
		}

		sections, err = s.repo.ListSections(ctx)
		if err != nil {
			return nil, err
		}

		go func() {
			setCtx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
			defer cancel()
			if err := s.cache.Set(setCtx, sections); err != nil {
				s.log.Warn("section cache set failed", zap.Error(err))
			}
		}()

		return sections, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.SectionView), nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

// GetProduct returns an active product. Inactive and draft products are
// reported as ErrProductUnavailable.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, domain.NewValidationError("product id is required")
	}
	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.IsActive() {
		return nil, ErrProductUnavailable
	}
	return product, nil
}

func (s *CatalogService) CreateSection(ctx context.Context, in domain.SectionInput) (*domain.Section, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	section, err := s.repo.CreateSection(ctx, in)
	if err != nil {
		return nil, err
	}
	s.changed(ctx, events.CatalogEvent{Type: events.SectionCreated, SectionID: section.ID})
	return section, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, sectionID string, in domain.ProductInput) (*domain.Product, error) {
	if sectionID == "" {
		return nil, domain.NewValidationError("sectionId is required")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	product, err := s.repo.CreateProduct(ctx, sectionID, in)
	if err != nil {
		return nil, err
	}
	s.changed(ctx, events.CatalogEvent{Type: events.ProductCreated, SectionID: sectionID, ProductID: product.ID})
	return product, nil
}

func (s *CatalogService) UpdateSection(ctx context.Context, id string, patch domain.SectionPatch) (*domain.Section, error) {
	if id == "" {
		return nil, domain.NewValidationError("sectionId is required")
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	section, err := s.repo.UpdateSection(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.changed(ctx, events.CatalogEvent{Type: events.SectionUpdated, SectionID: id})
	return section, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, sectionID, productID string, patch domain.ProductPatch) (*domain.Product, error) {
	if sectionID == "" || productID == "" {
		return nil, domain.NewValidationError("sectionId and productId are required")
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	product, err := s.repo.UpdateProduct(ctx, sectionID, productID, patch)
	if err != nil {
		return nil, err
	}
	s.changed(ctx, events.CatalogEvent{Type: events.ProductUpdated, SectionID: sectionID, ProductID: productID})
	return product, nil
}

func (s *CatalogService) ReorderProducts(ctx context.Context, sectionID string, ids []string) ([]domain.Product, error) {
	products, err := s.repo.ReorderProducts(ctx, sectionID, ids)
	if err != nil {
		return nil, err
	}
	if len(products) > 0 {
		sectionID = products[0].SectionID
	}
	s.changed(ctx, events.CatalogEvent{Type: events.ProductsReordered, SectionID: sectionID, IDs: ids})
	return products, nil
}

func (s *CatalogService) ReorderSections(ctx context.Context, ids []string) ([]domain.Section, error) {
	sections, err := s.repo.ReorderSections(ctx, ids)
	if err != nil {
		return nil, err
	}
	s.changed(ctx, events.CatalogEvent{Type: events.SectionsReordered, IDs: ids})
	return sections, nil
}

func (s *CatalogService) DeleteSection(ctx context.Context, id string) error {
	if id == "" {
		return domain.NewValidationError("sectionId is required")
	}
	if err := s.repo.DeleteSection(ctx, id); err != nil {
		// a failed reindex still leaves the section deleted
		if !errors.Is(err, repository.ErrNotFound) {
			s.invalidate(ctx)
		}
		return err
	}
	s.changed(ctx, events.CatalogEvent{Type: events.SectionDeleted, SectionID: id})
	return nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, sectionID, productID string) error {
	if sectionID == "" || productID == "" {
		return domain.NewValidationError("sectionId and productId are required")
	}
	if err := s.repo.DeleteProduct(ctx, sectionID, productID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.invalidate(ctx)
		}
		return err
	}
	s.changed(ctx, events.CatalogEvent{Type: events.ProductDeleted, SectionID: sectionID, ProductID: productID})
	return nil
}

// changed runs after every successful write: the cached listing is dropped and
// a catalog event is published. Neither failure reaches the caller.
func (s *CatalogService) changed(ctx context.Context, event events.CatalogEvent) {
	s.invalidate(ctx)

	event.OccurredAt = s.now().UTC()
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
	defer cancel()
	if err := s.publisher.Publish(pubCtx, event); err != nil {
		logger.With(ctx, s.log).Warn("catalog event publish failed",
			zap.String("event_type", string(event.Type)),
			zap.Error(err),
		)
	}
}

func (s *CatalogService) invalidate(ctx context.Context) {
	delCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
	defer cancel()
	if err := s.cache.Delete(delCtx); err != nil {
		logger.With(ctx, s.log).Warn("section cache invalidate failed", zap.Error(err))
	}
}
