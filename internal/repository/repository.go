package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/techieonvacation/ex-earning/internal/domain"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrSectionNotFound = fmt.Errorf("section %w", ErrNotFound)
	ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)
)

// Repository stores sections and the products they group. Both backends keep
// section.products as product id references and resolve products by sectionId.
//
// Multi-step operations (cascading deletes, reindexing) are separate store calls
// and are not atomic: a failure part way leaves the earlier steps applied.
type Repository interface {
	ListSections(ctx context.Context) ([]domain.SectionView, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CountSections(ctx context.Context) (int, error)
	CreateSection(ctx context.Context, in domain.SectionInput) (*domain.Section, error)
	CreateProduct(ctx context.Context, sectionID string, in domain.ProductInput) (*domain.Product, error)
	UpdateSection(ctx context.Context, id string, patch domain.SectionPatch) (*domain.Section, error)
	UpdateProduct(ctx context.Context, sectionID, productID string, patch domain.ProductPatch) (*domain.Product, error)
	// ReorderProducts numbers the listed products 1..K within their section and
	// returns only those. Siblings not listed follow them in storage. An empty
	// sectionID means the section of the first listed product that exists.
	ReorderProducts(ctx context.Context, sectionID string, ids []string) ([]domain.Product, error)
	ReorderSections(ctx context.Context, ids []string) ([]domain.Section, error)
	DeleteSection(ctx context.Context, id string) error
	DeleteProduct(ctx context.Context, sectionID, productID string) error
	Close(ctx context.Context) error
}

type Option func(*settings)

type settings struct {
	now   func() time.Time
	newID func() string
}

func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *settings) { s.newID = newID }
}

func newSettings(opts []Option) settings {
	s := settings{
		now:   func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		newID: NewID,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// NewID returns an id of the form item-<unix millis>-<9 random chars>.
func NewID() string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("item-%d-%s", time.Now().UnixMilli(), random[:9])
}

func sectionOrder(s *domain.Section) *int { return &s.Order }
func productOrder(p *domain.Product) *int { return &p.Order }
func sectionKey(s domain.Section) string  { return s.ID }
func productKey(p domain.Product) string  { return p.ID }

// groupProducts attaches products, already sorted by order, to their sections.
func groupProducts(sections []domain.Section, products []domain.Product) []domain.SectionView {
	bySection := make(map[string][]domain.Product, len(sections))
	for _, p := range products {
		bySection[p.SectionID] = append(bySection[p.SectionID], p)
	}
	views := make([]domain.SectionView, 0, len(sections))
	for _, s := range sections {
		ps := bySection[s.ID]
		if ps == nil {
			ps = []domain.Product{}
		}
		views = append(views, domain.SectionView{Section: s, Products: ps})
	}
	return views
}

var (
	_ Repository = (*MongoRepository)(nil)
	_ Repository = (*FileRepository)(nil)
)
