package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/techieonvacation/ex-earning/internal/domain"
	"github.com/techieonvacation/ex-earning/internal/ordering"
)

// catalogFile is the on-disk layout of the file backend.
type catalogFile struct {
	Sections []domain.Section `json:"sections"`
	Products []domain.Product `json:"products"`
}

// FileRepository keeps the whole catalog in one JSON document. Each call loads the
// document, changes it and writes it back while holding mu, so calls within one
// process never interleave. Separate processes sharing the file are not coordinated.
type FileRepository struct {
	mu   sync.Mutex
	path string
	settings
}

func NewFileRepository(path string, opts ...Option) *FileRepository {
	return &FileRepository{path: path, settings: newSettings(opts)}
}

func (f *FileRepository) load() (*catalogFile, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &catalogFile{Sections: []domain.Section{}, Products: []domain.Product{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var doc catalogFile
	if len(data) > 0 {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode catalog file: %w", err)
		}
	}
	if doc.Sections == nil {
		doc.Sections = []domain.Section{}
	}
	if doc.Products == nil {
		doc.Products = []domain.Product{}
	}
	ordering.Sort(doc.Sections, sectionOrder)
	ordering.Sort(doc.Products, productOrder)
	return &doc, nil
}

func (f *FileRepository) save(doc *catalogFile) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog file: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create catalog dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".catalog-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp catalog file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write catalog file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace catalog file: %w", err)
	}
	return nil
}

// read runs fn against a freshly loaded document without saving it.
func (f *FileRepository) read(fn func(doc *catalogFile) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return err
	}
	return fn(doc)
}

// update runs fn against a freshly loaded document and saves it when fn succeeds.
func (f *FileRepository) update(fn func(doc *catalogFile) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return f.save(doc)
}

func (doc *catalogFile) section(id string) *domain.Section {
	for i := range doc.Sections {
		if doc.Sections[i].ID == id {
			return &doc.Sections[i]
		}
	}
	return nil
}

func (doc *catalogFile) product(sectionID, id string) *domain.Product {
	for i := range doc.Products {
		p := &doc.Products[i]
		if p.ID == id && (sectionID == "" || p.SectionID == sectionID) {
			return p
		}
	}
	return nil
}

func (doc *catalogFile) siblings(sectionID string) []domain.Product {
	out := []domain.Product{}
	for _, p := range doc.Products {
		if p.SectionID == sectionID {
			out = append(out, p)
		}
	}
	return out
}

// replaceSiblings swaps the products of one section for the given slice, keeping
// products of other sections where they were.
func (doc *catalogFile) replaceSiblings(sectionID string, products []domain.Product) {
	rest := make([]domain.Product, 0, len(doc.Products))
	for _, p := range doc.Products {
		if p.SectionID != sectionID {
			rest = append(rest, p)
		}
	}
	doc.Products = append(rest, products...)
	ordering.Sort(doc.Products, productOrder)
}

func (f *FileRepository) ListSections(ctx context.Context) ([]domain.SectionView, error) {
	var views []domain.SectionView
	err := f.read(func(doc *catalogFile) error {
		views = groupProducts(doc.Sections, doc.Products)
		return nil
	})
	return views, err
}

func (f *FileRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := f.read(func(doc *catalogFile) error {
		products = doc.Products
		return nil
	})
	return products, err
}

func (f *FileRepository) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var product *domain.Product
	err := f.read(func(doc *catalogFile) error {
		p := doc.product("", id)
		if p == nil {
			return ErrProductNotFound
		}
		product = p
		return nil
	})
	return product, err
}

func (f *FileRepository) CountSections(ctx context.Context) (int, error) {
	var n int
	err := f.read(func(doc *catalogFile) error {
		n = len(doc.Sections)
		return nil
	})
	return n, err
}

func (f *FileRepository) CreateSection(ctx context.Context, in domain.SectionInput) (*domain.Section, error) {
	var section domain.Section
	err := f.update(func(doc *catalogFile) error {
		section = domain.NewSection(f.newID(), in, ordering.Next(len(doc.Sections)), f.now())
		doc.Sections = append(doc.Sections, section)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &section, nil
}

func (f *FileRepository) CreateProduct(ctx context.Context, sectionID string, in domain.ProductInput) (*domain.Product, error) {
	var product domain.Product
	err := f.update(func(doc *catalogFile) error {
		section := doc.section(sectionID)
		if section == nil {
			return ErrSectionNotFound
		}
		now := f.now()
		product = domain.NewProduct(f.newID(), sectionID, in, ordering.Next(len(doc.siblings(sectionID))), now)
		doc.Products = append(doc.Products, product)
		section.Products = append(section.Products, product.ID)
		section.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (f *FileRepository) UpdateSection(ctx context.Context, id string, patch domain.SectionPatch) (*domain.Section, error) {
	var section domain.Section
	err := f.update(func(doc *catalogFile) error {
		s := doc.section(id)
		if s == nil {
			return ErrSectionNotFound
		}
		patch.Apply(s, f.now())
		section = *s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &section, nil
}

func (f *FileRepository) UpdateProduct(ctx context.Context, sectionID, productID string, patch domain.ProductPatch) (*domain.Product, error) {
	var product domain.Product
	err := f.update(func(doc *catalogFile) error {
		s := doc.section(sectionID)
		if s == nil {
			return ErrProductNotFound
		}
		p := doc.product(sectionID, productID)
		if p == nil {
			return ErrProductNotFound
		}
		now := f.now()
		patch.Apply(p, now)
		s.UpdatedAt = now
		product = *p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (f *FileRepository) ReorderProducts(ctx context.Context, sectionID string, ids []string) ([]domain.Product, error) {
	listed := []domain.Product{}
	err := f.update(func(doc *catalogFile) error {
		if sectionID == "" {
			for _, id := range ids {
				if p := doc.product("", id); p != nil {
					sectionID = p.SectionID
					break
				}
			}
			if sectionID == "" {
				return nil
			}
		}
		section := doc.section(sectionID)
		if section == nil {
			return ErrSectionNotFound
		}

		siblings := doc.siblings(sectionID)
		listed = ordering.ByIDs(siblings, ids, productKey, productOrder)
		doc.replaceSiblings(sectionID, siblings)

		section.Products = make([]string, len(siblings))
		for i, p := range siblings {
			section.Products[i] = p.ID
		}
		section.UpdatedAt = f.now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return listed, nil
}

func (f *FileRepository) ReorderSections(ctx context.Context, ids []string) ([]domain.Section, error) {
	var listed []domain.Section
	err := f.update(func(doc *catalogFile) error {
		listed = ordering.ByIDs(doc.Sections, ids, sectionKey, sectionOrder)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return listed, nil
}

func (f *FileRepository) DeleteSection(ctx context.Context, id string) error {
	return f.update(func(doc *catalogFile) error {
		if doc.section(id) == nil {
			return ErrSectionNotFound
		}

		sections := make([]domain.Section, 0, len(doc.Sections))
		for _, s := range doc.Sections {
			if s.ID != id {
				sections = append(sections, s)
			}
		}
		ordering.Reindex(sections, sectionOrder)
		doc.Sections = sections
		doc.replaceSiblings(id, nil)
		return nil
	})
}

func (f *FileRepository) DeleteProduct(ctx context.Context, sectionID, productID string) error {
	return f.update(func(doc *catalogFile) error {
		section := doc.section(sectionID)
		if section == nil || doc.product(sectionID, productID) == nil {
			return ErrProductNotFound
		}

		remaining := make([]domain.Product, 0)
		for _, p := range doc.siblings(sectionID) {
			if p.ID != productID {
				remaining = append(remaining, p)
			}
		}
		ordering.Reindex(remaining, productOrder)
		doc.replaceSiblings(sectionID, remaining)

		refs := make([]string, 0, len(section.Products))
		for _, ref := range section.Products {
			if ref != productID {
				refs = append(refs, ref)
			}
		}
		section.Products = refs
		section.UpdatedAt = f.now()
		return nil
	})
}

func (f *FileRepository) Close(ctx context.Context) error {
	return nil
}
