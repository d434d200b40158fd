package events

import (
	"context"
	"time"
)

type Type string

const (
	SectionCreated    Type = "section.created"
	SectionUpdated    Type = "section.updated"
	SectionDeleted    Type = "section.deleted"
	SectionsReordered Type = "sections.reordered"
	ProductCreated    Type = "product.created"
	ProductUpdated    Type = "product.updated"
	ProductDeleted    Type = "product.deleted"
	ProductsReordered Type = "products.reordered"
)

// CatalogEvent notifies downstream consumers that the catalog changed.
type CatalogEvent struct {
	Type       Type      `json:"type"`
	SectionID  string    `json:"sectionId,omitempty"`
	ProductID  string    `json:"productId,omitempty"`
	IDs        []string  `json:"ids,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Key is the partition key. Events of one section stay ordered.
func (e CatalogEvent) Key() string {
	if e.SectionID != "" {
		return e.SectionID
	}
	return "catalog"
}

type Publisher interface {
	Publish(ctx context.Context, event CatalogEvent) error
	Close() error
}

// Nop drops every event. Used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(context.Context, CatalogEvent) error { return nil }
func (Nop) Close() error { return nil }
