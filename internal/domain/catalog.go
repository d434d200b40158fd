package domain

import "time"

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusDraft    Status = "draft"
)

// Section is a named, ordered grouping of products. Products holds product ids
// in display order; the products themselves live in their own collection.
type Section struct {
	MongoID     string    `json:"_id,omitempty" bson:"_id,omitempty"`
	ID          string    `json:"id" bson:"id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Products    []string  `json:"products" bson:"products"`
	ViewAllLink string    `json:"viewAllLink" bson:"viewAllLink"`
	Status      Status    `json:"status" bson:"status"`
	Order       int       `json:"order" bson:"order"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// SectionView is a Section with its products resolved and sorted by order.
type SectionView struct {
	Section
	Products []Product `json:"products"`
}

type Product struct {
	MongoID       string    `json:"_id,omitempty" bson:"_id,omitempty"`
	ID            string    `json:"id" bson:"id"`
	Title         string    `json:"title" bson:"title"`
	Description   string    `json:"description" bson:"description"`
	Price         float64   `json:"price" bson:"price"`
	OriginalPrice float64   `json:"originalPrice" bson:"originalPrice"`
	Discount      float64   `json:"discount" bson:"discount"`
	Rating        float64   `json:"rating" bson:"rating"`
	ReviewCount   int       `json:"reviewCount" bson:"reviewCount"`
	Category      string    `json:"category" bson:"category"`
	Tags          []string  `json:"tags" bson:"tags"`
	Image         string    `json:"image" bson:"image"`
	IsNew         bool      `json:"isNew" bson:"isNew"`
	IsFeatured    bool      `json:"isFeatured" bson:"isFeatured"`
	IsBestSeller  bool      `json:"isBestSeller" bson:"isBestSeller"`
	DownloadCount int       `json:"downloadCount" bson:"downloadCount"`
	FileSize      string    `json:"fileSize" bson:"fileSize"`
	Format        string    `json:"format" bson:"format"`
	Compatibility []string  `json:"compatibility" bson:"compatibility"`
	Features      []string  `json:"features" bson:"features"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
	Order         int       `json:"order" bson:"order"`
	Status        Status    `json:"status" bson:"status"`
	SectionID     string    `json:"sectionId" bson:"sectionId"`
}

func (p Product) IsActive() bool {
	return p.Status == StatusActive
}
