package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/techieonvacation/ex-earning/internal/domain"
	"github.com/techieonvacation/ex-earning/internal/ordering"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	SectionsCollection = "top_viral_sections"
	ProductsCollection = "top_viral_products"
)

var objectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

type MongoRepository struct {
	db       *mongo.Database
	sections *mongo.Collection
	products *mongo.Collection
	settings
}

func NewMongoRepository(db *mongo.Database, opts ...Option) *MongoRepository {
	return &MongoRepository{
		db:       db,
		sections: db.Collection(SectionsCollection),
		products: db.Collection(ProductsCollection),
		settings: newSettings(opts),
	}
}

// byOrder sorts by order, then by insertion so that equal orders stay stable.
func byOrder() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}})
}

func (m *MongoRepository) findSections(ctx context.Context, filter bson.M) ([]domain.Section, error) {
	cur, err := m.sections.Find(ctx, filter, byOrder())
	if err != nil {
		return nil, fmt.Errorf("failed to find sections: %w", err)
	}
	sections := []domain.Section{}
	if err := cur.All(ctx, &sections); err != nil {
		return nil, fmt.Errorf("failed to decode sections: %w", err)
	}
	return sections, nil
}

func (m *MongoRepository) findProducts(ctx context.Context, filter bson.M) ([]domain.Product, error) {
	cur, err := m.products.Find(ctx, filter, byOrder())
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	products := []domain.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

func (m *MongoRepository) ListSections(ctx context.Context) ([]domain.SectionView, error) {
	sections, err := m.findSections(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	products, err := m.findProducts(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	return groupProducts(sections, products), nil
}

func (m *MongoRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return m.findProducts(ctx, bson.M{})
}

// GetProduct looks the product up by its id and, when that misses and the id
// looks like an ObjectID, by the document _id.
func (m *MongoRepository) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := m.findProduct(ctx, bson.M{"id": id})
	if errors.Is(err, ErrProductNotFound) && objectIDPattern.MatchString(id) {
		oid, errHex := primitive.ObjectIDFromHex(id)
		if errHex != nil {
			return nil, ErrProductNotFound
		}
		return m.findProduct(ctx, bson.M{"_id": oid})
	}
	return product, err
}

func (m *MongoRepository) findProduct(ctx context.Context, filter bson.M) (*domain.Product, error) {
	var product domain.Product
	err := m.products.FindOne(ctx, filter).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

func (m *MongoRepository) findSection(ctx context.Context, id string) (*domain.Section, error) {
	var section domain.Section
	err := m.sections.FindOne(ctx, bson.M{"id": id}).Decode(&section)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSectionNotFound
		}
		return nil, fmt.Errorf("failed to get section: %w", err)
	}
	return &section, nil
}

func (m *MongoRepository) CountSections(ctx context.Context) (int, error) {
	n, err := m.sections.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count sections: %w", err)
	}
	return int(n), nil
}

func (m *MongoRepository) CreateSection(ctx context.Context, in domain.SectionInput) (*domain.Section, error) {
	count, err := m.CountSections(ctx)
	if err != nil {
		return nil, err
	}

	section := domain.NewSection(m.newID(), in, ordering.Next(count), m.now())
	res, err := m.sections.InsertOne(ctx, section)
	if err != nil {
		return nil, fmt.Errorf("failed to insert section: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		section.MongoID = oid.Hex()
	}
	return &section, nil
}

func (m *MongoRepository) CreateProduct(ctx context.Context, sectionID string, in domain.ProductInput) (*domain.Product, error) {
	if _, err := m.findSection(ctx, sectionID); err != nil {
		return nil, err
	}

	count, err := m.products.CountDocuments(ctx, bson.M{"sectionId": sectionID})
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	now := m.now()
	product := domain.NewProduct(m.newID(), sectionID, in, ordering.Next(int(count)), now)
	res, err := m.products.InsertOne(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.MongoID = oid.Hex()
	}

	_, err = m.sections.UpdateOne(ctx,
		bson.M{"id": sectionID},
		bson.M{
			"$push": bson.M{"products": product.ID},
			"$set":  bson.M{"updatedAt": now},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to link product to section: %w", err)
	}

	return &product, nil
}

func (m *MongoRepository) UpdateSection(ctx context.Context, id string, patch domain.SectionPatch) (*domain.Section, error) {
	set := bson.M(patch.Fields())
	set["updatedAt"] = m.now()

	res, err := m.sections.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update section: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrSectionNotFound
	}

	return m.findSection(ctx, id)
}

func (m *MongoRepository) UpdateProduct(ctx context.Context, sectionID, productID string, patch domain.ProductPatch) (*domain.Product, error) {
	now := m.now()
	set := bson.M(patch.Fields())
	set["updatedAt"] = now

	filter := bson.M{"id": productID, "sectionId": sectionID}
	res, err := m.products.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrProductNotFound
	}

	if err := m.touchSection(ctx, sectionID, now); err != nil {
		return nil, err
	}

	return m.findProduct(ctx, filter)
}

func (m *MongoRepository) ReorderProducts(ctx context.Context, sectionID string, ids []string) ([]domain.Product, error) {
	if sectionID == "" {
		for _, id := range ids {
			p, err := m.findProduct(ctx, bson.M{"id": id})
			if errors.Is(err, ErrProductNotFound) {
				continue
			}
			if err != nil {
				return nil, err
			}
			sectionID = p.SectionID
			break
		}
		if sectionID == "" {
			return []domain.Product{}, nil
		}
	} else if _, err := m.findSection(ctx, sectionID); err != nil {
		return nil, err
	}

	siblings, err := m.findProducts(ctx, bson.M{"sectionId": sectionID})
	if err != nil {
		return nil, err
	}

	before := productOrders(siblings)
	listed := ordering.ByIDs(siblings, ids, productKey, productOrder)
	if err := m.writeProductOrders(ctx, siblings, before); err != nil {
		return nil, err
	}

	productIDs := make([]string, len(siblings))
	for i, p := range siblings {
		productIDs[i] = p.ID
	}
	_, err = m.sections.UpdateOne(ctx,
		bson.M{"id": sectionID},
		bson.M{"$set": bson.M{"products": productIDs, "updatedAt": m.now()}},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update section product list: %w", err)
	}

	return listed, nil
}

func (m *MongoRepository) ReorderSections(ctx context.Context, ids []string) ([]domain.Section, error) {
	sections, err := m.findSections(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	before := sectionOrders(sections)
	listed := ordering.ByIDs(sections, ids, sectionKey, sectionOrder)
	if err := m.writeSectionOrders(ctx, sections, before); err != nil {
		return nil, err
	}
	return listed, nil
}

// DeleteSection removes the section's products, then the section, then
// renumbers the remaining sections.
func (m *MongoRepository) DeleteSection(ctx context.Context, id string) error {
	if _, err := m.products.DeleteMany(ctx, bson.M{"sectionId": id}); err != nil {
		return fmt.Errorf("failed to delete section products: %w", err)
	}

	res, err := m.sections.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete section: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrSectionNotFound
	}

	remaining, err := m.findSections(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to reindex sections: %w", err)
	}
	before := sectionOrders(remaining)
	ordering.Reindex(remaining, sectionOrder)
	if err := m.writeSectionOrders(ctx, remaining, before); err != nil {
		return fmt.Errorf("failed to reindex sections: %w", err)
	}
	return nil
}

// DeleteProduct removes the product, renumbers its siblings, then drops the
// reference from the section.
func (m *MongoRepository) DeleteProduct(ctx context.Context, sectionID, productID string) error {
	res, err := m.products.DeleteOne(ctx, bson.M{"id": productID, "sectionId": sectionID})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrProductNotFound
	}

	siblings, err := m.findProducts(ctx, bson.M{"sectionId": sectionID})
	if err != nil {
		return fmt.Errorf("failed to reindex products: %w", err)
	}
	before := productOrders(siblings)
	ordering.Reindex(siblings, productOrder)
	if err := m.writeProductOrders(ctx, siblings, before); err != nil {
		return fmt.Errorf("failed to reindex products: %w", err)
	}

	_, err = m.sections.UpdateOne(ctx,
		bson.M{"id": sectionID},
		bson.M{
			"$pull": bson.M{"products": productID},
			"$set":  bson.M{"updatedAt": m.now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to unlink product from section: %w", err)
	}
	return nil
}

func (m *MongoRepository) touchSection(ctx context.Context, sectionID string, now time.Time) error {
	_, err := m.sections.UpdateOne(ctx, bson.M{"id": sectionID}, bson.M{"$set": bson.M{"updatedAt": now}})
	if err != nil {
		return fmt.Errorf("failed to touch section: %w", err)
	}
	return nil
}

func (m *MongoRepository) writeSectionOrders(ctx context.Context, sections []domain.Section, before map[string]int) error {
	var writes []mongo.WriteModel
	for _, s := range sections {
		if before[s.ID] != s.Order {
			writes = append(writes, orderUpdate(s.ID, s.Order))
		}
	}
	return bulkWrite(ctx, m.sections, writes)
}

func (m *MongoRepository) writeProductOrders(ctx context.Context, products []domain.Product, before map[string]int) error {
	var writes []mongo.WriteModel
	for _, p := range products {
		if before[p.ID] != p.Order {
			writes = append(writes, orderUpdate(p.ID, p.Order))
		}
	}
	return bulkWrite(ctx, m.products, writes)
}

func orderUpdate(id string, order int) mongo.WriteModel {
	return mongo.NewUpdateOneModel().
		SetFilter(bson.M{"id": id}).
		SetUpdate(bson.M{"$set": bson.M{"order": order}})
}

func bulkWrite(ctx context.Context, coll *mongo.Collection, writes []mongo.WriteModel) error {
	if len(writes) == 0 {
		return nil
	}
	if _, err := coll.BulkWrite(ctx, writes); err != nil {
		return fmt.Errorf("failed to write %s order: %w", coll.Name(), err)
	}
	return nil
}

func sectionOrders(sections []domain.Section) map[string]int {
	out := make(map[string]int, len(sections))
	for _, s := range sections {
		out[s.ID] = s.Order
	}
	return out
}

func productOrders(products []domain.Product) map[string]int {
	out := make(map[string]int, len(products))
	for _, p := range products {
		out[p.ID] = p.Order
	}
	return out
}

func (m *MongoRepository) CreateIndexes(ctx context.Context) error {
	_, err := m.sections.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "order", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create section indexes: %w", err)
	}

	_, err = m.products.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "sectionId", Value: 1}, {Key: "order", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create product indexes: %w", err)
	}

	return nil
}

func (m *MongoRepository) Close(ctx context.Context) error {
	return m.db.Client().Disconnect(ctx)
}
