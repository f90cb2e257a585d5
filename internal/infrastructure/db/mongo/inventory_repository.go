package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stockroom/inventory-api/internal/core/domain"
)

const (
	inventoryCollection = "inventories"

	inventoryIDIndex = "inventory_id_unique"
)

// InventoryRepository implements ports.InventoryRepository using MongoDB.
type InventoryRepository struct {
	col *mongo.Collection
}

func NewInventoryRepository(db *mongo.Database) *InventoryRepository {
	return &InventoryRepository{col: db.Collection(inventoryCollection)}
}

type inventoryDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	InventoryID string             `bson:"inventory_id"`
	ProductName string             `bson:"product_name"`
	Category    string             `bson:"category"`
	Supplier    string             `bson:"supplier"`
	Stock       string             `bson:"stock"`
	CostUnit    float64            `bson:"cost_unit"`
	Warehouse   string             `bson:"warehouse"`
	LastUpdated time.Time          `bson:"last_updated"`
	UserID      primitive.ObjectID `bson:"user_id"`
}

func toInventoryDoc(rec *domain.InventoryRecord) (inventoryDoc, error) {
	owner, err := primitive.ObjectIDFromHex(rec.UserID)
	if err != nil {
		return inventoryDoc{}, fmt.Errorf("owner id %q: %w", rec.UserID, err)
	}
	doc := inventoryDoc{
		InventoryID: rec.InventoryID,
		ProductName: rec.ProductName,
		Category:    string(rec.Category),
		Supplier:    rec.Supplier,
		Stock:       string(rec.Stock),
		CostUnit:    rec.CostUnit,
		Warehouse:   rec.Warehouse,
		LastUpdated: rec.LastUpdated.UTC(),
		UserID:      owner,
	}
	if rec.ID != "" {
		if doc.ID, err = primitive.ObjectIDFromHex(rec.ID); err != nil {
			return inventoryDoc{}, domain.ErrRecordNotFound
		}
	}
	return doc, nil
}

func (d inventoryDoc) toDomain() *domain.InventoryRecord {
	return &domain.InventoryRecord{
		ID:          d.ID.Hex(),
		InventoryID: d.InventoryID,
		ProductName: d.ProductName,
		Category:    domain.Category(d.Category),
		Supplier:    d.Supplier,
		Stock:       domain.StockStatus(d.Stock),
		CostUnit:    d.CostUnit,
		Warehouse:   d.Warehouse,
		LastUpdated: d.LastUpdated.UTC(),
		UserID:      d.UserID.Hex(),
	}
}

// Create inserts rec and sets its ID.
func (r *InventoryRepository) Create(ctx context.Context, rec *domain.InventoryRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := toInventoryDoc(rec)
	if err != nil {
		return err
	}
	doc.ID = primitive.NewObjectID()

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if duplicateIndex(err, inventoryIDIndex) {
			return domain.ErrDuplicateInventoryID
		}
		return fmt.Errorf("insert inventory record: %w", err)
	}
	rec.ID = doc.ID.Hex()
	return nil
}

// FindByID returns domain.ErrRecordNotFound for unknown or malformed ids.
func (r *InventoryRepository) FindByID(ctx context.Context, id string) (*domain.InventoryRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRecordNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc inventoryDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("find inventory record: %w", err)
	}
	return doc.toDomain(), nil
}

// Update replaces the mutable fields of rec. The filter includes the owner so
// a record can never be rewritten under another account.
func (r *InventoryRepository) Update(ctx context.Context, rec *domain.InventoryRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := toInventoryDoc(rec)
	if err != nil {
		return err
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": doc.ID, "user_id": doc.UserID},
		bson.M{"$set": bson.M{
			"inventory_id": doc.InventoryID,
			"product_name": doc.ProductName,
			"category":     doc.Category,
			"supplier":     doc.Supplier,
			"stock":        doc.Stock,
			"cost_unit":    doc.CostUnit,
			"warehouse":    doc.Warehouse,
			"last_updated": doc.LastUpdated,
		}},
	)
	if err != nil {
		if duplicateIndex(err, inventoryIDIndex) {
			return domain.ErrDuplicateInventoryID
		}
		return fmt.Errorf("update inventory record: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (r *InventoryRepository) Delete(ctx context.Context, id, ownerID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrRecordNotFound
	}
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return domain.ErrRecordNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid, "user_id": owner})
	if err != nil {
		return fmt.Errorf("delete inventory record: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

// ListByOwner returns the owner's records sorted by last_updated descending.
func (r *InventoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.InventoryRecord, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return []*domain.InventoryRecord{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx,
		bson.M{"user_id": owner},
		options.Find().SetSort(bson.D{{Key: "last_updated", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list inventory records: %w", err)
	}
	defer cur.Close(ctx)

	var docs []inventoryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode inventory records: %w", err)
	}

	out := make([]*domain.InventoryRecord, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// EnsureIndexes creates the global inventory ID index and the owner listing index.
func (r *InventoryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "inventory_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(inventoryIDIndex),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "last_updated", Value: -1}}},
	}

	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("inventory indexes: %w", err)
	}
	return nil
}
