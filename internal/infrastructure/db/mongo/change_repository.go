package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stockroom/inventory-api/internal/core/domain"
)

const changeCollection = "inventory_changes"

// ChangeRepository implements ports.ChangeRepository using MongoDB.
type ChangeRepository struct {
	db *mongo.Database
}

func NewChangeRepository(db *mongo.Database) *ChangeRepository {
	return &ChangeRepository{db: db}
}

// InsertChange persists one entry to the inventory_changes audit collection.
func (r *ChangeRepository) InsertChange(ctx context.Context, change *domain.InventoryChange) error {
	doc := bson.M{
		"record_id":    change.RecordID,
		"inventory_id": change.InventoryID,
		"owner_id":     change.OwnerID,
		"action":       string(change.Action),
		"at":           change.At.UTC(),
		"processed_at": time.Now().UTC(),
	}

	_, err := r.db.Collection(changeCollection).InsertOne(ctx, doc)
	return err
}
