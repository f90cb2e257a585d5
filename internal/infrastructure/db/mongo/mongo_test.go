package mongo

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stockroom/inventory-api/internal/core/domain"
)

func duplicateKeyErr(index string) error {
	return mongo.WriteException{
		WriteErrors: []mongo.WriteError{{
			Code:    11000,
			Message: "E11000 duplicate key error collection: inventory.users index: " + index + " dup key",
		}},
	}
}

func TestDuplicateIndex(t *testing.T) {
	err := duplicateKeyErr(emailIndex)

	if !duplicateIndex(err, emailIndex) {
		t.Fatal("expected email index match")
	}
	if duplicateIndex(err, usernameIndex) {
		t.Fatal("username index must not match an email violation")
	}
	if duplicateIndex(errors.New("E11000 email_unique"), emailIndex) {
		t.Fatal("plain errors are not duplicate key errors")
	}
}

func TestInventoryDoc_RoundTrip(t *testing.T) {
	owner := primitive.NewObjectID().Hex()
	id := primitive.NewObjectID().Hex()
	rec := &domain.InventoryRecord{
		ID:          id,
		InventoryID: "INV1",
		ProductName: "Mouse",
		Category:    domain.CategoryAccessories,
		Supplier:    "Acme",
		Stock:       domain.StockIn,
		CostUnit:    20,
		Warehouse:   "W1",
		LastUpdated: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
		UserID:      owner,
	}

	doc, err := toInventoryDoc(rec)
	if err != nil {
		t.Fatalf("to doc: %v", err)
	}
	if got := doc.toDomain(); *got != *rec {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, rec)
	}
}

func TestInventoryDoc_InvalidIDs(t *testing.T) {
	if _, err := toInventoryDoc(&domain.InventoryRecord{UserID: "not-hex"}); err == nil {
		t.Fatal("expected error for malformed owner id")
	}

	rec := &domain.InventoryRecord{ID: "nope", UserID: primitive.NewObjectID().Hex()}
	if _, err := toInventoryDoc(rec); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound for malformed record id, got %v", err)
	}
}
