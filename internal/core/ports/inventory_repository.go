package ports

import (
	"context"

	"github.com/stockroom/inventory-api/internal/core/domain"
)

// InventoryRepository persists inventory records.
type InventoryRepository interface {
	// Create inserts r and sets r.ID. A taken inventoryId yields
	// domain.ErrDuplicateInventoryID.
	Create(ctx context.Context, r *domain.InventoryRecord) error
	// FindByID returns domain.ErrRecordNotFound when no record has that id.
	FindByID(ctx context.Context, id string) (*domain.InventoryRecord, error)
	// Update overwrites the mutable fields of the record owned by r.UserID.
	Update(ctx context.Context, r *domain.InventoryRecord) error
	Delete(ctx context.Context, id, ownerID string) error
	// ListByOwner returns the owner's records, most recently updated first.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.InventoryRecord, error)
}

// StatsCache stores computed stats per owner. Implementations are
// best-effort; callers treat every error as a cache miss.
//
// Each owner has a generation counter that Invalidate advances. Callers read
// Generation before loading records and pass it to Set, which stores nothing
// once the generation has moved on.
type StatsCache interface {
	Get(ctx context.Context, ownerID string) (*domain.InventoryStats, bool, error)
	Generation(ctx context.Context, ownerID string) (int64, error)
	Set(ctx context.Context, ownerID string, generation int64, stats domain.InventoryStats) (bool, error)
	Invalidate(ctx context.Context, ownerID string) error
}
