package ports

import (
	"context"

	"github.com/stockroom/inventory-api/internal/core/domain"
)

// ChangeRepository persists audit entries for inventory writes.
type ChangeRepository interface {
	InsertChange(ctx context.Context, change *domain.InventoryChange) error
}

// ChangeJournal accepts audit entries for asynchronous persistence.
type ChangeJournal interface {
	Record(ctx context.Context, change domain.InventoryChange)
}
