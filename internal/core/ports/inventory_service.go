package ports

import (
	"context"

	"github.com/stockroom/inventory-api/internal/core/domain"
	"github.com/stockroom/inventory-api/internal/core/query"
)

// InventoryFields carries caller-supplied record fields. A nil pointer means
// "not supplied": required on create, left unchanged on update.
type InventoryFields struct {
	InventoryID *string
	ProductName *string
	Category    *string
	Supplier    *string
	Stock       *string
	CostUnit    *float64
	Warehouse   *string
}

// ApplyTo copies every supplied field onto r.
func (f InventoryFields) ApplyTo(r *domain.InventoryRecord) {
	if f.InventoryID != nil {
		r.InventoryID = *f.InventoryID
	}
	if f.ProductName != nil {
		r.ProductName = *f.ProductName
	}
	if f.Category != nil {
		r.Category = domain.Category(*f.Category)
	}
	if f.Supplier != nil {
		r.Supplier = *f.Supplier
	}
	if f.Stock != nil {
		r.Stock = domain.StockStatus(*f.Stock)
	}
	if f.CostUnit != nil {
		r.CostUnit = *f.CostUnit
	}
	if f.Warehouse != nil {
		r.Warehouse = *f.Warehouse
	}
}

// InventoryService defines the owner-scoped use cases for inventory records.
type InventoryService interface {
	Create(ctx context.Context, ownerID string, fields InventoryFields) (*domain.InventoryRecord, error)
	Update(ctx context.Context, ownerID, recordID string, fields InventoryFields) (*domain.InventoryRecord, error)
	Delete(ctx context.Context, ownerID, recordID string) error
	List(ctx context.Context, ownerID string, params query.Params) ([]*domain.InventoryRecord, error)
	Stats(ctx context.Context, ownerID string) (domain.InventoryStats, error)
}
