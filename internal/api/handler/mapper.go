package handler

import (
	"github.com/stockroom/inventory-api/internal/core/domain"
	"github.com/stockroom/inventory-api/internal/core/ports"
)

// --- Request → Service input ---

func toInventoryFields(req inventoryRequest) ports.InventoryFields {
	return ports.InventoryFields{
		InventoryID: req.InventoryID,
		ProductName: req.ProductName,
		Category:    req.Category,
		Supplier:    req.Supplier,
		Stock:       req.Stock,
		CostUnit:    req.CostUnit,
		Warehouse:   req.Warehouse,
	}
}

// --- Service result → HTTP response ---

// toUserResponse renders the public view of an account; the password hash
// has no field here.
func toUserResponse(a *domain.Account) *userResponse {
	return &userResponse{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		CreatedAt: a.CreatedAt.UTC(),
	}
}

func toInventoryResponse(r *domain.InventoryRecord) inventoryResponse {
	return inventoryResponse{
		ID:          r.ID,
		InventoryID: r.InventoryID,
		ProductName: r.ProductName,
		Category:    string(r.Category),
		Supplier:    r.Supplier,
		Stock:       string(r.Stock),
		CostUnit:    r.CostUnit,
		Warehouse:   r.Warehouse,
		LastUpdated: r.LastUpdated.UTC(),
		UserID:      r.UserID,
	}
}

func toInventoryList(records []*domain.InventoryRecord) []inventoryResponse {
	out := make([]inventoryResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toInventoryResponse(r))
	}
	return out
}

func toStatsResponse(s domain.InventoryStats) statsResponse {
	return statsResponse{
		TotalItems:      s.TotalItems,
		InStockItems:    s.InStockItems,
		OutOfStockItems: s.OutOfStockItems,
		TotalValue:      s.TotalValue.InexactFloat64(),
	}
}
