package domain

import "github.com/shopspring/decimal"

// InventoryStats summarizes an owner's records. TotalValue only counts
// records that are in stock.
type InventoryStats struct {
	TotalItems      int             `json:"totalItems"`
	InStockItems    int             `json:"inStockItems"`
	OutOfStockItems int             `json:"outOfStockItems"`
	TotalValue      decimal.Decimal `json:"totalValue"`
}
