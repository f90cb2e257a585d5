package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// Category is the fixed product classification of an inventory record.
type Category string

const (
	CategoryAccessories Category = "Accessories"
	CategoryElectronics Category = "Electronics"
	CategoryFurniture   Category = "Furniture"
	CategoryPrinting    Category = "Printing"
	CategoryAudio       Category = "Audio"
	CategoryOffice      Category = "Office"
	CategoryStorage     Category = "Storage"
)

// Categories lists every accepted category in display order.
var Categories = []Category{
	CategoryAccessories,
	CategoryElectronics,
	CategoryFurniture,
	CategoryPrinting,
	CategoryAudio,
	CategoryOffice,
	CategoryStorage,
}

// Valid reports whether c is one of Categories. The match is exact.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// StockStatus tells whether a product is currently sellable.
type StockStatus string

const (
	StockIn  StockStatus = "In stock"
	StockOut StockStatus = "Out of stock"
)

func (s StockStatus) Valid() bool {
	return s == StockIn || s == StockOut
}

const (
	MaxProductNameLen = 100
	MaxSupplierLen    = 100
	MaxWarehouseLen   = 20
	MinCostUnit       = 0
	MaxCostUnit       = 1_000_000
)

var (
	ErrRecordNotFound       = errors.New("inventory item not found")
	ErrForbidden            = errors.New("not authorized to modify this item")
	ErrDuplicateInventoryID = errors.New("inventory ID already exists")
)

// InventoryRecord is a single stocked product owned by one account.
type InventoryRecord struct {
	ID          string
	InventoryID string
	ProductName string
	Category    Category
	Supplier    string
	Stock       StockStatus
	CostUnit    float64
	Warehouse   string
	LastUpdated time.Time
	UserID      string
}

// Normalize applies the storage casing rules: identifiers and warehouse codes
// are upper-cased, free text is trimmed.
func (r *InventoryRecord) Normalize() {
	r.InventoryID = strings.ToUpper(strings.TrimSpace(r.InventoryID))
	r.ProductName = strings.TrimSpace(r.ProductName)
	r.Supplier = strings.TrimSpace(r.Supplier)
	r.Warehouse = strings.ToUpper(strings.TrimSpace(r.Warehouse))
}

// Validate checks every field constraint and reports all failures at once.
// It expects a normalized record.
func (r *InventoryRecord) Validate() error {
	verr := &ValidationError{}

	if r.InventoryID == "" {
		verr.Add("inventoryId", "Inventory ID is required")
	}

	switch {
	case r.ProductName == "":
		verr.Add("productName", "Product name is required")
	case utf8.RuneCountInString(r.ProductName) > MaxProductNameLen:
		verr.Add("productName", fmt.Sprintf("Product name cannot exceed %d characters", MaxProductNameLen))
	}

	switch {
	case r.Category == "":
		verr.Add("category", "Category is required")
	case !r.Category.Valid():
		verr.Add("category", fmt.Sprintf("%s is not a valid category", r.Category))
	}

	switch {
	case r.Supplier == "":
		verr.Add("supplier", "Supplier is required")
	case utf8.RuneCountInString(r.Supplier) > MaxSupplierLen:
		verr.Add("supplier", fmt.Sprintf("Supplier name cannot exceed %d characters", MaxSupplierLen))
	}

	switch {
	case r.Stock == "":
		verr.Add("stock", "Stock status is required")
	case !r.Stock.Valid():
		verr.Add("stock", fmt.Sprintf("%s is not a valid stock status", r.Stock))
	}

	switch {
	case math.IsNaN(r.CostUnit) || math.IsInf(r.CostUnit, 0):
		verr.Add("costUnit", "Cost per unit must be a number")
	case r.CostUnit < MinCostUnit:
		verr.Add("costUnit", "Cost cannot be negative")
	case r.CostUnit > MaxCostUnit:
		verr.Add("costUnit", "Cost cannot exceed $1,000,000")
	}

	switch {
	case r.Warehouse == "":
		verr.Add("warehouse", "Warehouse is required")
	case utf8.RuneCountInString(r.Warehouse) > MaxWarehouseLen:
		verr.Add("warehouse", fmt.Sprintf("Warehouse code cannot exceed %d characters", MaxWarehouseLen))
	}

	return verr.OrNil()
}

// OwnedBy reports whether accountID owns the record.
func (r *InventoryRecord) OwnedBy(accountID string) bool {
	return r.UserID != "" && r.UserID == accountID
}
