// Package query implements search, filtering and aggregation over an owner's
// inventory records. Every function is pure: it never mutates its input and
// returns a fresh slice.
package query

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/stockroom/inventory-api/internal/core/domain"
)

// All disables a category or stock filter.
const All = "all"

// Params are the optional list parameters. Empty values match everything.
type Params struct {
	Search   string
	Category string
	Stock    string
}

// Search keeps records where any of product name, category, supplier,
// inventory ID or warehouse contains term, ignoring case. A blank term
// keeps everything.
func Search(records []*domain.InventoryRecord, term string) []*domain.InventoryRecord {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return clone(records)
	}

	out := make([]*domain.InventoryRecord, 0, len(records))
	for _, r := range records {
		if matches(r, term) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r *domain.InventoryRecord, term string) bool {
	for _, field := range []string{
		r.ProductName,
		string(r.Category),
		r.Supplier,
		r.InventoryID,
		r.Warehouse,
	} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// FilterByCategory keeps records whose category equals category, ignoring case.
func FilterByCategory(records []*domain.InventoryRecord, category string) []*domain.InventoryRecord {
	return filterEqual(records, category, func(r *domain.InventoryRecord) string { return string(r.Category) })
}

// FilterByStock keeps records whose stock status equals status, ignoring case.
func FilterByStock(records []*domain.InventoryRecord, status string) []*domain.InventoryRecord {
	return filterEqual(records, status, func(r *domain.InventoryRecord) string { return string(r.Stock) })
}

func filterEqual(records []*domain.InventoryRecord, want string, field func(*domain.InventoryRecord) string) []*domain.InventoryRecord {
	if disabled(want) {
		return clone(records)
	}
	out := make([]*domain.InventoryRecord, 0, len(records))
	for _, r := range records {
		if strings.EqualFold(field(r), want) {
			out = append(out, r)
		}
	}
	return out
}

func disabled(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, All)
}

// Apply runs search, then the category filter, then the stock filter, each
// over the previous result.
func Apply(records []*domain.InventoryRecord, p Params) []*domain.InventoryRecord {
	out := Search(records, p.Search)
	out = FilterByCategory(out, p.Category)
	return FilterByStock(out, p.Stock)
}

// ComputeStats counts records by stock status and sums the unit cost of the
// in-stock ones.
func ComputeStats(records []*domain.InventoryRecord) domain.InventoryStats {
	stats := domain.InventoryStats{TotalValue: decimal.Zero}
	for _, r := range records {
		stats.TotalItems++
		switch r.Stock {
		case domain.StockIn:
			stats.InStockItems++
			stats.TotalValue = stats.TotalValue.Add(decimal.NewFromFloat(r.CostUnit))
		case domain.StockOut:
			stats.OutOfStockItems++
		}
	}
	return stats
}

func clone(records []*domain.InventoryRecord) []*domain.InventoryRecord {
	out := make([]*domain.InventoryRecord, len(records))
	copy(out, records)
	return out
}
