// Package reports provides read-only dashboard aggregations and the Excel
// stock report export.
package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"gpustock/internal/core/id"
	"gpustock/internal/domain/ledger"
)

// WarehouseSummary is the headline dashboard block.
type WarehouseSummary struct {
	// TotalUnits is the sum of stock counters across all cards
	TotalUnits int64 `json:"totalUnits"`

	// TotalValue is the sum of price * quantity across all cards
	TotalValue decimal.Decimal `json:"totalValue"`

	// UniqueModels is the number of distinct cards in the catalog
	UniqueModels int64 `json:"uniqueModels"`

	// ModelsInStock is the number of cards with at least one unit
	ModelsInStock int64 `json:"modelsInStock"`
}

// ManufacturerStat is a per-manufacturer aggregation row.
type ManufacturerStat struct {
	ManufacturerID   id.ID           `json:"manufacturerId"`
	ManufacturerName string          `json:"manufacturerName"`
	Models           int64           `json:"models"`
	Units            int64           `json:"units"`
	StockValue       decimal.Decimal `json:"stockValue"`
}

// ExpensiveCard is a row of the top-priced in-stock listing.
type ExpensiveCard struct {
	VideocardID id.ID           `json:"videocardId"`
	Sku         string          `json:"sku"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
}

// JournalRow is a recent-operations line with resolved names.
type JournalRow struct {
	EntryID   id.ID       `json:"entryId"`
	Date      time.Time   `json:"date"`
	Kind      ledger.Kind `json:"kind"`
	Quantity  int64       `json:"quantity"`
	UserName  string      `json:"userName"`
	CardSku   string      `json:"cardSku"`
	CardID    id.ID       `json:"cardId"`
}

// Dashboard bundles everything the admin landing page shows.
type Dashboard struct {
	Summary          WarehouseSummary   `json:"summary"`
	ByManufacturer   []ManufacturerStat `json:"byManufacturer"`
	MostExpensive    []ExpensiveCard    `json:"mostExpensive"`
	RecentOperations []JournalRow       `json:"recentOperations"`
}

// StockReportRow is a line of the exportable stock report.
type StockReportRow struct {
	Sku              string          `json:"sku"`
	ManufacturerName string          `json:"manufacturerName"`
	GpuName          string          `json:"gpuName"`
	MemorySize       int             `json:"memorySize"`
	Price            decimal.Decimal `json:"price"`
	Quantity         int64           `json:"quantity"`
	StockValue       decimal.Decimal `json:"stockValue"`
}
