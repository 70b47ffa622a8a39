package reports

import (
	"context"
)

// Repository defines the read-only aggregation queries behind the dashboard.
type Repository interface {
	// GetWarehouseSummary returns the headline totals.
	GetWarehouseSummary(ctx context.Context) (WarehouseSummary, error)

	// GetManufacturerStats aggregates stock per manufacturer.
	GetManufacturerStats(ctx context.Context) ([]ManufacturerStat, error)

	// GetMostExpensiveInStock returns the top-priced in-stock cards.
	GetMostExpensiveInStock(ctx context.Context, limit int) ([]ExpensiveCard, error)

	// GetRecentOperations returns the latest ledger entries with
	// resolved user and card names.
	GetRecentOperations(ctx context.Context, limit int) ([]JournalRow, error)

	// GetStockReport returns every card with catalog names resolved,
	// ordered by SKU, for the Excel export.
	GetStockReport(ctx context.Context) ([]StockReportRow, error)
}
