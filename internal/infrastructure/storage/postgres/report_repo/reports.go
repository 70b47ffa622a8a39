// Package report_repo provides the PostgreSQL aggregation queries behind
// the reports dashboard.
package report_repo

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"gpustock/internal/domain/reports"
	"gpustock/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txManager *postgres.TxManager
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txManager: txManager}
}

// GetWarehouseSummary returns the headline totals.
func (r *ReportRepo) GetWarehouseSummary(ctx context.Context) (reports.WarehouseSummary, error) {
	sql := `
		SELECT
			COALESCE(SUM(quantity), 0)         AS total_units,
			COALESCE(SUM(price * quantity), 0) AS total_value,
			COUNT(*)                           AS unique_models,
			COUNT(*) FILTER (WHERE quantity > 0) AS models_in_stock
		FROM videocards
	`

	var s reports.WarehouseSummary
	row := r.txManager.GetQuerier(ctx).QueryRow(ctx, sql)
	if err := row.Scan(&s.TotalUnits, &s.TotalValue, &s.UniqueModels, &s.ModelsInStock); err != nil {
		return s, fmt.Errorf("warehouse summary: %w", err)
	}

	return s, nil
}

// GetManufacturerStats aggregates stock per manufacturer.
func (r *ReportRepo) GetManufacturerStats(ctx context.Context) ([]reports.ManufacturerStat, error) {
	sql := `
		SELECT
			m.id                                 AS manufacturer_id,
			m.name                               AS manufacturer_name,
			COUNT(v.id)                          AS models,
			COALESCE(SUM(v.quantity), 0)         AS units,
			COALESCE(SUM(v.price * v.quantity), 0) AS stock_value
		FROM cat_manufacturers m
		LEFT JOIN cat_brand_series bs ON bs.manufacturer_id = m.id
		LEFT JOIN videocards v ON v.brand_series_id = bs.id
		GROUP BY m.id, m.name
		ORDER BY units DESC, m.name ASC
	`

	var stats []reports.ManufacturerStat
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &stats, sql); err != nil {
		return nil, fmt.Errorf("manufacturer stats: %w", err)
	}

	return stats, nil
}

// GetMostExpensiveInStock returns the top-priced in-stock cards.
func (r *ReportRepo) GetMostExpensiveInStock(ctx context.Context, limit int) ([]reports.ExpensiveCard, error) {
	sql := `
		SELECT id AS videocard_id, sku, price, quantity
		FROM videocards
		WHERE quantity > 0
		ORDER BY price DESC
		LIMIT $1
	`

	var cards []reports.ExpensiveCard
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &cards, sql, limit); err != nil {
		return nil, fmt.Errorf("most expensive: %w", err)
	}

	return cards, nil
}

// GetRecentOperations returns the latest ledger entries with resolved names.
func (r *ReportRepo) GetRecentOperations(ctx context.Context, limit int) ([]reports.JournalRow, error) {
	sql := `
		SELECT
			e.id       AS entry_id,
			e.date     AS date,
			e.kind     AS kind,
			e.quantity AS quantity,
			u.full_name AS user_name,
			v.sku      AS card_sku,
			v.id       AS card_id
		FROM stock_ledger e
		JOIN users u ON u.id = e.user_id
		JOIN videocards v ON v.id = e.videocard_id
		ORDER BY e.date DESC
		LIMIT $1
	`

	var rows []reports.JournalRow
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, sql, limit); err != nil {
		return nil, fmt.Errorf("recent operations: %w", err)
	}

	return rows, nil
}

// GetStockReport returns every card with catalog names resolved.
func (r *ReportRepo) GetStockReport(ctx context.Context) ([]reports.StockReportRow, error) {
	sql := `
		SELECT
			v.sku              AS sku,
			m.name             AS manufacturer_name,
			g.name             AS gpu_name,
			v.memory_size      AS memory_size,
			v.price            AS price,
			v.quantity         AS quantity,
			v.price * v.quantity AS stock_value
		FROM videocards v
		JOIN cat_brand_series bs ON bs.id = v.brand_series_id
		JOIN cat_manufacturers m ON m.id = bs.manufacturer_id
		JOIN cat_gpus g ON g.id = v.gpu_id
		ORDER BY v.sku ASC
	`

	var rows []reports.StockReportRow
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, sql); err != nil {
		return nil, fmt.Errorf("stock report: %w", err)
	}

	return rows, nil
}
