package reports

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"gpustock/internal/core/tx"
)

const (
	defaultTopLimit     = 5
	defaultJournalLimit = 20
)

// Service provides dashboard and export report generation.
type Service struct {
	repo      Repository
	txManager tx.ReadOnlyManager
}

// NewService creates a new reports service.
func NewService(repo Repository, txManager tx.ReadOnlyManager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// GetDashboard assembles the admin landing page blocks. All queries run in
// one read-only transaction so the blocks agree with each other.
func (s *Service) GetDashboard(ctx context.Context) (*Dashboard, error) {
	var d Dashboard

	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error

		if d.Summary, err = s.repo.GetWarehouseSummary(ctx); err != nil {
			return fmt.Errorf("warehouse summary: %w", err)
		}

		if d.ByManufacturer, err = s.repo.GetManufacturerStats(ctx); err != nil {
			return fmt.Errorf("manufacturer stats: %w", err)
		}

		if d.MostExpensive, err = s.repo.GetMostExpensiveInStock(ctx, defaultTopLimit); err != nil {
			return fmt.Errorf("most expensive: %w", err)
		}

		if d.RecentOperations, err = s.repo.GetRecentOperations(ctx, defaultJournalLimit); err != nil {
			return fmt.Errorf("recent operations: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &d, nil
}

// ExportStockReport renders the stock report as an .xlsx workbook.
func (s *Service) ExportStockReport(ctx context.Context) (*bytes.Buffer, string, error) {
	var rows []StockReportRow

	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		rows, err = s.repo.GetStockReport(ctx)
		return err
	})
	if err != nil {
		return nil, "", fmt.Errorf("stock report: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Stock"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"SKU", "Manufacturer", "GPU", "Memory (GB)", "Price", "Quantity", "Stock value"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for rowIdx, r := range rows {
		values := []any{
			r.Sku,
			r.ManufacturerName,
			r.GpuName,
			r.MemorySize,
			r.Price.InexactFloat64(),
			r.Quantity,
			r.StockValue.InexactFloat64(),
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	f.SetColWidth(sheet, "A", "C", 28)
	f.SetColWidth(sheet, "D", "G", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("write workbook: %w", err)
	}

	filename := fmt.Sprintf("stock-report-%s.xlsx", time.Now().Format("2006-01-02"))
	return buf, filename, nil
}
