package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"gpustock/internal/core/id"
	"gpustock/internal/domain/catalogs/gpuseries"
	"gpustock/internal/infrastructure/storage/postgres"
)

const gpuSeriesTable = "cat_gpu_series"

// GpuSeriesRepo implements gpuseries.Repository.
type GpuSeriesRepo struct {
	*BaseCatalogRepo[*gpuseries.GpuSeries]
}

// NewGpuSeriesRepo creates a new GPU series repository.
func NewGpuSeriesRepo(txManager *postgres.TxManager) *GpuSeriesRepo {
	return &GpuSeriesRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			gpuSeriesTable,
			postgres.ExtractDBColumns[gpuseries.GpuSeries](),
			nil,
			func() *gpuseries.GpuSeries { return &gpuseries.GpuSeries{} },
		),
	}
}

// ListByFamily returns all series belonging to a family.
func (r *GpuSeriesRepo) ListByFamily(ctx context.Context, familyID id.ID) ([]*gpuseries.GpuSeries, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"gpu_family_id": familyID}).
		OrderBy("name ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*gpuseries.GpuSeries
	querier := r.TxManager().GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list by family: %w", err)
	}

	return items, nil
}
