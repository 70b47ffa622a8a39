package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"gpustock/internal/core/id"
	"gpustock/internal/domain/catalogs/brandseries"
	"gpustock/internal/infrastructure/storage/postgres"
)

const brandSeriesTable = "cat_brand_series"

// BrandSeriesRepo implements brandseries.Repository.
type BrandSeriesRepo struct {
	*BaseCatalogRepo[*brandseries.BrandSeries]
}

// NewBrandSeriesRepo creates a new brand series repository.
func NewBrandSeriesRepo(txManager *postgres.TxManager) *BrandSeriesRepo {
	return &BrandSeriesRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			brandSeriesTable,
			postgres.ExtractDBColumns[brandseries.BrandSeries](),
			nil,
			func() *brandseries.BrandSeries { return &brandseries.BrandSeries{} },
		),
	}
}

// ListByManufacturer returns all series for a manufacturer.
func (r *BrandSeriesRepo) ListByManufacturer(ctx context.Context, manufacturerID id.ID) ([]*brandseries.BrandSeries, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"manufacturer_id": manufacturerID}).
		OrderBy("name ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*brandseries.BrandSeries
	querier := r.TxManager().GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list by manufacturer: %w", err)
	}

	return items, nil
}
