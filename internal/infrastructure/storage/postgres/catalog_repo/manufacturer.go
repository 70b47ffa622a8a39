package catalog_repo

import (
	"context"
	"fmt"

	"gpustock/internal/domain/catalogs/manufacturer"
	"gpustock/internal/infrastructure/storage/postgres"
)

const manufacturerTable = "cat_manufacturers"

// ManufacturerRepo implements manufacturer.Repository.
type ManufacturerRepo struct {
	*BaseCatalogRepo[*manufacturer.Manufacturer]
}

// NewManufacturerRepo creates a new manufacturer repository.
func NewManufacturerRepo(txManager *postgres.TxManager) *ManufacturerRepo {
	return &ManufacturerRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			manufacturerTable,
			postgres.ExtractDBColumns[manufacturer.Manufacturer](),
			[]string{"name", "country"},
			func() *manufacturer.Manufacturer { return &manufacturer.Manufacturer{} },
		),
	}
}

// ListCountries returns distinct countries, sorted alphabetically.
func (r *ManufacturerRepo) ListCountries(ctx context.Context) ([]string, error) {
	q := r.Builder().
		Select("DISTINCT country").
		From(manufacturerTable).
		OrderBy("country ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.TxManager().GetQuerier(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	defer rows.Close()

	var countries []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		countries = append(countries, c)
	}

	return countries, rows.Err()
}
