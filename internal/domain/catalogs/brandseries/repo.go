package brandseries

import (
	"context"

	"gpustock/internal/core/id"
	"gpustock/internal/domain"
)

// Repository defines the interface for BrandSeries persistence.
type Repository interface {
	domain.CatalogRepository[*BrandSeries]

	// ListByManufacturer returns all series for a manufacturer.
	ListByManufacturer(ctx context.Context, manufacturerID id.ID) ([]*BrandSeries, error)
}
