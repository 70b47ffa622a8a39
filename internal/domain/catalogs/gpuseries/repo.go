package gpuseries

import (
	"context"

	"gpustock/internal/core/id"
	"gpustock/internal/domain"
)

// Repository defines the interface for GpuSeries persistence.
type Repository interface {
	domain.CatalogRepository[*GpuSeries]

	// ListByFamily returns all series belonging to a family.
	ListByFamily(ctx context.Context, familyID id.ID) ([]*GpuSeries, error)
}
