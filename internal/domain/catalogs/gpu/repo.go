package gpu

import (
	"gpustock/internal/domain"
)

// Repository defines the interface for Gpu persistence.
// Range filters (clocks, cores, release date) go through
// ListFilter.AdvancedFilters.
type Repository interface {
	domain.CatalogRepository[*Gpu]
}
