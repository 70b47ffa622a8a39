package gpufamily

import (
	"gpustock/internal/domain"
)

// Repository defines the interface for GpuFamily persistence.
type Repository interface {
	domain.CatalogRepository[*GpuFamily]
}
