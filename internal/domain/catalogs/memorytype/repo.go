package memorytype

import (
	"gpustock/internal/domain"
)

// Repository defines the interface for MemoryType persistence.
type Repository interface {
	domain.CatalogRepository[*MemoryType]
}
