package manufacturer

import (
	"context"

	"gpustock/internal/domain"
)

// Repository defines the interface for Manufacturer persistence.
type Repository interface {
	domain.CatalogRepository[*Manufacturer]

	// ListCountries returns the distinct countries present in the catalog,
	// sorted alphabetically. Used for the filter dropdown.
	ListCountries(ctx context.Context) ([]string, error)
}
