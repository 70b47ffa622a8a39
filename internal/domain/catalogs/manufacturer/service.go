package manufacturer

import (
	"context"

	"gpustock/internal/core/tx"
	"gpustock/internal/domain"
)

// Service provides business logic for the Manufacturer catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Manufacturer]
	repo Repository
}

// NewService creates a new Manufacturer service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Manufacturer]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "manufacturer",
	})

	return &Service{
		CatalogService: base,
		repo:           repo,
	}
}

// ListCountries returns distinct countries for the filter dropdown.
func (s *Service) ListCountries(ctx context.Context) ([]string, error) {
	return s.repo.ListCountries(ctx)
}
