package gpufamily

import (
	"gpustock/internal/core/tx"
	"gpustock/internal/domain"
)

// Service provides business logic for the GpuFamily catalog.
type Service struct {
	*domain.CatalogService[*GpuFamily]
	repo Repository
}

// NewService creates a new GpuFamily service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*GpuFamily]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "gpufamily",
	})

	return &Service{
		CatalogService: base,
		repo:           repo,
	}
}
