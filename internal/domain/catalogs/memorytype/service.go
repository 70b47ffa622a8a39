package memorytype

import (
	"gpustock/internal/core/tx"
	"gpustock/internal/domain"
)

// Service provides business logic for the MemoryType catalog.
type Service struct {
	*domain.CatalogService[*MemoryType]
	repo Repository
}

// NewService creates a new MemoryType service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*MemoryType]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "memorytype",
	})

	return &Service{
		CatalogService: base,
		repo:           repo,
	}
}
