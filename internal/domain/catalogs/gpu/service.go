package gpu

import (
	"context"

	"gpustock/internal/core/apperror"
	"gpustock/internal/core/tx"
	"gpustock/internal/domain"
	"gpustock/internal/domain/catalogs/gpuseries"
)

// Service provides business logic for the Gpu catalog.
type Service struct {
	*domain.CatalogService[*Gpu]
	repo   Repository
	series gpuseries.Repository
}

// NewService creates a new Gpu service.
func NewService(repo Repository, series gpuseries.Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Gpu]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "gpu",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		series:         series,
	}

	base.Hooks().On(domain.BeforeCreate, svc.checkSeriesExists)
	base.Hooks().On(domain.BeforeUpdate, svc.checkSeriesExists)

	return svc
}

func (s *Service) checkSeriesExists(ctx context.Context, g *Gpu) error {
	exists, err := s.series.Exists(ctx, g.GpuSeriesID)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.NewNotFound("gpuseries", g.GpuSeriesID.String())
	}
	return nil
}
