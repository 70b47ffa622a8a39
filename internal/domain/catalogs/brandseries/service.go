package brandseries

import (
	"context"

	"gpustock/internal/core/apperror"
	"gpustock/internal/core/id"
	"gpustock/internal/core/tx"
	"gpustock/internal/domain"
	"gpustock/internal/domain/catalogs/manufacturer"
)

// Service provides business logic for the BrandSeries catalog.
type Service struct {
	*domain.CatalogService[*BrandSeries]
	repo          Repository
	manufacturers manufacturer.Repository
}

// NewService creates a new BrandSeries service.
func NewService(repo Repository, manufacturers manufacturer.Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*BrandSeries]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "brandseries",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		manufacturers:  manufacturers,
	}

	base.Hooks().On(domain.BeforeCreate, svc.checkManufacturerExists)
	base.Hooks().On(domain.BeforeUpdate, svc.checkManufacturerExists)

	return svc
}

func (s *Service) checkManufacturerExists(ctx context.Context, series *BrandSeries) error {
	exists, err := s.manufacturers.Exists(ctx, series.ManufacturerID)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.NewNotFound("manufacturer", series.ManufacturerID.String())
	}
	return nil
}

// ListByManufacturer returns all series for a manufacturer.
func (s *Service) ListByManufacturer(ctx context.Context, manufacturerID id.ID) ([]*BrandSeries, error) {
	return s.repo.ListByManufacturer(ctx, manufacturerID)
}
