package gpuseries

import (
	"context"

	"gpustock/internal/core/apperror"
	"gpustock/internal/core/id"
	"gpustock/internal/core/tx"
	"gpustock/internal/domain"
	"gpustock/internal/domain/catalogs/gpufamily"
)

// Service provides business logic for the GpuSeries catalog.
type Service struct {
	*domain.CatalogService[*GpuSeries]
	repo     Repository
	families gpufamily.Repository
}

// NewService creates a new GpuSeries service.
func NewService(repo Repository, families gpufamily.Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*GpuSeries]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "gpuseries",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		families:       families,
	}

	base.Hooks().On(domain.BeforeCreate, svc.checkFamilyExists)
	base.Hooks().On(domain.BeforeUpdate, svc.checkFamilyExists)

	return svc
}

func (s *Service) checkFamilyExists(ctx context.Context, series *GpuSeries) error {
	exists, err := s.families.Exists(ctx, series.GpuFamilyID)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.NewNotFound("gpufamily", series.GpuFamilyID.String())
	}
	return nil
}

// ListByFamily returns all series belonging to a family.
func (s *Service) ListByFamily(ctx context.Context, familyID id.ID) ([]*GpuSeries, error) {
	return s.repo.ListByFamily(ctx, familyID)
}
