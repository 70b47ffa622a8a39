package catalog_repo

import (
	"gpustock/internal/domain/catalogs/gpufamily"
	"gpustock/internal/infrastructure/storage/postgres"
)

const gpuFamilyTable = "cat_gpu_families"

// GpuFamilyRepo implements gpufamily.Repository.
type GpuFamilyRepo struct {
	*BaseCatalogRepo[*gpufamily.GpuFamily]
}

// NewGpuFamilyRepo creates a new GPU family repository.
func NewGpuFamilyRepo(txManager *postgres.TxManager) *GpuFamilyRepo {
	return &GpuFamilyRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			gpuFamilyTable,
			postgres.ExtractDBColumns[gpufamily.GpuFamily](),
			nil,
			func() *gpufamily.GpuFamily { return &gpufamily.GpuFamily{} },
		),
	}
}
