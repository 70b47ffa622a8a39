package catalog_repo

import (
	"gpustock/internal/domain/catalogs/gpu"
	"gpustock/internal/infrastructure/storage/postgres"
)

const gpuTable = "cat_gpus"

// GpuRepo implements gpu.Repository.
type GpuRepo struct {
	*BaseCatalogRepo[*gpu.Gpu]
}

// NewGpuRepo creates a new GPU chip repository.
func NewGpuRepo(txManager *postgres.TxManager) *GpuRepo {
	return &GpuRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			gpuTable,
			postgres.ExtractDBColumns[gpu.Gpu](),
			nil,
			func() *gpu.Gpu { return &gpu.Gpu{} },
		),
	}
}
