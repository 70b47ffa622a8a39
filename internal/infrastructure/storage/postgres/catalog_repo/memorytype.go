package catalog_repo

import (
	"gpustock/internal/domain/catalogs/memorytype"
	"gpustock/internal/infrastructure/storage/postgres"
)

const memoryTypeTable = "cat_memory_types"

// MemoryTypeRepo implements memorytype.Repository.
type MemoryTypeRepo struct {
	*BaseCatalogRepo[*memorytype.MemoryType]
}

// NewMemoryTypeRepo creates a new memory type repository.
func NewMemoryTypeRepo(txManager *postgres.TxManager) *MemoryTypeRepo {
	return &MemoryTypeRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			memoryTypeTable,
			postgres.ExtractDBColumns[memorytype.MemoryType](),
			nil,
			func() *memorytype.MemoryType { return &memorytype.MemoryType{} },
		),
	}
}
