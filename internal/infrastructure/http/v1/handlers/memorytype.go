package handlers

import (
	"gpustock/internal/domain/catalogs/memorytype"
	"gpustock/internal/infrastructure/http/v1/dto"
)

// MemoryTypeHTTPHandler is a type alias to shorten signatures.
type MemoryTypeHTTPHandler = CatalogHandler[
	*memorytype.MemoryType,
	dto.CreateMemoryTypeRequest,
	dto.UpdateMemoryTypeRequest,
]

// NewMemoryTypeHandler creates a configured memory type handler.
func NewMemoryTypeHandler(base *BaseHandler, service *memorytype.Service) *MemoryTypeHTTPHandler {
	config := CatalogHandlerConfig[
		*memorytype.MemoryType,
		dto.CreateMemoryTypeRequest,
		dto.UpdateMemoryTypeRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "memory_type",

		MapCreateDTO: func(req dto.CreateMemoryTypeRequest) (*memorytype.MemoryType, error) {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateMemoryTypeRequest, existing *memorytype.MemoryType) (*memorytype.MemoryType, error) {
			if err := req.ApplyTo(existing); err != nil {
				return nil, err
			}
			return existing, nil
		},
		MapToDTO: func(entity *memorytype.MemoryType) any {
			return dto.FromMemoryType(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
