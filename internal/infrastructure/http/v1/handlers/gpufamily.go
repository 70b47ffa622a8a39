package handlers

import (
	"gpustock/internal/domain/catalogs/gpufamily"
	"gpustock/internal/infrastructure/http/v1/dto"
)

// GpuFamilyHTTPHandler is a type alias to shorten signatures.
type GpuFamilyHTTPHandler = CatalogHandler[
	*gpufamily.GpuFamily,
	dto.CreateGpuFamilyRequest,
	dto.UpdateGpuFamilyRequest,
]

// NewGpuFamilyHandler creates a configured GPU family handler.
func NewGpuFamilyHandler(base *BaseHandler, service *gpufamily.Service) *GpuFamilyHTTPHandler {
	config := CatalogHandlerConfig[
		*gpufamily.GpuFamily,
		dto.CreateGpuFamilyRequest,
		dto.UpdateGpuFamilyRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "gpu_family",

		MapCreateDTO: func(req dto.CreateGpuFamilyRequest) (*gpufamily.GpuFamily, error) {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateGpuFamilyRequest, existing *gpufamily.GpuFamily) (*gpufamily.GpuFamily, error) {
			if err := req.ApplyTo(existing); err != nil {
				return nil, err
			}
			return existing, nil
		},
		MapToDTO: func(entity *gpufamily.GpuFamily) any {
			return dto.FromGpuFamily(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
