package handlers

import (
	"gpustock/internal/domain/catalogs/gpu"
	"gpustock/internal/infrastructure/http/v1/dto"
)

// GpuHTTPHandler is a type alias to shorten signatures.
type GpuHTTPHandler = CatalogHandler[
	*gpu.Gpu,
	dto.CreateGpuRequest,
	dto.UpdateGpuRequest,
]

// NewGpuHandler creates a configured GPU chip handler.
func NewGpuHandler(base *BaseHandler, service *gpu.Service) *GpuHTTPHandler {
	config := CatalogHandlerConfig[
		*gpu.Gpu,
		dto.CreateGpuRequest,
		dto.UpdateGpuRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "gpu",

		MapCreateDTO: func(req dto.CreateGpuRequest) (*gpu.Gpu, error) {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateGpuRequest, existing *gpu.Gpu) (*gpu.Gpu, error) {
			if err := req.ApplyTo(existing); err != nil {
				return nil, err
			}
			return existing, nil
		},
		MapToDTO: func(entity *gpu.Gpu) any {
			return dto.FromGpu(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
