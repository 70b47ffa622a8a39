package handlers

import (
	"github.com/gin-gonic/gin"

	"gpustock/internal/core/apperror"
	"gpustock/internal/core/id"
	"gpustock/internal/domain/catalogs/gpuseries"
	"gpustock/internal/infrastructure/http/v1/dto"
)

// GpuSeriesHandler handles GPU series catalog endpoints.
type GpuSeriesHandler struct {
	*CatalogHandler[*gpuseries.GpuSeries, dto.CreateGpuSeriesRequest, dto.UpdateGpuSeriesRequest]
	service *gpuseries.Service
}

// NewGpuSeriesHandler creates a configured GPU series handler.
func NewGpuSeriesHandler(base *BaseHandler, service *gpuseries.Service) *GpuSeriesHandler {
	config := CatalogHandlerConfig[
		*gpuseries.GpuSeries,
		dto.CreateGpuSeriesRequest,
		dto.UpdateGpuSeriesRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "gpu_series",

		MapCreateDTO: func(req dto.CreateGpuSeriesRequest) (*gpuseries.GpuSeries, error) {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateGpuSeriesRequest, existing *gpuseries.GpuSeries) (*gpuseries.GpuSeries, error) {
			if err := req.ApplyTo(existing); err != nil {
				return nil, err
			}
			return existing, nil
		},
		MapToDTO: func(entity *gpuseries.GpuSeries) any {
			return dto.FromGpuSeries(entity)
		},
	}

	return &GpuSeriesHandler{
		CatalogHandler: NewCatalogHandler(base, config),
		service:        service,
	}
}

// ListByFamily handles GET /gpu-series/by-family/:familyId.
func (h *GpuSeriesHandler) ListByFamily(c *gin.Context) {
	familyID, err := id.Parse(c.Param("familyId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid familyId format"))
		return
	}

	series, err := h.service.ListByFamily(c.Request.Context(), familyID)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]*dto.GpuSeriesResponse, len(series))
	for i, s := range series {
		items[i] = dto.FromGpuSeries(s)
	}

	h.OK(c, gin.H{"items": items})
}
