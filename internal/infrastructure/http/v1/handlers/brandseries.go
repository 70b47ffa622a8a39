package handlers

import (
	"github.com/gin-gonic/gin"

	"gpustock/internal/core/apperror"
	"gpustock/internal/core/id"
	"gpustock/internal/domain/catalogs/brandseries"
	"gpustock/internal/infrastructure/http/v1/dto"
)

// BrandSeriesHandler handles brand series catalog endpoints.
type BrandSeriesHandler struct {
	*CatalogHandler[*brandseries.BrandSeries, dto.CreateBrandSeriesRequest, dto.UpdateBrandSeriesRequest]
	service *brandseries.Service
}

// NewBrandSeriesHandler creates a configured brand series handler.
func NewBrandSeriesHandler(base *BaseHandler, service *brandseries.Service) *BrandSeriesHandler {
	config := CatalogHandlerConfig[
		*brandseries.BrandSeries,
		dto.CreateBrandSeriesRequest,
		dto.UpdateBrandSeriesRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "brand_series",

		MapCreateDTO: func(req dto.CreateBrandSeriesRequest) (*brandseries.BrandSeries, error) {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateBrandSeriesRequest, existing *brandseries.BrandSeries) (*brandseries.BrandSeries, error) {
			if err := req.ApplyTo(existing); err != nil {
				return nil, err
			}
			return existing, nil
		},
		MapToDTO: func(entity *brandseries.BrandSeries) any {
			return dto.FromBrandSeries(entity)
		},
	}

	return &BrandSeriesHandler{
		CatalogHandler: NewCatalogHandler(base, config),
		service:        service,
	}
}

// ListByManufacturer handles GET /brand-series/by-manufacturer/:manufacturerId.
func (h *BrandSeriesHandler) ListByManufacturer(c *gin.Context) {
	manufacturerID, err := id.Parse(c.Param("manufacturerId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid manufacturerId format"))
		return
	}

	series, err := h.service.ListByManufacturer(c.Request.Context(), manufacturerID)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]*dto.BrandSeriesResponse, len(series))
	for i, s := range series {
		items[i] = dto.FromBrandSeries(s)
	}

	h.OK(c, gin.H{"items": items})
}
