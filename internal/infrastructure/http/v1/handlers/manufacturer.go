package handlers

import (
	"github.com/gin-gonic/gin"

	"gpustock/internal/domain/catalogs/manufacturer"
	"gpustock/internal/infrastructure/http/v1/dto"
)

// ManufacturerHandler handles manufacturer catalog endpoints.
type ManufacturerHandler struct {
	*CatalogHandler[*manufacturer.Manufacturer, dto.CreateManufacturerRequest, dto.UpdateManufacturerRequest]
	service *manufacturer.Service
}

// NewManufacturerHandler creates a configured manufacturer handler.
func NewManufacturerHandler(base *BaseHandler, service *manufacturer.Service) *ManufacturerHandler {
	config := CatalogHandlerConfig[
		*manufacturer.Manufacturer,
		dto.CreateManufacturerRequest,
		dto.UpdateManufacturerRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "manufacturer",

		MapCreateDTO: func(req dto.CreateManufacturerRequest) (*manufacturer.Manufacturer, error) {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateManufacturerRequest, existing *manufacturer.Manufacturer) (*manufacturer.Manufacturer, error) {
			if err := req.ApplyTo(existing); err != nil {
				return nil, err
			}
			return existing, nil
		},
		MapToDTO: func(entity *manufacturer.Manufacturer) any {
			return dto.FromManufacturer(entity)
		},
	}

	return &ManufacturerHandler{
		CatalogHandler: NewCatalogHandler(base, config),
		service:        service,
	}
}

// ListCountries handles GET /manufacturers/countries - distinct countries
// for the filter dropdown.
func (h *ManufacturerHandler) ListCountries(c *gin.Context) {
	countries, err := h.service.ListCountries(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": countries})
}
