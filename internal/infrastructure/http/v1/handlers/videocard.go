package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"gpustock/internal/core/apperror"
	"gpustock/internal/core/id"
	"gpustock/internal/domain/products/videocard"
	"gpustock/internal/infrastructure/http/v1/dto"
)

// VideocardHandler handles videocard product endpoints.
type VideocardHandler struct {
	*BaseHandler
	service *videocard.Service
}

// NewVideocardHandler creates a new videocard handler.
func NewVideocardHandler(base *BaseHandler, service *videocard.Service) *VideocardHandler {
	return &VideocardHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /videocards with the full catalog filter set.
func (h *VideocardHandler) List(c *gin.Context) {
	f := videocard.CardFilter{
		Search:  c.Query("search"),
		OrderBy: c.DefaultQuery("orderBy", "sku"),
		Limit:   h.ParseIntQuery(c, "limit", 50),
		Offset:  h.ParseIntQuery(c, "offset", 0),
	}

	var ok bool
	if f.GpuID, ok = h.idQuery(c, "gpuId"); !ok {
		return
	}
	if f.BrandSeriesID, ok = h.idQuery(c, "brandSeriesId"); !ok {
		return
	}
	if f.ManufacturerID, ok = h.idQuery(c, "manufacturerId"); !ok {
		return
	}
	if f.GpuFamilyID, ok = h.idQuery(c, "gpuFamilyId"); !ok {
		return
	}
	if f.MemoryTypeID, ok = h.idQuery(c, "memoryTypeId"); !ok {
		return
	}
	if f.PriceFrom, ok = h.decimalQuery(c, "priceFrom"); !ok {
		return
	}
	if f.PriceTo, ok = h.decimalQuery(c, "priceTo"); !ok {
		return
	}

	f.MemorySizeFrom = h.intQuery(c, "memorySizeFrom")
	f.MemorySizeTo = h.intQuery(c, "memorySizeTo")
	f.PsuFrom = h.intQuery(c, "psuFrom")
	f.PsuTo = h.intQuery(c, "psuTo")
	f.LengthTo = h.intQuery(c, "lengthTo")
	f.Illumination = h.boolQuery(c, "illumination")
	f.InStock = h.boolQuery(c, "inStock")

	result, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, card := range result.Items {
		items[i] = dto.FromVideocard(card)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /videocards/:id.
func (h *VideocardHandler) Get(c *gin.Context) {
	cardID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	card, err := h.service.GetByID(c.Request.Context(), cardID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromVideocard(card))
}

// GetBySku handles GET /videocards/by-sku/:sku.
func (h *VideocardHandler) GetBySku(c *gin.Context) {
	card, err := h.service.GetBySku(c.Request.Context(), c.Param("sku"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromVideocard(card))
}

// Create handles POST /videocards. A non-zero initial quantity is
// recorded as a supply entry attributed to the acting user.
func (h *VideocardHandler) Create(c *gin.Context) {
	var req dto.CreateVideocardRequest
	if !h.BindJSON(c, &req) {
		return
	}

	card, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Create(c.Request.Context(), card); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromVideocard(card))
}

// Update handles PUT /videocards/:id. A quantity change against the
// stored counter is recorded as a supply or writeoff entry.
func (h *VideocardHandler) Update(c *gin.Context) {
	cardID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateVideocardRequest
	if !h.BindJSON(c, &req) {
		return
	}

	card, err := h.service.GetByID(c.Request.Context(), cardID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := req.ApplyTo(card); err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Update(c.Request.Context(), card); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromVideocard(card))
}

// Delete handles DELETE /videocards/:id.
func (h *VideocardHandler) Delete(c *gin.Context) {
	cardID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), cardID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// --- query parsing helpers ---

func (h *VideocardHandler) idQuery(c *gin.Context, key string) (*id.ID, bool) {
	val := c.Query(key)
	if val == "" {
		return nil, true
	}
	parsed, err := id.Parse(val)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format").WithDetail("param", key))
		return nil, false
	}
	return &parsed, true
}

func (h *VideocardHandler) decimalQuery(c *gin.Context, key string) (*decimal.Decimal, bool) {
	val := c.Query(key)
	if val == "" {
		return nil, true
	}
	parsed, err := decimal.NewFromString(val)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid decimal value").WithDetail("param", key))
		return nil, false
	}
	return &parsed, true
}

func (h *VideocardHandler) intQuery(c *gin.Context, key string) *int {
	val := c.Query(key)
	if val == "" {
		return nil
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return nil
	}
	return &parsed
}

func (h *VideocardHandler) boolQuery(c *gin.Context, key string) *bool {
	val := c.Query(key)
	if val == "" {
		return nil
	}
	parsed := val == "true"
	return &parsed
}
