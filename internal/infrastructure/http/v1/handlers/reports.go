package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"gpustock/internal/domain/reports"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportsHandler handles dashboard and export endpoints.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// GetDashboard handles GET /reports/dashboard.
func (h *ReportsHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.service.GetDashboard(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dashboard)
}

// ExportStockReport handles GET /reports/stock-export - the full stock
// listing as an Excel workbook.
func (h *ReportsHandler) ExportStockReport(c *gin.Context) {
	buf, filename, err := h.service.ExportStockReport(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
