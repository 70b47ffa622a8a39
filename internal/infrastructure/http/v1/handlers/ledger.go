package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gpustock/internal/core/apperror"
	"gpustock/internal/core/id"
	"gpustock/internal/domain/ledger"
	"gpustock/internal/infrastructure/http/v1/dto"
	"gpustock/internal/infrastructure/storage/postgres"
)

// LedgerHandler handles stock ledger endpoints. Every mutation goes
// through the reconciliation engine, so the card counters stay in sync
// with the recorded operations.
type LedgerHandler struct {
	*BaseHandler
	service *ledger.Service
	audit   *postgres.AuditService
}

// NewLedgerHandler creates a new ledger handler.
func NewLedgerHandler(base *BaseHandler, service *ledger.Service, audit *postgres.AuditService) *LedgerHandler {
	return &LedgerHandler{
		BaseHandler: base,
		service:     service,
		audit:       audit,
	}
}

// List handles GET /stock-ledger.
func (h *LedgerHandler) List(c *gin.Context) {
	f := ledger.EntryFilter{
		OrderBy: c.DefaultQuery("orderBy", "-date"),
		Limit:   h.ParseIntQuery(c, "limit", 50),
		Offset:  h.ParseIntQuery(c, "offset", 0),
	}

	if val := c.Query("userId"); val != "" {
		parsed, err := id.Parse(val)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid id format").WithDetail("param", "userId"))
			return
		}
		f.UserID = &parsed
	}

	if val := c.Query("videocardId"); val != "" {
		parsed, err := id.Parse(val)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid id format").WithDetail("param", "videocardId"))
			return
		}
		f.VideocardID = &parsed
	}

	if val := c.Query("kind"); val != "" {
		kind := ledger.Kind(val)
		if !ledger.ValidKind(kind) {
			h.Error(c, apperror.NewInvalidOperationKind(val))
			return
		}
		f.Kind = &kind
	}

	if val := c.Query("dateFrom"); val != "" {
		parsed, err := time.Parse(time.RFC3339, val)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid date format").WithDetail("param", "dateFrom"))
			return
		}
		f.DateFrom = &parsed
	}

	if val := c.Query("dateTo"); val != "" {
		parsed, err := time.Parse(time.RFC3339, val)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid date format").WithDetail("param", "dateTo"))
			return
		}
		f.DateTo = &parsed
	}

	result, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, entry := range result.Items {
		items[i] = dto.FromEntry(entry)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /stock-ledger/:id.
func (h *LedgerHandler) Get(c *gin.Context) {
	entryID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	entry, err := h.service.GetByID(c.Request.Context(), entryID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromEntry(entry))
}

// Create handles POST /stock-ledger - record a stock operation.
func (h *LedgerHandler) Create(c *gin.Context) {
	var req dto.CreateEntryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entry, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Create(c.Request.Context(), entry); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromEntry(entry))
}

// Update handles PUT /stock-ledger/:id - edit a recorded operation.
// The old effect is reversed and the new one applied atomically.
func (h *LedgerHandler) Update(c *gin.Context) {
	var req dto.UpdateEntryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entry, err := req.ToEntity(c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Update(c.Request.Context(), entry); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromEntry(entry))
}

// Delete handles DELETE /stock-ledger/:id - remove an operation and
// reverse its effect on the card counter.
func (h *LedgerHandler) Delete(c *gin.Context) {
	entryID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), entryID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// History handles GET /stock-ledger/:id/history - the audit trail of a
// recorded operation, newest change first.
func (h *LedgerHandler) History(c *gin.Context) {
	entryID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	limit := h.ParseIntQuery(c, "limit", 50)

	records, err := h.audit.GetEntityHistory(c.Request.Context(), "stock_ledger", entryID, limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.AuditRecordResponse, len(records))
	for i, r := range records {
		items[i] = dto.AuditRecordResponse{
			Action:    string(r.Action),
			UserID:    r.UserID,
			UserEmail: r.UserEmail,
			Changes:   r.Changes,
			CreatedAt: r.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// MaxReturnable handles GET /stock-ledger/max-returnable - the remaining
// return allowance for a (user, card) pair.
func (h *LedgerHandler) MaxReturnable(c *gin.Context) {
	userID, err := id.Parse(c.Query("userId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format").WithDetail("param", "userId"))
		return
	}

	cardID, err := id.Parse(c.Query("videocardId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format").WithDetail("param", "videocardId"))
		return
	}

	excludeID := id.Nil()
	if val := c.Query("excludeId"); val != "" {
		excludeID, err = id.Parse(val)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid id format").WithDetail("param", "excludeId"))
			return
		}
	}

	bound, sold, err := h.service.MaxReturnable(c.Request.Context(), userID, cardID, excludeID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.MaxReturnableResponse{
		UserID:        userID.String(),
		VideocardID:   cardID.String(),
		Sold:          sold,
		MaxReturnable: bound,
	})
}
