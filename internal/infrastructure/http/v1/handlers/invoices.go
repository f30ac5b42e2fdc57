package handlers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"simrs/internal/core/apperror"
	"simrs/internal/domain/billing"
	"simrs/internal/infrastructure/http/v1/dto"
)

// InvoicesHandler serves the billing endpoints.
type InvoicesHandler struct {
	*BaseHandler
	service     *billing.Service
	warnCounter prometheus.Counter
}

// NewInvoicesHandler creates an invoices handler.
func NewInvoicesHandler(base *BaseHandler, service *billing.Service, warnCounter prometheus.Counter) *InvoicesHandler {
	return &InvoicesHandler{BaseHandler: base, service: service, warnCounter: warnCounter}
}

// List handles GET /invoices.
func (h *InvoicesHandler) List(c *gin.Context) {
	var filter dto.FilterRequest
	if !h.BindQuery(c, &filter) {
		return
	}
	var page dto.PaginationRequest
	if !h.BindQuery(c, &page) {
		return
	}
	page.Defaults()

	items, totalPages, err := h.service.List(c.Request.Context(), filter.ToQuery(), page.Page, page.PageSize)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(items, page.Page, page.PageSize, totalPages))
}

// Get handles GET /invoices/:id.
func (h *InvoicesHandler) Get(c *gin.Context) {
	inv, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, inv)
}

// MarkPaid handles POST /invoices/:id/pay.
// Paying an already paid invoice succeeds without change; an unknown id
// is 404.
func (h *InvoicesHandler) MarkPaid(c *gin.Context) {
	inv, warn, err := h.service.MarkPaid(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	if warn != nil && h.warnCounter != nil {
		h.warnCounter.Inc()
	}

	h.OK(c, dto.NewMutationResponse(inv, warn))
}

// Summary handles GET /invoices/summary.
func (h *InvoicesHandler) Summary(c *gin.Context) {
	h.OK(c, h.service.Summarize(c.Request.Context()))
}

// ExportCSV handles GET /invoices/export.csv.
func (h *InvoicesHandler) ExportCSV(c *gin.Context) {
	filename := fmt.Sprintf("invoices-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.service.ExportCSV(c.Request.Context(), c.Writer); err != nil {
		h.Error(c, apperror.NewInternal(err))
	}
}
