package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"simrs/internal/core/apperror"
	"simrs/internal/domain/inventory"
	"simrs/internal/infrastructure/http/v1/dto"
)

// InventoryHandler serves the pharmacy stock endpoints.
type InventoryHandler struct {
	*BaseHandler
	service     *inventory.Service
	warnCounter prometheus.Counter
}

// NewInventoryHandler creates an inventory handler.
func NewInventoryHandler(base *BaseHandler, service *inventory.Service, warnCounter prometheus.Counter) *InventoryHandler {
	return &InventoryHandler{BaseHandler: base, service: service, warnCounter: warnCounter}
}

// List handles GET /inventory.
func (h *InventoryHandler) List(c *gin.Context) {
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

// SubmitOrder handles POST /inventory/orders.
// An empty draft is rejected with EMPTY_OPERATION and no state change.
func (h *InventoryHandler) SubmitOrder(c *gin.Context) {
	var req dto.SubmitOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	order := req.ToOrder()
	items, warn, err := h.service.SubmitOrder(c.Request.Context(), order)
	if err != nil {
		h.Error(c, err)
		return
	}
	if warn != nil && h.warnCounter != nil {
		h.warnCounter.Inc()
	}

	resp := dto.SubmitOrderResponse{
		Items: items,
		Totals: dto.OrderTotalsResponse{
			Subtotal: order.Subtotal,
			VAT:      order.VAT,
			Total:    order.Total,
		},
	}
	if warn != nil {
		if appErr, ok := apperror.AsAppError(warn); ok {
			resp.Warning = appErr.Message
		} else {
			resp.Warning = warn.Error()
		}
	}
	h.OK(c, resp)
}
