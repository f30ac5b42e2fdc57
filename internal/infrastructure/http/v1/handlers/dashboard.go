package handlers

import (
	"github.com/gin-gonic/gin"

	"simrs/internal/domain/reports"
)

// DashboardHandler serves the composed dashboard view.
type DashboardHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(base *BaseHandler, service *reports.Service) *DashboardHandler {
	return &DashboardHandler{BaseHandler: base, service: service}
}

// Get handles GET /dashboard.
func (h *DashboardHandler) Get(c *gin.Context) {
	h.OK(c, h.service.Dashboard(c.Request.Context()))
}
