package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"simrs/internal/domain/patient"
	"simrs/internal/infrastructure/http/v1/dto"
)

// PatientsHandler serves the patient registry endpoints.
type PatientsHandler struct {
	*BaseHandler
	service     *patient.Service
	warnCounter prometheus.Counter
}

// NewPatientsHandler creates a patients handler.
func NewPatientsHandler(base *BaseHandler, service *patient.Service, warnCounter prometheus.Counter) *PatientsHandler {
	return &PatientsHandler{BaseHandler: base, service: service, warnCounter: warnCounter}
}

// List handles GET /patients.
func (h *PatientsHandler) List(c *gin.Context) {
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

// Get handles GET /patients/:id.
func (h *PatientsHandler) Get(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, p)
}

// Create handles POST /patients.
func (h *PatientsHandler) Create(c *gin.Context) {
	var req dto.CreatePatientRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, warn, err := h.service.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.countWarning(warn)

	h.Created(c, dto.NewMutationResponse(p, warn))
}

// Update handles PUT /patients/:id.
func (h *PatientsHandler) Update(c *gin.Context) {
	var req dto.UpdatePatientRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, warn, err := h.service.Update(c.Request.Context(), c.Param("id"), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.countWarning(warn)

	h.OK(c, dto.NewMutationResponse(p, warn))
}

// Delete handles DELETE /patients/:id. Unknown ids succeed silently.
func (h *PatientsHandler) Delete(c *gin.Context) {
	warn, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.countWarning(warn)

	h.Success(c, "patient deleted", warn)
}

func (h *PatientsHandler) countWarning(warn error) {
	if warn != nil && h.warnCounter != nil {
		h.warnCounter.Inc()
	}
}
