package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/spicetrade/backend/internal/application/report"
)

// ReportHandler handles the owner dashboard endpoint
type ReportHandler struct {
	BaseHandler
	service *reportapp.Service
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service *reportapp.Service) *ReportHandler {
	return &ReportHandler{service: service}
}

// Dashboard returns purchase trends, top suppliers, outstanding bills,
// and low stock alerts for the requested window.
func (h *ReportHandler) Dashboard(c *gin.Context) {
	var req reportapp.DashboardRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	dashboard, err := h.service.Dashboard(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dashboard)
}
