package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobmarket/internal/services"
)

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// @Summary      Marketplace summary
// @Description  User counts per role, job counts per status, application totals
// @Tags         Reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  services.SummaryReport
// @Router       /reports/summary [get]
func (h *ReportHandler) Summary(c *gin.Context) {
	report, err := h.reportService.Summary()
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
