package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"schoolmeal/internal/services"
	"schoolmeal/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
}

func NewReportController(reportService services.ReportServiceInterface) *ReportController {
	return &ReportController{reportService: reportService}
}

// ExportYear godoc
// @Summary Export the last year of intake as CSV
// @Tags Reports
// @Produce text/csv
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {file} file
// @Failure 403 {object} utils.APIResponse
// @Router /students/{id}/export [get]
func (r *ReportController) ExportYear(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	studentID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	export, err := r.reportService.ExportYearCSV(c.Request.Context(), actor, studentID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", export.Content)
}
