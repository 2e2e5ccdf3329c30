package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"schoolmeal/internal/models/request_models"
	"schoolmeal/internal/services"
	"schoolmeal/pkg/utils"
)

type LedgerController struct {
	ledgerService services.LedgerServiceInterface
}

func NewLedgerController(ledgerService services.LedgerServiceInterface) *LedgerController {
	return &LedgerController{ledgerService: ledgerService}
}

// RecordIntake godoc
// @Summary Record food eaten
// @Description Append one intake event for a student. Exactly one of food_id, barcode or ad_hoc must be given.
// @Tags Ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param request body request_models.RecordIntakeRequest true "Intake payload"
// @Success 200 {object} utils.APIResponse{data=response_models.IntakeEventResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /students/{id}/intake [post]
func (l *LedgerController) RecordIntake(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	studentID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req request_models.RecordIntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	event, err := l.ledgerService.RecordIntake(c.Request.Context(), actor, studentID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, event, "Intake recorded")
}

// GetDailySummary godoc
// @Summary Daily summary
// @Description Consumed and remaining macros for one calendar day
// @Tags Ledger
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param day query string false "Day as YYYY-MM-DD, defaults to today"
// @Success 200 {object} utils.APIResponse{data=response_models.DailySummary}
// @Router /students/{id}/summary [get]
func (l *LedgerController) GetDailySummary(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	studentID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	day := l.ledgerService.Today()
	if raw := c.Query("day"); raw != "" {
		parsed, err := utils.ParseDay(raw, l.ledgerService.Location())
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid day, expected YYYY-MM-DD")
			return
		}
		day = parsed
	}

	summary, err := l.ledgerService.GetDailySummary(c.Request.Context(), actor, studentID, day)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, summary, "Daily summary fetched successfully")
}

// GetTodayLogs godoc
// @Summary Today's intake events
// @Tags Ledger
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {object} utils.APIResponse{data=[]response_models.IntakeEventResponse}
// @Router /students/{id}/logs/today [get]
func (l *LedgerController) GetTodayLogs(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	studentID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	summary, err := l.ledgerService.GetDailySummary(c.Request.Context(), actor, studentID, l.ledgerService.Today())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, summary.Events, "Logs fetched successfully")
}

// GetRangeSummary godoc
// @Summary Range summary
// @Description Per-day buckets for every day in [from, to], at most 366 days
// @Tags Ledger
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param from query string true "First day, YYYY-MM-DD"
// @Param to query string true "Last day, YYYY-MM-DD"
// @Success 200 {object} utils.APIResponse{data=response_models.RangeSummary}
// @Router /students/{id}/range [get]
func (l *LedgerController) GetRangeSummary(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	studentID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	loc := l.ledgerService.Location()
	from, err := utils.ParseDay(c.Query("from"), loc)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid from, expected YYYY-MM-DD")
		return
	}
	to, err := utils.ParseDay(c.Query("to"), loc)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid to, expected YYYY-MM-DD")
		return
	}

	summary, err := l.ledgerService.GetRangeSummary(c.Request.Context(), actor, studentID, from, to)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, summary, "Range summary fetched successfully")
}

// RecalculateTargets godoc
// @Summary Recalculate daily targets
// @Description Compute targets from demographics, or split an explicit calorie goal 20/30/50
// @Tags Ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param request body request_models.RecalculateTargetsRequest true "Demographics or calories"
// @Success 200 {object} utils.APIResponse{data=response_models.StudentResponse}
// @Router /students/{id}/targets [put]
func (l *LedgerController) RecalculateTargets(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	studentID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req request_models.RecalculateTargetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	student, err := l.ledgerService.RecalculateTargets(c.Request.Context(), actor, studentID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, student, "Targets updated")
}

// CurrentRemaining godoc
// @Summary Remaining budget for the logged-in student
// @Tags Ledger
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=response_models.RemainingResponse}
// @Router /me/remaining [get]
func (l *LedgerController) CurrentRemaining(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	remaining, err := l.ledgerService.CurrentRemaining(c.Request.Context(), actor)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, remaining, "")
}

// RefreshSession godoc
// @Summary Rebuild the remaining budget from the intake log
// @Tags Ledger
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=response_models.RemainingResponse}
// @Router /me/remaining/refresh [post]
func (l *LedgerController) RefreshSession(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	remaining, err := l.ledgerService.RefreshSession(c.Request.Context(), actor)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, remaining, "Remaining budget rebuilt")
}

// ChildrenOverview godoc
// @Summary Today's summary for each child
// @Tags Ledger
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=[]response_models.ChildOverview}
// @Router /children/overview [get]
func (l *LedgerController) ChildrenOverview(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	overview, err := l.ledgerService.ChildrenOverview(c.Request.Context(), actor)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, overview, "Children overview fetched successfully")
}
