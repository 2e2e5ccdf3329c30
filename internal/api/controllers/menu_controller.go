package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"schoolmeal/internal/models/request_models"
	"schoolmeal/internal/services"
	"schoolmeal/pkg/utils"
)

type MenuController struct {
	menuService services.MenuServiceInterface
}

func NewMenuController(menuService services.MenuServiceInterface) *MenuController {
	return &MenuController{menuService: menuService}
}

// TodayMenu godoc
// @Summary Today's school menu
// @Description Active items of today's slot in the two-week rotation
// @Tags Menu
// @Produce json
// @Success 200 {object} utils.APIResponse{data=response_models.TodayMenuResponse}
// @Router /menu/today [get]
func (m *MenuController) TodayMenu(c *gin.Context) {
	menu, err := m.menuService.TodayMenu(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, menu, "Menu fetched successfully")
}

// ListPacks godoc
// @Summary List menu packs
// @Tags Menu
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=[]response_models.MenuPackResponse}
// @Router /menu/packs [get]
func (m *MenuController) ListPacks(c *gin.Context) {
	packs, err := m.menuService.ListPacks(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, packs, "Menu packs fetched successfully")
}

// GetPack godoc
// @Summary Get or create the pack for a slot
// @Tags Menu
// @Produce json
// @Security BearerAuth
// @Param week path int true "Week 1-2"
// @Param day path int true "Day 1-7"
// @Success 200 {object} utils.APIResponse{data=response_models.MenuPackResponse}
// @Router /menu/packs/{week}/{day} [get]
func (m *MenuController) GetPack(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	week, day, ok := slotParams(c)
	if !ok {
		return
	}

	pack, err := m.menuService.GetOrCreatePack(c.Request.Context(), actor, week, day)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, pack, "Menu pack fetched successfully")
}

// AddEntry godoc
// @Summary Append a school item to a pack
// @Tags Menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param week path int true "Week 1-2"
// @Param day path int true "Day 1-7"
// @Param request body request_models.AddPackEntryRequest true "Entry payload"
// @Success 200 {object} utils.APIResponse{data=response_models.MenuPackResponse}
// @Router /menu/packs/{week}/{day}/entries [post]
func (m *MenuController) AddEntry(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	week, day, ok := slotParams(c)
	if !ok {
		return
	}

	var req request_models.AddPackEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	foodID, err := uuid.Parse(req.FoodID)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid food_id")
		return
	}

	pack, err := m.menuService.AddEntry(c.Request.Context(), actor, week, day, foodID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, pack, "Entry added")
}

// SetEntryActive godoc
// @Summary Toggle a pack entry
// @Tags Menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param week path int true "Week 1-2"
// @Param day path int true "Day 1-7"
// @Param entry_id path string true "Entry ID"
// @Param request body request_models.SetPackEntryActiveRequest true "Active flag"
// @Success 200 {object} utils.APIResponse{data=response_models.MenuPackResponse}
// @Router /menu/packs/{week}/{day}/entries/{entry_id} [patch]
func (m *MenuController) SetEntryActive(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	week, day, ok := slotParams(c)
	if !ok {
		return
	}
	entryID, ok := uuidParam(c, "entry_id")
	if !ok {
		return
	}

	var req request_models.SetPackEntryActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Active == nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	pack, err := m.menuService.SetEntryActive(c.Request.Context(), actor, week, day, entryID, *req.Active)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, pack, "Entry updated")
}

// RemoveEntry godoc
// @Summary Remove a pack entry
// @Tags Menu
// @Produce json
// @Security BearerAuth
// @Param week path int true "Week 1-2"
// @Param day path int true "Day 1-7"
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} utils.APIResponse{data=response_models.MenuPackResponse}
// @Router /menu/packs/{week}/{day}/entries/{entry_id} [delete]
func (m *MenuController) RemoveEntry(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	week, day, ok := slotParams(c)
	if !ok {
		return
	}
	entryID, ok := uuidParam(c, "entry_id")
	if !ok {
		return
	}

	pack, err := m.menuService.RemoveEntry(c.Request.Context(), actor, week, day, entryID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, pack, "Entry removed")
}
