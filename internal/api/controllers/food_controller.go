package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"schoolmeal/internal/models/request_models"
	"schoolmeal/internal/services"
	"schoolmeal/pkg/utils"
)

type FoodController struct {
	foodService services.FoodServiceInterface
}

func NewFoodController(foodService services.FoodServiceInterface) *FoodController {
	return &FoodController{foodService: foodService}
}

// Search godoc
// @Summary Search the food catalog
// @Tags Foods
// @Produce json
// @Security BearerAuth
// @Param q query string false "Matches name or type"
// @Param type query string false "school or normal"
// @Success 200 {object} utils.APIResponse{data=[]response_models.FoodItemResponse}
// @Router /foods [get]
func (f *FoodController) Search(c *gin.Context) {
	items, err := f.foodService.Search(c.Request.Context(), c.Query("q"), c.Query("type"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, items, "Foods fetched successfully")
}

// GetByBarcode godoc
// @Summary Look up a food by barcode
// @Tags Foods
// @Produce json
// @Security BearerAuth
// @Param code path string true "Barcode"
// @Success 200 {object} utils.APIResponse{data=response_models.FoodItemResponse}
// @Failure 404 {object} utils.APIResponse
// @Router /foods/barcode/{code} [get]
func (f *FoodController) GetByBarcode(c *gin.Context) {
	item, err := f.foodService.FindByBarcode(c.Request.Context(), c.Param("code"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, item, "Food fetched successfully")
}

// Get godoc
// @Summary Get a food item
// @Tags Foods
// @Produce json
// @Security BearerAuth
// @Param id path string true "Food ID"
// @Success 200 {object} utils.APIResponse{data=response_models.FoodItemResponse}
// @Router /foods/{id} [get]
func (f *FoodController) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	item, err := f.foodService.Get(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, item, "Food fetched successfully")
}

// Create godoc
// @Summary Add a food item
// @Description School items may only be added by cooks and admins
// @Tags Foods
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.FoodItemRequest true "Food payload"
// @Success 200 {object} utils.APIResponse{data=response_models.FoodItemResponse}
// @Router /foods [post]
func (f *FoodController) Create(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req request_models.FoodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	item, err := f.foodService.Create(c.Request.Context(), actor, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, item, "Food created successfully")
}

// Update godoc
// @Summary Update a food item
// @Tags Foods
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Food ID"
// @Param request body request_models.FoodItemRequest true "Food payload"
// @Success 200 {object} utils.APIResponse{data=response_models.FoodItemResponse}
// @Router /foods/{id} [put]
func (f *FoodController) Update(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req request_models.FoodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	item, err := f.foodService.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, item, "Food updated successfully")
}

// Delete godoc
// @Summary Delete a food item
// @Tags Foods
// @Security BearerAuth
// @Param id path string true "Food ID"
// @Success 200 {object} utils.APIResponse
// @Router /foods/{id} [delete]
func (f *FoodController) Delete(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := f.foodService.Delete(c.Request.Context(), actor, id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Food deleted successfully")
}
