package controllers

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"schoolmeal/internal/infra"
	"schoolmeal/pkg/utils"
)

var imageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

type EstimateController struct {
	estimator utils.NutritionEstimatorInterface
	maxBytes  int64
}

func NewEstimateController(estimator utils.NutritionEstimatorInterface, cfg *infra.Config) *EstimateController {
	maxBytes := cfg.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = 16 << 20
	}
	return &EstimateController{
		estimator: estimator,
		maxBytes:  maxBytes,
	}
}

type EstimateResponse struct {
	Provider string                   `json:"provider"`
	Found    bool                     `json:"found"`
	Estimate *utils.NutritionEstimate `json:"estimate,omitempty"`
}

// Analyze godoc
// @Summary Estimate nutrition from a meal photo
// @Description Best effort. A failed estimate is reported as found=false, never as an error.
// @Tags Estimate
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Meal photo (png, jpg, jpeg, gif, webp)"
// @Success 200 {object} utils.APIResponse{data=EstimateResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 413 {object} utils.APIResponse
// @Router /estimate [post]
func (e *EstimateController) Analyze(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Missing file")
		return
	}

	mimeType, ok := imageTypes[strings.ToLower(filepath.Ext(fileHeader.Filename))]
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Unsupported file type")
		return
	}
	if fileHeader.Size > e.maxBytes {
		utils.RespondError(c, http.StatusRequestEntityTooLarge, "File too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Could not read file")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, e.maxBytes+1))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Could not read file")
		return
	}
	if int64(len(image)) > e.maxBytes {
		utils.RespondError(c, http.StatusRequestEntityTooLarge, "File too large")
		return
	}

	estimate := e.estimator.Estimate(c.Request.Context(), image, mimeType)

	resp := EstimateResponse{
		Provider: e.estimator.Provider(),
		Found:    estimate != nil,
		Estimate: estimate,
	}
	if estimate == nil {
		utils.RespondSuccess(c, resp, "No nutrition estimate available")
		return
	}
	utils.RespondSuccess(c, resp, "Nutrition estimated")
}
