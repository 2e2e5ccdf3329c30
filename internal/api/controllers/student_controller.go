package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"schoolmeal/internal/models/request_models"
	"schoolmeal/internal/services"
	"schoolmeal/pkg/utils"
)

type StudentController struct {
	studentService services.StudentServiceInterface
}

func NewStudentController(studentService services.StudentServiceInterface) *StudentController {
	return &StudentController{studentService: studentService}
}

// AddChild godoc
// @Summary Add a child
// @Description Create a student account owned by the calling parent
// @Tags Students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.AddChildRequest true "Child payload"
// @Success 200 {object} utils.APIResponse{data=response_models.StudentResponse}
// @Failure 409 {object} utils.APIResponse
// @Router /children [post]
func (s *StudentController) AddChild(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req request_models.AddChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	student, err := s.studentService.AddChild(c.Request.Context(), actor, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, student, "Child added successfully")
}

// ListChildren godoc
// @Summary List own children
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=[]response_models.StudentResponse}
// @Router /children [get]
func (s *StudentController) ListChildren(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	children, err := s.studentService.ListChildren(c.Request.Context(), actor)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, children, "Children fetched successfully")
}

// GetStudent godoc
// @Summary Get a student profile
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {object} utils.APIResponse{data=response_models.StudentResponse}
// @Router /students/{id} [get]
func (s *StudentController) GetStudent(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	studentID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	student, err := s.studentService.GetStudent(c.Request.Context(), actor, studentID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, student, "Student fetched successfully")
}
