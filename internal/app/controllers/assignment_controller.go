package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/messdesk/internal/app/models/dto"
	"github.com/yigit/messdesk/internal/app/services"
	"github.com/yigit/messdesk/internal/middleware"
	"github.com/yigit/messdesk/internal/pkg/helpers"
)

// AssignmentController handles mess assignment operations
type AssignmentController struct {
	assignments *services.AssignmentService
	logger      zerolog.Logger
}

// NewAssignmentController creates a new AssignmentController
func NewAssignmentController(assignments *services.AssignmentService, logger zerolog.Logger) *AssignmentController {
	return &AssignmentController{
		assignments: assignments,
		logger:      logger,
	}
}

// AssignByCollegeID assigns one student, found by college ID, to a mess
// @Summary Assign a student by college ID
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param collegeId path string true "College ID"
// @Param request body dto.AssignMessRequest true "Target mess"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student assigned"
// @Failure 400 {object} dto.ErrorResponse "messId missing"
// @Failure 404 {object} dto.ErrorResponse "No such student"
// @Router /assignments/students/college/{collegeId} [put]
func (c *AssignmentController) AssignByCollegeID(ctx *gin.Context) {
	var req dto.AssignMessRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.assignments.AssignMessByCollegeID(ctx.Request.Context(), ctx.Param("collegeId"), req.MessID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student, "Student assigned"))
}

// AssignByUserID assigns one student to a mess
// @Summary Assign a student by user ID
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID" Format(int64) minimum(1)
// @Param request body dto.AssignMessRequest true "Target mess"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student assigned"
// @Failure 400 {object} dto.ErrorResponse "messId missing"
// @Failure 404 {object} dto.ErrorResponse "No such student"
// @Router /assignments/students/{userId} [put]
func (c *AssignmentController) AssignByUserID(ctx *gin.Context) {
	userID, err := helpers.ParseIDParam(ctx, "userId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	var req dto.AssignMessRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.assignments.AssignMessByUserID(ctx.Request.Context(), userID, req.MessID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student, "Student assigned"))
}

// AssignBatch assigns every student of a batch to a mess
// @Summary Assign a batch
// @Description Assigns every student of the batch. Students that could not be updated are listed under failed.
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param batch path string true "Batch"
// @Param request body dto.AssignMessRequest true "Target mess"
// @Success 200 {object} dto.APIResponse{data=models.BatchAssignmentResult} "Batch assigned"
// @Failure 400 {object} dto.ErrorResponse "messId missing"
// @Failure 404 {object} dto.ErrorResponse "No students in batch"
// @Router /assignments/batches/{batch} [put]
func (c *AssignmentController) AssignBatch(ctx *gin.Context) {
	var req dto.AssignMessRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	result, err := c.assignments.AssignMessByBatch(ctx.Request.Context(), ctx.Param("batch"), req.MessID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	message := "Batch assigned"
	if !result.Complete() {
		message = "Batch partially assigned"
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result, message))
}

// AssignSupervisor assigns a supervisor to a mess
// @Summary Assign a supervisor
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param supervisorId path string true "Supervisor ID"
// @Param request body dto.AssignMessRequest true "Target mess"
// @Success 200 {object} dto.APIResponse{data=models.Supervisor} "Supervisor assigned"
// @Failure 400 {object} dto.ErrorResponse "messId missing"
// @Failure 404 {object} dto.ErrorResponse "No such supervisor"
// @Router /assignments/supervisors/{supervisorId} [put]
func (c *AssignmentController) AssignSupervisor(ctx *gin.Context) {
	var req dto.AssignMessRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	supervisor, err := c.assignments.AssignSupervisorMess(ctx.Request.Context(), ctx.Param("supervisorId"), req.MessID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(supervisor, "Supervisor assigned"))
}

// ListSupervisors lists the supervisors of a mess
// @Summary Supervisors of a mess
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param messId path int true "Mess ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]models.Supervisor} "Supervisors"
// @Router /messes/{messId}/supervisors [get]
func (c *AssignmentController) ListSupervisors(ctx *gin.Context) {
	messID, err := helpers.ParseIDParam(ctx, "messId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	supervisors, err := c.assignments.ListSupervisorsForMess(ctx.Request.Context(), messID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(supervisors, ""))
}
