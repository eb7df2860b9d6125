package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/messdesk/internal/app/models"
	"github.com/yigit/messdesk/internal/app/models/dto"
	"github.com/yigit/messdesk/internal/app/services"
	"github.com/yigit/messdesk/internal/middleware"
	"github.com/yigit/messdesk/internal/pkg/apperrors"
	"github.com/yigit/messdesk/internal/pkg/helpers"
)

// ComplaintController handles complaint operations
type ComplaintController struct {
	complaints *services.ComplaintService
	logger     zerolog.Logger
}

// NewComplaintController creates a new ComplaintController
func NewComplaintController(complaints *services.ComplaintService, logger zerolog.Logger) *ComplaintController {
	return &ComplaintController{
		complaints: complaints,
		logger:     logger,
	}
}

// CreateComplaint files a complaint
// @Summary File a complaint
// @Description Files a complaint in status New against the student's assigned mess. A messId naming another mess is refused with 403. A mess without supervisors still accepts the complaint and the route reports routable=false.
// @Tags complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateComplaintRequest true "Complaint"
// @Success 201 {object} dto.APIResponse{data=dto.CreateComplaintResponse} "Complaint filed"
// @Failure 400 {object} dto.ErrorResponse "Missing category or description, or student not assigned to a mess"
// @Failure 403 {object} dto.ErrorResponse "Not a student, or messId differs from the assigned mess"
// @Router /complaints [post]
func (c *ComplaintController) CreateComplaint(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}
	var req dto.CreateComplaintRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	complaint, route, err := c.complaints.CreateComplaintAs(ctx.Request.Context(), session, services.NewComplaint{
		MessID:      req.MessID,
		Category:    req.Category,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.CreateComplaintResponse{
		Complaint: complaint,
		Route:     route,
	}, "Complaint filed"))
}

// GetComplaint returns one complaint
// @Summary Get a complaint
// @Tags complaints
// @Produce json
// @Security BearerAuth
// @Param id path int true "Complaint ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Complaint} "Complaint"
// @Failure 403 {object} dto.ErrorResponse "Not in your scope"
// @Failure 404 {object} dto.ErrorResponse "Complaint not found"
// @Router /complaints/{id} [get]
func (c *ComplaintController) GetComplaint(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	complaint, err := c.complaints.GetComplaintAs(ctx.Request.Context(), session, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(complaint, ""))
}

// GetRoute returns who may act on a complaint
// @Summary Route of a complaint
// @Tags complaints
// @Produce json
// @Security BearerAuth
// @Param id path int true "Complaint ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Route} "Route"
// @Failure 404 {object} dto.ErrorResponse "Complaint not found"
// @Router /complaints/{id}/route [get]
func (c *ComplaintController) GetRoute(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	route, err := c.complaints.RouteFor(ctx.Request.Context(), session, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(route, ""))
}

// ListMine lists the caller's own complaints
// @Summary My complaints
// @Tags complaints
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Complaint} "Complaints, newest first"
// @Router /complaints/mine [get]
func (c *ComplaintController) ListMine(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	complaints, err := c.complaints.ListComplaintsForStudent(ctx.Request.Context(), session.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(complaints, ""))
}

// ListForMess returns the worklist of a mess
// @Summary Complaints of a mess
// @Tags complaints
// @Produce json
// @Security BearerAuth
// @Param messId path int true "Mess ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]models.Complaint} "Complaints"
// @Failure 403 {object} dto.ErrorResponse "Not in your scope"
// @Router /messes/{messId}/complaints [get]
func (c *ComplaintController) ListForMess(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}
	messID, err := helpers.ParseIDParam(ctx, "messId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	seq, err := c.complaints.ListComplaintsForMessAs(ctx.Request.Context(), session, messID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	complaints := []models.Complaint{}
	for complaint, err := range seq {
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		complaints = append(complaints, complaint)
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(complaints, ""))
}

// UpdateStatus moves a complaint along the status graph
// @Summary Change complaint status
// @Description Moves a complaint to a new status. The move must be an edge of New->Forwarded, Forwarded->Reraised, Reraised->Forwarded or any open status->Resolved, and the caller's role must be allowed to take it. With expectedStatus the change only applies if the complaint is still in that status.
// @Tags complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Complaint ID" Format(int64) minimum(1)
// @Param request body dto.TransitionRequest true "Target status"
// @Success 200 {object} dto.APIResponse{data=models.Complaint} "Status changed"
// @Failure 400 {object} dto.ErrorResponse "Unknown status"
// @Failure 403 {object} dto.ErrorResponse "Role may not take this transition"
// @Failure 404 {object} dto.ErrorResponse "Complaint not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid transition"
// @Router /complaints/{id}/status [patch]
func (c *ComplaintController) UpdateStatus(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	var req dto.TransitionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	target, err := models.ParseComplaintStatus(req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.Validation("%s", err.Error()))
		return
	}
	var expected *models.ComplaintStatus
	if req.ExpectedStatus != "" {
		status, err := models.ParseComplaintStatus(req.ExpectedStatus)
		if err != nil {
			middleware.HandleAPIError(ctx, apperrors.Validation("%s", err.Error()))
			return
		}
		expected = &status
	}

	complaint, err := c.complaints.TransitionAs(ctx.Request.Context(), session, id, target, expected)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(complaint, "Status changed"))
}
