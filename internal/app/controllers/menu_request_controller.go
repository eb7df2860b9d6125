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

// MenuRequestController handles menu change requests
type MenuRequestController struct {
	requests *services.MenuRequestService
	logger   zerolog.Logger
}

// NewMenuRequestController creates a new MenuRequestController
func NewMenuRequestController(requests *services.MenuRequestService, logger zerolog.Logger) *MenuRequestController {
	return &MenuRequestController{
		requests: requests,
		logger:   logger,
	}
}

// CreateRequest files a menu change request
// @Summary Propose a menu change
// @Description Every field is mandatory. Without messId the supervisor's assigned mess is used.
// @Tags menu-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateMenuRequestRequest true "Menu change"
// @Success 201 {object} dto.APIResponse{data=models.MenuChangeRequest} "Request created"
// @Failure 400 {object} dto.ErrorResponse "Missing or malformed field"
// @Failure 403 {object} dto.ErrorResponse "Not your mess"
// @Router /menu-requests [post]
func (c *MenuRequestController) CreateRequest(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}
	var req dto.CreateMenuRequestRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	created, err := c.requests.CreateRequestAs(ctx.Request.Context(), session, services.NewMenuRequest{
		MessID:       req.MessID,
		Date:         req.Date,
		CurrentMenu:  req.CurrentMenu,
		ProposedMenu: req.ProposedMenu,
		Reason:       req.Reason,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(created, "Menu change request created"))
}

// ListRequests lists pending requests
// @Summary List menu change requests
// @Tags menu-requests
// @Produce json
// @Security BearerAuth
// @Param messId query int false "Mess ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]models.MenuChangeRequest} "Requests"
// @Failure 403 {object} dto.ErrorResponse "Not your mess"
// @Router /menu-requests [get]
func (c *MenuRequestController) ListRequests(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}
	messID, err := helpers.ParseOptionalIDQuery(ctx, "messId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	requests, err := c.requests.ListRequestsAs(ctx.Request.Context(), session, messID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(requests, ""))
}

// GetRequest returns one request
// @Summary Get a menu change request
// @Tags menu-requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.MenuChangeRequest} "Request"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Router /menu-requests/{id} [get]
func (c *MenuRequestController) GetRequest(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	req, err := c.requests.GetRequestAs(ctx.Request.Context(), session, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(req, ""))
}

// DeleteRequest withdraws or rejects a request
// @Summary Withdraw or reject a menu change request
// @Tags menu-requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Request deleted"
// @Failure 403 {object} dto.ErrorResponse "Not your mess"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Router /menu-requests/{id} [delete]
func (c *MenuRequestController) DeleteRequest(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.requests.DeleteRequestAs(ctx.Request.Context(), session, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("requestID", id).Int64("userID", session.UserID).Msg("Menu change request deleted")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Menu change request deleted"))
}
