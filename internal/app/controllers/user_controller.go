package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	appauth "github.com/yigit/messdesk/internal/app/auth"
	"github.com/yigit/messdesk/internal/app/models"
	"github.com/yigit/messdesk/internal/app/models/dto"
	"github.com/yigit/messdesk/internal/app/services"
	"github.com/yigit/messdesk/internal/middleware"
	"github.com/yigit/messdesk/internal/pkg/apperrors"
	"github.com/yigit/messdesk/internal/pkg/helpers"
)

// UserController handles directory operations
type UserController struct {
	directory *services.DirectoryService
	logger    zerolog.Logger
}

// NewUserController creates a new user controller
func NewUserController(directory *services.DirectoryService, logger zerolog.Logger) *UserController {
	return &UserController{
		directory: directory,
		logger:    logger,
	}
}

// CreateUser creates an account of any role
// @Summary Create a user
// @Description Creates a user with its role profile. Student-type roles need name and collegeId, supervisors need name and supervisorId.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateUserRequest true "Account"
// @Success 201 {object} dto.APIResponse{data=dto.CreateUserResponse} "User created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Duplicate email, college ID or supervisor ID"
// @Router /users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	id, err := c.directory.CreateUser(ctx.Request.Context(), services.NewAccount{
		Role:         models.RoleType(req.Role),
		Email:        req.Email,
		Password:     req.Password,
		Name:         req.Name,
		MobileNo:     req.MobileNo,
		CollegeID:    req.CollegeID,
		Gender:       req.Gender,
		Batch:        req.Batch,
		SupervisorID: req.SupervisorID,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.CreateUserResponse{UserID: id}, "User created"))
}

// GetUser returns a user with its profile
// @Summary Get user by ID
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Profile} "Profile"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	profile, err := c.directory.GetProfile(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile, ""))
}

// UpdateProfile merges the supplied fields into a profile
// @Summary Update a profile
// @Description Updates name, mobile number, gender or batch. At least one field must be supplied. Users may only update their own profile unless they are admins.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID" Format(int64) minimum(1)
// @Param request body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Profile} "Updated profile"
// @Failure 400 {object} dto.ErrorResponse "No field supplied"
// @Failure 403 {object} dto.ErrorResponse "Not your profile"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id}/profile [patch]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := appauth.AuthorizeProfile(session, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateProfileRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	profile, err := c.directory.UpdateProfile(ctx.Request.Context(), id, models.ProfileUpdate{
		Name:     req.Name,
		MobileNo: req.MobileNo,
		Gender:   req.Gender,
		Batch:    req.Batch,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile, "Profile updated"))
}

// DeleteUser removes a user and its profile
// @Summary Delete a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.DeleteResult} "Deleted"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	result, err := c.directory.DeleteUser(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", id).Msg("User deleted")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result, "User deleted"))
}

// Lookup finds users by exactly one key
// @Summary Look up users
// @Description Finds users by userId, email, collegeId, batch or gender. Exactly one key must be given. No match is not an error.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param userId query int false "User ID"
// @Param email query string false "Email"
// @Param collegeId query string false "College ID"
// @Param batch query string false "Batch"
// @Param gender query string false "Gender"
// @Success 200 {object} dto.APIResponse{data=dto.LookupResponse} "Lookup result"
// @Failure 400 {object} dto.ErrorResponse "No key or more than one key"
// @Router /users/lookup [get]
func (c *UserController) Lookup(ctx *gin.Context) {
	keys := []string{"userId", "email", "collegeId", "batch", "gender"}
	var key, value string
	for _, k := range keys {
		if v, ok := ctx.GetQuery(k); ok {
			if key != "" {
				middleware.HandleAPIError(ctx, apperrors.Validation("only one of userId, email, collegeId, batch or gender may be given"))
				return
			}
			key, value = k, v
		}
	}

	var (
		result *services.LookupResult
		err    error
	)
	reqCtx := ctx.Request.Context()
	switch key {
	case "userId":
		id, perr := strconv.ParseInt(value, 10, 64)
		if perr != nil {
			middleware.HandleAPIError(ctx, apperrors.Validation("userId must be a positive integer"))
			return
		}
		result, err = c.directory.LookupByUserID(reqCtx, id)
	case "email":
		result, err = c.directory.LookupByEmail(reqCtx, value)
	case "collegeId":
		result, err = c.directory.LookupByCollegeID(reqCtx, value)
	case "batch":
		result, err = c.directory.LookupByBatch(reqCtx, value)
	case "gender":
		result, err = c.directory.LookupByGender(reqCtx, value)
	default:
		err = apperrors.Validation("one of userId, email, collegeId, batch or gender is required")
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.LookupResponse{
		Found:    result.Found,
		Count:    len(result.Profiles),
		Profiles: result.Profiles,
	}, ""))
}
