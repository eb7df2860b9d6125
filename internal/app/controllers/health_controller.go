package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/messdesk/internal/app/models/dto"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthStatus is the body of the health endpoint
type HealthStatus struct {
	Status  string `json:"status" example:"ok"`
	Storage string `json:"storage" example:"postgres"`
}

// HealthController reports service health
type HealthController struct {
	store   Pinger
	storage string
}

// NewHealthController creates a new HealthController
func NewHealthController(store Pinger, storage string) *HealthController {
	return &HealthController{store: store, storage: storage}
}

// Health reports whether the store is reachable
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.APIResponse{data=HealthStatus} "Healthy"
// @Failure 503 {object} dto.APIResponse{data=HealthStatus} "Store unreachable"
// @Router /health [get]
func (h *HealthController) Health(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(pingCtx); err != nil {
		resp := dto.NewSuccessResponse(HealthStatus{Status: "unavailable", Storage: h.storage}, "store unreachable")
		resp.Success = false
		ctx.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(HealthStatus{Status: "ok", Storage: h.storage}, ""))
}
