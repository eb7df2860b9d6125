package websocket

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/yigit/messdesk/internal/app/models"
	"github.com/yigit/messdesk/internal/pkg/apperrors"
)

// MessAuthorizer decides whether a caller may watch a mess
type MessAuthorizer interface {
	AuthorizeMess(ctx context.Context, session models.Session, messID int64) error
}

// SessionFunc returns the caller identity stored on the request by the auth middleware
type SessionFunc func(c *gin.Context) (models.Session, bool)

// Handler for WebSocket connections
type Handler struct {
	hub        *Hub
	authorizer MessAuthorizer
	session    SessionFunc
	logger     zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, authorizer MessAuthorizer, session SessionFunc, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:        hub,
		authorizer: authorizer,
		session:    session,
		logger:     logger,
	}
}

// HandleConnection godoc
// @Summary Subscribe to complaint events of a mess
// @Description Upgrades the HTTP connection to a WebSocket that receives complaint_created and status_changed events for the mess
// @Tags websocket
// @Produce json
// @Security BearerAuth
// @Param messId path int true "Mess ID"
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 400 {object} dto.ErrorResponse "Invalid mess ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not allowed to watch this mess"
// @Router /ws/messes/{messId} [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	messID, err := strconv.ParseInt(c.Param("messId"), 10, 64)
	if err != nil || messID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mess ID"})
		return
	}

	session, ok := h.session(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	if err := h.authorizer.AuthorizeMess(c.Request.Context(), session, messID); err != nil {
		if errors.Is(err, apperrors.ErrPermissionDenied) {
			c.JSON(http.StatusForbidden, gin.H{"error": apperrors.PublicMessage(err)})
			return
		}
		h.logger.Error().Err(err).Int64("messID", messID).Int64("userID", session.UserID).Msg("Failed to authorize subscription")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to authorize subscription"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("messID", messID).
			Int64("userID", session.UserID).
			Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:    h.hub,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		userID: session.UserID,
		messID: messID,
		logger: h.logger,
	}
	if !h.hub.join(client) {
		conn.WriteMessage(gorilla.CloseMessage, gorilla.FormatCloseMessage(gorilla.CloseGoingAway, "shutting down"))
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
