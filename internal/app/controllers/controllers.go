// Package controllers handles HTTP request handling
package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/messdesk/internal/app/models"
	"github.com/yigit/messdesk/internal/middleware"
	"github.com/yigit/messdesk/internal/pkg/apperrors"
)

// requireSession returns the caller's session, answering 401 when JWTAuth did not run
func requireSession(ctx *gin.Context) (models.Session, bool) {
	session, ok := middleware.GetSession(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return models.Session{}, false
	}
	return session, true
}
