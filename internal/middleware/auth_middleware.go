package middleware

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/messdesk/internal/app/models"
	"github.com/yigit/messdesk/internal/app/models/dto"
	"github.com/yigit/messdesk/internal/pkg/apperrors"
	"github.com/yigit/messdesk/internal/pkg/auth"
)

// sessionKey is the gin context key holding the caller's models.Session
const sessionKey = "session"

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// tokenFrom returns the raw token of the request. Browsers cannot set headers on websocket
// upgrades, so the token query parameter is accepted as well.
func tokenFrom(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if queryToken := c.Query("token"); queryToken != "" {
			authHeader = queryToken
		}
	}
	if authHeader == "" {
		return "", apperrors.ErrInvalidFormat
	}

	authHeader = strings.Trim(authHeader, "\"'")
	// raw JWT, as pasted into Swagger UI
	if strings.Count(authHeader, ".") == 2 && !strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader, nil
	}
	return auth.ExtractBearerToken(authHeader)
}

// deny aborts the request with an error envelope
func deny(c *gin.Context, status int, code dto.ErrorCode, kind apperrors.ErrorKind, message, details string) {
	detail := dto.NewErrorDetail(code, message).WithKind(string(kind)).WithDetails(details)
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

// JWTAuth rejects requests without a valid access token and stores the caller's session
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := tokenFrom(c)
		if err != nil {
			deny(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, apperrors.KindUnauthenticated,
				"Authentication required", "Authorization header missing or malformed")
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(raw)
		switch {
		case errors.Is(err, apperrors.ErrTokenExpired):
			deny(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, apperrors.KindUnauthenticated,
				"Authentication failed", "Token has expired")
			return
		case err != nil:
			deny(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, apperrors.KindUnauthenticated,
				"Authentication failed", "Invalid token")
			return
		}

		SetSession(c, claims.Session())
		c.Next()
	}
}

// GetSession returns the session stored by JWTAuth
func GetSession(c *gin.Context) (models.Session, bool) {
	value, exists := c.Get(sessionKey)
	if !exists {
		return models.Session{}, false
	}
	session, ok := value.(models.Session)
	return session, ok
}

// SetSession stores session on the context
func SetSession(c *gin.Context, session models.Session) {
	c.Set(sessionKey, session)
	c.Set("userID", session.UserID)
	c.Set("roleType", session.Role)
}

// RoleRequired lets the request through only for the listed roles
func (m *AuthMiddleware) RoleRequired(allowed ...models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := GetSession(c)
		if !ok {
			deny(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, apperrors.KindUnauthenticated,
				"Authentication required", "No session on request")
			return
		}
		if !slices.Contains(allowed, session.Role) {
			deny(c, http.StatusForbidden, dto.ErrorCodeForbidden, apperrors.KindPermission,
				"Access denied", "Role "+string(session.Role)+" may not perform this operation")
			return
		}
		c.Next()
	}
}
