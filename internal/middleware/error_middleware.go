package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/messdesk/internal/app/models/dto"
	"github.com/yigit/messdesk/internal/pkg/apperrors"
	"github.com/yigit/messdesk/internal/pkg/logger"
)

type errorMapping struct {
	status int
	code   dto.ErrorCode
}

var errorMappings = map[apperrors.ErrorKind]errorMapping{
	apperrors.KindValidation:        {http.StatusBadRequest, dto.ErrorCodeValidationFailed},
	apperrors.KindDuplicate:         {http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
	apperrors.KindNotFound:          {http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	apperrors.KindInvalidTransition: {http.StatusConflict, dto.ErrorCodeInvalidTransition},
	apperrors.KindPermission:        {http.StatusForbidden, dto.ErrorCodeForbidden},
	apperrors.KindUnauthenticated:   {http.StatusUnauthorized, dto.ErrorCodeUnauthorized},
	apperrors.KindStore:             {http.StatusInternalServerError, dto.ErrorCodeInternalServer},
}

// HandleAPIError writes the error response matching err's kind
func HandleAPIError(c *gin.Context, err error) {
	kind := apperrors.Kind(err)
	mapping := errorMappings[kind]

	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		mapping.code = dto.ErrorCodeInvalidCredentials
	case errors.Is(err, apperrors.ErrTokenExpired):
		mapping.code = dto.ErrorCodeExpiredToken
	case errors.Is(err, apperrors.ErrTokenInvalid):
		mapping.code = dto.ErrorCodeInvalidToken
	case errors.Is(err, apperrors.ErrStore):
		mapping.code = dto.ErrorCodeDatabaseError
	}

	if kind == apperrors.KindStore {
		logger.Error().
			Str("path", c.FullPath()).
			Str("error", apperrors.Diagnostic(err)).
			Msg("Request failed with store error")
	}

	detail := dto.NewErrorDetail(mapping.code, apperrors.PublicMessage(err)).WithKind(string(kind))
	c.AbortWithStatusJSON(mapping.status, dto.NewErrorResponse(detail))
}

// HandleBindError answers a request whose body or query failed binding
func HandleBindError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
}
