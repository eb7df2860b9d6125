package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/messdesk/internal/pkg/apperrors"
)

// ParseIDParam reads a positive integer path parameter
func ParseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.Validation("%s must be a positive integer", name)
	}
	return id, nil
}

// ParseOptionalIDQuery reads a positive integer query parameter; a missing parameter yields nil
func ParseOptionalIDQuery(c *gin.Context, name string) (*int64, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, apperrors.Validation("%s must be a positive integer", name)
	}
	return &id, nil
}
