package middleware

import (
	"github.com/gin-gonic/gin"
)

// BindJSON binds the request body into obj, answering 400 when it does not validate.
// It reports whether the handler may continue.
func BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		HandleBindError(c, err)
		return false
	}
	return true
}

// BindQuery binds query parameters into obj, answering 400 when they do not validate
func BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		HandleBindError(c, err)
		return false
	}
	return true
}
