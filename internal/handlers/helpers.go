package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/working-schedule/internal/middleware"
)

func paramUint(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// identity returns the user and project placed in the context by the auth
// middleware.
func identity(c *gin.Context) (userID, projectID uint) {
	return c.MustGet(middleware.ContextUserID).(uint),
		c.MustGet(middleware.ContextProjectID).(uint)
}
