package handler

import (
	"github.com/gin-gonic/gin"
)

// setError writes the structured {error, details?} body shared by every
// handler and stops the handler chain.
func setError(c *gin.Context, status int, message string, details ...string) {
	body := gin.H{"error": message}
	if len(details) > 0 && details[0] != "" {
		body["details"] = details[0]
	}
	c.AbortWithStatusJSON(status, body)
}
