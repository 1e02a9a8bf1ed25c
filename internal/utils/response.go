package utils

import "github.com/gin-gonic/gin"

// Error writes the API error shape: a JSON body with a single "error"
// string field and the given HTTP status code.
func Error(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{
		"error": msg,
	})
}
