package response

import "github.com/gin-gonic/gin"

// ErrorBody is the single client-facing error shape: a message, plus an
// optional map of field-level details for validation failures.
type ErrorBody struct {
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// JSON writes a success payload.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// Fail writes an error payload and stops handler processing.
func Fail(c *gin.Context, status int, message string, details map[string]string) {
	c.AbortWithStatusJSON(status, ErrorBody{Message: message, Details: details})
}
