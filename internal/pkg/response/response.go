// internal/pkg/response/response.go
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform success/failure shape returned by every endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// OK writes a 200 success envelope
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Created writes a 201 success envelope
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// Error writes a failure envelope with the given status
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Success: false, Message: message})
}

// BadRequest writes a 400 validation failure
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized writes a 401 failure
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// Forbidden writes a 403 failure
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

// NotFound writes a 404 failure
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// Conflict writes a 409 failure for invariant violations
func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

// TooManyRequests writes a 429 failure
func TooManyRequests(c *gin.Context, message string) {
	Error(c, http.StatusTooManyRequests, message)
}

// GatewayError writes a 502 failure for external dependency errors
func GatewayError(c *gin.Context, message string) {
	Error(c, http.StatusBadGateway, message)
}

// InternalError writes a 500 failure
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}
