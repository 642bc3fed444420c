package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response represents a standard API response
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success sends a successful response
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error sends an error response; a non-nil cause is reported in the error field
func Error(c *gin.Context, code int, message string, causes ...error) {
	resp := Response{
		Code:    code,
		Message: message,
	}
	if err := errors.Join(causes...); err != nil {
		resp.Error = err.Error()
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(code, resp)
}

// BadRequest sends a 400 bad request response
func BadRequest(c *gin.Context, message string, causes ...error) {
	Error(c, http.StatusBadRequest, message, causes...)
}

// NotFound sends a 404 not found response
func NotFound(c *gin.Context, message string, causes ...error) {
	Error(c, http.StatusNotFound, message, causes...)
}

// TooManyRequests sends a 429 response
func TooManyRequests(c *gin.Context, message string) {
	Error(c, http.StatusTooManyRequests, message)
}

// InternalError sends a 500 internal server error response
func InternalError(c *gin.Context, message string, causes ...error) {
	Error(c, http.StatusInternalServerError, message, causes...)
}
