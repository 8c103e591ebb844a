package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Success responses
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

// Error responses
func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", message)
}

func InternalServerError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message)
}

// ValidationFailed reports ozzo field errors under details.
func ValidationFailed(c *gin.Context, err error) {
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Request validation failed", fieldErrs)
		return
	}
	BadRequest(c, err.Error())
}

// =====================================================
// DOMAIN ERROR MAPPING
// =====================================================

// ErrorMapping is one row of a per-domain error table.
type ErrorMapping struct {
	Status  int
	Code    string
	Message string
}

// HandleDomainError writes the mapped response for err, or a 500 when err
// matches no entry. Returns false only when err is nil.
func HandleDomainError(c *gin.Context, err error, table map[error]ErrorMapping) bool {
	if err == nil {
		return false
	}

	for target, m := range table {
		if errors.Is(err, target) {
			ErrorResponse(c, m.Status, m.Code, m.Message)
			return true
		}
	}

	log.Error().Err(err).Str("path", c.FullPath()).Msg("[Handler] Unhandled error")
	InternalServerError(c, "Internal server error")
	return true
}
