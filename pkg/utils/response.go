package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error body shape the reference clients expect:
// a top-level "error" message plus a machine-readable code.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func SendError(c *gin.Context, statusCode int, err *AppError) {
	c.JSON(statusCode, ErrorResponse{
		Error: err.Message,
		Code:  err.Code,
	})
}

func SendValidationError(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, NewAppError(ErrCodeValidation, message))
}

func SendQuotaExceeded(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, NewAppError(ErrCodeQuotaExceeded, message))
}

func SendUnsupportedSport(c *gin.Context, sport string) {
	SendError(c, http.StatusBadRequest, NewAppError(ErrCodeUnsupportedSport, "unsupported sport: "+sport))
}

func SendInternalError(c *gin.Context, message string) {
	SendError(c, http.StatusInternalServerError, NewAppError(ErrCodeInternal, message))
}
