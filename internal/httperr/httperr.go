package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func ConflictStatus(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// WriteError maps a core error onto the HTTP surface without altering its
// semantics. Anything that is not a BusinessError is an infrastructure
// failure.
func WriteError(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		Internal(c, "internal_error", "Error inesperado.")
		return
	}

	switch be.Kind {
	case KindValidation, KindInvalidTransition:
		BadRequest(c, be.Code, be.Message)
	case KindNotFound:
		NotFound(c, be.Code, be.Message)
	case KindPermission:
		Forbidden(c, be.Code, be.Message)
	case KindConflict:
		ConflictStatus(c, be.Code, be.Message)
	default:
		Internal(c, be.Code, be.Message)
	}
}
