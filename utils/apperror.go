package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorCode classifies a domain failure so the HTTP layer can map it to a
// status without inspecting message text.
type ErrorCode string

const (
	CodeNotFound          ErrorCode = "notFound"
	CodeUnauthorized      ErrorCode = "unauthorized"
	CodeForbidden         ErrorCode = "forbidden"
	CodeInvalidTransition ErrorCode = "invalidTransition"
	CodeInvalidState      ErrorCode = "invalidState"
	CodeSlotConflict      ErrorCode = "slotConflict"
	CodeValidation        ErrorCode = "validationError"
	CodeInternal          ErrorCode = "internalError"
)

// AppError is a tagged domain error returned by the service layer.
type AppError struct {
	Code    ErrorCode
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAppError builds a tagged domain error.
func NewAppError(code ErrorCode, format string, args ...interface{}) error {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// AppErrorCode extracts the code from err, or CodeInternal for plain errors.
func AppErrorCode(err error) ErrorCode {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeInternal
}

// httpStatusFor maps domain error codes onto HTTP statuses.
func httpStatusFor(code ErrorCode) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeSlotConflict:
		return http.StatusConflict
	case CodeInvalidTransition, CodeInvalidState, CodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes a domain error as a JSON response with the right status.
func RespondError(c *gin.Context, err error) {
	var ae *AppError
	if errors.As(err, &ae) {
		c.JSON(httpStatusFor(ae.Code), gin.H{"error": ae.Message, "code": string(ae.Code)})
		return
	}
	GetLogger().Sugar().Errorf("unhandled service error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
