package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

// RespondError maps an AppError kind to its HTTP status. Anything that is not
// an AppError is reported as a 500 without leaking internals.
func RespondError(c *gin.Context, err error) {
	if appErr, ok := AsAppError(err); ok {
		c.JSON(statusForKind(appErr.Kind), JSONResponse{
			Status:  false,
			Message: appErr.Message,
			Data:    appErr.Details,
		})
		return
	}

	ErrorLogger.Printf("Unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, JSONResponse{
		Status:  false,
		Message: "Internal server error",
	})
}

// RespondErrorCode keeps the old explicit-status form for bind failures.
func RespondErrorCode(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
	})
}

func statusForKind(kind ErrorKind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindBadRequest:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
