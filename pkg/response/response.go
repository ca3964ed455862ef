package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// APIResponse is the uniform JSON envelope for every endpoint. Errors carries
// per-field messages keyed by field path when the failure is user input.
type APIResponse[T any] struct {
	Status    int               `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	RequestID string            `json:"request_id"`
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Data      T                 `json:"data,omitempty"`
	Meta      any               `json:"meta,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
}

func Success[T any](ctx *gin.Context, status int, data T, message string, meta any) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	return APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
		Meta:      meta,
	}
}

func Error[T any](ctx *gin.Context, status int, message string, details map[string]string) APIResponse[T] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	return APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   message,
		Errors:    details,
	}
}

// OK writes a success envelope.
func OK[T any](ctx *gin.Context, status int, data T, message string) {
	ctx.JSON(status, Success(ctx, status, data, message, nil))
}

// OKWithMeta writes a success envelope carrying pagination or other metadata.
func OKWithMeta[T any](ctx *gin.Context, status int, data T, message string, meta any) {
	ctx.JSON(status, Success(ctx, status, data, message, meta))
}

// Fail writes an error envelope.
func Fail(ctx *gin.Context, status int, message string, details map[string]string) {
	ctx.JSON(status, Error[any](ctx, status, message, details))
}
