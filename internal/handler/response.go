package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paraxels/eon-miniapp/internal/logic"
)

// Response 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
	})
}

// statusFromError 业务错误到HTTP状态码的映射（见错误分类）
func statusFromError(err error) int {
	switch {
	case errors.Is(err, logic.ErrMissingFields):
		return http.StatusBadRequest
	case errors.Is(err, logic.ErrDuplicateTransaction),
		errors.Is(err, logic.ErrActiveSeasonExists):
		return http.StatusConflict
	case errors.Is(err, logic.ErrSeasonNotFound),
		errors.Is(err, logic.ErrProfileNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
