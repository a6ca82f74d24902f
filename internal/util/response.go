package util

import (
	"net/http"

	"quiz_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse 错误响应结构
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse 操作确认响应结构
type MessageResponse struct {
	Message string `json:"message"`
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{Error: message})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func InternalServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// LogInternalError 记录内部错误细节，对外只返回通用消息
func LogInternalError(c *gin.Context, message string, err error) {
	logger.Log.Error(message, zap.Error(err), zap.String("path", c.FullPath()))
	InternalServerError(c, message)
}
