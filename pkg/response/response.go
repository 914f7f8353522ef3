package response

import (
	"net/http"

	apperrors "record-system/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`            // 状态码：0表示成功，其他与HTTP状态码一致
	Message string      `json:"message"`         // 响应消息
	Data    interface{} `json:"data,omitempty"`  // 响应数据
	Error   string      `json:"error,omitempty"` // 错误详情（仅在开发环境显示）
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage 带自定义消息的成功响应
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: message,
		Data:    data,
	})
}

// Created 创建成功响应
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: message,
		Data:    data,
	})
}

// NoContent 删除成功响应（204无响应体）
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error 错误响应
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Response{
		Code:    status,
		Message: message,
	})
}

// ErrorWithDetails 带错误详情的错误响应
func ErrorWithDetails(c *gin.Context, status int, message string, err error) {
	resp := Response{
		Code:    status,
		Message: message,
	}

	// 在开发环境下显示错误详情
	if gin.Mode() == gin.DebugMode && err != nil {
		resp.Error = err.Error()
	}

	c.JSON(status, resp)
}

// BadRequest 400错误
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// NotFound 404错误
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalError 500错误
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// FromError 按错误码将业务错误翻译为HTTP响应
// 未识别的错误一律按500处理，避免内部细节外泄
func FromError(c *gin.Context, err error) {
	appErr, ok := apperrors.As(err)
	if !ok {
		InternalError(c, "internal error")
		return
	}

	switch appErr.Code {
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeReferenceNotFound:
		NotFound(c, appErr.Message)
	case apperrors.ErrCodeNotAvailable,
		apperrors.ErrCodeDuplicateID,
		apperrors.ErrCodeDuplicateEntry,
		apperrors.ErrCodeUniqueness,
		apperrors.ErrCodeValidation:
		BadRequest(c, appErr.Message)
	default:
		InternalError(c, appErr.Message)
	}
}
