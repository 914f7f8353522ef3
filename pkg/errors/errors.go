package errors

import (
	"errors"
	"fmt"
)

// AppError 业务错误：携带错误码、对外消息和底层原因
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap 返回底层错误，支持errors.Is/As链
func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建业务错误
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装底层错误为业务错误
func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// As 从错误链中提取AppError
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsCode 判断错误链中是否包含指定错误码
func IsCode(err error, code string) bool {
	if appErr, ok := As(err); ok {
		return appErr.Code == code
	}
	return false
}

// 错误码定义
const (
	ErrCodeNotFound          = "NOT_FOUND"           // 目标记录不存在
	ErrCodeReferenceNotFound = "REFERENCE_NOT_FOUND" // 引用的记录不存在
	ErrCodeNotAvailable      = "NOT_AVAILABLE"       // 游戏当前不可借出
	ErrCodeDuplicateID       = "DUPLICATE_ID"        // 显式ID冲突
	ErrCodeDuplicateEntry    = "DUPLICATE_ENTRY"     // 业务层重复（点赞/评论/同作者同标题）
	ErrCodeUniqueness        = "UNIQUENESS"          // 数据库唯一约束冲突
	ErrCodeValidation        = "VALIDATION_ERROR"    // 输入校验失败
	ErrCodeInternalError     = "INTERNAL_ERROR"      // 内部错误
)
