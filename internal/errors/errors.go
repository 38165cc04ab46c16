// internal/errors/errors.go
package errors

import (
	"errors"
	"fmt"
)

// ErrorType 定义错误类型
type ErrorType string

const (
	// 通用错误类型
	ErrorTypeValidation   ErrorType = "validation_error"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeAsset        ErrorType = "asset_error"
	ErrorTypeNotification ErrorType = "notification_error"
	ErrorTypeTimeout      ErrorType = "timeout"
)

// 细分错误代码，用于区分同一类型下的具体失败原因
const (
	CodeMissingCoverImage       = "MISSING_COVER_IMAGE"
	CodeTooManyAdditionalImages = "TOO_MANY_ADDITIONAL_IMAGES"
	CodeAssetTooLarge           = "ASSET_TOO_LARGE"
	CodeWriteFailure            = "WRITE_FAILURE"
	CodeProvisioningTimeout     = "PROVISIONING_TIMEOUT"
	CodeSendTimeout             = "SEND_TIMEOUT"
	CodeSendFailure             = "SEND_FAILURE"
)

// AppError 应用程序错误结构
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
	Code    string   // 用户友好的错误代码
	Fields  []string // 校验错误时涉及的字段名
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap 实现错误链接
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithFields 记录校验失败涉及的字段
func (e *AppError) WithFields(fields ...string) *AppError {
	e.Fields = append(e.Fields, fields...)
	return e
}

// WithCode 覆盖默认错误代码
func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

// NewAppError 创建新的 AppError
func NewAppError(errType ErrorType, message string, originalError error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     originalError,
		Code:    generateErrorCode(errType),
	}
}

// NewValidationError 创建校验错误
func NewValidationError(message string, originalError error) *AppError {
	return NewAppError(ErrorTypeValidation, message, originalError)
}

// NewNotFoundError 创建未找到错误
func NewNotFoundError(message string, originalError error) *AppError {
	return NewAppError(ErrorTypeNotFound, message, originalError)
}

// NewAssetError 创建资产存储错误
func NewAssetError(code, message string, originalError error) *AppError {
	e := NewAppError(ErrorTypeAsset, message, originalError)
	if code != "" {
		e.Code = code
	}
	return e
}

// NewNotificationError 创建通知发送错误
func NewNotificationError(code, message string, originalError error) *AppError {
	e := NewAppError(ErrorTypeNotification, message, originalError)
	if code != "" {
		e.Code = code
	}
	return e
}

// NewTimeoutError 创建超时错误
func NewTimeoutError(code, message string, originalError error) *AppError {
	e := NewAppError(ErrorTypeTimeout, message, originalError)
	if code != "" {
		e.Code = code
	}
	return e
}

// IsValidationError 检查是否为校验错误
func IsValidationError(err error) bool {
	return hasType(err, ErrorTypeValidation)
}

// IsNotFoundError 检查是否为未找到错误
func IsNotFoundError(err error) bool {
	return hasType(err, ErrorTypeNotFound)
}

// IsAssetError 检查是否为资产存储错误
func IsAssetError(err error) bool {
	return hasType(err, ErrorTypeAsset)
}

// IsNotificationError 检查是否为通知发送错误
func IsNotificationError(err error) bool {
	return hasType(err, ErrorTypeNotification)
}

// IsTimeoutError 检查是否为超时错误
func IsTimeoutError(err error) bool {
	return hasType(err, ErrorTypeTimeout)
}

// ErrorCode 提取错误代码，非 AppError 返回空串
func ErrorCode(err error) string {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError.Code
	}
	return ""
}

func hasType(err error, errType ErrorType) bool {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError.Type == errType
	}
	return false
}

// generateErrorCode 根据错误类型生成错误代码
func generateErrorCode(errType ErrorType) string {
	switch errType {
	case ErrorTypeValidation:
		return "VALIDATION_ERROR"
	case ErrorTypeNotFound:
		return "NOT_FOUND"
	case ErrorTypeAsset:
		return "ASSET_ERROR"
	case ErrorTypeNotification:
		return "NOTIFICATION_ERROR"
	case ErrorTypeTimeout:
		return "TIMEOUT"
	default:
		return "UNKNOWN_ERROR"
	}
}

// WrapError 包装现有错误
func WrapError(err error, message string, errType ErrorType) error {
	if err == nil {
		return nil
	}

	var appError *AppError
	if errors.As(err, &appError) {
		// 如果已经是 AppError，只更新消息
		return &AppError{
			Type:    appError.Type,
			Message: fmt.Sprintf("%s: %s", message, appError.Message),
			Err:     appError,
			Code:    appError.Code,
			Fields:  appError.Fields,
		}
	}

	// 否则创建新的 AppError
	return NewAppError(errType, message, err)
}
