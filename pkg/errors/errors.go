package errors

import (
	"errors"
	"fmt"
)

// AppError 应用错误
// 设计说明：
// 1. Code是业务错误码，客户端据此判断错误类型（HTTP状态码统一为200）
// 2. Message是展示给用户的提示信息
// 3. Err是内部错误，只写日志，不返回给客户端
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较
// 预定义错误在各层被WithErr包装后，errors.Is仍能识别
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装底层错误（存储、网络等），隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// WrapCode 使用指定错误码包装
func WrapCode(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// StoreError 存储层失败
// 展示文案固定为"Error: <原因>"，与列表页的错误提示保持一致
func StoreError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeStoreError,
		Message: "Error: " + err.Error(),
		Err:     err,
	}
}

// WithErr 复制一个预定义错误并附加内部原因
func (e *AppError) WithErr(err error) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// WithMessage 复制一个预定义错误并替换提示信息
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: message,
		Err:     e.Err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 4xxxx: 客户端错误（参数错误、资源不存在）
// - 5xxxx: 服务端错误（存储异常、缓存异常）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal    = 50000 // 内部错误
	ErrCodeStoreError  = 50001 // 记录存储错误
	ErrCodeCacheError  = 50002 // 缓存/版本号存储错误
	ErrCodeUnavailable = 50003 // 存储暂不可用（熔断中）

	// 资源错误（40400-40499）
	ErrCodeNotFound     = 40400 // 资源不存在(通用)
	ErrCodeBookNotFound = 40402 // 图书不存在

	// 业务规则错误（40000-40099）
	ErrCodeBusinessError  = 40000 // 业务错误(通用)
	ErrCodeTooManyRequest = 40029 // 请求过于频繁

	// 参数错误（40900-40999）
	ErrCodeInvalidParams = 40900 // 参数错误
	ErrCodeBindError     = 40901 // 参数绑定失败
	ErrCodeMissingID     = 40902 // 缺少图书ID
)

// =========================================
// 预定义错误
// =========================================

var (
	// 系统错误
	ErrInternal    = New(ErrCodeInternal, "Internal server error")
	ErrStoreError  = New(ErrCodeStoreError, "Record store error")
	ErrCacheError  = New(ErrCodeCacheError, "Cache service error")
	ErrUnavailable = New(ErrCodeUnavailable, "Record store temporarily unavailable")

	// 资源不存在
	ErrNotFound     = New(ErrCodeNotFound, "Not found")
	ErrBookNotFound = New(ErrCodeBookNotFound, "Book not found")

	// 请求限流
	ErrTooManyRequests = New(ErrCodeTooManyRequest, "Too many requests")

	// 参数错误
	ErrInvalidParams = New(ErrCodeInvalidParams, "Invalid parameters")
	ErrBindError     = New(ErrCodeBindError, "Malformed request body")
	ErrMissingID     = New(ErrCodeMissingID, "No book ID provided")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "Internal server error")
}

// HasCode 判断错误链上是否存在指定错误码
func HasCode(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
