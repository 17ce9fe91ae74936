package errors

import (
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"
)

// ServiceError 定义服务层错误
type ServiceError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// ErrorCode 定义错误码类型
type ErrorCode int

const (
	// 引用的分组、作者或帖子不存在
	ErrNotFound ErrorCode = iota + 1000
	// 可由用户修正的输入错误
	ErrValidation
	// 修改不属于自己的内容
	ErrPermission
	// 底层存储不可用，由边界层决定是否重试
	ErrStore
)

func (c ErrorCode) String() string {
	switch c {
	case ErrNotFound:
		return "not_found"
	case ErrValidation:
		return "validation"
	case ErrPermission:
		return "permission"
	case ErrStore:
		return "store"
	default:
		return fmt.Sprintf("code_%d", int(c))
	}
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Is 使 errors.Is(err, &ServiceError{Code: X}) 按错误码匹配
func (e *ServiceError) Is(target error) bool {
	t, ok := target.(*ServiceError)
	return ok && t.Code == e.Code
}

// New 创建新的服务错误
func New(code ErrorCode, message string) error {
	return &ServiceError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装已有错误
func Wrap(code ErrorCode, message string, err error) error {
	return &ServiceError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// FromStore 把 gorm 返回的错误转换为服务错误：记录不存在视为 NotFound，其他均为 Store
func FromStore(err error, message string) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return Wrap(ErrNotFound, message, err)
	}
	return Wrap(ErrStore, message, err)
}

// IsServiceError 判断是否为服务错误
func IsServiceError(err error) bool {
	var se *ServiceError
	return stderrors.As(err, &se)
}

// GetErrorCode 获取错误码，非服务错误一律视为存储错误
func GetErrorCode(err error) ErrorCode {
	var se *ServiceError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ErrStore
}

// Is 判断 err 是否携带指定错误码
func Is(err error, code ErrorCode) bool {
	return err != nil && GetErrorCode(err) == code
}
