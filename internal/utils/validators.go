package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// NotBlank 去除首尾空白后非空
func NotBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

// ContainsKeyword 忽略大小写判断 s 是否包含 keyword
func ContainsKeyword(s, keyword string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(keyword))
}

// ValidateNotBlank 供 validator 使用的 notblank 标签
func ValidateNotBlank(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return NotBlank(s)
}

// RegisterValidators 在 validator 实例上注册自定义标签
func RegisterValidators(v *validator.Validate) error {
	return v.RegisterValidation("notblank", ValidateNotBlank)
}
