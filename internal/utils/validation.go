package utils

import (
	"html"
	"regexp"
	"strings"
	"unicode"
)

var idPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// SanitizeString 清理字符串,转义 HTML 并移除控制字符
func SanitizeString(input string) string {
	sanitized := html.EscapeString(input)

	var result strings.Builder
	for _, r := range sanitized {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		result.WriteRune(r)
	}

	return result.String()
}

// ValidateResourceID 验证资源 ID 格式
// 只允许字母、数字、连字符、下划线,最大 64 字符
func ValidateResourceID(id string) error {
	if id == "" {
		return ErrEmptyID
	}
	if !idPattern.MatchString(id) {
		return ErrInvalidIDFormat
	}
	if len(id) > 64 {
		return ErrIDTooLong
	}
	return nil
}

// ValidateAccountNumber 验证账户编号格式
// 允许字母、数字、连字符,最大 64 字符
func ValidateAccountNumber(number string) error {
	if strings.TrimSpace(number) == "" {
		return ErrEmptyString
	}
	matched, _ := regexp.MatchString(`^[A-Za-z0-9-]+$`, number)
	if !matched {
		return ErrInvalidIDFormat
	}
	if len(number) > 64 {
		return ErrStringTooLong
	}
	return nil
}

// TrimAndValidate 清理并验证字符串
func TrimAndValidate(s string, maxLen int) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", ErrEmptyString
	}
	if maxLen > 0 && len(trimmed) > maxLen {
		return "", ErrStringTooLong
	}
	return SanitizeString(trimmed), nil
}

// 错误定义
var (
	ErrEmptyID         = &ValidationError{Code: "EMPTY_ID", Message: "id cannot be empty"}
	ErrInvalidIDFormat = &ValidationError{Code: "INVALID_ID_FORMAT", Message: "id contains invalid characters"}
	ErrIDTooLong       = &ValidationError{Code: "ID_TOO_LONG", Message: "id exceeds maximum length"}
	ErrEmptyString     = &ValidationError{Code: "EMPTY_STRING", Message: "string cannot be empty"}
	ErrStringTooLong   = &ValidationError{Code: "STRING_TOO_LONG", Message: "string exceeds maximum length"}
)

// ValidationError 验证错误
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
