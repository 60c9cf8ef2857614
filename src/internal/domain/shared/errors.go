package shared

import (
	"fmt"
	"sort"
	"strings"
)

// ===========================
// DomainError 結構
// ===========================

// ErrorCode 錯誤代碼類型
//
// 各 bounded context 定義自己的代碼常量，例如 member.ErrCodeMemberNotFound。
// HTTP 層依代碼映射狀態碼。
type ErrorCode string

// DomainError 領域錯誤
//
// 1. Code：結構化錯誤代碼，errors.Is 只比較 Code
// 2. Message：給使用者看的訊息
// 3. Context：除錯與日誌用的上下文
//
// 預定義錯誤是哨兵值，不可修改；WithContext 返回新實例。
type DomainError struct {
	Code    ErrorCode
	Message string
	Context map[string]interface{}
}

// NewDomainError 建立預定義錯誤
func NewDomainError(code ErrorCode, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Error 實現 error 接口
func (e *DomainError) Error() string {
	if len(e.Context) == 0 {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s (context: %s)", e.Code, e.Message, formatContext(e.Context))
}

// WithContext 添加上下文信息（返回新的錯誤實例）
//
// 使用範例：
//
//	return ErrMemberNotFound.WithContext("member_id", id.String())
func (e *DomainError) WithContext(keyValues ...interface{}) *DomainError {
	if len(keyValues)%2 != 0 {
		panic("WithContext requires even number of arguments (key-value pairs)")
	}

	ctx := make(map[string]interface{}, len(e.Context)+len(keyValues)/2)
	for k, v := range e.Context {
		ctx[k] = v
	}
	for i := 0; i < len(keyValues); i += 2 {
		key, ok := keyValues[i].(string)
		if !ok {
			panic(fmt.Sprintf("context key must be string, got %T", keyValues[i]))
		}
		ctx[key] = keyValues[i+1]
	}

	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Context: ctx,
	}
}

// Is 實現 errors.Is 接口（比較錯誤代碼）
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// formatContext 以固定鍵順序輸出上下文，日誌比對時結果穩定
func formatContext(ctx map[string]interface{}) string {
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, ctx[k]))
	}
	return strings.Join(parts, ", ")
}

// ===========================
// 共用錯誤
// ===========================

// 跨 bounded context 共用的錯誤代碼
const (
	ErrCodeRepositoryError ErrorCode = "REPOSITORY_ERROR"
	ErrCodeInvalidInput    ErrorCode = "INVALID_INPUT"
)

var (
	// ErrRepository 倉儲操作失敗（資料庫錯誤包裝）
	ErrRepository = NewDomainError(ErrCodeRepositoryError, "倉儲操作失敗")

	// ErrInvalidInput 通用輸入驗證失敗
	ErrInvalidInput = NewDomainError(ErrCodeInvalidInput, "輸入資料無效")
)
