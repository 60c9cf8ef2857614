package shared

import (
	"github.com/google/uuid"
)

// ===========================
// EntityID[T] 泛型實體 ID
// ===========================

// EntityID 泛型實體 ID 值對象
//
// 泛型參數 T 是標記類型（marker type），只用於編譯時區分：
// EntityID[MemberMarker] 與 EntityID[LoanMarker] 不能互相賦值或比較。
//
// 生成方式：UUIDv7（時間有序）
// - 字串表示按字典序排序即為建立順序
// - 會員倉儲依此判斷「最後新增的會員」
//
// 使用範例：
//
//	type MemberMarker struct{}
//	type MemberID = shared.EntityID[MemberMarker]
//	id := shared.NewEntityID[MemberMarker]()
type EntityID[T any] struct {
	value uuid.UUID
}

// NewEntityID 生成新的實體 ID（UUIDv7）
//
// 同一進程內連續呼叫產生的 ID 嚴格遞增。
func NewEntityID[T any]() EntityID[T] {
	return EntityID[T]{value: uuid.Must(uuid.NewV7())}
}

// EntityIDFromString 從字串解析實體 ID
//
// 參數：
//
//	s - UUID 字串
//	errTemplate - 解析失敗時返回的錯誤（由各 bounded context 提供）
//
// 若 errTemplate 支援 WithContext，會附帶 input 與 parse_error。
func EntityIDFromString[T any](s string, errTemplate error) (EntityID[T], error) {
	id, err := uuid.Parse(s)
	if err != nil {
		if domainErr, ok := errTemplate.(interface {
			WithContext(keyValues ...interface{}) *DomainError
		}); ok {
			return EntityID[T]{}, domainErr.WithContext(
				"input", s,
				"parse_error", err.Error(),
			)
		}
		return EntityID[T]{}, errTemplate
	}
	return EntityID[T]{value: id}, nil
}

// String 轉換為字串表示（小寫 UUID）
func (e EntityID[T]) String() string {
	return e.value.String()
}

// Equals 比較兩個 EntityID 是否相等
func (e EntityID[T]) Equals(other EntityID[T]) bool {
	return e.value == other.value
}

// IsEmpty 判斷是否為空 ID（零值）
func (e EntityID[T]) IsEmpty() bool {
	return e.value == uuid.Nil
}
