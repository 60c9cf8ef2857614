package shared

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent 領域事件基礎介面
type DomainEvent interface {
	EventID() string       // 事件唯一標識
	EventType() string     // 事件類型
	OccurredAt() time.Time // 發生時間
	AggregateID() string   // 聚合根 ID
}

// EventPublisher 事件發布器介面
// 介面定義在 Domain Layer（使用者），由 Infrastructure 實作
type EventPublisher interface {
	Publish(event DomainEvent) error
	PublishBatch(events []DomainEvent) error
}

// BaseEvent 事件共用欄位
//
// 具體事件嵌入 BaseEvent，只需再實作 EventType。
type BaseEvent struct {
	eventID     string
	occurredAt  time.Time
	aggregateID string
}

// NewBaseEvent 建立事件共用欄位
func NewBaseEvent(aggregateID string) BaseEvent {
	return BaseEvent{
		eventID:     uuid.NewString(),
		occurredAt:  time.Now(),
		aggregateID: aggregateID,
	}
}

// EventID 事件 ID
func (e BaseEvent) EventID() string {
	return e.eventID
}

// OccurredAt 發生時間
func (e BaseEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// AggregateID 聚合根 ID
func (e BaseEvent) AggregateID() string {
	return e.aggregateID
}
