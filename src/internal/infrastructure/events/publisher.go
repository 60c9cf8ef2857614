package events

import (
	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
	"github.com/sirupsen/logrus"
)

// LogPublisher 將領域事件寫入日誌的事件發布器
//
// 單一使用者的桌面帳本沒有事件訂閱者；事件只作為稽核紀錄。
type LogPublisher struct {
	log logrus.FieldLogger
}

// NewLogPublisher 創建事件發布器
func NewLogPublisher(log logrus.FieldLogger) shared.EventPublisher {
	return &LogPublisher{log: log}
}

// Publish 發布單一事件
func (p *LogPublisher) Publish(event shared.DomainEvent) error {
	if event == nil {
		return nil
	}
	p.log.WithFields(logrus.Fields{
		"event_id":     event.EventID(),
		"event_type":   event.EventType(),
		"aggregate_id": event.AggregateID(),
		"occurred_at":  event.OccurredAt(),
	}).Info("domain event")
	return nil
}

// PublishBatch 依序發布多個事件
func (p *LogPublisher) PublishBatch(events []shared.DomainEvent) error {
	for _, event := range events {
		if err := p.Publish(event); err != nil {
			return err
		}
	}
	return nil
}
