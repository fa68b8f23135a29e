package producer

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/mukesh-on-github/Zyrokart/internal/event"
	"github.com/segmentio/kafka-go"
)

// IOrderEventProducer 訂單生命週期事件發佈
// fire-and-forget: 發佈失敗只記log, 不影響請求結果
type IOrderEventProducer interface {
	Publish(ctx context.Context, evt event.Event) error
	Close() error
}

type OrderEventProducer struct {
	writer *kafka.Writer
	closed atomic.Bool
}

func NewOrderEventProducer(brokers []string, topic string) *OrderEventProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,

		// 重連機制設置
		Transport: &kafka.Transport{
			Dial: func(ctx context.Context, network string, address string) (net.Conn, error) {
				dialer := &kafka.Dialer{
					Timeout:   10 * time.Second,
					DualStack: true,
					KeepAlive: 30 * time.Second,
				}
				return dialer.DialContext(ctx, network, address)
			},
		},

		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			log.Printf("kafka producer error: "+msg, args...)
		}),

		Compression: kafka.Snappy,
	}

	return &OrderEventProducer{writer: writer}
}

func (p *OrderEventProducer) Publish(ctx context.Context, evt event.Event) error {
	if p.closed.Load() {
		return nil
	}

	value, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(evt.GetID()),
		Value: value,
	})
}

func (p *OrderEventProducer) Close() error {
	if p.closed.CompareAndSwap(false, true) {
		return p.writer.Close()
	}
	return nil
}

// NewBaseEvent 填事件共同欄位
func NewBaseEvent(eventType event.EventType, aggregateID string) event.BaseEvent {
	return event.BaseEvent{
		EventID:     uuid.New().String(),
		AggregateID: aggregateID,
		CreatedAt:   time.Now(),
		EventType:   eventType,
	}
}

// NoopOrderEventProducer kafka沒設定時用, 全部丟掉
type NoopOrderEventProducer struct{}

func (NoopOrderEventProducer) Publish(ctx context.Context, evt event.Event) error { return nil }
func (NoopOrderEventProducer) Close() error                                       { return nil }
