package event

import (
	"time"

	"github.com/mukesh-on-github/Zyrokart/internal/model"
	"github.com/shopspring/decimal"
)

type EventType string

const (
	OrderCreatedEventName       EventType = "OrderCreated"
	OrderCancelledEventName     EventType = "OrderCancelled"
	OrderStatusChangedEventName EventType = "OrderStatusChanged"
)

type BaseEvent struct {
	EventID     string    `json:"eventId"`
	AggregateID string    `json:"aggregateId"`
	CreatedAt   time.Time `json:"createdAt"`
	EventType   EventType `json:"eventType"`
}

func (e *BaseEvent) GetID() string {
	return e.EventID
}

type Event interface {
	Type() EventType
	GetID() string
}

type OrderItemData struct {
	ProductID uint            `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

type OrderCreatedEvent struct {
	BaseEvent
	UserUID     string          `json:"userUid"`
	OrderNumber string          `json:"orderId"`
	Items       []OrderItemData `json:"items"`
	Total       decimal.Decimal `json:"total"`
}

func (e *OrderCreatedEvent) Type() EventType {
	return OrderCreatedEventName
}

type OrderCancelledEvent struct {
	BaseEvent
	OrderNumber string `json:"orderId"`
	Reason      string `json:"reason"`
}

func (e *OrderCancelledEvent) Type() EventType {
	return OrderCancelledEventName
}

type OrderStatusChangedEvent struct {
	BaseEvent
	OrderNumber string            `json:"orderId"`
	FromStatus  model.OrderStatus `json:"fromStatus"`
	ToStatus    model.OrderStatus `json:"toStatus"`
}

func (e *OrderStatusChangedEvent) Type() EventType {
	return OrderStatusChangedEventName
}
