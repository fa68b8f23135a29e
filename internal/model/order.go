package model

import (
	"fmt"
	"time"

	"github.com/mukesh-on-github/Zyrokart/internal/constants"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func IsValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "cod"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodUPI    PaymentMethod = "upi"
	PaymentMethodWallet PaymentMethod = "wallet"
)

func IsValidPaymentMethod(m string) bool {
	switch PaymentMethod(m) {
	case PaymentMethodCOD, PaymentMethodCard, PaymentMethodUPI, PaymentMethodWallet:
		return true
	default:
		return false
	}
}

// 出貨地址快照, 下單時從request複製
type ShippingAddress struct {
	FullName     string `gorm:"not null;type:varchar(100)" json:"fullName"`
	Phone        string `gorm:"not null;type:varchar(20)" json:"phone"`
	AddressLine1 string `gorm:"not null;type:varchar(255)" json:"addressLine1"`
	AddressLine2 string `gorm:"type:varchar(255)" json:"addressLine2"`
	City         string `gorm:"not null;type:varchar(100)" json:"city"`
	State        string `gorm:"not null;type:varchar(100)" json:"state"`
	ZipCode      string `gorm:"not null;type:varchar(20)" json:"zipCode"`
	Country      string `gorm:"not null;type:varchar(100);default:'India'" json:"country"`
}

// 訂單聚合
// 訂單階段 OrderItems不會變動
// 訂單階段 只有status與物流/取消相關欄位會變動, 永遠不刪除
type Order struct {
	OrderID     uint   `gorm:"primaryKey" json:"-"`
	OrderNumber string `gorm:"not null;type:varchar(20);uniqueIndex" json:"orderId"`
	UserUID     string `gorm:"not null;type:varchar(128);index" json:"userUid"`

	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shippingAddress"`
	PaymentMethod   PaymentMethod   `gorm:"not null;type:varchar(20)" json:"paymentMethod"`
	IsPaid          bool            `gorm:"not null;default:false" json:"isPaid"`
	Status          OrderStatus     `gorm:"not null;type:varchar(20);default:'pending';index" json:"orderStatus"`

	Subtotal    decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"subtotal"`
	ShippingFee decimal.Decimal `gorm:"not null;type:decimal(10,2);default:0" json:"shippingFee"`
	Tax         decimal.Decimal `gorm:"not null;type:decimal(10,2);default:0" json:"tax"`
	Discount    decimal.Decimal `gorm:"not null;type:decimal(10,2);default:0" json:"discount"`
	Total       decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"total"`

	TrackingNumber     string     `gorm:"type:varchar(50)" json:"trackingNumber,omitempty"`
	Carrier            string     `gorm:"type:varchar(100);default:'Zyro Express'" json:"carrier"`
	EstimatedDelivery  *time.Time `json:"estimatedDelivery,omitempty"`
	DeliveredAt        *time.Time `json:"deliveredAt,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CancellationReason string     `gorm:"type:varchar(255)" json:"cancellationReason,omitempty"`

	// 供應商代發子紀錄
	SupplierOrderID string `gorm:"type:varchar(100)" json:"supplierOrderId,omitempty"`
	SupplierStatus  string `gorm:"type:varchar(50)" json:"supplierStatus,omitempty"`

	Notes string `gorm:"type:text" json:"notes,omitempty"`
	BaseModel
}

type OrderItem struct {
	OrderItemID uint `gorm:"primaryKey" json:"-"`
	OrderID     uint `gorm:"not null;index" json:"-"`
	ProductID   uint `gorm:"not null" json:"productId"`
	// 下單當下的商品快照, 與商品後續異動脫鉤
	Name     string          `gorm:"not null;type:varchar(255)" json:"name"`
	Price    decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
	Quantity int             `gorm:"not null;check:quantity >= 1" json:"quantity"`
	Image    string          `gorm:"type:varchar(500)" json:"image"`
}

// BeforeCreate 從sequence取號產生訂單編號
// 用sequence而不是count(*), 避免並發下重號
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.OrderNumber != "" {
		return nil
	}
	var n int64
	if err := tx.Raw("SELECT nextval('order_number_seq')").Scan(&n).Error; err != nil {
		return err
	}
	o.OrderNumber = fmt.Sprintf("%s%06d", constants.OrderNumberPrefix, n)
	return nil
}

// CanCancel 使用者取消的guard
// shipped/delivered/cancelled不可取消, 其餘狀態皆可
func (o *Order) CanCancel() bool {
	switch o.Status {
	case OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return false
	default:
		return true
	}
}

type TrackingStep struct {
	Status    string     `json:"status"`
	Date      *time.Time `json:"date"`
	Completed bool       `json:"completed"`
}

type TrackingInfo struct {
	OrderNumber       string         `json:"orderId"`
	Status            OrderStatus    `json:"status"`
	Timeline          []TrackingStep `json:"timeline"`
	Carrier           string         `json:"carrier"`
	TrackingNumber    string         `json:"trackingNumber,omitempty"`
	EstimatedDelivery *time.Time     `json:"estimatedDelivery,omitempty"`
}

// Tracking 組物流時間軸
// 各步驟完成與否由相關欄位是否存在推斷, 沒有逐步的時間戳ledger
func (o *Order) Tracking() TrackingInfo {
	createdAt := o.CreatedAt
	var shippedDate *time.Time
	if o.TrackingNumber != "" {
		updated := o.UpdatedAt
		shippedDate = &updated
	}

	carrier := o.Carrier
	if carrier == "" {
		carrier = constants.DefaultCarrier
	}

	return TrackingInfo{
		OrderNumber: o.OrderNumber,
		Status:      o.Status,
		Timeline: []TrackingStep{
			{Status: "Placed", Date: &createdAt, Completed: true},
			{Status: "Confirmed", Date: &createdAt, Completed: true},
			{Status: "Shipped", Date: shippedDate, Completed: o.TrackingNumber != ""},
			{Status: "Delivered", Date: o.DeliveredAt, Completed: o.DeliveredAt != nil},
		},
		Carrier:           carrier,
		TrackingNumber:    o.TrackingNumber,
		EstimatedDelivery: o.EstimatedDelivery,
	}
}
