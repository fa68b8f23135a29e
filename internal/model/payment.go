package model

import (
	"fmt"
	"time"

	"github.com/mukesh-on-github/Zyrokart/internal/constants"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusCompleted  PaymentStatus = "completed"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusRefunded   PaymentStatus = "refunded"
	PaymentStatusCancelled  PaymentStatus = "cancelled"
)

type PaymentGateway string

const (
	GatewayRazorpay PaymentGateway = "razorpay"
	GatewayStripe   PaymentGateway = "stripe"
	GatewayCOD      PaymentGateway = "cod"
	GatewayWallet   PaymentGateway = "wallet"
)

func IsValidGateway(g string) bool {
	switch PaymentGateway(g) {
	case GatewayRazorpay, GatewayStripe, GatewayCOD, GatewayWallet:
		return true
	default:
		return false
	}
}

// 付款紀錄
// 一張訂單一筆, 由lookup-then-create保證, 不靠DB唯一鍵
// 只存gateway的關聯ID, 不碰卡號/帳戶資訊
type Payment struct {
	ID            uint            `gorm:"primaryKey" json:"-"`
	PaymentNumber string          `gorm:"not null;type:varchar(20);uniqueIndex" json:"paymentId"`
	OrderID       uint            `gorm:"not null;index" json:"-"`
	OrderNumber   string          `gorm:"not null;type:varchar(20)" json:"orderId"`
	UserUID       string          `gorm:"not null;type:varchar(128);index" json:"userUid"`
	Amount        decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"amount"`
	Currency      string          `gorm:"not null;type:varchar(3);default:'INR'" json:"currency"`
	Method        PaymentMethod   `gorm:"not null;type:varchar(20)" json:"paymentMethod"`
	Gateway       PaymentGateway  `gorm:"not null;type:varchar(20)" json:"paymentGateway"`
	Status        PaymentStatus   `gorm:"not null;type:varchar(20);default:'pending'" json:"paymentStatus"`

	GatewayPaymentID string `gorm:"type:varchar(100)" json:"gatewayPaymentId,omitempty"`
	GatewayOrderID   string `gorm:"type:varchar(100)" json:"gatewayOrderId,omitempty"`
	GatewaySignature string `gorm:"type:varchar(255)" json:"-"`

	RefundID     string          `gorm:"type:varchar(100)" json:"refundId,omitempty"`
	RefundAmount decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"refundAmount"`
	RefundReason string          `gorm:"type:varchar(255)" json:"refundReason,omitempty"`

	Attempts      int        `gorm:"not null;default:0" json:"attempts"`
	LastAttemptAt *time.Time `json:"lastAttemptAt,omitempty"`
	Notes         string     `gorm:"type:text" json:"notes,omitempty"`
	BaseModel
}

// BeforeCreate 從sequence取號, 同Order不用count(*)
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.PaymentNumber != "" {
		return nil
	}
	var n int64
	if err := tx.Raw("SELECT nextval('payment_number_seq')").Scan(&n).Error; err != nil {
		return err
	}
	p.PaymentNumber = fmt.Sprintf("%s%06d", constants.PaymentNumberPrefix, n)
	return nil
}

func (p *Payment) MarkProcessing() {
	p.Status = PaymentStatusProcessing
	p.Attempts++
	now := time.Now()
	p.LastAttemptAt = &now
}

func (p *Payment) MarkCompleted(gatewayPaymentID, gatewayOrderID, signature string) {
	p.Status = PaymentStatusCompleted
	if gatewayPaymentID != "" {
		p.GatewayPaymentID = gatewayPaymentID
	}
	if gatewayOrderID != "" {
		p.GatewayOrderID = gatewayOrderID
	}
	p.GatewaySignature = signature
}

func (p *Payment) MarkFailed() {
	p.Status = PaymentStatusFailed
	p.Attempts++
	now := time.Now()
	p.LastAttemptAt = &now
}

func (p *Payment) MarkRefunded(refundID string, amount decimal.Decimal, reason string) {
	p.Status = PaymentStatusRefunded
	p.RefundID = refundID
	p.RefundAmount = amount
	p.RefundReason = reason
}
