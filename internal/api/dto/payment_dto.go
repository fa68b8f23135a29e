package dto

import "github.com/shopspring/decimal"

type CreatePaymentDTO struct {
	OrderNumber string `json:"orderId"`
	Gateway     string `json:"gateway"`
}

type VerifyPaymentDTO struct {
	PaymentNumber    string `json:"paymentNumber"`
	GatewayPaymentID string `json:"paymentId"`
	GatewayOrderID   string `json:"orderId"`
	Signature        string `json:"signature"`
	Status           string `json:"status"`
}

type RefundPaymentDTO struct {
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason"`
}
