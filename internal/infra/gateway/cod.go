package gateway

import (
	"context"

	"github.com/mukesh-on-github/Zyrokart/internal/model"
	"github.com/shopspring/decimal"
)

// CODClient 貨到付款, 沒有真正的gateway呼叫
type CODClient struct{}

func NewCODClient() *CODClient {
	return &CODClient{}
}

func (c *CODClient) CreateOrder(ctx context.Context, order *model.Order, payment *model.Payment) (*CreateOrderResult, error) {
	return &CreateOrderResult{Message: "COD Order Placed"}, nil
}

// Verify 到貨才算收款, 這裡一律通過
func (c *CODClient) Verify(ctx context.Context, payment *model.Payment, cb Callback) (bool, error) {
	return true, nil
}

func (c *CODClient) Capture(ctx context.Context, payment *model.Payment) error {
	return ErrUnsupportedOperation
}

func (c *CODClient) Refund(ctx context.Context, payment *model.Payment, amount decimal.Decimal, reason string) (*RefundResult, error) {
	return nil, ErrUnsupportedOperation
}
