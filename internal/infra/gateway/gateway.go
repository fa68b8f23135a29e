package gateway

import (
	"context"
	"errors"

	"github.com/mukesh-on-github/Zyrokart/internal/model"
	"github.com/shopspring/decimal"
)

var (
	ErrUnsupportedGateway   = errors.New("unsupported payment gateway")
	ErrUnsupportedOperation = errors.New("gateway does not support this operation")
)

// CreateOrderResult gateway端建單結果
// 金額一律換算為最小貨幣單位(paise/cents)後送出
type CreateOrderResult struct {
	GatewayOrderID string `json:"orderId,omitempty"`
	Amount         int64  `json:"amount,omitempty"`
	Currency       string `json:"currency,omitempty"`
	// razorpay前端需要key id
	KeyID string `json:"keyId,omitempty"`
	// stripe前端需要client secret
	ClientSecret string `json:"clientSecret,omitempty"`
	Message      string `json:"message,omitempty"`
}

type RefundResult struct {
	RefundID string `json:"refundId"`
	Status   string `json:"status"`
}

// Callback 驗證付款時caller帶回的gateway資料
type Callback struct {
	GatewayPaymentID string `json:"paymentId"`
	GatewayOrderID   string `json:"orderId"`
	Signature        string `json:"signature"`
	Status           string `json:"status"`
}

// Verifier 付款驗證策略
// 獨立成介面, 非簽章式gateway的寬鬆驗證可以單獨換掉, 不動付款狀態機
type Verifier interface {
	Verify(ctx context.Context, payment *model.Payment, cb Callback) (bool, error)
}

// Client 外部金流供應商
// 本系統只存關聯ID, 金錢移動全部委派給gateway
type Client interface {
	Verifier
	CreateOrder(ctx context.Context, order *model.Order, payment *model.Payment) (*CreateOrderResult, error)
	Capture(ctx context.Context, payment *model.Payment) error
	Refund(ctx context.Context, payment *model.Payment, amount decimal.Decimal, reason string) (*RefundResult, error)
}

// Registry gateway識別字串對應client, 啟動時組好注入
type Registry map[model.PaymentGateway]Client

func (r Registry) Resolve(g model.PaymentGateway) (Client, error) {
	client, ok := r[g]
	if !ok {
		return nil, ErrUnsupportedGateway
	}
	return client, nil
}

// toMinorUnits 金額換算為最小貨幣單位
func toMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
