package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mukesh-on-github/Zyrokart/internal/model"
	"github.com/shopspring/decimal"
)

const defaultRazorpayBaseURL = "https://api.razorpay.com"

// RazorpayClient razorpay REST API包裝
// 認證用basic auth (key id / key secret)
type RazorpayClient struct {
	keyID     string
	keySecret string
	baseURL   string
	client    *http.Client
}

func NewRazorpayClient(keyID, keySecret string) *RazorpayClient {
	return &RazorpayClient{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   defaultRazorpayBaseURL,
		client:    http.DefaultClient,
	}
}

// WithBaseURL 測試用, 指到fake server
func (r *RazorpayClient) WithBaseURL(baseURL string) *RazorpayClient {
	r.baseURL = baseURL
	return r
}

func (r *RazorpayClient) postJSON(ctx context.Context, path string, body any, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", r.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.SetBasicAuth(r.keyID, r.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("razorpay returned status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func (r *RazorpayClient) CreateOrder(ctx context.Context, order *model.Order, payment *model.Payment) (*CreateOrderResult, error) {
	body := map[string]any{
		"amount":   toMinorUnits(order.Total),
		"currency": "INR",
		"receipt":  "receipt_" + order.OrderNumber,
		"notes": map[string]string{
			"orderId":   order.OrderNumber,
			"paymentId": payment.PaymentNumber,
			"userId":    order.UserUID,
		},
	}

	var rpOrder struct {
		ID       string `json:"id"`
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	}
	if err := r.postJSON(ctx, "/v1/orders", body, &rpOrder); err != nil {
		return nil, err
	}

	return &CreateOrderResult{
		GatewayOrderID: rpOrder.ID,
		Amount:         rpOrder.Amount,
		Currency:       rpOrder.Currency,
		KeyID:          r.keyID,
	}, nil
}

// Verify 以server secret重算HMAC比對caller帶來的簽章
// HMAC-SHA256(gatewayOrderId + "|" + gatewayPaymentId)
func (r *RazorpayClient) Verify(ctx context.Context, payment *model.Payment, cb Callback) (bool, error) {
	mac := hmac.New(sha256.New, []byte(r.keySecret))
	mac.Write([]byte(payment.GatewayOrderID + "|" + cb.GatewayPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(cb.Signature)), nil
}

func (r *RazorpayClient) Capture(ctx context.Context, payment *model.Payment) error {
	path := fmt.Sprintf("/v1/payments/%s/capture", payment.GatewayPaymentID)
	body := map[string]any{
		"amount":   toMinorUnits(payment.Amount),
		"currency": payment.Currency,
	}
	return r.postJSON(ctx, path, body, nil)
}

func (r *RazorpayClient) Refund(ctx context.Context, payment *model.Payment, amount decimal.Decimal, reason string) (*RefundResult, error) {
	body := map[string]any{
		"notes": map[string]string{"reason": reason},
	}
	if amount.IsPositive() {
		body["amount"] = toMinorUnits(amount)
	}

	var refund struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	path := fmt.Sprintf("/v1/payments/%s/refund", payment.GatewayPaymentID)
	if err := r.postJSON(ctx, path, body, &refund); err != nil {
		return nil, err
	}

	return &RefundResult{RefundID: refund.ID, Status: refund.Status}, nil
}
