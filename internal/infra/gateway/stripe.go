package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mukesh-on-github/Zyrokart/internal/model"
	"github.com/shopspring/decimal"
)

const defaultStripeBaseURL = "https://api.stripe.com"

// StripeClient stripe REST API包裝, form-encoded請求
type StripeClient struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

func NewStripeClient(secretKey string) *StripeClient {
	return &StripeClient{
		secretKey: secretKey,
		baseURL:   defaultStripeBaseURL,
		client:    http.DefaultClient,
	}
}

func (s *StripeClient) WithBaseURL(baseURL string) *StripeClient {
	s.baseURL = baseURL
	return s
}

func (s *StripeClient) postForm(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("stripe returned status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func (s *StripeClient) CreateOrder(ctx context.Context, order *model.Order, payment *model.Payment) (*CreateOrderResult, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(toMinorUnits(order.Total), 10))
	form.Set("currency", "inr")
	form.Set("description", "Order #"+order.OrderNumber)
	form.Set("metadata[orderId]", order.OrderNumber)
	form.Set("metadata[paymentId]", payment.PaymentNumber)
	form.Set("metadata[userId]", order.UserUID)
	form.Set("automatic_payment_methods[enabled]", "true")

	var intent struct {
		ID           string `json:"id"`
		ClientSecret string `json:"client_secret"`
		Amount       int64  `json:"amount"`
		Currency     string `json:"currency"`
	}
	if err := s.postForm(ctx, "/v1/payment_intents", form, &intent); err != nil {
		return nil, err
	}

	return &CreateOrderResult{
		GatewayOrderID: intent.ID,
		Amount:         intent.Amount,
		Currency:       intent.Currency,
		ClientSecret:   intent.ClientSecret,
	}, nil
}

// Verify stripe的確認主要走webhook, client-side confirm只看caller回報的狀態
// 沒有密碼學驗證, 信任邊界比razorpay寬 (驗證策略可替換)
func (s *StripeClient) Verify(ctx context.Context, payment *model.Payment, cb Callback) (bool, error) {
	return cb.Status == "succeeded", nil
}

func (s *StripeClient) Capture(ctx context.Context, payment *model.Payment) error {
	path := fmt.Sprintf("/v1/payment_intents/%s/capture", payment.GatewayPaymentID)
	return s.postForm(ctx, path, url.Values{}, nil)
}

func (s *StripeClient) Refund(ctx context.Context, payment *model.Payment, amount decimal.Decimal, reason string) (*RefundResult, error) {
	form := url.Values{}
	form.Set("payment_intent", payment.GatewayPaymentID)
	form.Set("reason", "requested_by_customer")
	if amount.IsPositive() {
		form.Set("amount", strconv.FormatInt(toMinorUnits(amount), 10))
	}

	var refund struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := s.postForm(ctx, "/v1/refunds", form, &refund); err != nil {
		return nil, err
	}

	return &RefundResult{RefundID: refund.ID, Status: refund.Status}, nil
}
