package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mukesh-on-github/Zyrokart/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestRazorpayVerifySignature(t *testing.T) {
	client := NewRazorpayClient("rzp_test_key", "secret123")
	payment := &model.Payment{GatewayOrderID: "order_abc"}

	ok, err := client.Verify(context.Background(), payment, Callback{
		GatewayPaymentID: "pay_xyz",
		Signature:        sign("secret123", "order_abc", "pay_xyz"),
	})

	require.NoError(t, err)
	require.True(t, ok, "正確簽章應通過驗證")
}

func TestRazorpayVerifyRejectsTamperedSignature(t *testing.T) {
	client := NewRazorpayClient("rzp_test_key", "secret123")
	payment := &model.Payment{GatewayOrderID: "order_abc"}

	ok, err := client.Verify(context.Background(), payment, Callback{
		GatewayPaymentID: "pay_xyz",
		Signature:        sign("wrong-secret", "order_abc", "pay_xyz"),
	})

	require.NoError(t, err)
	require.False(t, ok, "密鑰不對的簽章不可通過")

	ok, err = client.Verify(context.Background(), payment, Callback{
		GatewayPaymentID: "pay_other",
		Signature:        sign("secret123", "order_abc", "pay_xyz"),
	})
	require.NoError(t, err)
	require.False(t, ok, "paymentId被換掉的簽章不可通過")
}

func TestRazorpayCreateOrderSendsMinorUnits(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "rzp_test_key", user)
		require.Equal(t, "secret123", pass)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "order_abc", "amount": got["amount"], "currency": "INR",
		})
	}))
	defer server.Close()

	client := NewRazorpayClient("rzp_test_key", "secret123").WithBaseURL(server.URL)
	order := &model.Order{OrderNumber: "ZK000001", UserUID: "user-1", Total: decimal.NewFromFloat(885.50)}
	payment := &model.Payment{PaymentNumber: "ZKPAY000001"}

	result, err := client.CreateOrder(context.Background(), order, payment)

	require.NoError(t, err)
	require.Equal(t, "order_abc", result.GatewayOrderID)
	require.Equal(t, "rzp_test_key", result.KeyID, "前端需要key id發起checkout")
	require.Equal(t, float64(88550), got["amount"], "金額要換算成paise")
	require.Equal(t, "receipt_ZK000001", got["receipt"])
}

func TestRazorpayCreateOrderUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewRazorpayClient("k", "s").WithBaseURL(server.URL)
	_, err := client.CreateOrder(context.Background(),
		&model.Order{Total: decimal.NewFromInt(100)}, &model.Payment{})

	require.Error(t, err)
}

func TestCODClient(t *testing.T) {
	client := NewCODClient()
	payment := &model.Payment{}

	ok, err := client.Verify(context.Background(), payment, Callback{})
	require.NoError(t, err)
	require.True(t, ok, "貨到付款一律通過驗證")

	_, err = client.Refund(context.Background(), payment, decimal.NewFromInt(10), "")
	require.ErrorIs(t, err, ErrUnsupportedOperation)

	err = client.Capture(context.Background(), payment)
	require.ErrorIs(t, err, ErrUnsupportedOperation)
}

func TestRegistryResolve(t *testing.T) {
	registry := Registry{model.GatewayCOD: NewCODClient()}

	_, err := registry.Resolve(model.GatewayCOD)
	require.NoError(t, err)

	_, err = registry.Resolve(model.GatewayStripe)
	require.ErrorIs(t, err, ErrUnsupportedGateway)
}

func TestToMinorUnits(t *testing.T) {
	require.Equal(t, int64(88550), toMinorUnits(decimal.NewFromFloat(885.50)))
	require.Equal(t, int64(100), toMinorUnits(decimal.NewFromInt(1)))
}
