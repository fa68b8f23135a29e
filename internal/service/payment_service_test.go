package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mukesh-on-github/Zyrokart/internal/infra/gateway"
	"github.com/mukesh-on-github/Zyrokart/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	ctx            context.Context
	payments       *fakePaymentRepo
	orders         *fakeOrderRepo
	razorpay       *fakeGatewayClient
	paymentService *PaymentService
	order          *model.Order
}

func (s *PaymentServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.payments = newFakePaymentRepo()
	s.orders = newFakeOrderRepo()
	s.razorpay = &fakeGatewayClient{verifyOK: true}
	s.paymentService = NewPaymentService(s.payments, s.orders, gateway.Registry{
		model.GatewayRazorpay: s.razorpay,
	})

	s.order = &model.Order{
		UserUID:       "user-1",
		PaymentMethod: model.PaymentMethodUPI,
		Total:         decimal.NewFromInt(885),
		Status:        model.OrderStatusPending,
	}
	require.NoError(s.T(), s.orders.CreateOrder(s.ctx, s.order))
}

func (s *PaymentServiceTestSuite) createPayment() *PaymentInitResult {
	result, err := s.paymentService.CreatePayment(s.ctx, "user-1", s.order.OrderNumber, model.GatewayRazorpay)
	require.NoError(s.T(), err)
	return result
}

func (s *PaymentServiceTestSuite) TestCreatePayment() {
	result := s.createPayment()

	require.NotEmpty(s.T(), result.Payment.PaymentNumber)
	require.Equal(s.T(), model.PaymentStatusProcessing, result.Payment.Status)
	require.True(s.T(), result.Payment.Amount.Equal(decimal.NewFromInt(885)), "金額取自訂單total")
	require.Equal(s.T(), "gw_order_1", result.Payment.GatewayOrderID)
	require.NotNil(s.T(), result.Gateway)
}

func (s *PaymentServiceTestSuite) TestCreatePaymentIsIdempotentPerOrder() {
	first := s.createPayment()

	second, err := s.paymentService.CreatePayment(s.ctx, "user-1", s.order.OrderNumber, model.GatewayRazorpay)

	require.NoError(s.T(), err)
	require.Equal(s.T(), first.Payment.PaymentNumber, second.Payment.PaymentNumber, "同一張訂單只會有一筆付款")
	require.Equal(s.T(), 1, s.razorpay.createCalls, "重複呼叫不可再打gateway")
}

func (s *PaymentServiceTestSuite) TestCreatePaymentRetryAfterFailure() {
	s.razorpay.createErr = errors.New("gateway down")
	_, err := s.paymentService.CreatePayment(s.ctx, "user-1", s.order.OrderNumber, model.GatewayRazorpay)
	require.Error(s.T(), err)

	stored, getErr := s.payments.GetPaymentByOrderID(s.ctx, s.order.OrderID)
	require.NoError(s.T(), getErr)
	require.Equal(s.T(), model.PaymentStatusFailed, stored.Status, "gateway建單失敗要留failed紀錄")

	// failed紀錄可重試, 重用同一筆
	s.razorpay.createErr = nil
	result, err := s.paymentService.CreatePayment(s.ctx, "user-1", s.order.OrderNumber, model.GatewayRazorpay)
	require.NoError(s.T(), err)
	require.Equal(s.T(), stored.PaymentNumber, result.Payment.PaymentNumber)
	require.Equal(s.T(), model.PaymentStatusProcessing, result.Payment.Status)
}

func (s *PaymentServiceTestSuite) TestCreatePaymentRejectsPaidOrder() {
	s.order.IsPaid = true
	require.NoError(s.T(), s.orders.UpdateOrder(s.ctx, s.order))

	_, err := s.paymentService.CreatePayment(s.ctx, "user-1", s.order.OrderNumber, model.GatewayRazorpay)

	require.ErrorIs(s.T(), err, ErrOrderAlreadyPaid)
}

func (s *PaymentServiceTestSuite) TestCreatePaymentUnknownGateway() {
	_, err := s.paymentService.CreatePayment(s.ctx, "user-1", s.order.OrderNumber, "paypal")

	require.ErrorIs(s.T(), err, ErrInvalidGateway)
}

func (s *PaymentServiceTestSuite) TestVerifyPaymentFlipsOrder() {
	created := s.createPayment()

	payment, err := s.paymentService.VerifyPayment(s.ctx, "user-1", created.Payment.PaymentNumber, gateway.Callback{
		GatewayPaymentID: "pay_123",
		GatewayOrderID:   "gw_order_1",
		Signature:        "sig",
	})

	require.NoError(s.T(), err)
	require.Equal(s.T(), model.PaymentStatusCompleted, payment.Status)
	require.Equal(s.T(), "pay_123", payment.GatewayPaymentID)

	order, getErr := s.orders.GetOrderByNumber(s.ctx, s.order.OrderNumber)
	require.NoError(s.T(), getErr)
	require.True(s.T(), order.IsPaid)
	require.Equal(s.T(), model.OrderStatusConfirmed, order.Status, "驗證通過訂單要翻confirmed")
}

func (s *PaymentServiceTestSuite) TestVerifyPaymentIdempotentOnResend() {
	created := s.createPayment()
	cb := gateway.Callback{GatewayPaymentID: "pay_123", Signature: "sig"}
	_, err := s.paymentService.VerifyPayment(s.ctx, "user-1", created.Payment.PaymentNumber, cb)
	require.NoError(s.T(), err)

	payment, err := s.paymentService.VerifyPayment(s.ctx, "user-1", created.Payment.PaymentNumber, cb)

	require.NoError(s.T(), err, "同一個paymentId重送callback要直接回成功")
	require.Equal(s.T(), model.PaymentStatusCompleted, payment.Status)
}

func (s *PaymentServiceTestSuite) TestVerifyPaymentRejectsDifferentPaymentIDWhenCompleted() {
	created := s.createPayment()
	_, err := s.paymentService.VerifyPayment(s.ctx, "user-1", created.Payment.PaymentNumber,
		gateway.Callback{GatewayPaymentID: "pay_123", Signature: "sig"})
	require.NoError(s.T(), err)

	_, err = s.paymentService.VerifyPayment(s.ctx, "user-1", created.Payment.PaymentNumber,
		gateway.Callback{GatewayPaymentID: "pay_other", Signature: "sig"})

	require.ErrorIs(s.T(), err, ErrVerificationFailed)
}

func (s *PaymentServiceTestSuite) TestVerifyPaymentFailureMarksFailed() {
	created := s.createPayment()
	s.razorpay.verifyOK = false

	_, err := s.paymentService.VerifyPayment(s.ctx, "user-1", created.Payment.PaymentNumber,
		gateway.Callback{GatewayPaymentID: "pay_123", Signature: "bad"})

	require.ErrorIs(s.T(), err, ErrVerificationFailed)
	stored, getErr := s.payments.GetPaymentByNumber(s.ctx, created.Payment.PaymentNumber)
	require.NoError(s.T(), getErr)
	require.Equal(s.T(), model.PaymentStatusFailed, stored.Status)
}

func (s *PaymentServiceTestSuite) TestRefundOnlyCompletedPayment() {
	created := s.createPayment()

	_, err := s.paymentService.RefundPayment(s.ctx, created.Payment.PaymentNumber, decimal.Zero, "damaged")

	require.ErrorIs(s.T(), err, ErrPaymentNotComplete, "processing狀態不可退款")
}

func (s *PaymentServiceTestSuite) TestRefundFullAmountByDefault() {
	created := s.createPayment()
	_, err := s.paymentService.VerifyPayment(s.ctx, "user-1", created.Payment.PaymentNumber,
		gateway.Callback{GatewayPaymentID: "pay_123", Signature: "sig"})
	require.NoError(s.T(), err)

	payment, err := s.paymentService.RefundPayment(s.ctx, created.Payment.PaymentNumber, decimal.Zero, "damaged")

	require.NoError(s.T(), err)
	require.Equal(s.T(), model.PaymentStatusRefunded, payment.Status)
	require.True(s.T(), payment.RefundAmount.Equal(decimal.NewFromInt(885)), "金額0表示全額退款")
	require.Equal(s.T(), "rfnd_1", payment.RefundID)
}

func (s *PaymentServiceTestSuite) TestRefundRejectsExcessAmount() {
	created := s.createPayment()
	_, err := s.paymentService.VerifyPayment(s.ctx, "user-1", created.Payment.PaymentNumber,
		gateway.Callback{GatewayPaymentID: "pay_123", Signature: "sig"})
	require.NoError(s.T(), err)

	_, err = s.paymentService.RefundPayment(s.ctx, created.Payment.PaymentNumber, decimal.NewFromInt(900), "")

	require.ErrorIs(s.T(), err, ErrExcessRefundAmount)
}

func (s *PaymentServiceTestSuite) TestGetPaymentScopedToOwner() {
	created := s.createPayment()

	_, err := s.paymentService.GetPayment(s.ctx, "user-2", created.Payment.PaymentNumber)

	require.ErrorIs(s.T(), err, ErrPaymentNotFound, "別人的付款紀錄要當不存在")
}

func TestPaymentServiceSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
