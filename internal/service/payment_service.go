package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mukesh-on-github/Zyrokart/internal/infra/gateway"
	"github.com/mukesh-on-github/Zyrokart/internal/infra/repository/db"
	"github.com/mukesh-on-github/Zyrokart/internal/model"
	"github.com/mukesh-on-github/Zyrokart/internal/pkg/apperr"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrPaymentNotComplete = errors.New("payment is not completed")
	ErrVerificationFailed = errors.New("payment verification failed")
	ErrOrderAlreadyPaid   = errors.New("order already paid")
	ErrInvalidGateway     = errors.New("invalid payment gateway")
	ErrExcessRefundAmount = errors.New("refund amount exceeds payment amount")
)

// PaymentInitResult 建立付款的回傳, 含前端發起付款所需的gateway資料
type PaymentInitResult struct {
	Payment *model.Payment             `json:"payment"`
	Gateway *gateway.CreateOrderResult `json:"gatewayOrder,omitempty"`
}

type IPaymentService interface {
	CreatePayment(ctx context.Context, userUID, orderNumber string, gw model.PaymentGateway) (*PaymentInitResult, error)
	VerifyPayment(ctx context.Context, userUID, paymentNumber string, cb gateway.Callback) (*model.Payment, error)
	RefundPayment(ctx context.Context, paymentNumber string, amount decimal.Decimal, reason string) (*model.Payment, error)
	CapturePayment(ctx context.Context, paymentNumber string) (*model.Payment, error)
	GetPayment(ctx context.Context, userUID, paymentNumber string) (*model.Payment, error)
	GetPaymentByOrder(ctx context.Context, userUID, orderNumber string) (*model.Payment, error)
}

type PaymentService struct {
	paymentRepo db.IPaymentRepository
	orderRepo   db.IOrderRepository
	gateways    gateway.Registry
}

func NewPaymentService(paymentRepo db.IPaymentRepository, orderRepo db.IOrderRepository,
	gateways gateway.Registry) *PaymentService {
	return &PaymentService{paymentRepo: paymentRepo, orderRepo: orderRepo, gateways: gateways}
}

// CreatePayment 替訂單建立付款
// 同一張訂單重複呼叫回傳既有付款紀錄, 以lookup-then-create保證一單一筆
// gateway建單失敗時付款紀錄留在failed, 可重試
func (s *PaymentService) CreatePayment(ctx context.Context, userUID, orderNumber string, gw model.PaymentGateway) (*PaymentInitResult, error) {
	if !model.IsValidGateway(string(gw)) {
		return nil, apperr.Wrap(apperr.BadRequestCode,
			fmt.Sprintf("invalid payment gateway: %s", gw), ErrInvalidGateway)
	}

	order, err := s.orderRepo.GetUserOrderByNumber(ctx, userUID, orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.NotFoundCode, "order not found", ErrOrderNotFound)
		}
		return nil, err
	}
	if order.IsPaid {
		return nil, apperr.Wrap(apperr.BadRequestCode, "order already paid", ErrOrderAlreadyPaid)
	}

	existing, err := s.paymentRepo.GetPaymentByOrderID(ctx, order.OrderID)
	if err == nil && existing.Status != model.PaymentStatusFailed {
		return &PaymentInitResult{Payment: existing}, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	payment := existing
	if payment == nil {
		payment = &model.Payment{
			OrderID:     order.OrderID,
			OrderNumber: order.OrderNumber,
			UserUID:     userUID,
			Amount:      order.Total,
			Currency:    "INR",
			Method:      order.PaymentMethod,
			Gateway:     gw,
			Status:      model.PaymentStatusPending,
		}
		if err := s.paymentRepo.CreatePayment(ctx, payment); err != nil {
			return nil, err
		}
	} else {
		// 前次失敗重試, 換gateway也允許
		payment.Gateway = gw
		payment.Status = model.PaymentStatusPending
	}

	client, err := s.gateways.Resolve(gw)
	if err != nil {
		return nil, apperr.Wrap(apperr.BadRequestCode,
			fmt.Sprintf("unsupported payment gateway: %s", gw), ErrInvalidGateway)
	}

	result, err := client.CreateOrder(ctx, order, payment)
	if err != nil {
		payment.MarkFailed()
		if updErr := s.paymentRepo.UpdatePayment(ctx, payment); updErr != nil {
			log.Error().Err(updErr).Str("payment_number", payment.PaymentNumber).
				Msg("persist failed payment failed")
		}
		return nil, apperr.Wrap(apperr.UpstreamCode, "payment gateway order creation failed", err)
	}

	if result.GatewayOrderID != "" {
		payment.GatewayOrderID = result.GatewayOrderID
	}
	payment.MarkProcessing()
	if err := s.paymentRepo.UpdatePayment(ctx, payment); err != nil {
		return nil, err
	}

	return &PaymentInitResult{Payment: payment, Gateway: result}, nil
}

// VerifyPayment 驗證gateway回呼資料
// 已completed且paymentId相同時直接回成功, 重送callback不會重複翻訂單狀態
// 驗證通過 payment→completed, 訂單→confirmed+isPaid
func (s *PaymentService) VerifyPayment(ctx context.Context, userUID, paymentNumber string, cb gateway.Callback) (*model.Payment, error) {
	payment, err := s.getOwned(ctx, userUID, paymentNumber)
	if err != nil {
		return nil, err
	}

	if payment.Status == model.PaymentStatusCompleted {
		if payment.GatewayPaymentID == cb.GatewayPaymentID {
			return payment, nil
		}
		return nil, apperr.Wrap(apperr.BadRequestCode, "payment already completed", ErrVerificationFailed)
	}

	client, err := s.gateways.Resolve(payment.Gateway)
	if err != nil {
		return nil, apperr.Wrap(apperr.BadRequestCode,
			fmt.Sprintf("unsupported payment gateway: %s", payment.Gateway), ErrInvalidGateway)
	}

	ok, err := client.Verify(ctx, payment, cb)
	if err != nil {
		return nil, apperr.Wrap(apperr.UpstreamCode, "payment verification error", err)
	}
	if !ok {
		payment.MarkFailed()
		if updErr := s.paymentRepo.UpdatePayment(ctx, payment); updErr != nil {
			log.Error().Err(updErr).Str("payment_number", payment.PaymentNumber).
				Msg("persist failed payment failed")
		}
		return nil, apperr.Wrap(apperr.BadRequestCode, "payment verification failed", ErrVerificationFailed)
	}

	payment.MarkCompleted(cb.GatewayPaymentID, cb.GatewayOrderID, cb.Signature)
	if err := s.paymentRepo.UpdatePayment(ctx, payment); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.GetOrderByNumber(ctx, payment.OrderNumber)
	if err != nil {
		log.Error().Err(err).Str("order_number", payment.OrderNumber).
			Msg("load order after payment failed")
		return payment, nil
	}
	order.IsPaid = true
	if order.Status == model.OrderStatusPending {
		order.Status = model.OrderStatusConfirmed
	}
	if err := s.orderRepo.UpdateOrder(ctx, order); err != nil {
		log.Error().Err(err).Str("order_number", order.OrderNumber).
			Msg("flip order to paid failed")
	}

	return payment, nil
}

// RefundPayment 只有completed可以退, 金錢移動委派給gateway
func (s *PaymentService) RefundPayment(ctx context.Context, paymentNumber string, amount decimal.Decimal, reason string) (*model.Payment, error) {
	payment, err := s.paymentRepo.GetPaymentByNumber(ctx, paymentNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.NotFoundCode, "payment not found", ErrPaymentNotFound)
		}
		return nil, err
	}

	if payment.Status != model.PaymentStatusCompleted {
		return nil, apperr.Wrap(apperr.BadRequestCode,
			fmt.Sprintf("payment in status %s can not be refunded", payment.Status), ErrPaymentNotComplete)
	}

	if amount.IsZero() {
		amount = payment.Amount
	}
	if amount.GreaterThan(payment.Amount) {
		return nil, apperr.Wrap(apperr.BadRequestCode,
			"refund amount exceeds payment amount", ErrExcessRefundAmount)
	}

	client, err := s.gateways.Resolve(payment.Gateway)
	if err != nil {
		return nil, apperr.Wrap(apperr.BadRequestCode,
			fmt.Sprintf("unsupported payment gateway: %s", payment.Gateway), ErrInvalidGateway)
	}

	result, err := client.Refund(ctx, payment, amount, reason)
	if err != nil {
		if errors.Is(err, gateway.ErrUnsupportedOperation) {
			return nil, apperr.Wrap(apperr.BadRequestCode,
				fmt.Sprintf("gateway %s does not support refunds", payment.Gateway), err)
		}
		return nil, apperr.Wrap(apperr.UpstreamCode, "gateway refund failed", err)
	}

	payment.MarkRefunded(result.RefundID, amount, reason)
	if err := s.paymentRepo.UpdatePayment(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *PaymentService) CapturePayment(ctx context.Context, paymentNumber string) (*model.Payment, error) {
	payment, err := s.paymentRepo.GetPaymentByNumber(ctx, paymentNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.NotFoundCode, "payment not found", ErrPaymentNotFound)
		}
		return nil, err
	}

	client, err := s.gateways.Resolve(payment.Gateway)
	if err != nil {
		return nil, apperr.Wrap(apperr.BadRequestCode,
			fmt.Sprintf("unsupported payment gateway: %s", payment.Gateway), ErrInvalidGateway)
	}

	if err := client.Capture(ctx, payment); err != nil {
		if errors.Is(err, gateway.ErrUnsupportedOperation) {
			return nil, apperr.Wrap(apperr.BadRequestCode,
				fmt.Sprintf("gateway %s does not support capture", payment.Gateway), err)
		}
		return nil, apperr.Wrap(apperr.UpstreamCode, "gateway capture failed", err)
	}
	return payment, nil
}

func (s *PaymentService) GetPayment(ctx context.Context, userUID, paymentNumber string) (*model.Payment, error) {
	return s.getOwned(ctx, userUID, paymentNumber)
}

func (s *PaymentService) GetPaymentByOrder(ctx context.Context, userUID, orderNumber string) (*model.Payment, error) {
	order, err := s.orderRepo.GetUserOrderByNumber(ctx, userUID, orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.NotFoundCode, "order not found", ErrOrderNotFound)
		}
		return nil, err
	}

	payment, err := s.paymentRepo.GetPaymentByOrderID(ctx, order.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.NotFoundCode, "payment not found", ErrPaymentNotFound)
		}
		return nil, err
	}
	return payment, nil
}

// getOwned 只允許查自己的付款紀錄
func (s *PaymentService) getOwned(ctx context.Context, userUID, paymentNumber string) (*model.Payment, error) {
	payment, err := s.paymentRepo.GetPaymentByNumber(ctx, paymentNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.NotFoundCode, "payment not found", ErrPaymentNotFound)
		}
		return nil, err
	}
	if payment.UserUID != userUID {
		return nil, apperr.Wrap(apperr.NotFoundCode, "payment not found", ErrPaymentNotFound)
	}
	return payment, nil
}
