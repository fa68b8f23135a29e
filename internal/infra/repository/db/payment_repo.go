package db

import (
	"context"

	"github.com/mukesh-on-github/Zyrokart/internal/model"
)

type IPaymentRepository interface {
	CreatePayment(ctx context.Context, payment *model.Payment) error
	GetPaymentByNumber(ctx context.Context, paymentNumber string) (*model.Payment, error)
	GetPaymentByOrderID(ctx context.Context, orderID uint) (*model.Payment, error)
	UpdatePayment(ctx context.Context, payment *model.Payment) error
}

type PaymentRepo struct {
	db *DbDao
}

func NewPaymentRepo(db *DbDao) *PaymentRepo {
	return &PaymentRepo{db: db}
}

func (s *PaymentRepo) CreatePayment(ctx context.Context, payment *model.Payment) error {
	return s.db.WithContext(ctx).Create(payment).Error
}

func (s *PaymentRepo) GetPaymentByNumber(ctx context.Context, paymentNumber string) (*model.Payment, error) {
	var payment model.Payment
	err := s.db.WithContext(ctx).First(&payment, "payment_number = ?", paymentNumber).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *PaymentRepo) GetPaymentByOrderID(ctx context.Context, orderID uint) (*model.Payment, error) {
	var payment model.Payment
	err := s.db.WithContext(ctx).First(&payment, "order_id = ?", orderID).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *PaymentRepo) UpdatePayment(ctx context.Context, payment *model.Payment) error {
	return s.db.WithContext(ctx).Save(payment).Error
}
