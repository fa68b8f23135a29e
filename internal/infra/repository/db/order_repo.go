package db

import (
	"context"

	"github.com/mukesh-on-github/Zyrokart/internal/model"
)

type IOrderRepository interface {
	CreateOrder(ctx context.Context, order *model.Order) error
	GetOrderByNumber(ctx context.Context, orderNumber string) (*model.Order, error)
	GetUserOrderByNumber(ctx context.Context, userUID, orderNumber string) (*model.Order, error)
	ListOrdersByUser(ctx context.Context, userUID string) ([]model.Order, error)
	ListAllOrders(ctx context.Context, status model.OrderStatus, page, limit int) ([]model.Order, int64, error)
	UpdateOrder(ctx context.Context, order *model.Order) error
}

type OrderRepo struct {
	db *DbDao
}

func NewOrderRepo(db *DbDao) *OrderRepo {
	return &OrderRepo{db: db}
}

// Create - 創建訂單
func (s *OrderRepo) CreateOrder(ctx context.Context, order *model.Order) error {
	return s.db.WithContext(ctx).Create(order).Error
}

// Read - 以訂單編號查詢 (admin用, 不限user)
func (s *OrderRepo) GetOrderByNumber(ctx context.Context, orderNumber string) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).Preload("Items").
		First(&order, "order_number = ?", orderNumber).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Read - 以訂單編號查詢, 限擁有者
func (s *OrderRepo) GetUserOrderByNumber(ctx context.Context, userUID, orderNumber string) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).Preload("Items").
		First(&order, "order_number = ? AND user_uid = ?", orderNumber, userUID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Read - 用戶訂單, 新到舊
func (s *OrderRepo) ListOrdersByUser(ctx context.Context, userUID string) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).Preload("Items").
		Where("user_uid = ?", userUID).
		Order("created_at desc").
		Find(&orders).Error
	return orders, err
}

// Read - 所有訂單, 可過濾狀態, 分頁
func (s *OrderRepo) ListAllOrders(ctx context.Context, status model.OrderStatus, page, limit int) ([]model.Order, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Order{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []model.Order
	err := query.Preload("Items").
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error
	return orders, total, err
}

// Update - 更新訂單
func (s *OrderRepo) UpdateOrder(ctx context.Context, order *model.Order) error {
	return s.db.WithContext(ctx).Save(order).Error
}
