package db

import (
	"context"
	"time"

	"github.com/mukesh-on-github/Zyrokart/internal/model"
	"gorm.io/gorm/clause"
)

type ICartRepository interface {
	CreateCart(ctx context.Context, cart *model.Cart) error
	GetCartByUser(ctx context.Context, userUID string) (*model.Cart, error)
	UpsertItem(ctx context.Context, item *model.CartItem) error
	UpdateItemQuantity(ctx context.Context, cartID, productID uint, quantity int) error
	DeleteItem(ctx context.Context, cartID, productID uint) error
	ClearCart(ctx context.Context, cartID uint) error
	UpdateCartMeta(ctx context.Context, cart *model.Cart) error
}

type CartRepo struct {
	db *DbDao
}

func NewCartRepo(db *DbDao) *CartRepo {
	return &CartRepo{db: db}
}

func (s *CartRepo) CreateCart(ctx context.Context, cart *model.Cart) error {
	return s.db.WithContext(ctx).Create(cart).Error
}

func (s *CartRepo) GetCartByUser(ctx context.Context, userUID string) (*model.Cart, error) {
	var cart model.Cart
	err := s.db.WithContext(ctx).Preload("Items").First(&cart, "user_uid = ?", userUID).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpsertItem 以(cart_id, product_id)為鍵upsert line item
// 統一upsert語意, 不用每個操作各自掃list找同商品
func (s *CartRepo) UpsertItem(ctx context.Context, item *model.CartItem) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"quantity", "price", "name", "image", "stock",
		}),
	}).Create(item).Error
}

func (s *CartRepo) UpdateItemQuantity(ctx context.Context, cartID, productID uint, quantity int) error {
	return s.db.WithContext(ctx).Model(&model.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Update("quantity", quantity).Error
}

// DeleteItem 冪等, item不存在也不算錯
func (s *CartRepo) DeleteItem(ctx context.Context, cartID, productID uint) error {
	return s.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&model.CartItem{}).Error
}

func (s *CartRepo) ClearCart(ctx context.Context, cartID uint) error {
	if err := s.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&model.CartItem{}).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&model.Cart{}).
		Where("cart_id = ?", cartID).
		Updates(map[string]any{
			"coupon_code":     "",
			"coupon_discount": 0,
			"total":           0,
			"last_updated":    time.Now(),
		}).Error
}

// UpdateCartMeta 更新coupon/total/lastUpdated等純量欄位, 不動items
func (s *CartRepo) UpdateCartMeta(ctx context.Context, cart *model.Cart) error {
	return s.db.WithContext(ctx).Model(&model.Cart{}).
		Where("cart_id = ?", cart.CartID).
		Updates(map[string]any{
			"coupon_code":     cart.CouponCode,
			"coupon_discount": cart.CouponDiscount,
			"total":           cart.Total,
			"last_updated":    cart.LastUpdated,
		}).Error
}
