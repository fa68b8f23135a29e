package db

import (
	"github.com/mukesh-on-github/Zyrokart/internal/model"
	"gorm.io/gorm"
)

type DbDao struct {
	*gorm.DB
}

func NewDbDao(conn *gorm.DB) *DbDao {
	return &DbDao{
		DB: conn,
	}
}

// 初始化db schema
// 冪等性
func (d *DbDao) InitMigrate() error {
	// 訂單/付款取號用sequence, count(*)取號在並發下會重號
	if err := d.Exec("CREATE SEQUENCE IF NOT EXISTS order_number_seq").Error; err != nil {
		return err
	}
	if err := d.Exec("CREATE SEQUENCE IF NOT EXISTS payment_number_seq").Error; err != nil {
		return err
	}

	return d.AutoMigrate(
		&model.User{},
		&model.LoyaltyEntry{},
		&model.Category{},
		&model.Product{},
		&model.ProductImage{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
		&model.Wishlist{},
		&model.WishlistItem{},
		&model.Address{},
	)
}
