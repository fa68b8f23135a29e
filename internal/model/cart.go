package model

import (
	"time"

	"github.com/mukesh-on-github/Zyrokart/internal/constants"
	"github.com/shopspring/decimal"
)

// 購物車聚合
// 一個user只會有一台購物車, 第一次存取時lazy建立
// item內的price/name/image/stock是加入當下的快照, 不跟著商品異動
type Cart struct {
	CartID  uint       `gorm:"primaryKey" json:"cartId"`
	UserUID string     `gorm:"not null;type:varchar(128);uniqueIndex" json:"userUid"`
	Items   []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	// coupon折扣數值, 一律當百分比使用 (含WELCOME50, 與原始行為一致)
	CouponCode     string          `gorm:"type:varchar(50)" json:"couponCode"`
	CouponDiscount decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"couponDiscount"`
	Total          decimal.Decimal `gorm:"not null;type:decimal(10,2);default:0" json:"total"`
	LastUpdated    time.Time       `gorm:"not null;default:now()" json:"lastUpdated"`
	BaseModel
}

// 同一商品在購物車內只會有一列, 以(cart_id, product_id)唯一鍵約束upsert
type CartItem struct {
	CartItemID uint            `gorm:"primaryKey" json:"-"`
	CartID     uint            `gorm:"not null;uniqueIndex:idx_cart_product" json:"-"`
	ProductID  uint            `gorm:"not null;uniqueIndex:idx_cart_product" json:"productId"`
	Quantity   int             `gorm:"not null;check:quantity >= 1" json:"quantity"`
	Price      decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
	Name       string          `gorm:"not null;type:varchar(255)" json:"name"`
	Image      string          `gorm:"type:varchar(500)" json:"image"`
	// 加入當下的商品庫存快照
	Stock int `gorm:"not null" json:"stock"`
}

type CartTotals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	Discount    decimal.Decimal `json:"discount"`
	ShippingFee decimal.Decimal `json:"shippingFee"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
}

// FindItem 以商品ID找line item, 找不到回傳nil
func (c *Cart) FindItem(productID uint) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// Totals 計算購物車金額, 純函式不寫回欄位
// subtotal = Σ(price*quantity)
// discount = subtotal * coupon / 100
// shipping: 小計超過500免運, 否則固定40
// tax = round((subtotal - discount) * 18%)
func (c *Cart) Totals() CartTotals {
	subtotal := decimal.Zero
	for _, item := range c.Items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	discount := decimal.Zero
	if c.CouponCode != "" && c.CouponDiscount.IsPositive() {
		discount = subtotal.Mul(c.CouponDiscount).Div(decimal.NewFromInt(100))
	}

	shippingFee := decimal.NewFromInt(constants.FlatShippingFee)
	if subtotal.GreaterThan(decimal.NewFromInt(constants.FreeShippingThreshold)) {
		shippingFee = decimal.Zero
	}

	taxBase := subtotal.Sub(discount)
	tax := taxBase.Mul(decimal.NewFromInt(constants.TaxRatePercent)).Div(decimal.NewFromInt(100)).Round(0)

	total := subtotal.Sub(discount).Add(shippingFee).Add(tax).Round(0)

	return CartTotals{
		Subtotal:    subtotal,
		Discount:    discount,
		ShippingFee: shippingFee,
		Tax:         tax,
		Total:       total,
	}
}

// Clear 清空item與coupon, 歸零total
func (c *Cart) Clear() {
	c.Items = nil
	c.CouponCode = ""
	c.CouponDiscount = decimal.Zero
	c.Total = decimal.Zero
	c.LastUpdated = time.Now()
}
