package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func buildCart(items []CartItem) *Cart {
	return &Cart{CartID: 1, UserUID: "user-1", Items: items}
}

func TestTotalsNoCoupon(t *testing.T) {
	cart := buildCart([]CartItem{
		{ProductID: 1, Price: decimal.NewFromInt(300), Quantity: 2},
		{ProductID: 2, Price: decimal.NewFromInt(150), Quantity: 1},
	})

	totals := cart.Totals()

	require.True(t, totals.Subtotal.Equal(decimal.NewFromInt(750)), "小計應為750")
	require.True(t, totals.Discount.Equal(decimal.Zero))
	require.True(t, totals.ShippingFee.Equal(decimal.Zero), "小計超過500應免運")
	require.True(t, totals.Tax.Equal(decimal.NewFromInt(135)), "tax = round(750*0.18) = 135")
	require.True(t, totals.Total.Equal(decimal.NewFromInt(885)))
}

func TestTotalsWithPercentCoupon(t *testing.T) {
	cart := buildCart([]CartItem{
		{ProductID: 1, Price: decimal.NewFromInt(300), Quantity: 2},
		{ProductID: 2, Price: decimal.NewFromInt(150), Quantity: 1},
	})
	cart.CouponCode = "ZYRO10"
	cart.CouponDiscount = decimal.NewFromInt(10)

	totals := cart.Totals()

	require.True(t, totals.Discount.Equal(decimal.NewFromInt(75)), "discount = 750*10% = 75")
	// 運費門檻看原始小計, 不看折扣後金額
	require.True(t, totals.ShippingFee.Equal(decimal.Zero))
	require.True(t, totals.Tax.Equal(decimal.NewFromInt(122)), "tax = round(675*0.18) = 122")
	require.True(t, totals.Total.Equal(decimal.NewFromInt(797)))
}

func TestTotalsShippingBoundary(t *testing.T) {
	// 小計剛好500仍要收運費, 超過500才免運
	atThreshold := buildCart([]CartItem{{ProductID: 1, Price: decimal.NewFromInt(500), Quantity: 1}})
	require.True(t, atThreshold.Totals().ShippingFee.Equal(decimal.NewFromInt(40)))

	aboveThreshold := buildCart([]CartItem{{ProductID: 1, Price: decimal.NewFromInt(501), Quantity: 1}})
	require.True(t, aboveThreshold.Totals().ShippingFee.Equal(decimal.Zero))
}

func TestTotalsItemOrderIndependent(t *testing.T) {
	items := []CartItem{
		{ProductID: 1, Price: decimal.NewFromFloat(99.99), Quantity: 3},
		{ProductID: 2, Price: decimal.NewFromInt(10), Quantity: 1},
		{ProductID: 3, Price: decimal.NewFromFloat(0.5), Quantity: 7},
	}
	reversed := []CartItem{items[2], items[1], items[0]}

	require.True(t, buildCart(items).Totals().Total.Equal(buildCart(reversed).Totals().Total),
		"小計與順序無關")
}

func TestTotalsEmptyCart(t *testing.T) {
	totals := buildCart(nil).Totals()

	require.True(t, totals.Subtotal.Equal(decimal.Zero))
	require.True(t, totals.Total.Equal(decimal.NewFromInt(40)), "空購物車小計0, 仍落在運費門檻內")
}

func TestFindItem(t *testing.T) {
	cart := buildCart([]CartItem{
		{ProductID: 7, Quantity: 2},
	})

	require.NotNil(t, cart.FindItem(7))
	require.Nil(t, cart.FindItem(8))
}
