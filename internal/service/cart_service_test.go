package service

import (
	"context"
	"testing"

	"github.com/mukesh-on-github/Zyrokart/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CartServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	products    *fakeProductRepo
	carts       *fakeCartRepo
	cartService *CartService
}

func (s *CartServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.products = newFakeProductRepo()
	s.carts = newFakeCartRepo()
	s.cartService = NewCartService(s.carts, s.products)

	s.products.seed(model.Product{ProductID: 1, Name: "Oversized Tee", Price: decimal.NewFromInt(300), Stock: 5,
		Images: []model.ProductImage{{URL: "https://cdn.example.com/tee.jpg"}}})
	s.products.seed(model.Product{ProductID: 2, Name: "Cargo Pants", Price: decimal.NewFromInt(150), Stock: 2})
}

func (s *CartServiceTestSuite) TestAddItemCreatesCartLazily() {
	view, err := s.cartService.AddItem(s.ctx, "user-1", 1, 2)

	require.NoError(s.T(), err)
	require.Len(s.T(), view.Cart.Items, 1)
	require.Equal(s.T(), 2, view.Cart.Items[0].Quantity)
	require.Equal(s.T(), "Oversized Tee", view.Cart.Items[0].Name, "要存加入當下的商品快照")
	require.Equal(s.T(), "https://cdn.example.com/tee.jpg", view.Cart.Items[0].Image)
	require.True(s.T(), view.Totals.Subtotal.Equal(decimal.NewFromInt(600)))
}

func (s *CartServiceTestSuite) TestAddItemAccumulatesQuantity() {
	_, err := s.cartService.AddItem(s.ctx, "user-1", 1, 2)
	require.NoError(s.T(), err)

	view, err := s.cartService.AddItem(s.ctx, "user-1", 1, 3)

	require.NoError(s.T(), err)
	require.Len(s.T(), view.Cart.Items, 1, "同商品只能有一列")
	require.Equal(s.T(), 5, view.Cart.Items[0].Quantity)
}

func (s *CartServiceTestSuite) TestAddItemRejectsOverStock() {
	_, err := s.cartService.AddItem(s.ctx, "user-1", 2, 3)

	require.ErrorIs(s.T(), err, ErrInsufficientStock)
}

func (s *CartServiceTestSuite) TestAddItemAccumulationRecheckedAgainstStock() {
	_, err := s.cartService.AddItem(s.ctx, "user-1", 2, 2)
	require.NoError(s.T(), err)

	_, err = s.cartService.AddItem(s.ctx, "user-1", 2, 1)
	require.ErrorIs(s.T(), err, ErrInsufficientStock, "累加後超過庫存要擋下")

	view, err := s.cartService.GetCart(s.ctx, "user-1")
	require.NoError(s.T(), err)
	require.Equal(s.T(), 2, view.Cart.Items[0].Quantity, "失敗的加入不可改動購物車")
}

func (s *CartServiceTestSuite) TestAddItemUnknownProduct() {
	_, err := s.cartService.AddItem(s.ctx, "user-1", 999, 1)

	require.ErrorIs(s.T(), err, ErrProductNotFound)
}

func (s *CartServiceTestSuite) TestAddItemInvalidQuantity() {
	_, err := s.cartService.AddItem(s.ctx, "user-1", 1, 0)

	require.ErrorIs(s.T(), err, ErrInvalidQuantity)
}

func (s *CartServiceTestSuite) TestUpdateItemQuantity() {
	_, err := s.cartService.AddItem(s.ctx, "user-1", 1, 1)
	require.NoError(s.T(), err)

	view, err := s.cartService.UpdateItem(s.ctx, "user-1", 1, 4)

	require.NoError(s.T(), err)
	require.Equal(s.T(), 4, view.Cart.Items[0].Quantity)
}

func (s *CartServiceTestSuite) TestUpdateItemNotInCart() {
	_, err := s.cartService.AddItem(s.ctx, "user-1", 1, 1)
	require.NoError(s.T(), err)

	_, err = s.cartService.UpdateItem(s.ctx, "user-1", 2, 1)

	require.ErrorIs(s.T(), err, ErrItemNotInCart)
}

func (s *CartServiceTestSuite) TestRemoveItemIsIdempotent() {
	_, err := s.cartService.AddItem(s.ctx, "user-1", 1, 1)
	require.NoError(s.T(), err)

	view, err := s.cartService.RemoveItem(s.ctx, "user-1", 1)
	require.NoError(s.T(), err)
	require.Empty(s.T(), view.Cart.Items)

	// 再移除一次也不算錯
	_, err = s.cartService.RemoveItem(s.ctx, "user-1", 1)
	require.NoError(s.T(), err)
}

func (s *CartServiceTestSuite) TestApplyCouponCaseInsensitive() {
	_, err := s.cartService.AddItem(s.ctx, "user-1", 1, 2)
	require.NoError(s.T(), err)

	view, err := s.cartService.ApplyCoupon(s.ctx, "user-1", "zyro10")

	require.NoError(s.T(), err)
	require.Equal(s.T(), "ZYRO10", view.Cart.CouponCode, "小寫輸入要存正規化大寫")
	require.True(s.T(), view.Totals.Discount.Equal(decimal.NewFromInt(60)), "600的10%應為60")
}

func (s *CartServiceTestSuite) TestApplyCouponTreatsFlatCodeAsPercent() {
	_, err := s.cartService.AddItem(s.ctx, "user-1", 1, 2)
	require.NoError(s.T(), err)

	view, err := s.cartService.ApplyCoupon(s.ctx, "user-1", "WELCOME50")

	require.NoError(s.T(), err)
	require.True(s.T(), view.Totals.Discount.Equal(decimal.NewFromInt(300)), "WELCOME50一律當50%折扣")
}

func (s *CartServiceTestSuite) TestApplyUnknownCoupon() {
	_, err := s.cartService.AddItem(s.ctx, "user-1", 1, 1)
	require.NoError(s.T(), err)

	_, err = s.cartService.ApplyCoupon(s.ctx, "user-1", "NOPE99")

	require.ErrorIs(s.T(), err, ErrInvalidCoupon)
}

func (s *CartServiceTestSuite) TestRemoveCoupon() {
	_, err := s.cartService.AddItem(s.ctx, "user-1", 1, 2)
	require.NoError(s.T(), err)
	_, err = s.cartService.ApplyCoupon(s.ctx, "user-1", "ZYRO10")
	require.NoError(s.T(), err)

	view, err := s.cartService.RemoveCoupon(s.ctx, "user-1")

	require.NoError(s.T(), err)
	require.Empty(s.T(), view.Cart.CouponCode)
	require.True(s.T(), view.Totals.Discount.Equal(decimal.Zero))
}

func (s *CartServiceTestSuite) TestClearCartWhenMissing() {
	require.NoError(s.T(), s.cartService.ClearCart(s.ctx, "no-such-user"), "不存在的購物車視為已清空")
}

func (s *CartServiceTestSuite) TestGetTotalsWithoutCart() {
	totals, err := s.cartService.GetTotals(s.ctx, "no-such-user")

	require.NoError(s.T(), err)
	require.True(s.T(), totals.Total.Equal(decimal.Zero), "沒有購物車時所有金額為零")
}

func TestCartServiceSuite(t *testing.T) {
	suite.Run(t, new(CartServiceTestSuite))
}
