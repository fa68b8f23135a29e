package service

import (
	"context"
	"testing"

	"github.com/mukesh-on-github/Zyrokart/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type WishlistServiceTestSuite struct {
	suite.Suite
	ctx             context.Context
	products        *fakeProductRepo
	carts           *fakeCartRepo
	wishlists       *fakeWishlistRepo
	wishlistService *WishlistService
}

func (s *WishlistServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.products = newFakeProductRepo()
	s.carts = newFakeCartRepo()
	s.wishlists = newFakeWishlistRepo()
	cartService := NewCartService(s.carts, s.products)
	s.wishlistService = NewWishlistService(s.wishlists, s.products, cartService)

	s.products.seed(model.Product{ProductID: 1, Name: "Oversized Tee", Category: "tops",
		Price: decimal.NewFromInt(300), Stock: 5})
	s.products.seed(model.Product{ProductID: 2, Name: "Sold Out Hoodie", Category: "tops",
		Price: decimal.NewFromInt(500), Stock: 0})
	s.products.seed(model.Product{ProductID: 3, Name: "Graphic Tee", Category: "tops",
		Price: decimal.NewFromInt(250), Stock: 9})
	s.products.seed(model.Product{ProductID: 4, Name: "Sneakers", Category: "shoes",
		Price: decimal.NewFromInt(900), Stock: 4, Trending: true})
}

func (s *WishlistServiceTestSuite) TestAddItemDefaultsPriority() {
	wishlist, err := s.wishlistService.AddItem(s.ctx, "user-1", 1, "", "")

	require.NoError(s.T(), err)
	require.Len(s.T(), wishlist.Items, 1)
	require.Equal(s.T(), model.PriorityMedium, wishlist.Items[0].Priority)
	require.Equal(s.T(), 1, wishlist.TotalItemsAdded)
}

func (s *WishlistServiceTestSuite) TestAddSameItemTwiceOnlyUpdates() {
	_, err := s.wishlistService.AddItem(s.ctx, "user-1", 1, "", "low")
	require.NoError(s.T(), err)

	wishlist, err := s.wishlistService.AddItem(s.ctx, "user-1", 1, "birthday gift", "high")

	require.NoError(s.T(), err)
	require.Len(s.T(), wishlist.Items, 1, "同商品不可重複成列")
	require.Equal(s.T(), model.PriorityHigh, wishlist.Items[0].Priority)
	require.Equal(s.T(), "birthday gift", wishlist.Items[0].Notes)
	require.Equal(s.T(), 1, wishlist.TotalItemsAdded, "重複加入不累計totalItemsAdded")
}

func (s *WishlistServiceTestSuite) TestAddItemRejectsLongNotes() {
	long := make([]byte, 201)
	for i := range long {
		long[i] = 'x'
	}

	_, err := s.wishlistService.AddItem(s.ctx, "user-1", 1, string(long), "")

	require.Error(s.T(), err)
}

func (s *WishlistServiceTestSuite) TestAddItemUnknownProduct() {
	_, err := s.wishlistService.AddItem(s.ctx, "user-1", 999, "", "")

	require.ErrorIs(s.T(), err, ErrProductNotFound)
}

func (s *WishlistServiceTestSuite) TestRemoveItemNotInWishlist() {
	_, err := s.wishlistService.AddItem(s.ctx, "user-1", 1, "", "")
	require.NoError(s.T(), err)

	_, err = s.wishlistService.RemoveItem(s.ctx, "user-1", 3)

	require.ErrorIs(s.T(), err, ErrItemNotInWishlist)
}

func (s *WishlistServiceTestSuite) TestMoveToCart() {
	_, err := s.wishlistService.AddItem(s.ctx, "user-1", 1, "", "")
	require.NoError(s.T(), err)

	view, err := s.wishlistService.MoveToCart(s.ctx, "user-1", 1)

	require.NoError(s.T(), err)
	require.Len(s.T(), view.Cart.Items, 1)
	require.Equal(s.T(), 1, view.Cart.Items[0].Quantity, "固定數量1移入購物車")

	wishlist, getErr := s.wishlistService.GetWishlist(s.ctx, "user-1")
	require.NoError(s.T(), getErr)
	require.Empty(s.T(), wishlist.Items, "移入成功後從願望清單移除")
	require.Equal(s.T(), 1, wishlist.ItemsPurchased)
}

func (s *WishlistServiceTestSuite) TestMoveToCartOutOfStockKeepsItem() {
	_, err := s.wishlistService.AddItem(s.ctx, "user-1", 2, "", "")
	require.NoError(s.T(), err)

	_, err = s.wishlistService.MoveToCart(s.ctx, "user-1", 2)

	require.ErrorIs(s.T(), err, ErrInsufficientStock)
	wishlist, getErr := s.wishlistService.GetWishlist(s.ctx, "user-1")
	require.NoError(s.T(), getErr)
	require.Len(s.T(), wishlist.Items, 1, "缺貨時商品留在願望清單")
	require.Equal(s.T(), 0, wishlist.ItemsPurchased)
}

func (s *WishlistServiceTestSuite) TestSuggestionsRelatedThenTrending() {
	_, err := s.wishlistService.AddItem(s.ctx, "user-1", 1, "", "")
	require.NoError(s.T(), err)

	suggestions, err := s.wishlistService.GetSuggestions(s.ctx, "user-1")

	require.NoError(s.T(), err)
	ids := map[uint]bool{}
	for _, p := range suggestions {
		ids[p.ProductID] = true
	}
	require.False(s.T(), ids[1], "已在願望清單的商品不可再推薦")
	require.True(s.T(), ids[2] && ids[3], "先推同分類商品")
	require.True(s.T(), ids[4], "不足時用熱門商品補滿")
}

func (s *WishlistServiceTestSuite) TestSuggestionsForEmptyWishlist() {
	suggestions, err := s.wishlistService.GetSuggestions(s.ctx, "user-1")

	require.NoError(s.T(), err)
	for _, p := range suggestions {
		require.True(s.T(), p.Trending, "沒有願望清單時只回熱門商品")
	}
}

func TestWishlistServiceSuite(t *testing.T) {
	suite.Run(t, new(WishlistServiceTestSuite))
}
