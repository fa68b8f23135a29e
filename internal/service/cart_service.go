package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mukesh-on-github/Zyrokart/internal/infra/repository/db"
	"github.com/mukesh-on-github/Zyrokart/internal/model"
	"github.com/mukesh-on-github/Zyrokart/internal/pkg/apperr"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrCartNotFound      = errors.New("cart not found")
	ErrItemNotInCart     = errors.New("item not in cart")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidCoupon     = errors.New("invalid coupon code")
)

// 已知coupon, 數值一律當百分比套用 (含WELCOME50, 與原始行為一致)
var knownCoupons = map[string]decimal.Decimal{
	"ZYRO10":    decimal.NewFromInt(10),
	"WELCOME50": decimal.NewFromInt(50),
}

// CartView 回給handler的聚合+試算
type CartView struct {
	Cart   *model.Cart      `json:"cart"`
	Totals model.CartTotals `json:"totals"`
}

type ICartService interface {
	GetCart(ctx context.Context, userUID string) (*CartView, error)
	AddItem(ctx context.Context, userUID string, productID uint, quantity int) (*CartView, error)
	UpdateItem(ctx context.Context, userUID string, productID uint, quantity int) (*CartView, error)
	RemoveItem(ctx context.Context, userUID string, productID uint) (*CartView, error)
	ApplyCoupon(ctx context.Context, userUID, code string) (*CartView, error)
	RemoveCoupon(ctx context.Context, userUID string) (*CartView, error)
	ClearCart(ctx context.Context, userUID string) error
	GetTotals(ctx context.Context, userUID string) (model.CartTotals, error)
}

type CartService struct {
	cartRepo    db.ICartRepository
	productRepo db.IProductRepository
}

func NewCartService(cartRepo db.ICartRepository, productRepo db.IProductRepository) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo}
}

// getOrCreate 第一次存取時lazy建立購物車
func (s *CartService) getOrCreate(ctx context.Context, userUID string) (*model.Cart, error) {
	cart, err := s.cartRepo.GetCartByUser(ctx, userUID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = &model.Cart{UserUID: userUID, LastUpdated: time.Now()}
	if err := s.cartRepo.CreateCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// refresh 重新載入聚合, 重算totals並把total寫回 (totals本身是純函式)
func (s *CartService) refresh(ctx context.Context, userUID string) (*CartView, error) {
	cart, err := s.cartRepo.GetCartByUser(ctx, userUID)
	if err != nil {
		return nil, err
	}

	totals := cart.Totals()
	cart.Total = totals.Total
	cart.LastUpdated = time.Now()
	if err := s.cartRepo.UpdateCartMeta(ctx, cart); err != nil {
		return nil, err
	}

	return &CartView{Cart: cart, Totals: totals}, nil
}

func (s *CartService) GetCart(ctx context.Context, userUID string) (*CartView, error) {
	if _, err := s.getOrCreate(ctx, userUID); err != nil {
		return nil, err
	}
	return s.refresh(ctx, userUID)
}

// AddItem 加入商品
// 商品已在購物車時累加數量, 累加後的數量仍要過live庫存檢查
// 成功時寫入加入當下的price/name/image/stock快照
func (s *CartService) AddItem(ctx context.Context, userUID string, productID uint, quantity int) (*CartView, error) {
	if quantity < 1 {
		return nil, apperr.Wrap(apperr.BadRequestCode, "quantity must be at least 1", ErrInvalidQuantity)
	}

	product, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.NotFoundCode, "product not found", ErrProductNotFound)
		}
		return nil, err
	}

	if product.Stock < quantity {
		return nil, apperr.Wrap(apperr.BadRequestCode,
			fmt.Sprintf("insufficient stock, only %d left", product.Stock), ErrInsufficientStock)
	}

	cart, err := s.getOrCreate(ctx, userUID)
	if err != nil {
		return nil, err
	}

	newQuantity := quantity
	if existing := cart.FindItem(productID); existing != nil {
		newQuantity = existing.Quantity + quantity
		if newQuantity > product.Stock {
			return nil, apperr.Wrap(apperr.BadRequestCode,
				fmt.Sprintf("cannot add more, you have %d in cart, only %d available", existing.Quantity, product.Stock),
				ErrInsufficientStock)
		}
	}

	item := &model.CartItem{
		CartID:    cart.CartID,
		ProductID: productID,
		Quantity:  newQuantity,
		Price:     product.Price,
		Name:      product.Name,
		Image:     product.MainImage(),
		Stock:     product.Stock,
	}
	if err := s.cartRepo.UpsertItem(ctx, item); err != nil {
		return nil, err
	}

	return s.refresh(ctx, userUID)
}

// UpdateItem 改數量, 重新對live庫存檢查, 不看快照
func (s *CartService) UpdateItem(ctx context.Context, userUID string, productID uint, quantity int) (*CartView, error) {
	if quantity < 1 {
		return nil, apperr.Wrap(apperr.BadRequestCode, "quantity must be at least 1", ErrInvalidQuantity)
	}

	cart, err := s.cartRepo.GetCartByUser(ctx, userUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.NotFoundCode, "cart not found", ErrCartNotFound)
		}
		return nil, err
	}

	if cart.FindItem(productID) == nil {
		return nil, apperr.Wrap(apperr.NotFoundCode, "item not in cart", ErrItemNotInCart)
	}

	product, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.NotFoundCode, "product not found", ErrProductNotFound)
		}
		return nil, err
	}
	if quantity > product.Stock {
		return nil, apperr.Wrap(apperr.BadRequestCode,
			fmt.Sprintf("only %d items available", product.Stock), ErrInsufficientStock)
	}

	if err := s.cartRepo.UpdateItemQuantity(ctx, cart.CartID, productID, quantity); err != nil {
		return nil, err
	}

	return s.refresh(ctx, userUID)
}

// RemoveItem 冪等, 商品本來就不在購物車也不算錯
func (s *CartService) RemoveItem(ctx context.Context, userUID string, productID uint) (*CartView, error) {
	cart, err := s.cartRepo.GetCartByUser(ctx, userUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.NotFoundCode, "cart not found", ErrCartNotFound)
		}
		return nil, err
	}

	if err := s.cartRepo.DeleteItem(ctx, cart.CartID, productID); err != nil {
		return nil, err
	}

	return s.refresh(ctx, userUID)
}

func (s *CartService) ApplyCoupon(ctx context.Context, userUID, code string) (*CartView, error) {
	canonical := strings.ToUpper(code)
	discount, ok := knownCoupons[canonical]
	if !ok {
		return nil, apperr.Wrap(apperr.BadRequestCode, "invalid coupon code", ErrInvalidCoupon)
	}

	cart, err := s.cartRepo.GetCartByUser(ctx, userUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.NotFoundCode, "cart is empty", ErrCartNotFound)
		}
		return nil, err
	}

	cart.CouponCode = canonical
	cart.CouponDiscount = discount
	cart.LastUpdated = time.Now()
	if err := s.cartRepo.UpdateCartMeta(ctx, cart); err != nil {
		return nil, err
	}

	return s.refresh(ctx, userUID)
}

func (s *CartService) RemoveCoupon(ctx context.Context, userUID string) (*CartView, error) {
	cart, err := s.cartRepo.GetCartByUser(ctx, userUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.NotFoundCode, "cart not found", ErrCartNotFound)
		}
		return nil, err
	}

	cart.CouponCode = ""
	cart.CouponDiscount = decimal.Zero
	cart.LastUpdated = time.Now()
	if err := s.cartRepo.UpdateCartMeta(ctx, cart); err != nil {
		return nil, err
	}

	return s.refresh(ctx, userUID)
}

// ClearCart 購物車不存在時視為已清空
func (s *CartService) ClearCart(ctx context.Context, userUID string) error {
	cart, err := s.cartRepo.GetCartByUser(ctx, userUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return s.cartRepo.ClearCart(ctx, cart.CartID)
}

func (s *CartService) GetTotals(ctx context.Context, userUID string) (model.CartTotals, error) {
	cart, err := s.cartRepo.GetCartByUser(ctx, userUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.CartTotals{
				Subtotal:    decimal.Zero,
				Discount:    decimal.Zero,
				ShippingFee: decimal.Zero,
				Tax:         decimal.Zero,
				Total:       decimal.Zero,
			}, nil
		}
		return model.CartTotals{}, err
	}
	return cart.Totals(), nil
}
