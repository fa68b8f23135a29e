package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mukesh-on-github/Zyrokart/internal/infra/repository/db"
	"github.com/mukesh-on-github/Zyrokart/internal/model"
	"github.com/mukesh-on-github/Zyrokart/internal/pkg/apperr"
	"gorm.io/gorm"
)

var (
	ErrWishlistNotFound  = errors.New("wishlist not found")
	ErrItemNotInWishlist = errors.New("item not in wishlist")
)

const (
	suggestionLimit  = 10
	trendingBackfill = 5
)

type IWishlistService interface {
	GetWishlist(ctx context.Context, userUID string) (*model.Wishlist, error)
	AddItem(ctx context.Context, userUID string, productID uint, notes, priority string) (*model.Wishlist, error)
	RemoveItem(ctx context.Context, userUID string, productID uint) (*model.Wishlist, error)
	ClearWishlist(ctx context.Context, userUID string) error
	MoveToCart(ctx context.Context, userUID string, productID uint) (*CartView, error)
	GetSuggestions(ctx context.Context, userUID string) ([]model.Product, error)
}

type WishlistService struct {
	wishlistRepo db.IWishlistRepository
	productRepo  db.IProductRepository
	cartService  ICartService
}

func NewWishlistService(wishlistRepo db.IWishlistRepository, productRepo db.IProductRepository,
	cartService ICartService) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
		cartService:  cartService,
	}
}

func (s *WishlistService) getOrCreate(ctx context.Context, userUID string) (*model.Wishlist, error) {
	wishlist, err := s.wishlistRepo.GetWishlistByUser(ctx, userUID)
	if err == nil {
		return wishlist, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	wishlist = &model.Wishlist{UserUID: userUID, LastUpdated: time.Now()}
	if err := s.wishlistRepo.CreateWishlist(ctx, wishlist); err != nil {
		return nil, err
	}
	return wishlist, nil
}

func (s *WishlistService) GetWishlist(ctx context.Context, userUID string) (*model.Wishlist, error) {
	return s.getOrCreate(ctx, userUID)
}

// AddItem 加入願望清單
// 重複加入同商品只更新notes/priority, totalItemsAdded只在新商品時遞增
func (s *WishlistService) AddItem(ctx context.Context, userUID string, productID uint, notes, priority string) (*model.Wishlist, error) {
	if priority == "" {
		priority = string(model.PriorityMedium)
	}
	if !model.IsValidPriority(priority) {
		return nil, apperr.Newf(apperr.BadRequestCode, "invalid priority: %s", priority)
	}
	if len(notes) > 200 {
		return nil, apperr.New(apperr.BadRequestCode, "notes can not exceed 200 characters")
	}

	if _, err := s.productRepo.GetProductByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.NotFoundCode, "product not found", ErrProductNotFound)
		}
		return nil, err
	}

	wishlist, err := s.getOrCreate(ctx, userUID)
	if err != nil {
		return nil, err
	}

	isNew := wishlist.FindItem(productID) == nil
	item := &model.WishlistItem{
		WishlistID: wishlist.WishlistID,
		ProductID:  productID,
		Notes:      notes,
		Priority:   model.WishlistPriority(priority),
		AddedAt:    time.Now(),
	}
	if err := s.wishlistRepo.UpsertItem(ctx, item); err != nil {
		return nil, err
	}

	if isNew {
		wishlist.TotalItemsAdded++
	}
	wishlist.LastUpdated = time.Now()
	if err := s.wishlistRepo.UpdateWishlistMeta(ctx, wishlist); err != nil {
		return nil, err
	}

	return s.wishlistRepo.GetWishlistByUser(ctx, userUID)
}

func (s *WishlistService) RemoveItem(ctx context.Context, userUID string, productID uint) (*model.Wishlist, error) {
	wishlist, err := s.wishlistRepo.GetWishlistByUser(ctx, userUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.NotFoundCode, "wishlist not found", ErrWishlistNotFound)
		}
		return nil, err
	}

	if wishlist.FindItem(productID) == nil {
		return nil, apperr.Wrap(apperr.NotFoundCode, "item not in wishlist", ErrItemNotInWishlist)
	}

	if err := s.wishlistRepo.DeleteItem(ctx, wishlist.WishlistID, productID); err != nil {
		return nil, err
	}

	wishlist.LastUpdated = time.Now()
	if err := s.wishlistRepo.UpdateWishlistMeta(ctx, wishlist); err != nil {
		return nil, err
	}

	return s.wishlistRepo.GetWishlistByUser(ctx, userUID)
}

func (s *WishlistService) ClearWishlist(ctx context.Context, userUID string) error {
	wishlist, err := s.wishlistRepo.GetWishlistByUser(ctx, userUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return s.wishlistRepo.ClearWishlist(ctx, wishlist.WishlistID)
}

// MoveToCart 移入購物車後從願望清單移除, 並計入itemsPurchased
// 加入購物車失敗(缺貨等)時商品留在願望清單
func (s *WishlistService) MoveToCart(ctx context.Context, userUID string, productID uint) (*CartView, error) {
	wishlist, err := s.wishlistRepo.GetWishlistByUser(ctx, userUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.NotFoundCode, "wishlist not found", ErrWishlistNotFound)
		}
		return nil, err
	}
	if wishlist.FindItem(productID) == nil {
		return nil, apperr.Wrap(apperr.NotFoundCode, "item not in wishlist", ErrItemNotInWishlist)
	}

	view, err := s.cartService.AddItem(ctx, userUID, productID, 1)
	if err != nil {
		return nil, err
	}

	if err := s.wishlistRepo.DeleteItem(ctx, wishlist.WishlistID, productID); err != nil {
		return nil, err
	}
	wishlist.ItemsPurchased++
	wishlist.LastUpdated = time.Now()
	if err := s.wishlistRepo.UpdateWishlistMeta(ctx, wishlist); err != nil {
		return nil, err
	}

	return view, nil
}

// GetSuggestions 兩段式推薦
// 先找願望清單同分類的高評分商品, 不足再用熱門商品補滿
func (s *WishlistService) GetSuggestions(ctx context.Context, userUID string) ([]model.Product, error) {
	wishlist, err := s.wishlistRepo.GetWishlistByUser(ctx, userUID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var owned []uint
	categorySet := map[string]struct{}{}
	if wishlist != nil {
		owned = wishlist.ProductIDs()
		for _, id := range owned {
			product, err := s.productRepo.GetProductByID(ctx, id)
			if err != nil {
				continue
			}
			if product.Category != "" {
				categorySet[product.Category] = struct{}{}
			}
		}
	}

	suggestions := make([]model.Product, 0, suggestionLimit)
	if len(categorySet) > 0 {
		categories := make([]string, 0, len(categorySet))
		for c := range categorySet {
			categories = append(categories, c)
		}
		related, err := s.productRepo.ListByCategories(ctx, categories, owned, suggestionLimit)
		if err != nil {
			return nil, fmt.Errorf("list related products: %w", err)
		}
		suggestions = append(suggestions, related...)
	}

	if len(suggestions) < trendingBackfill {
		exclude := append([]uint{}, owned...)
		for _, p := range suggestions {
			exclude = append(exclude, p.ProductID)
		}
		trending, err := s.productRepo.ListTrending(ctx, exclude, trendingBackfill)
		if err != nil {
			return nil, fmt.Errorf("list trending products: %w", err)
		}
		suggestions = append(suggestions, trending...)
	}

	return suggestions, nil
}
