package db

import (
	"context"
	"time"

	"github.com/mukesh-on-github/Zyrokart/internal/model"
	"gorm.io/gorm/clause"
)

type IWishlistRepository interface {
	CreateWishlist(ctx context.Context, wishlist *model.Wishlist) error
	GetWishlistByUser(ctx context.Context, userUID string) (*model.Wishlist, error)
	UpsertItem(ctx context.Context, item *model.WishlistItem) error
	DeleteItem(ctx context.Context, wishlistID, productID uint) error
	ClearWishlist(ctx context.Context, wishlistID uint) error
	UpdateWishlistMeta(ctx context.Context, wishlist *model.Wishlist) error
}

type WishlistRepo struct {
	db *DbDao
}

func NewWishlistRepo(db *DbDao) *WishlistRepo {
	return &WishlistRepo{db: db}
}

func (s *WishlistRepo) CreateWishlist(ctx context.Context, wishlist *model.Wishlist) error {
	return s.db.WithContext(ctx).Create(wishlist).Error
}

func (s *WishlistRepo) GetWishlistByUser(ctx context.Context, userUID string) (*model.Wishlist, error) {
	var wishlist model.Wishlist
	err := s.db.WithContext(ctx).Preload("Items").
		First(&wishlist, "user_uid = ?", userUID).Error
	if err != nil {
		return nil, err
	}
	return &wishlist, nil
}

// UpsertItem 同商品重複加入時更新notes/priority並刷新addedAt (置頂)
func (s *WishlistRepo) UpsertItem(ctx context.Context, item *model.WishlistItem) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "wishlist_id"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"notes", "priority", "added_at"}),
	}).Create(item).Error
}

// DeleteItem 冪等
func (s *WishlistRepo) DeleteItem(ctx context.Context, wishlistID, productID uint) error {
	return s.db.WithContext(ctx).
		Where("wishlist_id = ? AND product_id = ?", wishlistID, productID).
		Delete(&model.WishlistItem{}).Error
}

func (s *WishlistRepo) ClearWishlist(ctx context.Context, wishlistID uint) error {
	if err := s.db.WithContext(ctx).
		Where("wishlist_id = ?", wishlistID).
		Delete(&model.WishlistItem{}).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&model.Wishlist{}).
		Where("wishlist_id = ?", wishlistID).
		Update("last_updated", time.Now()).Error
}

func (s *WishlistRepo) UpdateWishlistMeta(ctx context.Context, wishlist *model.Wishlist) error {
	return s.db.WithContext(ctx).Model(&model.Wishlist{}).
		Where("wishlist_id = ?", wishlist.WishlistID).
		Updates(map[string]any{
			"is_public":         wishlist.IsPublic,
			"total_items_added": wishlist.TotalItemsAdded,
			"items_purchased":   wishlist.ItemsPurchased,
			"last_updated":      wishlist.LastUpdated,
		}).Error
}
