package model

import (
	"time"
)

type WishlistPriority string

const (
	PriorityLow    WishlistPriority = "low"
	PriorityMedium WishlistPriority = "medium"
	PriorityHigh   WishlistPriority = "high"
)

func IsValidPriority(p string) bool {
	switch WishlistPriority(p) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// 願望清單, 一個user一份, lazy建立
type Wishlist struct {
	WishlistID  uint           `gorm:"primaryKey" json:"wishlistId"`
	UserUID     string         `gorm:"not null;type:varchar(128);uniqueIndex" json:"userUid"`
	Items       []WishlistItem `gorm:"foreignKey:WishlistID;constraint:OnDelete:CASCADE" json:"items"`
	IsPublic    bool           `gorm:"not null;default:false" json:"isPublic"`
	LastUpdated time.Time      `gorm:"not null;default:now()" json:"lastUpdated"`
	// 累計加入次數, 給社群購物功能用的輕量計數
	TotalItemsAdded int `gorm:"not null;default:0" json:"totalItemsAdded"`
	ItemsPurchased  int `gorm:"not null;default:0" json:"itemsPurchased"`
	BaseModel
}

type WishlistItem struct {
	WishlistItemID uint             `gorm:"primaryKey" json:"-"`
	WishlistID     uint             `gorm:"not null;uniqueIndex:idx_wishlist_product" json:"-"`
	ProductID      uint             `gorm:"not null;uniqueIndex:idx_wishlist_product" json:"productId"`
	Notes          string           `gorm:"type:varchar(200)" json:"notes"`
	Priority       WishlistPriority `gorm:"not null;type:varchar(10);default:'medium'" json:"priority"`
	AddedAt        time.Time        `gorm:"not null;default:now()" json:"addedAt"`
}

// FindItem 以商品ID找item, 找不到回傳nil
func (w *Wishlist) FindItem(productID uint) *WishlistItem {
	for i := range w.Items {
		if w.Items[i].ProductID == productID {
			return &w.Items[i]
		}
	}
	return nil
}

// ProductIDs 目前清單內所有商品ID
func (w *Wishlist) ProductIDs() []uint {
	ids := make([]uint, 0, len(w.Items))
	for _, item := range w.Items {
		ids = append(ids, item.ProductID)
	}
	return ids
}
