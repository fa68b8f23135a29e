package model

import (
	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	ProductStatusActive     ProductStatus = "active"
	ProductStatusInactive   ProductStatus = "inactive"
	ProductStatusOutOfStock ProductStatus = "out_of_stock"
	ProductStatusArchived   ProductStatus = "archived"
)

func IsValidProductStatus(s string) bool {
	switch ProductStatus(s) {
	case ProductStatusActive, ProductStatusInactive, ProductStatusOutOfStock, ProductStatusArchived:
		return true
	default:
		return false
	}
}

type Product struct {
	ProductID   uint            `gorm:"primaryKey" json:"productId"`
	Name        string          `gorm:"not null;type:varchar(255)" json:"name"`
	Description string          `gorm:"not null;type:text" json:"description"`
	Price       decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
	// 折扣百分比 0~100
	Discount      int             `gorm:"not null;default:0" json:"discount"`
	Category      string          `gorm:"not null;type:varchar(100);index:idx_category_status" json:"category"`
	Brand         string          `gorm:"type:varchar(100)" json:"brand"`
	Stock         int             `gorm:"not null;default:0" json:"stock"`
	Status        ProductStatus   `gorm:"not null;type:varchar(20);default:'active';index:idx_category_status" json:"status"`
	Images        []ProductImage  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`
	Tags          []string        `gorm:"serializer:json;type:jsonb" json:"tags"`
	Featured      bool            `gorm:"not null;default:false" json:"featured"`
	Trending      bool            `gorm:"not null;default:false" json:"trending"`
	RatingAverage float64         `gorm:"not null;default:0" json:"ratingAverage"`
	RatingCount   int             `gorm:"not null;default:0" json:"ratingCount"`
	OrderItems    []OrderItem     `gorm:"foreignKey:ProductID" json:"-"`
	BaseModel
}

type ProductImage struct {
	ProductImageID uint   `gorm:"primaryKey" json:"-"`
	ProductID      uint   `gorm:"not null;index" json:"-"`
	URL            string `gorm:"not null;type:varchar(500)" json:"url"`
	Alt            string `gorm:"type:varchar(255)" json:"alt"`
}

// MainImage 取第一張圖當快照用, 沒有圖回傳空字串
func (p *Product) MainImage() string {
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return ""
}
