package db

import (
	"context"

	"github.com/mukesh-on-github/Zyrokart/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductFilter 商品列表過濾條件, 零值代表不過濾
type ProductFilter struct {
	Category string
	Brand    string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Featured *bool
	Trending *bool
	Status   model.ProductStatus
	Sort     string
	Page     int
	Limit    int
}

type IProductRepository interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	GetProductByID(ctx context.Context, id uint) (*model.Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error)
	SearchProducts(ctx context.Context, keyword string, page, limit int) ([]model.Product, int64, error)
	ListByCategories(ctx context.Context, categories []string, excludeIDs []uint, limit int) ([]model.Product, error)
	ListTrending(ctx context.Context, excludeIDs []uint, limit int) ([]model.Product, error)
	UpdateProduct(ctx context.Context, product *model.Product) error
	AdjustStock(ctx context.Context, productID uint, delta int) error
	ArchiveProduct(ctx context.Context, productID uint) error
}

type ProductRepo struct {
	db *DbDao
}

func NewProductRepo(db *DbDao) *ProductRepo {
	return &ProductRepo{db: db}
}

func (s *ProductRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Create(product).Error
}

func (s *ProductRepo) GetProductByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).Preload("Images").First(&product, "product_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

var productSortMap = map[string]string{
	"price-low":  "price asc",
	"price-high": "price desc",
	"newest":     "created_at desc",
	"popular":    "rating_average desc",
	"name":       "name asc",
}

func (s *ProductRepo) ListProducts(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Product{})

	status := filter.Status
	if status == "" {
		status = model.ProductStatusActive
	}
	query = query.Where("status = ?", status)

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Brand != "" {
		query = query.Where("brand ILIKE ?", "%"+filter.Brand+"%")
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", filter.MaxPrice)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}
	if filter.Trending != nil {
		query = query.Where("trending = ?", *filter.Trending)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := productSortMap[filter.Sort]
	if !ok {
		order = "created_at desc"
	}

	var products []model.Product
	err := query.Preload("Images").
		Order(order).
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&products).Error
	return products, total, err
}

// SearchProducts 以ILIKE比對name/description/tags
func (s *ProductRepo) SearchProducts(ctx context.Context, keyword string, page, limit int) ([]model.Product, int64, error) {
	pattern := "%" + keyword + "%"
	query := s.db.WithContext(ctx).Model(&model.Product{}).
		Where("status = ?", model.ProductStatusActive).
		Where("name ILIKE ? OR description ILIKE ? OR tags::text ILIKE ?", pattern, pattern, pattern)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []model.Product
	err := query.Preload("Images").
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&products).Error
	return products, total, err
}

// ListByCategories 同分類的active商品, 排除指定ID, 評分高優先再比新舊
func (s *ProductRepo) ListByCategories(ctx context.Context, categories []string, excludeIDs []uint, limit int) ([]model.Product, error) {
	query := s.db.WithContext(ctx).
		Where("category IN ?", categories).
		Where("status = ?", model.ProductStatusActive)
	if len(excludeIDs) > 0 {
		query = query.Where("product_id NOT IN ?", excludeIDs)
	}

	var products []model.Product
	err := query.Preload("Images").
		Order("rating_average desc, created_at desc").
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (s *ProductRepo) ListTrending(ctx context.Context, excludeIDs []uint, limit int) ([]model.Product, error) {
	query := s.db.WithContext(ctx).
		Where("trending = ?", true).
		Where("status = ?", model.ProductStatusActive)
	if len(excludeIDs) > 0 {
		query = query.Where("product_id NOT IN ?", excludeIDs)
	}

	var products []model.Product
	err := query.Preload("Images").Limit(limit).Find(&products).Error
	return products, err
}

func (s *ProductRepo) UpdateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Save(product).Error
}

// AdjustStock 庫存增減, 下單-n / 取消+n
// 單一商品的update本身原子, 跨多商品沒有transaction保護
func (s *ProductRepo) AdjustStock(ctx context.Context, productID uint, delta int) error {
	return s.db.WithContext(ctx).Model(&model.Product{}).
		Where("product_id = ?", productID).
		Update("stock", gorm.Expr("stock + ?", delta)).Error
}

func (s *ProductRepo) ArchiveProduct(ctx context.Context, productID uint) error {
	return s.db.WithContext(ctx).Model(&model.Product{}).
		Where("product_id = ?", productID).
		Update("status", model.ProductStatusArchived).Error
}
