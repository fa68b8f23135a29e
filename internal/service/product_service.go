package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mukesh-on-github/Zyrokart/internal/constants"
	"github.com/mukesh-on-github/Zyrokart/internal/infra/repository/db"
	"github.com/mukesh-on-github/Zyrokart/internal/infra/repository/redis_repo"
	"github.com/mukesh-on-github/Zyrokart/internal/model"
	"github.com/mukesh-on-github/Zyrokart/internal/pkg/apperr"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var ErrInvalidProduct = errors.New("invalid product payload")

type IProductService interface {
	GetProduct(ctx context.Context, productID uint) (*model.Product, error)
	ListProducts(ctx context.Context, filter db.ProductFilter) ([]model.Product, int64, error)
	SearchProducts(ctx context.Context, keyword string, page, limit int) ([]model.Product, int64, error)
	ListTrending(ctx context.Context, limit int) ([]model.Product, error)
	CreateProduct(ctx context.Context, product *model.Product) error
	UpdateProduct(ctx context.Context, product *model.Product) error
	UpdateStock(ctx context.Context, productID uint, stock int) error
	ArchiveProduct(ctx context.Context, productID uint) error
}

type ProductService struct {
	productRepo db.IProductRepository
	cache       redis_repo.IProductCacheRepository
}

func NewProductService(productRepo db.IProductRepository, cache redis_repo.IProductCacheRepository) *ProductService {
	return &ProductService{productRepo: productRepo, cache: cache}
}

// GetProduct 商品明細走cache read-through
// cache掛掉只記log, 一律fallback到DB
func (s *ProductService) GetProduct(ctx context.Context, productID uint) (*model.Product, error) {
	if s.cache != nil {
		product, err := s.cache.GetProduct(ctx, productID)
		if err == nil {
			return product, nil
		}
		if !errors.Is(err, redis_repo.ErrCacheMiss) {
			log.Warn().Err(err).Uint("product_id", productID).Msg("product cache read failed")
		}
	}

	product, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.NotFoundCode, "product not found", ErrProductNotFound)
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetProduct(ctx, product); err != nil {
			log.Warn().Err(err).Uint("product_id", productID).Msg("product cache write failed")
		}
	}
	return product, nil
}

func (s *ProductService) ListProducts(ctx context.Context, filter db.ProductFilter) ([]model.Product, int64, error) {
	if filter.Page < 1 {
		filter.Page = constants.DefaultPage
	}
	if filter.Limit < 1 {
		filter.Limit = constants.DefaultPageSize
	}
	return s.productRepo.ListProducts(ctx, filter)
}

func (s *ProductService) SearchProducts(ctx context.Context, keyword string, page, limit int) ([]model.Product, int64, error) {
	if keyword == "" {
		return nil, 0, apperr.New(apperr.BadRequestCode, "search keyword is required")
	}
	if page < 1 {
		page = constants.DefaultPage
	}
	if limit < 1 {
		limit = constants.DefaultPageSize
	}
	return s.productRepo.SearchProducts(ctx, keyword, page, limit)
}

// ListTrending 熱門商品, id清單快取5分鐘
func (s *ProductService) ListTrending(ctx context.Context, limit int) ([]model.Product, error) {
	if limit < 1 {
		limit = constants.DefaultPageSize
	}

	if s.cache != nil {
		if ids, err := s.cache.GetTrendingIDs(ctx); err == nil && len(ids) > 0 {
			products := make([]model.Product, 0, len(ids))
			for _, id := range ids {
				product, err := s.GetProduct(ctx, id)
				if err != nil {
					continue
				}
				products = append(products, *product)
				if len(products) >= limit {
					break
				}
			}
			if len(products) > 0 {
				return products, nil
			}
		}
	}

	products, err := s.productRepo.ListTrending(ctx, nil, limit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && len(products) > 0 {
		ids := make([]uint, 0, len(products))
		for _, p := range products {
			ids = append(ids, p.ProductID)
		}
		if err := s.cache.SetTrendingIDs(ctx, ids); err != nil {
			log.Warn().Err(err).Msg("trending cache write failed")
		}
	}
	return products, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, product *model.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	if product.Status == "" {
		product.Status = model.ProductStatusActive
	}
	return s.productRepo.CreateProduct(ctx, product)
}

func (s *ProductService) UpdateProduct(ctx context.Context, product *model.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	if err := s.productRepo.UpdateProduct(ctx, product); err != nil {
		return err
	}
	s.invalidate(ctx, product.ProductID)
	return nil
}

// UpdateStock 直接覆寫庫存量, 下單的增減另外走AdjustStock
func (s *ProductService) UpdateStock(ctx context.Context, productID uint, stock int) error {
	if stock < 0 {
		return apperr.Wrap(apperr.BadRequestCode, "stock can not be negative", ErrInvalidProduct)
	}
	product, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Wrap(apperr.NotFoundCode, "product not found", ErrProductNotFound)
		}
		return err
	}
	product.Stock = stock
	if err := s.productRepo.UpdateProduct(ctx, product); err != nil {
		return err
	}
	s.invalidate(ctx, productID)
	return nil
}

// ArchiveProduct 軟刪除, 商品轉archived, 既有訂單的快照不受影響
func (s *ProductService) ArchiveProduct(ctx context.Context, productID uint) error {
	if err := s.productRepo.ArchiveProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Wrap(apperr.NotFoundCode, "product not found", ErrProductNotFound)
		}
		return err
	}
	s.invalidate(ctx, productID)
	return nil
}

func (s *ProductService) invalidate(ctx context.Context, productID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteProduct(ctx, productID); err != nil {
		log.Warn().Err(err).Uint("product_id", productID).Msg("product cache invalidation failed")
	}
}

func validateProduct(product *model.Product) error {
	if product.Name == "" {
		return apperr.Wrap(apperr.BadRequestCode, "product name is required", ErrInvalidProduct)
	}
	if product.Price.IsNegative() {
		return apperr.Wrap(apperr.BadRequestCode, "price can not be negative", ErrInvalidProduct)
	}
	if product.Discount < 0 || product.Discount > 100 {
		return apperr.Wrap(apperr.BadRequestCode,
			fmt.Sprintf("discount must be within 0 and 100, got %d", product.Discount), ErrInvalidProduct)
	}
	if product.Stock < 0 {
		return apperr.Wrap(apperr.BadRequestCode, "stock can not be negative", ErrInvalidProduct)
	}
	if product.Status != "" && !model.IsValidProductStatus(string(product.Status)) {
		return apperr.Wrap(apperr.BadRequestCode,
			fmt.Sprintf("invalid product status: %s", product.Status), ErrInvalidProduct)
	}
	return nil
}
