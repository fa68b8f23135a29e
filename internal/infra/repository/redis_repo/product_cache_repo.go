package redis_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mukesh-on-github/Zyrokart/internal/model"
	"github.com/redis/go-redis/v9"
)

type ProductCacheError error

var ErrCacheMiss ProductCacheError = errors.New("product cache miss")

// IProductCacheRepository 商品讀快取
// 商品真相在postgres, redis只做讀加速, 寫入方負責invalidate
type IProductCacheRepository interface {
	GetProduct(ctx context.Context, productID uint) (*model.Product, error)
	SetProduct(ctx context.Context, product *model.Product) error
	DeleteProduct(ctx context.Context, productID uint) error
	GetTrendingIDs(ctx context.Context) ([]uint, error)
	SetTrendingIDs(ctx context.Context, ids []uint) error
}

const (
	productCacheTTL  = 10 * time.Minute
	trendingCacheTTL = 5 * time.Minute
	trendingCacheKey = "products:trending:ids"
)

type ProductCacheRepo struct {
	productCache *redis.Client
}

func NewProductCacheRepo(productCache *redis.Client) *ProductCacheRepo {
	return &ProductCacheRepo{productCache: productCache}
}

func generateProductKey(productID uint) string {
	return fmt.Sprintf("product:%d:detail", productID)
}

func (s *ProductCacheRepo) GetProduct(ctx context.Context, productID uint) (*model.Product, error) {
	raw, err := s.productCache.Get(ctx, generateProductKey(productID)).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product cache: %w", err)
	}

	var product model.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		return nil, fmt.Errorf("invalid product cache payload: %w", err)
	}
	return &product, nil
}

func (s *ProductCacheRepo) SetProduct(ctx context.Context, product *model.Product) error {
	raw, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
	}
	return s.productCache.Set(ctx, generateProductKey(product.ProductID), raw, productCacheTTL).Err()
}

func (s *ProductCacheRepo) DeleteProduct(ctx context.Context, productID uint) error {
	return s.productCache.Del(ctx, generateProductKey(productID)).Err()
}

func (s *ProductCacheRepo) GetTrendingIDs(ctx context.Context) ([]uint, error) {
	raw, err := s.productCache.Get(ctx, trendingCacheKey).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trending cache: %w", err)
	}

	var ids []uint
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("invalid trending cache payload: %w", err)
	}
	return ids, nil
}

func (s *ProductCacheRepo) SetTrendingIDs(ctx context.Context, ids []uint) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to marshal trending ids: %w", err)
	}
	return s.productCache.Set(ctx, trendingCacheKey, raw, trendingCacheTTL).Err()
}
