package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mukesh-on-github/Zyrokart/internal/infra/repository/redis_repo"
	"github.com/mukesh-on-github/Zyrokart/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// fakeProductCache 記憶體cache, 可注入讀寫錯誤
type fakeProductCache struct {
	products    map[uint]*model.Product
	trendingIDs []uint
	getErr      error
	hits        int
	misses      int
}

func newFakeProductCache() *fakeProductCache {
	return &fakeProductCache{products: map[uint]*model.Product{}}
}

func (f *fakeProductCache) GetProduct(_ context.Context, productID uint) (*model.Product, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.products[productID]
	if !ok {
		f.misses++
		return nil, redis_repo.ErrCacheMiss
	}
	f.hits++
	clone := *p
	return &clone, nil
}

func (f *fakeProductCache) SetProduct(_ context.Context, product *model.Product) error {
	clone := *product
	f.products[product.ProductID] = &clone
	return nil
}

func (f *fakeProductCache) DeleteProduct(_ context.Context, productID uint) error {
	delete(f.products, productID)
	return nil
}

func (f *fakeProductCache) GetTrendingIDs(_ context.Context) ([]uint, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.trendingIDs, nil
}

func (f *fakeProductCache) SetTrendingIDs(_ context.Context, ids []uint) error {
	f.trendingIDs = ids
	return nil
}

type ProductServiceTestSuite struct {
	suite.Suite
	ctx            context.Context
	products       *fakeProductRepo
	cache          *fakeProductCache
	productService *ProductService
}

func (s *ProductServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.products = newFakeProductRepo()
	s.cache = newFakeProductCache()
	s.productService = NewProductService(s.products, s.cache)

	s.products.seed(model.Product{ProductID: 1, Name: "Oversized Tee", Price: decimal.NewFromInt(300), Stock: 5})
	s.products.seed(model.Product{ProductID: 2, Name: "Sneakers", Price: decimal.NewFromInt(900), Stock: 4, Trending: true})
}

func (s *ProductServiceTestSuite) TestGetProductFillsCache() {
	_, err := s.productService.GetProduct(s.ctx, 1)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1, s.cache.misses, "第一次要miss走DB")

	product, err := s.productService.GetProduct(s.ctx, 1)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1, s.cache.hits, "第二次要命中cache")
	require.Equal(s.T(), "Oversized Tee", product.Name)
}

func (s *ProductServiceTestSuite) TestGetProductFallsBackWhenCacheBroken() {
	s.cache.getErr = errors.New("redis down")

	product, err := s.productService.GetProduct(s.ctx, 1)

	require.NoError(s.T(), err, "cache掛掉要fallback到DB")
	require.Equal(s.T(), "Oversized Tee", product.Name)
}

func (s *ProductServiceTestSuite) TestGetProductWithoutCache() {
	service := NewProductService(s.products, nil)

	product, err := service.GetProduct(s.ctx, 1)

	require.NoError(s.T(), err)
	require.Equal(s.T(), "Oversized Tee", product.Name)
}

func (s *ProductServiceTestSuite) TestGetProductNotFound() {
	_, err := s.productService.GetProduct(s.ctx, 999)

	require.ErrorIs(s.T(), err, ErrProductNotFound)
}

func (s *ProductServiceTestSuite) TestSearchRequiresKeyword() {
	_, _, err := s.productService.SearchProducts(s.ctx, "", 1, 20)

	require.Error(s.T(), err)
}

func (s *ProductServiceTestSuite) TestListTrendingCachesIDs() {
	products, err := s.productService.ListTrending(s.ctx, 10)

	require.NoError(s.T(), err)
	require.Len(s.T(), products, 1)
	require.Equal(s.T(), []uint{2}, s.cache.trendingIDs, "熱門id清單要寫進cache")
}

func (s *ProductServiceTestSuite) TestCreateProductValidation() {
	err := s.productService.CreateProduct(s.ctx, &model.Product{Price: decimal.NewFromInt(10)})
	require.ErrorIs(s.T(), err, ErrInvalidProduct, "缺商品名稱要擋下")

	err = s.productService.CreateProduct(s.ctx, &model.Product{Name: "Tee", Price: decimal.NewFromInt(-1)})
	require.ErrorIs(s.T(), err, ErrInvalidProduct, "負數價格要擋下")

	err = s.productService.CreateProduct(s.ctx, &model.Product{Name: "Tee", Price: decimal.NewFromInt(10), Discount: 101})
	require.ErrorIs(s.T(), err, ErrInvalidProduct, "折扣超過100要擋下")
}

func (s *ProductServiceTestSuite) TestCreateProductDefaultsStatus() {
	product := &model.Product{Name: "New Tee", Price: decimal.NewFromInt(100)}

	require.NoError(s.T(), s.productService.CreateProduct(s.ctx, product))
	require.Equal(s.T(), model.ProductStatusActive, product.Status)
}

func (s *ProductServiceTestSuite) TestUpdateProductInvalidatesCache() {
	_, err := s.productService.GetProduct(s.ctx, 1)
	require.NoError(s.T(), err)
	require.Contains(s.T(), s.cache.products, uint(1))

	updated, err := s.products.GetProductByID(s.ctx, 1)
	require.NoError(s.T(), err)
	updated.Price = decimal.NewFromInt(350)
	require.NoError(s.T(), s.productService.UpdateProduct(s.ctx, updated))

	require.NotContains(s.T(), s.cache.products, uint(1), "更新商品要清cache")
}

func (s *ProductServiceTestSuite) TestUpdateStock() {
	_, err := s.productService.GetProduct(s.ctx, 1)
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.productService.UpdateStock(s.ctx, 1, 42))

	product, err := s.products.GetProductByID(s.ctx, 1)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 42, product.Stock, "庫存應被直接覆寫")
	require.NotContains(s.T(), s.cache.products, uint(1), "改庫存要清cache")
}

func (s *ProductServiceTestSuite) TestUpdateStockRejectsNegative() {
	err := s.productService.UpdateStock(s.ctx, 1, -1)

	require.ErrorIs(s.T(), err, ErrInvalidProduct)
}

func (s *ProductServiceTestSuite) TestUpdateStockUnknownProduct() {
	err := s.productService.UpdateStock(s.ctx, 999, 10)

	require.ErrorIs(s.T(), err, ErrProductNotFound)
}

func (s *ProductServiceTestSuite) TestArchiveProduct() {
	require.NoError(s.T(), s.productService.ArchiveProduct(s.ctx, 1))

	product, err := s.products.GetProductByID(s.ctx, 1)
	require.NoError(s.T(), err)
	require.Equal(s.T(), model.ProductStatusArchived, product.Status, "封存是軟刪除")
}

func (s *ProductServiceTestSuite) TestArchiveUnknownProduct() {
	err := s.productService.ArchiveProduct(s.ctx, 999)

	require.ErrorIs(s.T(), err, ErrProductNotFound)
}

func TestProductServiceSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
