package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mukesh-on-github/Zyrokart/internal/api/dto"
	"github.com/mukesh-on-github/Zyrokart/internal/infra/repository/db"
	"github.com/mukesh-on-github/Zyrokart/internal/model"
	"github.com/mukesh-on-github/Zyrokart/internal/pkg/api"
	"github.com/mukesh-on-github/Zyrokart/internal/pkg/apperr"
	"github.com/mukesh-on-github/Zyrokart/internal/service"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	productService  service.IProductService
	categoryService service.ICategoryService
}

func NewProductHandler(productService service.IProductService, categoryService service.ICategoryService) *ProductHandler {
	if productService == nil {
		panic("productService cannot be nil")
	}
	if categoryService == nil {
		panic("categoryService cannot be nil")
	}
	return &ProductHandler{
		productService:  productService,
		categoryService: categoryService,
	}
}

// @Summary list products
// @Tags products
// @Produce json
// @Param category query string false "filter by category"
// @Param brand query string false "filter by brand"
// @Param minPrice query number false "minimum price"
// @Param maxPrice query number false "maximum price"
// @Param featured query bool false "only featured"
// @Param trending query bool false "only trending"
// @Param sort query string false "price-low|price-high|newest|popular|name"
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} api.Response{data=[]model.Product} "success"
// @Router /products [get]
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter := parseProductFilter(r)

	products, total, err := h.productService.ListProducts(r.Context(), filter)
	if err != nil {
		api.ErrorJSON(w, "failed to list products", err)
		return
	}
	api.ListJSON(w, len(products), total, products)
}

// @Summary search products
// @Tags products
// @Produce json
// @Param q query string true "keyword"
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} api.Response{data=[]model.Product} "success"
// @Router /products/search [get]
func (h *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	products, total, err := h.productService.SearchProducts(r.Context(), r.URL.Query().Get("q"), page, limit)
	if err != nil {
		api.ErrorJSON(w, "search failed", err)
		return
	}
	api.ListJSON(w, len(products), total, products)
}

// @Summary list trending products
// @Tags products
// @Produce json
// @Param limit query int false "max products"
// @Success 200 {object} api.Response{data=[]model.Product} "success"
// @Router /products/trending [get]
func (h *ProductHandler) ListTrending(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	products, err := h.productService.ListTrending(r.Context(), limit)
	if err != nil {
		api.ErrorJSON(w, "failed to list trending products", err)
		return
	}
	api.ListJSON(w, len(products), int64(len(products)), products)
}

// @Summary list featured products
// @Tags products
// @Produce json
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} api.Response{data=[]model.Product} "success"
// @Router /products/featured [get]
func (h *ProductHandler) ListFeatured(w http.ResponseWriter, r *http.Request) {
	filter := parseProductFilter(r)
	featured := true
	filter.Featured = &featured

	products, total, err := h.productService.ListProducts(r.Context(), filter)
	if err != nil {
		api.ErrorJSON(w, "failed to list featured products", err)
		return
	}
	api.ListJSON(w, len(products), total, products)
}

// @Summary get product detail
// @Tags products
// @Produce json
// @Param id path int true "product id"
// @Success 200 {object} api.Response{data=model.Product} "success"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Router /products/{id} [get]
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := parseUintParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, "invalid product id", apperr.New(apperr.BadRequestCode, "invalid product id"))
		return
	}

	product, err := h.productService.GetProduct(r.Context(), productID)
	if err != nil {
		api.ErrorJSON(w, "failed to get product", err)
		return
	}
	api.SuccessJSON(w, "", product)
}

// @Summary create product (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Param product body dto.ProductDTO true "product payload"
// @Success 201 {object} api.Response{data=model.Product} "created"
// @Failure 400 {object} api.Response "BadRequestCode"
// @Router /admin/products [post]
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.ProductDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, "invalid request body", apperr.New(apperr.BadRequestCode, "invalid request body"))
		return
	}

	product := productFromDTO(&req)
	if err := h.productService.CreateProduct(r.Context(), product); err != nil {
		api.ErrorJSON(w, "failed to create product", err)
		return
	}
	api.CreatedJSON(w, "product created", product)
}

// @Summary update product (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "product id"
// @Param product body dto.ProductDTO true "product payload"
// @Success 200 {object} api.Response{data=model.Product} "success"
// @Failure 400 {object} api.Response "BadRequestCode"
// @Router /admin/products/{id} [put]
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := parseUintParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, "invalid product id", apperr.New(apperr.BadRequestCode, "invalid product id"))
		return
	}

	var req dto.ProductDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, "invalid request body", apperr.New(apperr.BadRequestCode, "invalid request body"))
		return
	}

	product := productFromDTO(&req)
	product.ProductID = productID
	if err := h.productService.UpdateProduct(r.Context(), product); err != nil {
		api.ErrorJSON(w, "failed to update product", err)
		return
	}
	api.SuccessJSON(w, "product updated", product)
}

// @Summary overwrite product stock (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "product id"
// @Param stock body dto.StockDTO true "new stock level"
// @Success 200 {object} api.Response "success"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Router /admin/products/{id}/stock [put]
func (h *ProductHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	productID, err := parseUintParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, "invalid product id", apperr.New(apperr.BadRequestCode, "invalid product id"))
		return
	}

	var req dto.StockDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, "invalid request body", apperr.New(apperr.BadRequestCode, "invalid request body"))
		return
	}

	if err := h.productService.UpdateStock(r.Context(), productID, req.Stock); err != nil {
		api.ErrorJSON(w, "failed to update stock", err)
		return
	}
	api.SuccessJSON(w, "stock updated", nil)
}

// @Summary archive product (admin)
// @Tags admin
// @Produce json
// @Param id path int true "product id"
// @Success 200 {object} api.Response "success"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Router /admin/products/{id} [delete]
func (h *ProductHandler) ArchiveProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := parseUintParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, "invalid product id", apperr.New(apperr.BadRequestCode, "invalid product id"))
		return
	}

	if err := h.productService.ArchiveProduct(r.Context(), productID); err != nil {
		api.ErrorJSON(w, "failed to archive product", err)
		return
	}
	api.SuccessJSON(w, "product archived", nil)
}

// @Summary list categories
// @Tags products
// @Produce json
// @Param featured query bool false "only featured"
// @Success 200 {object} api.Response{data=[]model.Category} "success"
// @Router /categories [get]
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	onlyFeatured, _ := strconv.ParseBool(r.URL.Query().Get("featured"))

	categories, err := h.categoryService.ListCategories(r.Context(), onlyFeatured)
	if err != nil {
		api.ErrorJSON(w, "failed to list categories", err)
		return
	}
	api.ListJSON(w, len(categories), int64(len(categories)), categories)
}

// @Summary get category by slug
// @Tags products
// @Produce json
// @Param slug path string true "category slug"
// @Success 200 {object} api.Response{data=model.Category} "success"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Router /categories/{slug} [get]
func (h *ProductHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.categoryService.GetCategory(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		api.ErrorJSON(w, "failed to get category", err)
		return
	}
	api.SuccessJSON(w, "", category)
}

// @Summary create category (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Param category body dto.CategoryDTO true "category payload"
// @Success 201 {object} api.Response{data=model.Category} "created"
// @Router /admin/categories [post]
func (h *ProductHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.CategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, "invalid request body", apperr.New(apperr.BadRequestCode, "invalid request body"))
		return
	}

	category := &model.Category{
		Name:         req.Name,
		Slug:         req.Slug,
		Description:  req.Description,
		Image:        req.Image,
		Featured:     req.Featured,
		DisplayOrder: req.DisplayOrder,
		Active:       req.Active,
	}
	if err := h.categoryService.CreateCategory(r.Context(), category); err != nil {
		api.ErrorJSON(w, "failed to create category", err)
		return
	}
	api.CreatedJSON(w, "category created", category)
}

// @Summary update category (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "category id"
// @Param category body dto.CategoryDTO true "category payload"
// @Success 200 {object} api.Response{data=model.Category} "success"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Router /admin/categories/{id} [put]
func (h *ProductHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := parseUintParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, "invalid category id", apperr.New(apperr.BadRequestCode, "invalid category id"))
		return
	}

	var req dto.CategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, "invalid request body", apperr.New(apperr.BadRequestCode, "invalid request body"))
		return
	}

	category := &model.Category{
		CategoryID:   categoryID,
		Name:         req.Name,
		Slug:         req.Slug,
		Description:  req.Description,
		Image:        req.Image,
		Featured:     req.Featured,
		DisplayOrder: req.DisplayOrder,
		Active:       req.Active,
	}
	if err := h.categoryService.UpdateCategory(r.Context(), category); err != nil {
		api.ErrorJSON(w, "failed to update category", err)
		return
	}
	api.SuccessJSON(w, "category updated", category)
}

// @Summary delete category (admin)
// @Tags admin
// @Produce json
// @Param id path int true "category id"
// @Success 200 {object} api.Response "success"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Router /admin/categories/{id} [delete]
func (h *ProductHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := parseUintParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, "invalid category id", apperr.New(apperr.BadRequestCode, "invalid category id"))
		return
	}

	if err := h.categoryService.DeleteCategory(r.Context(), categoryID); err != nil {
		api.ErrorJSON(w, "failed to delete category", err)
		return
	}
	api.SuccessJSON(w, "category deleted", nil)
}

func parseProductFilter(r *http.Request) db.ProductFilter {
	q := r.URL.Query()
	filter := db.ProductFilter{
		Category: q.Get("category"),
		Brand:    q.Get("brand"),
		Sort:     q.Get("sort"),
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	if v := q.Get("minPrice"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filter.MinPrice = &d
		}
	}
	if v := q.Get("maxPrice"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filter.MaxPrice = &d
		}
	}
	if v := q.Get("featured"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			filter.Featured = &b
		}
	}
	if v := q.Get("trending"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			filter.Trending = &b
		}
	}
	return filter
}

func productFromDTO(req *dto.ProductDTO) *model.Product {
	images := make([]model.ProductImage, 0, len(req.Images))
	for _, url := range req.Images {
		images = append(images, model.ProductImage{URL: url})
	}

	return &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Discount:    req.Discount,
		Category:    req.Category,
		Brand:       req.Brand,
		Stock:       req.Stock,
		Images:      images,
		Tags:        req.Tags,
		Featured:    req.Featured,
		Trending:    req.Trending,
		Status:      model.ProductStatus(req.Status),
	}
}
