package db

import (
	"context"

	"github.com/mukesh-on-github/Zyrokart/internal/model"
)

type ICategoryRepository interface {
	CreateCategory(ctx context.Context, category *model.Category) error
	GetCategoryBySlug(ctx context.Context, slug string) (*model.Category, error)
	GetCategoryByID(ctx context.Context, id uint) (*model.Category, error)
	ListCategories(ctx context.Context, onlyFeatured bool) ([]model.Category, error)
	UpdateCategory(ctx context.Context, category *model.Category) error
	DeleteCategory(ctx context.Context, id uint) error
}

type CategoryRepo struct {
	db *DbDao
}

func NewCategoryRepo(db *DbDao) *CategoryRepo {
	return &CategoryRepo{db: db}
}

func (s *CategoryRepo) CreateCategory(ctx context.Context, category *model.Category) error {
	return s.db.WithContext(ctx).Create(category).Error
}

func (s *CategoryRepo) GetCategoryBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var category model.Category
	err := s.db.WithContext(ctx).First(&category, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryRepo) GetCategoryByID(ctx context.Context, id uint) (*model.Category, error) {
	var category model.Category
	err := s.db.WithContext(ctx).First(&category, "category_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryRepo) ListCategories(ctx context.Context, onlyFeatured bool) ([]model.Category, error) {
	query := s.db.WithContext(ctx).Where("active = ?", true)
	if onlyFeatured {
		query = query.Where("featured = ?", true)
	}

	var categories []model.Category
	err := query.Order("display_order asc, name asc").Find(&categories).Error
	return categories, err
}

func (s *CategoryRepo) UpdateCategory(ctx context.Context, category *model.Category) error {
	return s.db.WithContext(ctx).Save(category).Error
}

func (s *CategoryRepo) DeleteCategory(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&model.Category{}, "category_id = ?", id).Error
}
