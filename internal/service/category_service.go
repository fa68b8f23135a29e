package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/mukesh-on-github/Zyrokart/internal/infra/repository/db"
	"github.com/mukesh-on-github/Zyrokart/internal/model"
	"github.com/mukesh-on-github/Zyrokart/internal/pkg/apperr"
	"gorm.io/gorm"
)

var ErrCategoryNotFound = errors.New("category not found")

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

type ICategoryService interface {
	ListCategories(ctx context.Context, onlyFeatured bool) ([]model.Category, error)
	GetCategory(ctx context.Context, slug string) (*model.Category, error)
	CreateCategory(ctx context.Context, category *model.Category) error
	UpdateCategory(ctx context.Context, category *model.Category) error
	DeleteCategory(ctx context.Context, id uint) error
}

type CategoryService struct {
	categoryRepo db.ICategoryRepository
}

func NewCategoryService(categoryRepo db.ICategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

func (s *CategoryService) ListCategories(ctx context.Context, onlyFeatured bool) ([]model.Category, error) {
	return s.categoryRepo.ListCategories(ctx, onlyFeatured)
}

func (s *CategoryService) GetCategory(ctx context.Context, slug string) (*model.Category, error) {
	category, err := s.categoryRepo.GetCategoryBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.NotFoundCode, "category not found", ErrCategoryNotFound)
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, category *model.Category) error {
	if category.Name == "" {
		return apperr.New(apperr.BadRequestCode, "category name is required")
	}
	if category.Slug == "" {
		category.Slug = Slugify(category.Name)
	}
	return s.categoryRepo.CreateCategory(ctx, category)
}

func (s *CategoryService) UpdateCategory(ctx context.Context, category *model.Category) error {
	if _, err := s.categoryRepo.GetCategoryByID(ctx, category.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Wrap(apperr.NotFoundCode, "category not found", ErrCategoryNotFound)
		}
		return err
	}
	if category.Slug == "" {
		category.Slug = Slugify(category.Name)
	}
	return s.categoryRepo.UpdateCategory(ctx, category)
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id uint) error {
	if _, err := s.categoryRepo.GetCategoryByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Wrap(apperr.NotFoundCode, "category not found", ErrCategoryNotFound)
		}
		return err
	}
	return s.categoryRepo.DeleteCategory(ctx, id)
}

// Slugify name轉url-safe slug
func Slugify(name string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
