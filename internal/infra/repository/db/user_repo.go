package db

import (
	"context"

	"github.com/mukesh-on-github/Zyrokart/internal/model"
	"gorm.io/gorm"
)

type IUserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByFirebaseUID(ctx context.Context, uid string) (*model.User, error)
	GetUserByID(ctx context.Context, id uint) (*model.User, error)
	ListUsers(ctx context.Context, page, limit int) ([]model.User, int64, error)
	UpdateUser(ctx context.Context, user *model.User) error
	UpdateUserStatus(ctx context.Context, id uint, status model.UserStatus) error
}

type UserRepo struct {
	db *DbDao
}

func NewUserRepo(db *DbDao) *UserRepo {
	return &UserRepo{db: db}
}

func (s *UserRepo) CreateUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *UserRepo) GetUserByFirebaseUID(ctx context.Context, uid string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Preload("LoyaltyHistory").
		First(&user, "firebase_uid = ?", uid).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserRepo) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Preload("LoyaltyHistory").
		First(&user, "user_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserRepo) ListUsers(ctx context.Context, page, limit int) ([]model.User, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := s.db.WithContext(ctx).
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	return users, total, err
}

// UpdateUser 連同loyalty history一起存
func (s *UserRepo) UpdateUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(user).Error
}

func (s *UserRepo) UpdateUserStatus(ctx context.Context, id uint, status model.UserStatus) error {
	return s.db.WithContext(ctx).Model(&model.User{}).
		Where("user_id = ?", id).
		Update("status", status).Error
}
