package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mukesh-on-github/Zyrokart/internal/constants"
	"github.com/mukesh-on-github/Zyrokart/internal/infra/auth/firebase_auth"
	"github.com/mukesh-on-github/Zyrokart/internal/infra/repository/db"
	"github.com/mukesh-on-github/Zyrokart/internal/model"
	"github.com/mukesh-on-github/Zyrokart/internal/pkg/apperr"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidTopUp      = errors.New("top up amount must be positive")
	ErrInvalidUserStatus = errors.New("invalid user status")
)

type IUserService interface {
	SyncUser(ctx context.Context, info *firebase_auth.UserInfo) (*model.User, error)
	GetProfile(ctx context.Context, firebaseUID string) (*model.User, error)
	UpdateProfile(ctx context.Context, firebaseUID string, profile model.UserProfile, phone string) (*model.User, error)
	UpdatePreferences(ctx context.Context, firebaseUID string, prefs model.UserPreferences) (*model.User, error)
	AddLoyaltyPoints(ctx context.Context, firebaseUID string, points int, action, refID string) (*model.User, error)
	GetWalletBalance(ctx context.Context, firebaseUID string) (decimal.Decimal, error)
	TopUpWallet(ctx context.Context, firebaseUID string, amount decimal.Decimal) (*model.User, error)
	ListUsers(ctx context.Context, page, limit int) ([]model.User, int64, error)
	GetUser(ctx context.Context, userID uint) (*model.User, error)
	UpdateUserStatus(ctx context.Context, userID uint, status string) error
}

type UserService struct {
	userRepo db.IUserRepository
}

func NewUserService(userRepo db.IUserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// SyncUser 登入時以firebase身份upsert本地帳號
// 已存在只更新lastLogin與驗證狀態, 初次登入建立帳號
func (s *UserService) SyncUser(ctx context.Context, info *firebase_auth.UserInfo) (*model.User, error) {
	now := time.Now()

	user, err := s.userRepo.GetUserByFirebaseUID(ctx, info.UID)
	if err == nil {
		user.LastLogin = &now
		user.EmailVerified = info.EmailVerified
		if user.Profile.PhotoURL == "" && info.Picture != "" {
			user.Profile.PhotoURL = info.Picture
		}
		if err := s.userRepo.UpdateUser(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = &model.User{
		FirebaseUID:   info.UID,
		Email:         info.Email,
		EmailVerified: info.EmailVerified,
		Profile: model.UserProfile{
			DisplayName: info.Name,
			PhotoURL:    info.Picture,
		},
		LoyaltyTier:   model.TierBronze,
		WalletBalance: decimal.Zero,
		Status:        model.UserStatusActive,
		LastLogin:     &now,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetProfile(ctx context.Context, firebaseUID string) (*model.User, error) {
	return s.getByUID(ctx, firebaseUID)
}

func (s *UserService) UpdateProfile(ctx context.Context, firebaseUID string, profile model.UserProfile, phone string) (*model.User, error) {
	user, err := s.getByUID(ctx, firebaseUID)
	if err != nil {
		return nil, err
	}

	user.Profile = profile
	if phone != "" {
		user.Phone = phone
	}
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdatePreferences(ctx context.Context, firebaseUID string, prefs model.UserPreferences) (*model.User, error) {
	user, err := s.getByUID(ctx, firebaseUID)
	if err != nil {
		return nil, err
	}

	user.Preferences = prefs
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// AddLoyaltyPoints 加點, tier升降由聚合自行重算
func (s *UserService) AddLoyaltyPoints(ctx context.Context, firebaseUID string, points int, action, refID string) (*model.User, error) {
	if points == 0 {
		return nil, apperr.New(apperr.BadRequestCode, "points can not be zero")
	}

	user, err := s.getByUID(ctx, firebaseUID)
	if err != nil {
		return nil, err
	}

	user.AddLoyaltyPoints(points, action, refID)
	if user.LoyaltyPoints < 0 {
		return nil, apperr.New(apperr.BadRequestCode, "insufficient loyalty points")
	}
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetWalletBalance(ctx context.Context, firebaseUID string) (decimal.Decimal, error) {
	user, err := s.getByUID(ctx, firebaseUID)
	if err != nil {
		return decimal.Zero, err
	}
	return user.WalletBalance, nil
}

func (s *UserService) TopUpWallet(ctx context.Context, firebaseUID string, amount decimal.Decimal) (*model.User, error) {
	if !amount.IsPositive() {
		return nil, apperr.Wrap(apperr.BadRequestCode, "top up amount must be positive", ErrInvalidTopUp)
	}

	user, err := s.getByUID(ctx, firebaseUID)
	if err != nil {
		return nil, err
	}

	user.WalletBalance = user.WalletBalance.Add(amount)
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, page, limit int) ([]model.User, int64, error) {
	if page < 1 {
		page = constants.DefaultPage
	}
	if limit < 1 {
		limit = constants.DefaultPageSize
	}
	return s.userRepo.ListUsers(ctx, page, limit)
}

func (s *UserService) GetUser(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.NotFoundCode, "user not found", ErrUserNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateUserStatus(ctx context.Context, userID uint, status string) error {
	if !model.IsValidUserStatus(status) {
		return apperr.Wrap(apperr.BadRequestCode,
			fmt.Sprintf("invalid user status: %s", status), ErrInvalidUserStatus)
	}
	if err := s.userRepo.UpdateUserStatus(ctx, userID, model.UserStatus(status)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Wrap(apperr.NotFoundCode, "user not found", ErrUserNotFound)
		}
		return err
	}
	return nil
}

func (s *UserService) getByUID(ctx context.Context, firebaseUID string) (*model.User, error) {
	user, err := s.userRepo.GetUserByFirebaseUID(ctx, firebaseUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.NotFoundCode, "user not found", ErrUserNotFound)
		}
		return nil, err
	}
	return user, nil
}
