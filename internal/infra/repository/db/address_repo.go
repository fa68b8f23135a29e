package db

import (
	"context"

	"github.com/mukesh-on-github/Zyrokart/internal/model"
	"gorm.io/gorm"
)

type IAddressRepository interface {
	CreateAddress(ctx context.Context, address *model.Address) error
	GetAddressByID(ctx context.Context, userUID string, addressID uint) (*model.Address, error)
	GetDefaultAddress(ctx context.Context, userUID string) (*model.Address, error)
	ListAddressesByUser(ctx context.Context, userUID string) ([]model.Address, error)
	UpdateAddress(ctx context.Context, address *model.Address) error
	DeleteAddress(ctx context.Context, userUID string, addressID uint) error
	SetDefaultAddress(ctx context.Context, userUID string, addressID uint) error
}

type AddressRepo struct {
	db *DbDao
}

func NewAddressRepo(db *DbDao) *AddressRepo {
	return &AddressRepo{db: db}
}

// CreateAddress 若isDefault, 同一transaction先清掉同user其他筆的default
func (s *AddressRepo) CreateAddress(ctx context.Context, address *model.Address) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := tx.Model(&model.Address{}).
				Where("user_uid = ?", address.UserUID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(address).Error
	})
}

func (s *AddressRepo) GetAddressByID(ctx context.Context, userUID string, addressID uint) (*model.Address, error) {
	var address model.Address
	err := s.db.WithContext(ctx).
		First(&address, "address_id = ? AND user_uid = ?", addressID, userUID).Error
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (s *AddressRepo) GetDefaultAddress(ctx context.Context, userUID string) (*model.Address, error) {
	var address model.Address
	err := s.db.WithContext(ctx).
		First(&address, "user_uid = ? AND is_default = ?", userUID, true).Error
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (s *AddressRepo) ListAddressesByUser(ctx context.Context, userUID string) ([]model.Address, error) {
	var addresses []model.Address
	err := s.db.WithContext(ctx).
		Where("user_uid = ?", userUID).
		Order("is_default desc, created_at desc").
		Find(&addresses).Error
	return addresses, err
}

func (s *AddressRepo) UpdateAddress(ctx context.Context, address *model.Address) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := tx.Model(&model.Address{}).
				Where("user_uid = ? AND address_id <> ?", address.UserUID, address.AddressID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(address).Error
	})
}

func (s *AddressRepo) DeleteAddress(ctx context.Context, userUID string, addressID uint) error {
	return s.db.WithContext(ctx).
		Where("address_id = ? AND user_uid = ?", addressID, userUID).
		Delete(&model.Address{}).Error
}

// SetDefaultAddress 清掉其他筆 + 設定目標, 放同一transaction
// 保證"最多一筆default"在任何先前狀態下成立
func (s *AddressRepo) SetDefaultAddress(ctx context.Context, userUID string, addressID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Address{}).
			Where("user_uid = ? AND address_id <> ?", userUID, addressID).
			Update("is_default", false).Error; err != nil {
			return err
		}
		result := tx.Model(&model.Address{}).
			Where("address_id = ? AND user_uid = ?", addressID, userUID).
			Update("is_default", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
