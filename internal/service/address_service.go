package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mukesh-on-github/Zyrokart/internal/infra/repository/db"
	"github.com/mukesh-on-github/Zyrokart/internal/model"
	"github.com/mukesh-on-github/Zyrokart/internal/pkg/apperr"
	"gorm.io/gorm"
)

var ErrAddressNotFound = errors.New("address not found")

type IAddressService interface {
	ListAddresses(ctx context.Context, userUID string) ([]model.Address, error)
	GetAddress(ctx context.Context, userUID string, addressID uint) (*model.Address, error)
	GetDefaultAddress(ctx context.Context, userUID string) (*model.Address, error)
	CreateAddress(ctx context.Context, address *model.Address) error
	UpdateAddress(ctx context.Context, address *model.Address) error
	DeleteAddress(ctx context.Context, userUID string, addressID uint) error
	SetDefaultAddress(ctx context.Context, userUID string, addressID uint) error
}

type AddressService struct {
	addressRepo db.IAddressRepository
}

func NewAddressService(addressRepo db.IAddressRepository) *AddressService {
	return &AddressService{addressRepo: addressRepo}
}

func (s *AddressService) ListAddresses(ctx context.Context, userUID string) ([]model.Address, error) {
	return s.addressRepo.ListAddressesByUser(ctx, userUID)
}

func (s *AddressService) GetAddress(ctx context.Context, userUID string, addressID uint) (*model.Address, error) {
	address, err := s.addressRepo.GetAddressByID(ctx, userUID, addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.NotFoundCode, "address not found", ErrAddressNotFound)
		}
		return nil, err
	}
	return address, nil
}

func (s *AddressService) GetDefaultAddress(ctx context.Context, userUID string) (*model.Address, error) {
	address, err := s.addressRepo.GetDefaultAddress(ctx, userUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.NotFoundCode, "no default address set", ErrAddressNotFound)
		}
		return nil, err
	}
	return address, nil
}

// CreateAddress 第一筆地址自動成為預設
// isDefault的互斥由repo在同一transaction內處理
func (s *AddressService) CreateAddress(ctx context.Context, address *model.Address) error {
	if err := validateAddress(address); err != nil {
		return err
	}

	existing, err := s.addressRepo.ListAddressesByUser(ctx, address.UserUID)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		address.IsDefault = true
	}

	return s.addressRepo.CreateAddress(ctx, address)
}

func (s *AddressService) UpdateAddress(ctx context.Context, address *model.Address) error {
	if err := validateAddress(address); err != nil {
		return err
	}
	if _, err := s.addressRepo.GetAddressByID(ctx, address.UserUID, address.AddressID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Wrap(apperr.NotFoundCode, "address not found", ErrAddressNotFound)
		}
		return err
	}
	return s.addressRepo.UpdateAddress(ctx, address)
}

func (s *AddressService) DeleteAddress(ctx context.Context, userUID string, addressID uint) error {
	if _, err := s.addressRepo.GetAddressByID(ctx, userUID, addressID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Wrap(apperr.NotFoundCode, "address not found", ErrAddressNotFound)
		}
		return err
	}
	return s.addressRepo.DeleteAddress(ctx, userUID, addressID)
}

func (s *AddressService) SetDefaultAddress(ctx context.Context, userUID string, addressID uint) error {
	if err := s.addressRepo.SetDefaultAddress(ctx, userUID, addressID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Wrap(apperr.NotFoundCode, "address not found", ErrAddressNotFound)
		}
		return err
	}
	return nil
}

func validateAddress(address *model.Address) error {
	if address.FullName == "" || address.Phone == "" || address.AddressLine1 == "" ||
		address.City == "" || address.State == "" || address.ZipCode == "" {
		return apperr.New(apperr.BadRequestCode, "missing required address fields")
	}
	if address.Type != "" && !model.IsValidAddressType(string(address.Type)) {
		return apperr.New(apperr.BadRequestCode, fmt.Sprintf("invalid address type: %s", address.Type))
	}
	return nil
}
