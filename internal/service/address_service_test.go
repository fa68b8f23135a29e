package service

import (
	"context"
	"testing"

	"github.com/mukesh-on-github/Zyrokart/internal/model"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type fakeAddressRepo struct {
	addresses map[uint]*model.Address
	nextID    uint
}

func newFakeAddressRepo() *fakeAddressRepo {
	return &fakeAddressRepo{addresses: map[uint]*model.Address{}, nextID: 1}
}

func (f *fakeAddressRepo) CreateAddress(_ context.Context, address *model.Address) error {
	address.AddressID = f.nextID
	f.nextID++
	if address.IsDefault {
		for _, a := range f.addresses {
			if a.UserUID == address.UserUID {
				a.IsDefault = false
			}
		}
	}
	clone := *address
	f.addresses[address.AddressID] = &clone
	return nil
}

func (f *fakeAddressRepo) GetAddressByID(_ context.Context, userUID string, addressID uint) (*model.Address, error) {
	a, ok := f.addresses[addressID]
	if !ok || a.UserUID != userUID {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *a
	return &clone, nil
}

func (f *fakeAddressRepo) GetDefaultAddress(_ context.Context, userUID string) (*model.Address, error) {
	for _, a := range f.addresses {
		if a.UserUID == userUID && a.IsDefault {
			clone := *a
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAddressRepo) ListAddressesByUser(_ context.Context, userUID string) ([]model.Address, error) {
	var out []model.Address
	for _, a := range f.addresses {
		if a.UserUID == userUID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAddressRepo) UpdateAddress(_ context.Context, address *model.Address) error {
	if _, ok := f.addresses[address.AddressID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *address
	f.addresses[address.AddressID] = &clone
	return nil
}

func (f *fakeAddressRepo) DeleteAddress(_ context.Context, userUID string, addressID uint) error {
	a, ok := f.addresses[addressID]
	if !ok || a.UserUID != userUID {
		return gorm.ErrRecordNotFound
	}
	delete(f.addresses, addressID)
	return nil
}

func (f *fakeAddressRepo) SetDefaultAddress(_ context.Context, userUID string, addressID uint) error {
	target, ok := f.addresses[addressID]
	if !ok || target.UserUID != userUID {
		return gorm.ErrRecordNotFound
	}
	for _, a := range f.addresses {
		if a.UserUID == userUID {
			a.IsDefault = false
		}
	}
	target.IsDefault = true
	return nil
}

type AddressServiceTestSuite struct {
	suite.Suite
	ctx            context.Context
	addresses      *fakeAddressRepo
	addressService *AddressService
}

func (s *AddressServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.addresses = newFakeAddressRepo()
	s.addressService = NewAddressService(s.addresses)
}

func (s *AddressServiceTestSuite) validAddress() *model.Address {
	return &model.Address{
		UserUID:      "user-1",
		FullName:     "Mukesh Kumar",
		Phone:        "0912345678",
		AddressLine1: "12 MG Road",
		City:         "Bengaluru",
		State:        "Karnataka",
		ZipCode:      "560001",
	}
}

func (s *AddressServiceTestSuite) TestFirstAddressBecomesDefault() {
	first := s.validAddress()
	require.NoError(s.T(), s.addressService.CreateAddress(s.ctx, first))
	require.True(s.T(), first.IsDefault, "第一筆地址自動成為預設")

	second := s.validAddress()
	second.AddressLine1 = "34 Brigade Road"
	require.NoError(s.T(), s.addressService.CreateAddress(s.ctx, second))
	require.False(s.T(), second.IsDefault)
}

func (s *AddressServiceTestSuite) TestCreateAddressValidation() {
	address := s.validAddress()
	address.ZipCode = ""

	err := s.addressService.CreateAddress(s.ctx, address)

	require.Error(s.T(), err)
}

func (s *AddressServiceTestSuite) TestCreateAddressRejectsUnknownType() {
	address := s.validAddress()
	address.Type = "office"

	err := s.addressService.CreateAddress(s.ctx, address)

	require.Error(s.T(), err)
}

func (s *AddressServiceTestSuite) TestSetDefaultIsExclusive() {
	first := s.validAddress()
	require.NoError(s.T(), s.addressService.CreateAddress(s.ctx, first))
	second := s.validAddress()
	require.NoError(s.T(), s.addressService.CreateAddress(s.ctx, second))

	require.NoError(s.T(), s.addressService.SetDefaultAddress(s.ctx, "user-1", second.AddressID))

	def, err := s.addressService.GetDefaultAddress(s.ctx, "user-1")
	require.NoError(s.T(), err)
	require.Equal(s.T(), second.AddressID, def.AddressID)

	all, err := s.addressService.ListAddresses(s.ctx, "user-1")
	require.NoError(s.T(), err)
	defaults := 0
	for _, a := range all {
		if a.IsDefault {
			defaults++
		}
	}
	require.Equal(s.T(), 1, defaults, "同一user最多一筆預設地址")
}

func (s *AddressServiceTestSuite) TestAddressScopedToOwner() {
	address := s.validAddress()
	require.NoError(s.T(), s.addressService.CreateAddress(s.ctx, address))

	_, err := s.addressService.GetAddress(s.ctx, "user-2", address.AddressID)
	require.ErrorIs(s.T(), err, ErrAddressNotFound, "別人的地址要當不存在")

	err = s.addressService.DeleteAddress(s.ctx, "user-2", address.AddressID)
	require.ErrorIs(s.T(), err, ErrAddressNotFound)
}

func (s *AddressServiceTestSuite) TestGetDefaultWhenNoneSet() {
	_, err := s.addressService.GetDefaultAddress(s.ctx, "user-1")

	require.ErrorIs(s.T(), err, ErrAddressNotFound)
}

func TestAddressServiceSuite(t *testing.T) {
	suite.Run(t, new(AddressServiceTestSuite))
}
