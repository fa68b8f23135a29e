package model

import "strings"

type AddressType string

const (
	AddressTypeHome  AddressType = "home"
	AddressTypeWork  AddressType = "work"
	AddressTypeOther AddressType = "other"
)

func IsValidAddressType(t string) bool {
	switch AddressType(t) {
	case AddressTypeHome, AddressTypeWork, AddressTypeOther:
		return true
	default:
		return false
	}
}

// 收件地址
// 同一user最多一筆isDefault, 由repo在同一transaction內清掉其他筆後設定
type Address struct {
	AddressID    uint        `gorm:"primaryKey" json:"addressId"`
	UserUID      string      `gorm:"not null;type:varchar(128);index:idx_user_default" json:"userUid"`
	Type         AddressType `gorm:"not null;type:varchar(10);default:'home'" json:"type"`
	Label        string      `gorm:"type:varchar(50)" json:"label"`
	FullName     string      `gorm:"not null;type:varchar(100)" json:"fullName"`
	Phone        string      `gorm:"not null;type:varchar(20)" json:"phone"`
	AddressLine1 string      `gorm:"not null;type:varchar(255)" json:"addressLine1"`
	AddressLine2 string      `gorm:"type:varchar(255)" json:"addressLine2"`
	Landmark     string      `gorm:"type:varchar(255)" json:"landmark"`
	City         string      `gorm:"not null;type:varchar(100)" json:"city"`
	State        string      `gorm:"not null;type:varchar(100)" json:"state"`
	ZipCode      string      `gorm:"not null;type:varchar(20)" json:"zipCode"`
	Country      string      `gorm:"not null;type:varchar(100);default:'India'" json:"country"`
	IsDefault    bool        `gorm:"not null;default:false;index:idx_user_default" json:"isDefault"`
	Instructions string      `gorm:"type:varchar(500)" json:"instructions"`
	BaseModel
}

// Formatted 串成一行顯示用地址, 略過空欄位
func (a *Address) Formatted() string {
	parts := []string{
		a.AddressLine1,
		a.AddressLine2,
		a.Landmark,
		a.City,
		a.State,
		a.ZipCode,
		a.Country,
	}
	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ", ")
}
