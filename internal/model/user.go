package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"
)

func IsValidUserStatus(s string) bool {
	switch UserStatus(s) {
	case UserStatusActive, UserStatusSuspended, UserStatusBanned:
		return true
	default:
		return false
	}
}

type LoyaltyTier string

const (
	TierBronze   LoyaltyTier = "bronze"
	TierSilver   LoyaltyTier = "silver"
	TierGold     LoyaltyTier = "gold"
	TierPlatinum LoyaltyTier = "platinum"
)

type UserProfile struct {
	DisplayName string     `gorm:"type:varchar(100)" json:"displayName"`
	FullName    string     `gorm:"type:varchar(100)" json:"fullName"`
	PhotoURL    string     `gorm:"type:varchar(500)" json:"photoURL"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Gender      string     `gorm:"type:varchar(20)" json:"gender"`
	Bio         string     `gorm:"type:text" json:"bio"`
}

type UserPreferences struct {
	Categories  []string `gorm:"serializer:json;type:jsonb" json:"categories"`
	Brands      []string `gorm:"serializer:json;type:jsonb" json:"brands"`
	NotifyEmail bool     `gorm:"not null;default:true" json:"notifyEmail"`
	NotifySMS   bool     `gorm:"not null;default:false" json:"notifySms"`
	NotifyPush  bool     `gorm:"not null;default:true" json:"notifyPush"`
}

// 使用者帳號
// 身份由外部identity provider驗證, firebase uid是所有per-user聚合的join key
type User struct {
	UserID        uint            `gorm:"primaryKey" json:"-"`
	FirebaseUID   string          `gorm:"not null;type:varchar(128);uniqueIndex" json:"firebaseUid"`
	Email         string          `gorm:"not null;type:varchar(255);uniqueIndex" json:"email"`
	Phone         string          `gorm:"type:varchar(20)" json:"phone"`
	EmailVerified bool            `gorm:"not null;default:false" json:"emailVerified"`
	Profile       UserProfile     `gorm:"embedded;embeddedPrefix:profile_" json:"profile"`
	Preferences   UserPreferences `gorm:"embedded;embeddedPrefix:pref_" json:"preferences"`

	LoyaltyPoints  int            `gorm:"not null;default:0" json:"loyaltyPoints"`
	LoyaltyTier    LoyaltyTier    `gorm:"not null;type:varchar(10);default:'bronze'" json:"loyaltyTier"`
	LoyaltyHistory []LoyaltyEntry `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"loyaltyHistory,omitempty"`

	WalletBalance decimal.Decimal `gorm:"not null;type:decimal(10,2);default:0;check:wallet_balance >= 0" json:"walletBalance"`

	Status    UserStatus `gorm:"not null;type:varchar(10);default:'active'" json:"status"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	BaseModel
}

// 點數異動append-log
type LoyaltyEntry struct {
	LoyaltyEntryID uint   `gorm:"primaryKey" json:"-"`
	UserID         uint   `gorm:"not null;index" json:"-"`
	Action         string `gorm:"not null;type:varchar(50)" json:"action"` // purchase / referral / review
	Points         int    `gorm:"not null" json:"points"`
	RefID          string `gorm:"type:varchar(50)" json:"refId"`
	BaseModel
}

// AddLoyaltyPoints 加點並重算tier, 只改記憶體, 由caller持久化
func (u *User) AddLoyaltyPoints(points int, action, refID string) {
	u.LoyaltyPoints += points
	u.LoyaltyHistory = append(u.LoyaltyHistory, LoyaltyEntry{
		UserID: u.UserID,
		Action: action,
		Points: points,
		RefID:  refID,
	})

	switch {
	case u.LoyaltyPoints > 5000:
		u.LoyaltyTier = TierPlatinum
	case u.LoyaltyPoints > 2000:
		u.LoyaltyTier = TierGold
	case u.LoyaltyPoints > 500:
		u.LoyaltyTier = TierSilver
	default:
		u.LoyaltyTier = TierBronze
	}
}
