package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type UpdateProfileDTO struct {
	DisplayName string     `json:"displayName"`
	FullName    string     `json:"fullName"`
	PhotoURL    string     `json:"photoURL"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	Gender      string     `json:"gender"`
	Bio         string     `json:"bio"`
	Phone       string     `json:"phone"`
}

type UpdatePreferencesDTO struct {
	Categories  []string `json:"categories"`
	Brands      []string `json:"brands"`
	NotifyEmail bool     `json:"notifyEmail"`
	NotifySMS   bool     `json:"notifySms"`
	NotifyPush  bool     `json:"notifyPush"`
}

type AddLoyaltyPointsDTO struct {
	Points int    `json:"points"`
	Action string `json:"action"`
	RefID  string `json:"refId"`
}

type TopUpWalletDTO struct {
	Amount decimal.Decimal `json:"amount"`
}

type UpdateUserStatusDTO struct {
	Status string `json:"status"`
}
