package models

import (
	"strings"
	"time"
)

// User mirrors the consumer platform's user collection. Accounts are created
// by the consumer-facing app; this service only reads them and updates status.
type User struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Title           string    `json:"title"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	DisplayName     string    `json:"display_name"`
	Email           string    `json:"email" gorm:"uniqueIndex;not null"`
	PhoneNumber     string    `json:"phone_number"`
	Country         string    `json:"country"`
	Status          string    `json:"status" gorm:"index;default:active"` // active, inactive, suspended, pending
	Type            string    `json:"type" gorm:"default:individual"`     // individual, business
	ReferralCode    string    `json:"referral_code"`
	ReferredBy      *uint     `json:"referred_by"`
	TwoFAEnabled    bool      `json:"two_fa_enabled" gorm:"default:false"`
	IsEmailVerified bool      `json:"is_email_verified" gorm:"default:false"`
	WalletAddress   string    `json:"wallet_address"`
	KycVerified     bool      `json:"kyc_verified" gorm:"default:false"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

var UserStatuses = []string{"active", "inactive", "suspended", "pending"}

// FullName assembles the name shown on dashboards. Falls back to the stored
// display name, then to a placeholder when nothing is available.
func (u *User) FullName() string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name == "" {
		name = strings.TrimSpace(u.DisplayName)
	}
	if name == "" {
		return "—"
	}
	return name
}
