package models

import (
	"time"
)

// IDList is stored as a JSON column of record ids.
type IDList []uint

// SalesTeamUser is a sales agent tracked for referral commissions. A mirrored
// AdminUser with role sales_team carries the login for the agent dashboard.
// Downlines are weak back-references kept for reporting only.
type SalesTeamUser struct {
	ID                        uint      `json:"id" gorm:"primaryKey"`
	Name                      string    `json:"name" gorm:"not null"`
	Email                     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password                  string    `json:"-" gorm:"not null"`
	Status                    string    `json:"status" gorm:"default:active"` // active, inactive
	CreatedBy                 uint      `json:"created_by"`
	ReferralCode              string    `json:"referral_code" gorm:"uniqueIndex;not null"`
	OnboardedUsers            int       `json:"onboarded_users" gorm:"default:0"`
	TotalSubscriptions        int       `json:"total_subscriptions" gorm:"default:0"`
	MonthlyNewSubscriptions   int       `json:"monthly_new_subscriptions" gorm:"default:0"`
	LastMonthNewSubscriptions int       `json:"last_month_new_subscriptions" gorm:"default:0"`
	Downlines                 IDList    `json:"downlines" gorm:"serializer:json"`
	CreatedAt                 time.Time `json:"created_at"`
	UpdatedAt                 time.Time `json:"updated_at"`
}

// SalesReferralCode maps a referral code to its agent. The unique index here
// is what actually enforces code uniqueness system-wide.
type SalesReferralCode struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	ReferralCode    string    `json:"referral_code" gorm:"uniqueIndex;not null"`
	SalesTeamUserID uint      `json:"sales_team_user_id" gorm:"index;not null"`
	CreatedAt       time.Time `json:"created_at"`
}

// SalesReferralSignup links a signed-up user to the code they used. Written
// by the consumer platform at registration time; read-only here.
type SalesReferralSignup struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"not null"`
	ReferralCode string    `json:"referral_code" gorm:"index;not null"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreateSalesTeamUserRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type UpdateSalesTeamUserRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email" validate:"omitempty,email"`
	Status string `json:"status" validate:"omitempty,oneof=active inactive"`
}
