package models

import (
	"time"
)

// KYB is the business counterpart of KYC, one record per business user.
type KYB struct {
	ID                   uint       `json:"id" gorm:"primaryKey"`
	UserID               uint       `json:"user_id" gorm:"uniqueIndex;not null"`
	User                 *User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Status               string     `json:"status" gorm:"index;default:pending"` // pending, approved, rejected, under_review
	BusinessLegalType    string     `json:"business_legal_type"`
	BusinessLegalName    string     `json:"business_legal_name"`
	TradingName          string     `json:"trading_name"`
	RegistrationNumber   string     `json:"registration_number"`
	TaxID                string     `json:"tax_id"`
	DateOfIncorporation  *time.Time `json:"date_of_incorporation"`
	CountryOfIncorporation string   `json:"country_of_incorporation"`
	BusinessEmail        string     `json:"business_email"`
	BusinessPhone        string     `json:"business_phone"`
	Website              string     `json:"website"`
	IndustryType         string     `json:"industry_type"`
	NumberOfEmployees    int        `json:"number_of_employees"`
	Plan                 string     `json:"plan"` // essential, premium
	CurrentStep          int        `json:"current_step" gorm:"default:0"`
	SubmittedAt          *time.Time `json:"submitted_at"`
	ReviewedAt           *time.Time `json:"reviewed_at"`
	ApprovedAt           *time.Time `json:"approved_at"`
	RejectionReason      string     `json:"rejection_reason"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}
