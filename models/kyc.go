package models

import (
	"time"
)

var KYCStatuses = []string{"pending", "approved", "rejected", "under_review"}

// KYC holds the identity verification workflow for one user. Document images
// themselves are bank-controlled and never stored here.
type KYC struct {
	ID                           uint       `json:"id" gorm:"primaryKey"`
	UserID                       uint       `json:"user_id" gorm:"uniqueIndex;not null"`
	User                         *User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Status                       string     `json:"status" gorm:"index;default:pending"`
	Title                        string     `json:"title"`
	Nationality                  string     `json:"nationality"`
	Occupation                   string     `json:"occupation"`
	DateOfBirth                  *time.Time `json:"date_of_birth"`
	PlaceOfBirth                 string     `json:"place_of_birth"`
	IdentificationType           string     `json:"identification_type"` // passport, card, id
	PersonalIdentificationNumber string     `json:"personal_identification_number"`
	PassportNumber               string     `json:"passport_number"`
	Address                      string     `json:"address"`
	City                         string     `json:"city"`
	State                        string     `json:"state"`
	PostalCode                   string     `json:"postal_code"`
	Country                      string     `json:"country"`
	CurrentStep                  int        `json:"current_step" gorm:"default:0"`
	SubmittedAt                  *time.Time `json:"submitted_at"`
	ReviewedAt                   *time.Time `json:"reviewed_at"`
	ApprovedAt                   *time.Time `json:"approved_at"`
	RejectionReason              string     `json:"rejection_reason"`
	CreatedAt                    time.Time  `json:"created_at"`
	UpdatedAt                    time.Time  `json:"updated_at"`
}
