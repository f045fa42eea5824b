package models

import (
	"time"
)

// Transaction records are written by the payment platform and are immutable
// here. The user reference may be null for system-originated entries.
type Transaction struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	UserID           *uint     `json:"user_id" gorm:"index"`
	User             *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Amount           float64   `json:"amount" gorm:"default:0"`
	Fee              float64   `json:"fee" gorm:"default:0"`
	Status           string    `json:"status" gorm:"index"` // pending, completed, failed
	TransactionType  string    `json:"transaction_type"`
	ExtraType        string    `json:"extra_type"`
	FromCurrency     string    `json:"from_currency"`
	ToCurrency       string    `json:"to_currency"`
	ConversionAmount float64   `json:"conversion_amount" gorm:"default:0"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
