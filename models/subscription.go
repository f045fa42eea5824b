package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Subscription status values are driven by the billing platform; the admin
// override endpoint is the only writer on this side.
var SubscriptionStatuses = []string{"ACTIVE", "PAST_DUE", "SUSPENDED", "CANCELED"}

// Subscription carries both USD and VYO denominated amounts. VYO amounts can
// hold more than two significant decimals, so they are stored as
// arbitrary-precision decimals rather than floats.
type Subscription struct {
	ID                uint                `json:"id" gorm:"primaryKey"`
	UserID            uint                `json:"user_id" gorm:"index:idx_sub_user_status;not null"`
	User              *User               `json:"user,omitempty" gorm:"foreignKey:UserID"`
	PlanDisplayName   string              `json:"plan_display_name" gorm:"not null"`
	ExternalPlanID    string              `json:"external_plan_id" gorm:"not null"`
	Status            string              `json:"status" gorm:"index:idx_sub_user_status;not null"`
	BillingStart      time.Time           `json:"billing_start" gorm:"not null"`
	BillingEnd        time.Time           `json:"billing_end" gorm:"not null"`
	NextBillingDate   *time.Time          `json:"next_billing_date"`
	NextBillingAmount *float64            `json:"next_billing_amount"`
	MonthlyFeeUSD     float64             `json:"monthly_fee_usd" gorm:"default:0"`
	MonthlyFeeVYO     *float64            `json:"monthly_fee_vyo"`
	DepositLockVYO    decimal.NullDecimal `json:"deposit_lock_vyo" gorm:"type:numeric"`
	OneTimeFeeVYO     decimal.NullDecimal `json:"one_time_fee_vyo" gorm:"type:numeric"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}
