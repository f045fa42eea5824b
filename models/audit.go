package models

import (
	"time"
)

// AdminAuditLog records mutating admin actions. Best-effort writes only.
type AdminAuditLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	AdminID   *uint     `json:"admin_id"`
	Action    string    `json:"action" gorm:"not null"`
	Resource  string    `json:"resource" gorm:"not null"`
	Details   string    `json:"details"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	RequestID string    `json:"request_id"`
	CreatedAt time.Time `json:"created_at"`
}
