package models

import (
	"time"
)

// Admin roles form a closed set; anything else is rejected at the boundary.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleSupport    = "support"
	RoleAnalyst    = "analyst"
	RoleSalesTeam  = "sales_team"
)

var AdminRoles = []string{RoleSuperAdmin, RoleAdmin, RoleManager, RoleSupport, RoleAnalyst, RoleSalesTeam}

// AdminUser is an administrative principal. Password is always a bcrypt hash;
// plaintext never reaches storage or responses.
type AdminUser struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Name        string     `json:"name" gorm:"not null"`
	Email       string     `json:"email" gorm:"uniqueIndex;not null"`
	Password    string     `json:"-" gorm:"not null"`
	Role        string     `json:"role" gorm:"default:support"`
	Status      string     `json:"status" gorm:"default:active"` // active, inactive
	Permissions StringList `json:"permissions" gorm:"serializer:json"`
	LastLogin   *time.Time `json:"last_login"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// StringList is stored as a JSON column.
type StringList []string

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email" validate:"omitempty,email"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password" validate:"omitempty,min=8"`
}
