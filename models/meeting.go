package models

import (
	"time"
)

var MeetingStatuses = []string{"scheduled", "ongoing", "completed", "cancelled"}

// Meeting is internal scheduling between admin users. Attendees are shared
// references to AdminUser records; deleting a meeting never touches them.
type Meeting struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time" gorm:"not null"`
	EndTime     time.Time `json:"end_time" gorm:"not null"`
	Attendees   IDList    `json:"attendees" gorm:"serializer:json"`
	CreatedBy   uint      `json:"created_by"`
	MeetingLink string    `json:"meeting_link"`
	Status      string    `json:"status" gorm:"default:scheduled"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type MeetingRequest struct {
	Title       string    `json:"title" validate:"required,min=2"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required"`
	Attendees   []uint    `json:"attendees"`
	MeetingLink string    `json:"meeting_link"`
	Status      string    `json:"status"`
}
