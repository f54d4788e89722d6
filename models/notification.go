package models

import (
	"time"
)

// Notification is one entry of the staff activity feed.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Event     string    `gorm:"type:varchar(50);not null;index" json:"event"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Payload   string    `gorm:"type:text" json:"payload,omitempty"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
