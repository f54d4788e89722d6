package models

import (
	"time"
)

type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null;index" json:"name"`
	Surname   string    `gorm:"type:varchar(100);not null" json:"surname"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Phone     string    `gorm:"type:varchar(50);not null" json:"phone"`
	Address   *string   `gorm:"type:varchar(255)" json:"address,omitempty"`
	Active    bool      `gorm:"not null" json:"active"`
	Points    int       `gorm:"not null;default:0" json:"points"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// FullName joins name and surname the way the dashboard prints them.
func (c *Customer) FullName() string {
	return c.Name + " " + c.Surname
}
