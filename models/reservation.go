package models

import "time"

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
)

// Statuses lists every status in display order.
var Statuses = []ReservationStatus{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted}

func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

type Reservation struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	DateTime    time.Time         `gorm:"not null;index:idx_reservation_table_time,priority:2" json:"date_time"`
	PartySize   int               `gorm:"not null" json:"party_size"`
	Status      ReservationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Notes       *string           `gorm:"type:text" json:"notes,omitempty"`
	TableNumber uint              `gorm:"not null;index:idx_reservation_table_time,priority:1" json:"table_number"`
	Table       *Table            `gorm:"foreignKey:TableNumber;references:Number;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"table,omitempty"`
	CustomerID  uint              `gorm:"not null;index" json:"customer_id"`
	Customer    *Customer         `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"customer,omitempty"`
	CreatedAt   time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"not null" json:"updated_at"`
}

// Active reports whether the reservation still holds its slot.
func (r *Reservation) Active() bool {
	return r.Status != StatusCancelled
}
