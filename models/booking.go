package models

import (
	"time"

	"github.com/lib/pq"
)

type Booking struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	UserID       uint           `gorm:"not null;index" json:"userId"`
	HotelID      uint           `gorm:"not null;index" json:"hotelId"`
	CheckInDate  time.Time      `gorm:"not null" json:"checkInDate"`
	CheckOutDate time.Time      `gorm:"not null" json:"checkOutDate"` // luôn sau CheckInDate
	Status       int            `gorm:"default:0" json:"status"`
	GuestNames   pq.StringArray `gorm:"type:text[]" json:"guestNames"`
	GuestsCount  int            `json:"guestsCount"` // luôn = len(GuestNames), tính lại khi ghi
	ContactPhone string         `json:"contactPhone"`
	TotalPrice   float64        `json:"totalPrice"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Nights số đêm của booking.
func (b *Booking) Nights() int {
	return int(b.CheckOutDate.Sub(b.CheckInDate).Hours() / 24)
}
