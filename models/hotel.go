package models

import (
	"fmt"
	"time"

	"github.com/lib/pq"
)

type Hotel struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	Name          string         `gorm:"not null" json:"name"`
	Location      string         `gorm:"not null" json:"location"`
	Description   string         `json:"description"`
	PricePerNight float64        `json:"pricePerNight"`
	TotalRooms    int            `json:"totalRooms"`
	AvailableRooms int           `json:"availableRooms"` // luôn <= TotalRooms
	IsAvailable   bool           `gorm:"default:true" json:"isAvailable"`
	Amenities     pq.StringArray `gorm:"type:text[]" json:"amenities"`
	PictureList   pq.StringArray `gorm:"type:text[]" json:"pictureList"`
}

// ValidateRooms kiểm tra invariant số phòng, áp dụng cả lúc tạo lẫn lúc update.
func (h *Hotel) ValidateRooms() error {
	if h.AvailableRooms > h.TotalRooms {
		return fmt.Errorf("available_rooms %d vượt quá total_rooms %d", h.AvailableRooms, h.TotalRooms)
	}
	return nil
}
