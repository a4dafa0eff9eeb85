package dto

import "time"

// DateLayout format ngày trên API, giống FE gửi lên.
const DateLayout = "2006-01-02"

// CreateBookingRequest định nghĩa request đặt phòng
type CreateBookingRequest struct {
	HotelID      uint     `json:"hotelId" validate:"required"`
	CheckInDate  string   `json:"checkInDate" validate:"required"`
	CheckOutDate string   `json:"checkOutDate" validate:"required"`
	GuestNames   []string `json:"guestNames" validate:"required,min=1,dive,required"`
	ContactPhone string   `json:"contactPhone" validate:"omitempty,min=8,max=15"`
}

// UpdateBookingRequest các field optional; GuestNames nil giữ nguyên.
type UpdateBookingRequest struct {
	CheckInDate  *string   `json:"checkInDate"`
	CheckOutDate *string   `json:"checkOutDate"`
	GuestNames   *[]string `json:"guestNames" validate:"omitempty,min=1,dive,required"`
	ContactPhone *string   `json:"contactPhone" validate:"omitempty,min=8,max=15"`
	Status       *int      `json:"status"`
}

// BookingListQuery bộ lọc danh sách booking. Status và khoảng ngày chỉ
// có tác dụng với staff; user thường luôn chỉ thấy booking của mình.
type BookingListQuery struct {
	Status   *int
	FromDate *time.Time
	ToDate   *time.Time
	ListQuery
}
