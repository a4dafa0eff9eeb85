package dto

// CreateHotelRequest định nghĩa request tạo hotel
type CreateHotelRequest struct {
	Name           string   `json:"name" validate:"required,min=2,max=150"`
	Location       string   `json:"location" validate:"required,min=2,max=150"`
	Description    string   `json:"description" validate:"max=5000"`
	PricePerNight  float64  `json:"pricePerNight" validate:"required,gt=0"`
	TotalRooms     int      `json:"totalRooms" validate:"required,gte=1"`
	AvailableRooms int      `json:"availableRooms" validate:"gte=0"`
	IsAvailable    *bool    `json:"isAvailable"`
	Amenities      []string `json:"amenities" validate:"dive,min=1"`
	PictureList    []string `json:"pictureList" validate:"dive,url"`
}

// UpdateHotelRequest các field optional, nil giữ nguyên giá trị cũ.
type UpdateHotelRequest struct {
	Name           *string  `json:"name" validate:"omitempty,min=2,max=150"`
	Location       *string  `json:"location" validate:"omitempty,min=2,max=150"`
	Description    *string  `json:"description" validate:"omitempty,max=5000"`
	PricePerNight  *float64 `json:"pricePerNight" validate:"omitempty,gt=0"`
	TotalRooms     *int     `json:"totalRooms" validate:"omitempty,gte=1"`
	AvailableRooms *int     `json:"availableRooms" validate:"omitempty,gte=0"`
	IsAvailable    *bool    `json:"isAvailable"`
	Amenities      []string `json:"amenities" validate:"omitempty,dive,min=1"`
	PictureList    []string `json:"pictureList" validate:"omitempty,dive,url"`
}

// HotelListQuery bộ lọc/sort danh sách hotel. SortBy ngoài allow-list
// rơi về created_at desc chứ không báo lỗi.
type HotelListQuery struct {
	Search    string
	MinPrice  *float64
	MaxPrice  *float64
	Available *bool
	SortBy    string
	Order     string
	ListQuery
}
