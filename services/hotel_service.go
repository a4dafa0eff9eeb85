package services

import (
	"context"
	goerrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/chabbasaad/4CITE-sub001/dto"
	"github.com/chabbasaad/4CITE-sub001/errors"
	"github.com/chabbasaad/4CITE-sub001/models"
	"github.com/chabbasaad/4CITE-sub001/policy"
	"github.com/chabbasaad/4CITE-sub001/services/logger"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const hotelListCacheTTL = 10 * time.Minute

// Allow-list field sort. Field lạ rơi về created_at desc, không báo lỗi.
var hotelSortColumns = map[string]string{
	"name":            "name",
	"location":        "location",
	"price_per_night": "price_per_night",
	"created_at":      "created_at",
}

type HotelService struct {
	db     *gorm.DB
	redis  *redis.Client // nil thì bỏ qua cache
	logger logger.Logger
}

type HotelServiceOptions struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Logger logger.Logger
}

func NewHotelService(opts HotelServiceOptions) *HotelService {
	return &HotelService{db: opts.DB, redis: opts.Redis, logger: opts.Logger}
}

func hotelNotFound() error {
	return errors.NewNotFoundError(errors.ErrCodeHotelNotFound, "Không tìm thấy khách sạn")
}

type hotelListCacheEntry struct {
	Hotels []models.Hotel `json:"hotels"`
	Total  int64          `json:"total"`
}

func hotelListCacheKey(q dto.HotelListQuery) string {
	minPrice, maxPrice := "", ""
	if q.MinPrice != nil {
		minPrice = fmt.Sprintf("%.2f", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		maxPrice = fmt.Sprintf("%.2f", *q.MaxPrice)
	}
	available := ""
	if q.Available != nil {
		available = fmt.Sprintf("%t", *q.Available)
	}
	return fmt.Sprintf("hotels:list:%s:%s:%s:%s:%s:%s:%d:%d",
		strings.ToLower(q.Search), minPrice, maxPrice, available, q.SortBy, q.Order, q.Page, q.Limit)
}

// List danh sách hotel, public. Search không phân biệt hoa thường trên
// name/location/description, lọc theo khoảng giá và availability, sort
// theo allow-list, limit kẹp [1,100]. Kết quả cache Redis theo bộ lọc.
func (s *HotelService) List(ctx context.Context, query dto.HotelListQuery) ([]models.Hotel, int64, error) {
	query.Normalize()

	cacheKey := hotelListCacheKey(query)
	if s.redis != nil {
		var cached hotelListCacheEntry
		if err := GetFromRedis(ctx, s.redis, cacheKey, &cached); err == nil && cached.Hotels != nil {
			return cached.Hotels, cached.Total, nil
		}
	}

	q := s.db.Model(&models.Hotel{})
	if query.Search != "" {
		term := "%" + strings.ToLower(query.Search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(location) LIKE ? OR LOWER(description) LIKE ?",
			term, term, term)
	}
	if query.MinPrice != nil {
		q = q.Where("price_per_night >= ?", *query.MinPrice)
	}
	if query.MaxPrice != nil {
		q = q.Where("price_per_night <= ?", *query.MaxPrice)
	}
	if query.Available != nil {
		q = q.Where("is_available = ?", *query.Available)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi truy vấn hotel", err)
	}

	q = q.Order(hotelOrderClause(query.SortBy, query.Order))

	var hotels []models.Hotel
	if err := q.Offset(query.Offset()).Limit(query.Limit).Find(&hotels).Error; err != nil {
		return nil, 0, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi truy vấn hotel", err)
	}

	if s.redis != nil {
		entry := hotelListCacheEntry{Hotels: hotels, Total: total}
		if err := SetToRedis(ctx, s.redis, cacheKey, entry, hotelListCacheTTL); err != nil {
			s.logger.Error("Lỗi lưu cache danh sách hotel: %v", err)
		}
	}
	return hotels, total, nil
}

func hotelOrderClause(sortBy, order string) string {
	column, ok := hotelSortColumns[sortBy]
	if !ok {
		return "created_at DESC"
	}
	if strings.ToLower(order) == "desc" {
		return column + " DESC"
	}
	return column + " ASC"
}

// Get chi tiết một hotel, public.
func (s *HotelService) Get(id uint) (models.Hotel, error) {
	var hotel models.Hotel
	if err := s.db.First(&hotel, "id = ?", id).Error; err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return models.Hotel{}, hotelNotFound()
		}
		return models.Hotel{}, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi truy vấn hotel", err)
	}
	return hotel, nil
}

// Create tạo hotel, admin only.
func (s *HotelService) Create(ctx context.Context, actor policy.Actor, req dto.CreateHotelRequest) (models.Hotel, error) {
	if !policy.CanHotel(actor, policy.ActionCreate) {
		return models.Hotel{}, errors.NewAuthorizationError("Chỉ admin được tạo khách sạn")
	}

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	hotel := models.Hotel{
		Name:           strings.TrimSpace(req.Name),
		Location:       strings.TrimSpace(req.Location),
		Description:    req.Description,
		PricePerNight:  req.PricePerNight,
		TotalRooms:     req.TotalRooms,
		AvailableRooms: req.AvailableRooms,
		IsAvailable:    isAvailable,
		Amenities:      req.Amenities,
		PictureList:    req.PictureList,
	}
	if err := hotel.ValidateRooms(); err != nil {
		return models.Hotel{}, roomsExceededError()
	}

	if err := s.db.Create(&hotel).Error; err != nil {
		return models.Hotel{}, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi tạo hotel", err)
	}

	s.invalidateListCache(ctx)
	s.logger.Info("Admin %d tạo hotel %d (%s)", actor.ID, hotel.ID, hotel.Name)
	return hotel, nil
}

// Update sửa hotel, admin only. Invariant available_rooms <= total_rooms
// được check lại trên giá trị đã merge, ngay trước khi ghi.
func (s *HotelService) Update(ctx context.Context, actor policy.Actor, id uint, req dto.UpdateHotelRequest) (models.Hotel, error) {
	if !policy.CanHotel(actor, policy.ActionUpdate) {
		return models.Hotel{}, errors.NewAuthorizationError("Chỉ admin được sửa khách sạn")
	}

	var hotel models.Hotel
	if err := s.db.First(&hotel, "id = ?", id).Error; err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return models.Hotel{}, hotelNotFound()
		}
		return models.Hotel{}, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi truy vấn hotel", err)
	}

	if req.Name != nil {
		hotel.Name = strings.TrimSpace(*req.Name)
	}
	if req.Location != nil {
		hotel.Location = strings.TrimSpace(*req.Location)
	}
	if req.Description != nil {
		hotel.Description = *req.Description
	}
	if req.PricePerNight != nil {
		hotel.PricePerNight = *req.PricePerNight
	}
	if req.TotalRooms != nil {
		hotel.TotalRooms = *req.TotalRooms
	}
	if req.AvailableRooms != nil {
		hotel.AvailableRooms = *req.AvailableRooms
	}
	if req.IsAvailable != nil {
		hotel.IsAvailable = *req.IsAvailable
	}
	if req.Amenities != nil {
		hotel.Amenities = req.Amenities
	}
	if req.PictureList != nil {
		hotel.PictureList = req.PictureList
	}

	if err := hotel.ValidateRooms(); err != nil {
		return models.Hotel{}, roomsExceededError()
	}

	if err := s.db.Save(&hotel).Error; err != nil {
		return models.Hotel{}, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi cập nhật hotel", err)
	}

	s.invalidateListCache(ctx)
	return hotel, nil
}

func roomsExceededError() error {
	fields := errors.FieldErrors{}
	fields.Add("availableRooms", "không được vượt quá tổng số phòng")
	return errors.NewDomainRuleError(errors.ErrCodeRoomsExceeded,
		"Số phòng trống vượt quá tổng số phòng", fields)
}

// Delete xóa hẳn hotel kèm booking của nó, admin only, chạy trong một
// transaction để không còn booking mồ côi.
func (s *HotelService) Delete(ctx context.Context, actor policy.Actor, id uint) error {
	if !policy.CanHotel(actor, policy.ActionDelete) {
		return errors.NewAuthorizationError("Chỉ admin được xóa khách sạn")
	}

	var hotel models.Hotel
	if err := s.db.First(&hotel, "id = ?", id).Error; err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return hotelNotFound()
		}
		return errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi truy vấn hotel", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("hotel_id = ?", id).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Hotel{}, id).Error
	})
	if err != nil {
		return errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi xóa hotel", err)
	}

	s.invalidateListCache(ctx)
	s.logger.Info("Admin %d xóa hotel %d", actor.ID, id)
	return nil
}

func (s *HotelService) invalidateListCache(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := DeleteByPattern(ctx, s.redis, "hotels:list:*"); err != nil {
		s.logger.Error("Lỗi invalidate cache hotel: %v", err)
	}
}
