package services

import (
	goerrors "errors"
	"fmt"
	"time"

	"github.com/chabbasaad/4CITE-sub001/constants"
	"github.com/chabbasaad/4CITE-sub001/dto"
	"github.com/chabbasaad/4CITE-sub001/errors"
	"github.com/chabbasaad/4CITE-sub001/models"
	"github.com/chabbasaad/4CITE-sub001/policy"
	"github.com/chabbasaad/4CITE-sub001/services/logger"
	"github.com/chabbasaad/4CITE-sub001/services/notification"

	"gorm.io/gorm"
)

type BookingService struct {
	db       *gorm.DB
	logger   logger.Logger
	notifier notification.Service // nil thì không bắn thông báo
}

type BookingServiceOptions struct {
	DB       *gorm.DB
	Logger   logger.Logger
	Notifier notification.Service
}

func NewBookingService(opts BookingServiceOptions) *BookingService {
	return &BookingService{db: opts.DB, logger: opts.Logger, notifier: opts.Notifier}
}

func bookingNotFound() error {
	return errors.NewNotFoundError(errors.ErrCodeBookingNotFound, "Không tìm thấy booking")
}

// List danh sách booking. User thường chỉ thấy booking của mình; staff
// thấy tất cả và lọc được theo status + khoảng ngày nhận phòng.
func (s *BookingService) List(actor policy.Actor, query dto.BookingListQuery) ([]models.Booking, int64, error) {
	if !policy.CanBooking(actor, policy.ActionList, nil) {
		return nil, 0, errors.NewAuthorizationError("Cần đăng nhập để xem booking")
	}
	query.Normalize()

	q := s.db.Model(&models.Booking{})
	if !actor.IsStaff() {
		q = q.Where("user_id = ?", actor.ID)
	} else {
		if query.Status != nil {
			q = q.Where("status = ?", *query.Status)
		}
		if query.FromDate != nil {
			q = q.Where("check_in_date >= ?", *query.FromDate)
		}
		if query.ToDate != nil {
			q = q.Where("check_in_date <= ?", *query.ToDate)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi truy vấn booking", err)
	}

	var bookings []models.Booking
	err := q.Order("check_in_date DESC").Offset(query.Offset()).Limit(query.Limit).Find(&bookings).Error
	if err != nil {
		return nil, 0, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi truy vấn booking", err)
	}
	return bookings, total, nil
}

// Get chi tiết booking: chủ booking hoặc staff.
func (s *BookingService) Get(actor policy.Actor, id uint) (models.Booking, error) {
	var booking models.Booking
	if err := s.db.First(&booking, "id = ?", id).Error; err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, bookingNotFound()
		}
		return models.Booking{}, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi truy vấn booking", err)
	}
	if !policy.CanBooking(actor, policy.ActionView, &booking) {
		return models.Booking{}, errors.NewAuthorizationError("Không có quyền xem booking này")
	}
	return booking, nil
}

// Create đặt phòng cho chính actor. Ngày đã được validator parse và
// check thứ tự; guests_count luôn tính lại từ guest_names. Toàn bộ chạy
// trong một transaction, fail giữa chừng không để lại dòng dở dang.
func (s *BookingService) Create(actor policy.Actor, req dto.CreateBookingRequest, checkIn, checkOut time.Time) (models.Booking, error) {
	if !policy.CanBooking(actor, policy.ActionCreate, nil) {
		return models.Booking{}, errors.NewAuthorizationError("Cần đăng nhập để đặt phòng")
	}

	var booking models.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var hotel models.Hotel
		if err := tx.First(&hotel, "id = ?", req.HotelID).Error; err != nil {
			if goerrors.Is(err, gorm.ErrRecordNotFound) {
				return hotelNotFound()
			}
			return err
		}
		if !hotel.IsAvailable || hotel.AvailableRooms < 1 {
			fields := errors.FieldErrors{}
			fields.Add("hotelId", "khách sạn đã hết phòng")
			return errors.NewDomainRuleError(errors.ErrCodeInvalidOperation,
				"Khách sạn không còn phòng trống", fields)
		}

		booking = models.Booking{
			UserID:       actor.ID,
			HotelID:      hotel.ID,
			CheckInDate:  checkIn,
			CheckOutDate: checkOut,
			Status:       constants.BookingStatusPending,
			GuestNames:   req.GuestNames,
			GuestsCount:  len(req.GuestNames),
			ContactPhone: req.ContactPhone,
		}
		booking.TotalPrice = float64(booking.Nights()) * hotel.PricePerNight

		return tx.Create(&booking).Error
	})
	if err != nil {
		if errors.IsAppError(err) {
			return models.Booking{}, err
		}
		return models.Booking{}, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi tạo booking", err)
	}

	s.logger.Info("User %d đặt phòng %d tại hotel %d", actor.ID, booking.ID, booking.HotelID)
	return booking, nil
}

// Update sửa booking: chủ booking hoặc admin (employee xem được nhưng
// không sửa được). Ngày sau khi merge vẫn phải đúng thứ tự.
func (s *BookingService) Update(actor policy.Actor, id uint, req dto.UpdateBookingRequest, checkIn, checkOut *time.Time) (models.Booking, error) {
	var booking models.Booking
	if err := s.db.First(&booking, "id = ?", id).Error; err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, bookingNotFound()
		}
		return models.Booking{}, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi truy vấn booking", err)
	}

	if !policy.CanBooking(actor, policy.ActionUpdate, &booking) {
		return models.Booking{}, errors.NewAuthorizationError("Không có quyền sửa booking này")
	}

	oldStatus := booking.Status
	if checkIn != nil {
		booking.CheckInDate = *checkIn
	}
	if checkOut != nil {
		booking.CheckOutDate = *checkOut
	}
	if !booking.CheckOutDate.After(booking.CheckInDate) {
		fields := errors.FieldErrors{}
		fields.Add("checkInDate", "phải trước ngày trả phòng")
		fields.Add("checkOutDate", "phải sau ngày nhận phòng")
		return models.Booking{}, errors.NewDomainRuleError(errors.ErrCodeInvalidDateRange,
			"Khoảng ngày đặt phòng không hợp lệ", fields)
	}
	if req.GuestNames != nil {
		booking.GuestNames = *req.GuestNames
		booking.GuestsCount = len(*req.GuestNames)
	}
	if req.ContactPhone != nil {
		booking.ContactPhone = *req.ContactPhone
	}
	if req.Status != nil {
		if !constants.IsValidBookingStatus(*req.Status) {
			fields := errors.FieldErrors{}
			fields.Add("status", "trạng thái không hợp lệ")
			return models.Booking{}, errors.NewValidationError(fields)
		}
		booking.Status = *req.Status
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if checkIn != nil || checkOut != nil {
			var hotel models.Hotel
			if err := tx.First(&hotel, "id = ?", booking.HotelID).Error; err != nil {
				return err
			}
			booking.TotalPrice = float64(booking.Nights()) * hotel.PricePerNight
		}
		return tx.Save(&booking).Error
	})
	if err != nil {
		return models.Booking{}, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi cập nhật booking", err)
	}

	if s.notifier != nil && booking.Status != oldStatus {
		message := notification.NewBookingStatusMessage(booking.UserID, booking.ID, booking.Status).Build()
		if err := s.notifier.SendMessage(message); err != nil {
			s.logger.Error("Lỗi gửi thông báo booking %d: %v", booking.ID, err)
		}
	}
	return booking, nil
}

// Delete hủy hẳn booking (hard delete): chủ booking hoặc admin.
func (s *BookingService) Delete(actor policy.Actor, id uint) error {
	var booking models.Booking
	if err := s.db.First(&booking, "id = ?", id).Error; err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return bookingNotFound()
		}
		return errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi truy vấn booking", err)
	}

	if !policy.CanBooking(actor, policy.ActionDelete, &booking) {
		return errors.NewAuthorizationError("Không có quyền xóa booking này")
	}

	if err := s.db.Delete(&models.Booking{}, id).Error; err != nil {
		return errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi xóa booking", err)
	}
	s.logger.Info("User %d xóa booking %d", actor.ID, id)
	return nil
}

// CompletePastBookings chuyển booking confirmed đã qua ngày trả phòng
// sang completed. Cron gọi hằng đêm.
func (s *BookingService) CompletePastBookings(now time.Time) (int64, error) {
	result := s.db.Model(&models.Booking{}).
		Where("status = ? AND check_out_date < ?", constants.BookingStatusConfirmed, now).
		Update("status", constants.BookingStatusCompleted)
	if result.Error != nil {
		return 0, fmt.Errorf("lỗi auto-complete booking: %w", result.Error)
	}
	return result.RowsAffected, nil
}
