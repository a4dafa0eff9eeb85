package controllers

import (
	"time"

	"github.com/chabbasaad/4CITE-sub001/dto"
	"github.com/chabbasaad/4CITE-sub001/middleware"
	"github.com/chabbasaad/4CITE-sub001/response"
	"github.com/chabbasaad/4CITE-sub001/services"
	"github.com/chabbasaad/4CITE-sub001/validator"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) BookingController {
	return BookingController{bookings: bookings}
}

// GetBookings GET /bookings: user thường thấy booking của mình, staff
// thấy hết và lọc được theo status + khoảng ngày nhận phòng.
func (ctrl BookingController) GetBookings(c *gin.Context) {
	query := dto.BookingListQuery{
		Status:    queryInt(c, "status"),
		ListQuery: parseListQuery(c),
	}
	if raw := c.Query("from_date"); raw != "" {
		if t, err := time.Parse(dto.DateLayout, raw); err == nil {
			query.FromDate = &t
		}
	}
	if raw := c.Query("to_date"); raw != "" {
		if t, err := time.Parse(dto.DateLayout, raw); err == nil {
			query.ToDate = &t
		}
	}

	bookings, total, err := ctrl.bookings.List(middleware.ActorFromContext(c), query)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithPagination(c, bookings, query.Page, query.Limit, total)
}

// GetBooking GET /bookings/:id
func (ctrl BookingController) GetBooking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	booking, err := ctrl.bookings.Get(middleware.ActorFromContext(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, booking)
}

// CreateBooking POST /bookings
func (ctrl BookingController) CreateBooking(c *gin.Context) {
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu gửi lên không đọc được")
		return
	}

	checkIn, checkOut, err := validator.ValidateCreateBooking(req, time.Now())
	if err != nil {
		response.FromError(c, err)
		return
	}

	booking, err := ctrl.bookings.Create(middleware.ActorFromContext(c), req, checkIn, checkOut)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, booking)
}

// UpdateBooking PUT /bookings/:id
func (ctrl BookingController) UpdateBooking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	var req dto.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu gửi lên không đọc được")
		return
	}

	checkIn, checkOut, err := validator.ValidateUpdateBooking(req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	booking, err := ctrl.bookings.Update(middleware.ActorFromContext(c), id, req, checkIn, checkOut)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, booking)
}

// DeleteBooking DELETE /bookings/:id
func (ctrl BookingController) DeleteBooking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	if err := ctrl.bookings.Delete(middleware.ActorFromContext(c), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Đã hủy booking", nil)
}
