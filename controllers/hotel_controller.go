package controllers

import (
	"github.com/chabbasaad/4CITE-sub001/dto"
	"github.com/chabbasaad/4CITE-sub001/middleware"
	"github.com/chabbasaad/4CITE-sub001/response"
	"github.com/chabbasaad/4CITE-sub001/services"
	"github.com/chabbasaad/4CITE-sub001/validator"

	"github.com/gin-gonic/gin"
)

type HotelController struct {
	hotels *services.HotelService
}

func NewHotelController(hotels *services.HotelService) HotelController {
	return HotelController{hotels: hotels}
}

// GetHotels GET /hotels: public, search + lọc giá + sort.
func (ctrl HotelController) GetHotels(c *gin.Context) {
	query := dto.HotelListQuery{
		Search:    c.Query("search"),
		MinPrice:  queryFloat(c, "min_price"),
		MaxPrice:  queryFloat(c, "max_price"),
		Available: queryBool(c, "available"),
		SortBy:    c.Query("sort_by"),
		Order:     c.Query("order"),
		ListQuery: parseListQuery(c),
	}

	hotels, total, err := ctrl.hotels.List(c.Request.Context(), query)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithPagination(c, hotels, query.Page, query.Limit, total)
}

// GetHotel GET /hotels/:id: public.
func (ctrl HotelController) GetHotel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	hotel, err := ctrl.hotels.Get(id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, hotel)
}

// SuggestHotels GET /hotels/suggestions?keyword=: gợi ý tên/địa điểm.
func (ctrl HotelController) SuggestHotels(c *gin.Context) {
	keyword := c.Query("keyword")
	limit := 5
	if v := queryInt(c, "limit"); v != nil {
		limit = *v
	}

	suggestions, err := ctrl.hotels.Suggest(keyword, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, suggestions)
}

// CreateHotel POST /hotels: admin only.
func (ctrl HotelController) CreateHotel(c *gin.Context) {
	var req dto.CreateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu gửi lên không đọc được")
		return
	}
	if err := validator.ValidateCreateHotel(req); err != nil {
		response.FromError(c, err)
		return
	}

	hotel, err := ctrl.hotels.Create(c.Request.Context(), middleware.ActorFromContext(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, hotel)
}

// UpdateHotel PUT /hotels/:id: admin only.
func (ctrl HotelController) UpdateHotel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	var req dto.UpdateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu gửi lên không đọc được")
		return
	}
	if err := validator.ValidateUpdateHotel(req); err != nil {
		response.FromError(c, err)
		return
	}

	hotel, err := ctrl.hotels.Update(c.Request.Context(), middleware.ActorFromContext(c), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, hotel)
}

// DeleteHotel DELETE /hotels/:id: admin only, xóa kèm booking.
func (ctrl HotelController) DeleteHotel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	if err := ctrl.hotels.Delete(c.Request.Context(), middleware.ActorFromContext(c), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Đã xóa khách sạn", nil)
}
