package response

import (
	"net/http"

	"github.com/chabbasaad/4CITE-sub001/errors"
	"github.com/gin-gonic/gin"
)

// Response định nghĩa cấu trúc response. Code là mã lỗi ổn định cho
// client máy đọc, response thành công không có code.
type Response struct {
	Message    string             `json:"message"`
	Code       errors.ErrorCode   `json:"code,omitempty"`
	Data       interface{}        `json:"data,omitempty"`
	Errors     errors.FieldErrors `json:"errors,omitempty"`
	Pagination *Pagination        `json:"pagination,omitempty"`
}

// Pagination định nghĩa cấu trúc phân trang
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// Success trả về response thành công
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Message: "Thành công",
		Data:    data,
	})
}

// Created trả về response tạo mới thành công
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Message: "Tạo mới thành công",
		Data:    data,
	})
}

// SuccessWithMessage trả về response thành công kèm message riêng
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Message: message,
		Data:    data,
	})
}

// SuccessWithPagination trả về response thành công có phân trang
func SuccessWithPagination(c *gin.Context, data interface{}, page, limit int, total int64) {
	c.JSON(http.StatusOK, Response{
		Message: "Thành công",
		Data:    data,
		Pagination: &Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	})
}

// ServerError trả về response lỗi server
func ServerError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, Response{
		Message: "Lỗi server",
		Code:    errors.ErrCodeInternal,
	})
}

// Unauthorized trả về response chưa xác thực
func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, Response{
		Message: "Chưa xác thực",
		Code:    errors.ErrCodeUnauthorized,
	})
}

// Forbidden trả về response không có quyền
func Forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, Response{
		Message: "Không có quyền truy cập",
		Code:    errors.ErrCodeForbidden,
	})
}

// NotFound trả về response không tìm thấy
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, Response{
		Message: "Không tìm thấy",
		Code:    errors.ErrCodeNotFound,
	})
}

// ValidationError trả về response lỗi validation, trả đủ lỗi theo field
func ValidationError(c *gin.Context, message string, fields errors.FieldErrors) {
	c.JSON(http.StatusUnprocessableEntity, Response{
		Message: message,
		Code:    errors.ErrCodeValidation,
		Errors:  fields,
	})
}

// BadRequest trả về response lỗi bad request
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Message: message,
		Code:    errors.ErrCodeInvalidFormat,
	})
}

// Conflict trả về response conflict (409)
func Conflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, Response{
		Message: message,
		Code:    errors.ErrCodeDBDuplicate,
	})
}

// FromError map AppError sang status tương ứng. Code của AppError trả
// nguyên cho client, trừ lỗi internal; chi tiết nội bộ (Err) không bao
// giờ được trả về client.
func FromError(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		c.JSON(http.StatusInternalServerError, Response{Message: "Lỗi server", Code: errors.ErrCodeInternal})
		return
	}

	switch appErr.Kind {
	case errors.KindValidation, errors.KindDomainRule:
		c.JSON(http.StatusUnprocessableEntity, Response{
			Message: appErr.Message,
			Code:    appErr.Code,
			Errors:  appErr.Fields,
		})
	case errors.KindAuthorization:
		c.JSON(http.StatusForbidden, Response{Message: appErr.Message, Code: appErr.Code})
	case errors.KindUnauthenticated:
		c.JSON(http.StatusUnauthorized, Response{Message: appErr.Message, Code: appErr.Code})
	case errors.KindNotFound:
		c.JSON(http.StatusNotFound, Response{Message: appErr.Message, Code: appErr.Code})
	case errors.KindConflict:
		c.JSON(http.StatusConflict, Response{Message: appErr.Message, Code: appErr.Code})
	default:
		c.JSON(http.StatusInternalServerError, Response{Message: "Lỗi server", Code: errors.ErrCodeInternal})
	}
}
