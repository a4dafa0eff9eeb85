// Package validator chạy rule set khai báo cho từng request trước khi
// policy và service được gọi. Mọi vi phạm được gom lại trả về một lần,
// không dừng ở lỗi đầu tiên.
package validator

import (
	goerrors "errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/chabbasaad/4CITE-sub001/dto"
	"github.com/chabbasaad/4CITE-sub001/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// Báo lỗi theo tên field trong json thay vì tên field Go
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// collectStructErrors gom toàn bộ lỗi tag validate của struct.
func collectStructErrors(s interface{}) errors.FieldErrors {
	fields := errors.FieldErrors{}
	err := validate.Struct(s)
	if err == nil {
		return fields
	}

	var verrs validator.ValidationErrors
	if !goerrors.As(err, &verrs) {
		fields.Add("_", "dữ liệu không đọc được")
		return fields
	}

	for _, fe := range verrs {
		fields.Add(fe.Field(), messageFor(fe))
	}
	return fields
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "không được để trống"
	case "email":
		return "không phải email hợp lệ"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("phải có ít nhất %s ký tự", fe.Param())
		}
		return fmt.Sprintf("phải có ít nhất %s phần tử", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("tối đa %s ký tự", fe.Param())
		}
		return fmt.Sprintf("tối đa %s phần tử", fe.Param())
	case "gt":
		return fmt.Sprintf("phải lớn hơn %s", fe.Param())
	case "gte":
		return fmt.Sprintf("phải lớn hơn hoặc bằng %s", fe.Param())
	case "url":
		return "không phải URL hợp lệ"
	case "oneof":
		return fmt.Sprintf("phải là một trong: %s", fe.Param())
	default:
		return "không hợp lệ"
	}
}

func finish(fields errors.FieldErrors) error {
	if len(fields) > 0 {
		return errors.NewValidationError(fields)
	}
	return nil
}

// ValidateRegister validate request đăng ký. Việc so khớp xác nhận mật
// khẩu chỉ chạy khi bản thân password đã hợp lệ.
func ValidateRegister(req dto.RegisterRequest) error {
	fields := collectStructErrors(req)

	if _, bad := fields["password"]; !bad {
		if req.Password != req.PasswordConfirmation {
			fields.Add("passwordConfirmation", "không khớp với mật khẩu")
		}
	}
	return finish(fields)
}

// ValidateCreateUser validate request tạo user. Role không check ở đây:
// role sai fail ở tầng phân quyền.
func ValidateCreateUser(req dto.CreateUserRequest) error {
	return finish(collectStructErrors(req))
}

// ValidateUpdateUser validate request sửa user.
func ValidateUpdateUser(req dto.UpdateUserRequest) error {
	fields := collectStructErrors(req)

	if req.Password != nil {
		if _, bad := fields["password"]; !bad {
			if req.PasswordConfirmation == nil || *req.Password != *req.PasswordConfirmation {
				fields.Add("passwordConfirmation", "không khớp với mật khẩu")
			}
		}
	}
	return finish(fields)
}

// ValidateCreateHotel validate request tạo hotel, gồm cả rule chéo
// available_rooms <= total_rooms.
func ValidateCreateHotel(req dto.CreateHotelRequest) error {
	fields := collectStructErrors(req)

	if req.AvailableRooms > req.TotalRooms {
		fields.Add("availableRooms", "không được vượt quá tổng số phòng")
		return errors.NewDomainRuleError(errors.ErrCodeRoomsExceeded,
			"Số phòng trống vượt quá tổng số phòng", fields)
	}
	return finish(fields)
}

// ValidateUpdateHotel validate phần được gửi lên của request sửa hotel.
// Rule chéo về số phòng check tiếp ở service với giá trị đã merge.
func ValidateUpdateHotel(req dto.UpdateHotelRequest) error {
	return finish(collectStructErrors(req))
}

// ValidateCreateBooking validate và parse ngày của request đặt phòng.
// Vi phạm ngày trả về DomainRule nêu đích danh field lỗi.
func ValidateCreateBooking(req dto.CreateBookingRequest, now time.Time) (checkIn, checkOut time.Time, err error) {
	fields := collectStructErrors(req)
	domain := false

	checkIn, checkOut, domain = checkBookingDates(req.CheckInDate, req.CheckOutDate, now, fields)

	if domain {
		return checkIn, checkOut, errors.NewDomainRuleError(errors.ErrCodeInvalidDateRange,
			"Khoảng ngày đặt phòng không hợp lệ", fields)
	}
	if len(fields) > 0 {
		return checkIn, checkOut, errors.NewValidationError(fields)
	}
	return checkIn, checkOut, nil
}

func checkBookingDates(inStr, outStr string, now time.Time, fields errors.FieldErrors) (checkIn, checkOut time.Time, domain bool) {
	var inOK, outOK bool

	if inStr != "" {
		var parseErr error
		checkIn, parseErr = time.Parse(dto.DateLayout, inStr)
		if parseErr != nil {
			fields.Add("checkInDate", "sai định dạng, cần YYYY-MM-DD")
		} else {
			inOK = true
		}
	}
	if outStr != "" {
		var parseErr error
		checkOut, parseErr = time.Parse(dto.DateLayout, outStr)
		if parseErr != nil {
			fields.Add("checkOutDate", "sai định dạng, cần YYYY-MM-DD")
		} else {
			outOK = true
		}
	}

	today := now.Truncate(24 * time.Hour)
	if inOK && checkIn.Before(today) {
		fields.Add("checkInDate", "không được ở quá khứ")
		domain = true
	}
	if inOK && outOK && !checkOut.After(checkIn) {
		// Nêu cả hai field vi phạm
		fields.Add("checkInDate", "phải trước ngày trả phòng")
		fields.Add("checkOutDate", "phải sau ngày nhận phòng")
		domain = true
	}
	return checkIn, checkOut, domain
}

// ValidateUpdateBooking validate request sửa booking; ngày chỉ parse khi
// được gửi lên, rule thứ tự ngày check tiếp ở service với giá trị merge.
func ValidateUpdateBooking(req dto.UpdateBookingRequest) (checkIn, checkOut *time.Time, err error) {
	fields := collectStructErrors(req)

	if req.CheckInDate != nil {
		t, parseErr := time.Parse(dto.DateLayout, *req.CheckInDate)
		if parseErr != nil {
			fields.Add("checkInDate", "sai định dạng, cần YYYY-MM-DD")
		} else {
			checkIn = &t
		}
	}
	if req.CheckOutDate != nil {
		t, parseErr := time.Parse(dto.DateLayout, *req.CheckOutDate)
		if parseErr != nil {
			fields.Add("checkOutDate", "sai định dạng, cần YYYY-MM-DD")
		} else {
			checkOut = &t
		}
	}

	if len(fields) > 0 {
		return nil, nil, errors.NewValidationError(fields)
	}
	return checkIn, checkOut, nil
}

// ValidateCreatePost validate request tạo post
func ValidateCreatePost(req dto.CreatePostRequest) error {
	return finish(collectStructErrors(req))
}

// ValidateUpdatePost validate request sửa post
func ValidateUpdatePost(req dto.UpdatePostRequest) error {
	return finish(collectStructErrors(req))
}

// ValidateComment validate nội dung comment (dùng chung tạo/sửa)
func ValidateComment(content string) error {
	fields := errors.FieldErrors{}
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		fields.Add("content", "không được để trống")
	}
	if len(content) > 2000 {
		fields.Add("content", "tối đa 2000 ký tự")
	}
	return finish(fields)
}
