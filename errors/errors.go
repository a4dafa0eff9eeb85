package errors

import (
	"errors"
	"fmt"
)

// Kind phân loại lỗi để map sang HTTP status.
type Kind string

const (
	KindValidation      Kind = "VALIDATION"
	KindAuthorization   Kind = "AUTHORIZATION"
	KindUnauthenticated Kind = "UNAUTHENTICATED"
	KindNotFound        Kind = "NOT_FOUND"
	KindConflict        Kind = "CONFLICT"
	KindDomainRule      Kind = "DOMAIN_RULE"
	KindInternal        Kind = "INTERNAL"
)

// ErrorCode định nghĩa mã lỗi
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden       ErrorCode = "FORBIDDEN"
	ErrCodeInvalidToken    ErrorCode = "INVALID_TOKEN"
	ErrCodeMissingToken    ErrorCode = "MISSING_TOKEN"
	ErrCodeInvalidPassword ErrorCode = "INVALID_PASSWORD"
	ErrCodeInvalidRole     ErrorCode = "INVALID_ROLE"

	// Resource errors
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrCodeUserNotFound    ErrorCode = "USER_NOT_FOUND"
	ErrCodeUserExists      ErrorCode = "USER_EXISTS"
	ErrCodeHotelNotFound   ErrorCode = "HOTEL_NOT_FOUND"
	ErrCodeBookingNotFound ErrorCode = "BOOKING_NOT_FOUND"
	ErrCodePostNotFound    ErrorCode = "POST_NOT_FOUND"
	ErrCodeCommentNotFound ErrorCode = "COMMENT_NOT_FOUND"

	// Database errors
	ErrCodeInternal    ErrorCode = "INTERNAL_ERROR"
	ErrCodeDBError     ErrorCode = "DB_ERROR"
	ErrCodeDBNotFound  ErrorCode = "DB_NOT_FOUND"
	ErrCodeDBDuplicate ErrorCode = "DB_DUPLICATE"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"

	// Business errors
	ErrCodeRoomsExceeded    ErrorCode = "ROOMS_EXCEEDED"
	ErrCodeInvalidDateRange ErrorCode = "INVALID_DATE_RANGE"
	ErrCodeInvalidOperation ErrorCode = "INVALID_OPERATION"
)

// FieldErrors map field -> danh sách lỗi, trả nguyên cụm cho client.
type FieldErrors map[string][]string

// Add thêm một lỗi cho field.
func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// AppError định nghĩa lỗi của ứng dụng
type AppError struct {
	Kind    Kind
	Code    ErrorCode
	Message string
	Fields  FieldErrors
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError tạo một AppError mới
func NewAppError(kind Kind, code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewValidationError tạo lỗi validation kèm toàn bộ lỗi theo field.
func NewValidationError(fields FieldErrors) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Code:    ErrCodeValidation,
		Message: "Dữ liệu không hợp lệ",
		Fields:  fields,
	}
}

// NewDomainRuleError tạo lỗi nghiệp vụ gắn với các field vi phạm.
func NewDomainRuleError(code ErrorCode, message string, fields FieldErrors) *AppError {
	return &AppError{
		Kind:    KindDomainRule,
		Code:    code,
		Message: message,
		Fields:  fields,
	}
}

// NewAuthorizationError tạo lỗi không có quyền, một lý do duy nhất.
func NewAuthorizationError(message string) *AppError {
	return &AppError{
		Kind:    KindAuthorization,
		Code:    ErrCodeForbidden,
		Message: message,
	}
}

// NewNotFoundError tạo lỗi không tìm thấy resource.
func NewNotFoundError(code ErrorCode, message string) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Code:    code,
		Message: message,
	}
}

// NewConflictError tạo lỗi trùng dữ liệu (unique constraint).
func NewConflictError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Kind:    KindConflict,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsAppError kiểm tra xem error có phải là AppError không
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError lấy AppError từ error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsKind kiểm tra error thuộc kind cho trước.
func IsKind(err error, kind Kind) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Kind == kind
}
