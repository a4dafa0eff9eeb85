package dto

import "github.com/chabbasaad/4CITE-sub001/response"

// PaginatedResponse là struct chung cho các response có phân trang
type PaginatedResponse[T any] struct {
	Data       T                   `json:"data"`
	Pagination response.Pagination `json:"pagination"`
}

// ListQuery tham số phân trang chung, limit kẹp trong [1, 100].
type ListQuery struct {
	Page  int
	Limit int
}

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Normalize đưa page/limit về khoảng hợp lệ thay vì báo lỗi.
func (q *ListQuery) Normalize() {
	if q.Page < 0 {
		q.Page = 0
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
}

// Offset vị trí bắt đầu theo page hiện tại.
func (q ListQuery) Offset() int {
	return q.Page * q.Limit
}
