package dto

// MediaInput một media đính kèm khi tạo/sửa post, chỉ nhận URL.
type MediaInput struct {
	URL       string `json:"url" validate:"required,url"`
	MediaType string `json:"mediaType" validate:"omitempty,oneof=photo video"`
}

// CreatePostRequest định nghĩa request tạo post
type CreatePostRequest struct {
	Title   string       `json:"title" validate:"required,min=3,max=150"`
	Content string       `json:"content" validate:"required,min=1,max=10000"`
	Media   []MediaInput `json:"media" validate:"omitempty,dive"`
}

// UpdatePostRequest các field optional; Media non-nil thay toàn bộ media cũ.
type UpdatePostRequest struct {
	Title   *string       `json:"title" validate:"omitempty,min=3,max=150"`
	Content *string       `json:"content" validate:"omitempty,min=1,max=10000"`
	Media   *[]MediaInput `json:"media" validate:"omitempty,dive"`
}

// PostListQuery bộ lọc danh sách post
type PostListQuery struct {
	UserID         *uint
	Search         string
	IncludeDeleted bool // chỉ admin dùng được
	ListQuery
}
