package models

import "time"

type Post struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"userId"`
	Title     string     `gorm:"not null" json:"title"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	Media     []Media    `gorm:"foreignKey:PostID" json:"media"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt *time.Time `gorm:"index" json:"deletedAt,omitempty"`

	// Tính lúc query, không lưu DB
	LikesCount    int64 `gorm:"-" json:"likesCount"`
	CommentsCount int64 `gorm:"-" json:"commentsCount"`
	Liked         bool  `gorm:"-" json:"liked"`
}

// Media một ảnh/video đính kèm post, chỉ lưu URL, nội dung file do
// storage bên ngoài giữ.
type Media struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"postId"`
	URL       string    `gorm:"not null" json:"url"`
	MediaType string    `gorm:"type:varchar(10);default:photo" json:"mediaType"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
