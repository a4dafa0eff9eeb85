package models

import (
	"time"

	"github.com/chabbasaad/4CITE-sub001/constants"
)

type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	Name        string         `gorm:"default:New User" json:"name"`
	Email       string         `gorm:"uniqueIndex;not null" json:"email"` // lưu lowercase + trim
	Password    string         `gorm:"not null" json:"-"`                 // bcrypt hash, không bao giờ serialize
	Pseudo      string         `gorm:"uniqueIndex;not null" json:"pseudo"`
	ProfileType string         `gorm:"default:public" json:"profileType"`
	Avatar      string         `json:"avatar"`
	Role        constants.Role `gorm:"default:0" json:"role"`
	DeletedAt   *time.Time     `gorm:"index" json:"deletedAt,omitempty"` // soft delete, admin restore được

	// Đếm tính lúc query, không lưu DB
	FollowersCount int64 `gorm:"-" json:"followersCount,omitempty"`
	FollowingCount int64 `gorm:"-" json:"followingCount,omitempty"`
}

// IsDeleted kiểm tra user đã bị soft delete chưa.
func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}
