package dto

import (
	"time"

	"github.com/chabbasaad/4CITE-sub001/constants"
	"github.com/chabbasaad/4CITE-sub001/models"
)

// UserResponse định nghĩa response cho user, không bao giờ chứa password.
type UserResponse struct {
	ID             uint           `json:"id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Pseudo         string         `json:"pseudo"`
	ProfileType    string         `json:"profileType"`
	Avatar         string         `json:"avatar,omitempty"`
	Role           constants.Role `json:"role"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      *time.Time     `json:"deletedAt,omitempty"`
	FollowersCount int64          `json:"followersCount,omitempty"`
	FollowingCount int64          `json:"followingCount,omitempty"`
}

// ToUserResponse map model sang response.
func ToUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Pseudo:         user.Pseudo,
		ProfileType:    user.ProfileType,
		Avatar:         user.Avatar,
		Role:           user.Role,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
		DeletedAt:      user.DeletedAt,
		FollowersCount: user.FollowersCount,
		FollowingCount: user.FollowingCount,
	}
}

// CreateUserRequest định nghĩa request tạo user (admin/employee)
type CreateUserRequest struct {
	Name        string         `json:"name" validate:"required,min=2,max=100"`
	Email       string         `json:"email" validate:"required,email"`
	Password    string         `json:"password" validate:"required,min=8"`
	Pseudo      string         `json:"pseudo" validate:"required,min=3,max=30"`
	ProfileType string         `json:"profileType" validate:"omitempty,oneof=public private"`
	Role        constants.Role `json:"role"`
}

// UpdateUserRequest các field đều optional, nil nghĩa là giữ nguyên.
type UpdateUserRequest struct {
	Name                 *string         `json:"name" validate:"omitempty,min=2,max=100"`
	Email                *string         `json:"email" validate:"omitempty,email"`
	Password             *string         `json:"password" validate:"omitempty,min=8"`
	PasswordConfirmation *string         `json:"passwordConfirmation"`
	Pseudo               *string         `json:"pseudo" validate:"omitempty,min=3,max=30"`
	ProfileType          *string         `json:"profileType" validate:"omitempty,oneof=public private"`
	Avatar               *string         `json:"avatar" validate:"omitempty,url"`
	Role                 *constants.Role `json:"role"`
}

// UserListQuery bộ lọc danh sách user (admin)
type UserListQuery struct {
	Search         string
	Role           *constants.Role
	IncludeDeleted bool
	ListQuery
}
