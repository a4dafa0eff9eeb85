// Package policy là bảng quyết định phân quyền thuần cho toàn bộ resource:
// (actor, action, resource) -> allow/deny. Không phụ thuộc gin hay gorm,
// test được mà không cần bootstrap web framework.
package policy

import (
	"github.com/chabbasaad/4CITE-sub001/constants"
	"github.com/chabbasaad/4CITE-sub001/models"
)

// Action hành động trên resource.
type Action string

const (
	ActionView        Action = "view"
	ActionList        Action = "list"
	ActionCreate      Action = "create"
	ActionUpdate      Action = "update"
	ActionDelete      Action = "delete"
	ActionRestore     Action = "restore"
	ActionForceDelete Action = "force_delete"
)

// Actor user đã xác thực đang thực hiện request.
type Actor struct {
	ID   uint
	Role constants.Role
}

// IsAdmin tiện cho các rule admin-only.
func (a Actor) IsAdmin() bool {
	return a.Role == constants.RoleAdmin
}

// IsStaff admin + employee, được đọc rộng nhưng không được ghi rộng.
func (a Actor) IsStaff() bool {
	return constants.IsStaff(a.Role)
}

// CanHotel quyền trên hotel: đọc public, ghi admin-only.
func CanHotel(actor Actor, action Action) bool {
	switch action {
	case ActionView, ActionList:
		return true
	case ActionCreate, ActionUpdate, ActionDelete, ActionRestore, ActionForceDelete:
		return actor.IsAdmin()
	}
	return false
}

// CanBooking quyền trên booking. Staff xem được mọi booking nhưng chỉ
// chủ booking hoặc admin được sửa/xóa (employee không sửa booking của
// người khác).
func CanBooking(actor Actor, action Action, booking *models.Booking) bool {
	switch action {
	case ActionCreate:
		return actor.ID != 0
	case ActionList:
		return actor.ID != 0
	case ActionView:
		if booking == nil {
			return false
		}
		return actor.ID == booking.UserID || actor.IsStaff()
	case ActionUpdate, ActionDelete:
		if booking == nil {
			return false
		}
		return actor.ID == booking.UserID || actor.IsAdmin()
	}
	return false
}

// CanPost quyền trên post. Sửa/xóa cần là admin hoặc chủ post có quyền
// nội dung tương ứng; post đã soft delete chỉ admin hoặc chủ xem được.
func CanPost(actor Actor, action Action, post *models.Post) bool {
	switch action {
	case ActionCreate:
		return actor.IsAdmin() || constants.HasPermission(actor.Role, constants.PermCreateContent)
	case ActionList:
		return true
	case ActionView:
		if post == nil {
			return false
		}
		if post.DeletedAt == nil {
			return true
		}
		return actor.IsAdmin() || actor.ID == post.UserID
	case ActionUpdate:
		if post == nil {
			return false
		}
		if actor.IsAdmin() {
			return true
		}
		return actor.ID == post.UserID && constants.HasPermission(actor.Role, constants.PermEditContent)
	case ActionDelete:
		if post == nil {
			return false
		}
		if actor.IsAdmin() {
			return true
		}
		return actor.ID == post.UserID && constants.HasPermission(actor.Role, constants.PermDeleteContent)
	case ActionRestore, ActionForceDelete:
		return actor.IsAdmin()
	}
	return false
}

// CanComment quyền trên comment. postOwnerID là chủ post chứa comment,
// được quyền xem comment trên post của mình.
func CanComment(actor Actor, action Action, comment *models.Comment, postOwnerID uint) bool {
	switch action {
	case ActionCreate:
		return constants.HasPermission(actor.Role, constants.PermCommentContent)
	case ActionView:
		if comment == nil {
			return false
		}
		return actor.IsAdmin() || actor.ID == comment.UserID || actor.ID == postOwnerID
	case ActionUpdate, ActionDelete:
		if comment == nil {
			return false
		}
		return actor.IsAdmin() || actor.ID == comment.UserID
	case ActionRestore, ActionForceDelete:
		return actor.IsAdmin()
	}
	return false
}

// CanUser quyền trên user khác (hoặc chính mình).
func CanUser(actor Actor, action Action, target *models.User) bool {
	switch action {
	case ActionList:
		return actor.IsAdmin()
	case ActionView, ActionUpdate:
		if target == nil {
			return false
		}
		return actor.IsAdmin() || actor.ID == target.ID
	case ActionDelete:
		// Admin không tự xóa được chính mình.
		if target == nil {
			return false
		}
		return actor.IsAdmin() && actor.ID != target.ID
	case ActionRestore:
		return actor.IsAdmin()
	}
	return false
}

// CanCreateUserWithRole quyền tạo user mới với role cho trước:
// admin tạo mọi role, employee chỉ tạo được role user. Role khác
// fail ở tầng phân quyền chứ không phải validation.
func CanCreateUserWithRole(actor Actor, role constants.Role) bool {
	switch actor.Role {
	case constants.RoleAdmin:
		return constants.IsValidRole(role)
	case constants.RoleEmployee:
		return role == constants.RoleUser
	}
	return false
}

// CanChangeRole đổi role chỉ admin làm được, kể cả trên profile của
// chính mình.
func CanChangeRole(actor Actor, target *models.User, newRole constants.Role) bool {
	if target != nil && newRole == target.Role {
		return true
	}
	return actor.IsAdmin()
}
