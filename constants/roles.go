package constants

// Role phân quyền của user trong hệ thống.
type Role int

const (
	RoleUser     Role = 0
	RoleEmployee Role = 1
	RoleAdmin    Role = 2
)

// RoleContentCreator: bên social gọi employee là "content creator",
// cùng một cấp quyền.
const RoleContentCreator = RoleEmployee

// Permission quyền chi tiết, suy ra từ role.
type Permission string

const (
	PermCreateContent  Permission = "create content"
	PermEditContent    Permission = "edit content"
	PermDeleteContent  Permission = "delete content"
	PermCommentContent Permission = "comment on content"
)

var rolePermissions = map[Role][]Permission{
	RoleUser:     {PermCommentContent},
	RoleEmployee: {PermCreateContent, PermEditContent, PermDeleteContent, PermCommentContent},
	RoleAdmin:    {PermCreateContent, PermEditContent, PermDeleteContent, PermCommentContent},
}

// HasPermission kiểm tra role có quyền chi tiết hay không.
func HasPermission(role Role, perm Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == perm {
			return true
		}
	}
	return false
}

// IsValidRole kiểm tra giá trị role hợp lệ.
func IsValidRole(role Role) bool {
	return role >= RoleUser && role <= RoleAdmin
}

// IsStaff: admin và employee được xem dữ liệu của mọi user.
func IsStaff(role Role) bool {
	return role == RoleAdmin || role == RoleEmployee
}
