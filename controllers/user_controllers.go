package controllers

import (
	"github.com/chabbasaad/4CITE-sub001/constants"
	"github.com/chabbasaad/4CITE-sub001/dto"
	"github.com/chabbasaad/4CITE-sub001/middleware"
	"github.com/chabbasaad/4CITE-sub001/response"
	"github.com/chabbasaad/4CITE-sub001/services"
	"github.com/chabbasaad/4CITE-sub001/validator"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) UserController {
	return UserController{users: users}
}

// GetUsers GET /users: admin only, lọc theo search/role/include_deleted.
func (ctrl UserController) GetUsers(c *gin.Context) {
	actor := middleware.ActorFromContext(c)

	query := dto.UserListQuery{
		Search:    c.Query("search"),
		ListQuery: parseListQuery(c),
	}
	if v := queryInt(c, "role"); v != nil {
		role := constants.Role(*v)
		query.Role = &role
	}
	if v := queryBool(c, "include_deleted"); v != nil {
		query.IncludeDeleted = *v
	}

	users, total, err := ctrl.users.List(actor, query)
	if err != nil {
		response.FromError(c, err)
		return
	}

	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.ToUserResponse(u))
	}
	response.SuccessWithPagination(c, out, query.Page, query.Limit, total)
}

// GetUser GET /users/:id
func (ctrl UserController) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	user, err := ctrl.users.Get(middleware.ActorFromContext(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.ToUserResponse(user))
}

// GetProfile GET /profile: profile của chính actor.
func (ctrl UserController) GetProfile(c *gin.Context) {
	actor := middleware.ActorFromContext(c)

	user, err := ctrl.users.Get(actor, actor.ID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.ToUserResponse(user))
}

// CreateUser POST /users: admin tạo mọi role, employee chỉ tạo role user.
func (ctrl UserController) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu gửi lên không đọc được")
		return
	}
	if err := validator.ValidateCreateUser(req); err != nil {
		response.FromError(c, err)
		return
	}

	user, err := ctrl.users.Create(middleware.ActorFromContext(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, dto.ToUserResponse(user))
}

// UpdateUser PUT /users/:id
func (ctrl UserController) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu gửi lên không đọc được")
		return
	}
	if err := validator.ValidateUpdateUser(req); err != nil {
		response.FromError(c, err)
		return
	}

	user, err := ctrl.users.Update(middleware.ActorFromContext(c), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.ToUserResponse(user))
}

// DeleteUser DELETE /users/:id: soft delete, admin only và không tự xóa
// được chính mình.
func (ctrl UserController) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	if err := ctrl.users.Delete(middleware.ActorFromContext(c), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Đã xóa user", nil)
}

// RestoreUser POST /users/:id/restore: admin khôi phục user đã xóa.
func (ctrl UserController) RestoreUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	user, err := ctrl.users.Restore(middleware.ActorFromContext(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.ToUserResponse(user))
}
