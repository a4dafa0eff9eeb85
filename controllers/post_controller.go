package controllers

import (
	"github.com/chabbasaad/4CITE-sub001/dto"
	"github.com/chabbasaad/4CITE-sub001/middleware"
	"github.com/chabbasaad/4CITE-sub001/response"
	"github.com/chabbasaad/4CITE-sub001/services"
	"github.com/chabbasaad/4CITE-sub001/validator"

	"github.com/gin-gonic/gin"
)

type PostController struct {
	posts *services.PostService
}

func NewPostController(posts *services.PostService) PostController {
	return PostController{posts: posts}
}

// GetPosts GET /posts: public, lọc theo user/search.
func (ctrl PostController) GetPosts(c *gin.Context) {
	query := dto.PostListQuery{
		Search:    c.Query("search"),
		ListQuery: parseListQuery(c),
	}
	if v := queryInt(c, "user_id"); v != nil && *v > 0 {
		userID := uint(*v)
		query.UserID = &userID
	}
	if v := queryBool(c, "include_deleted"); v != nil {
		query.IncludeDeleted = *v
	}

	actor := middleware.ActorFromContext(c)
	posts, total, err := ctrl.posts.List(c.Request.Context(), actor, query)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithPagination(c, posts, query.Page, query.Limit, total)
}

// GetPost GET /posts/:id
func (ctrl PostController) GetPost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	post, err := ctrl.posts.Get(middleware.ActorFromContext(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, post)
}

// CreatePost POST /posts: cần quyền tạo nội dung.
func (ctrl PostController) CreatePost(c *gin.Context) {
	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu gửi lên không đọc được")
		return
	}
	if err := validator.ValidateCreatePost(req); err != nil {
		response.FromError(c, err)
		return
	}

	post, err := ctrl.posts.Create(middleware.ActorFromContext(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, post)
}

// UpdatePost PUT /posts/:id
func (ctrl PostController) UpdatePost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu gửi lên không đọc được")
		return
	}
	if err := validator.ValidateUpdatePost(req); err != nil {
		response.FromError(c, err)
		return
	}

	post, err := ctrl.posts.Update(middleware.ActorFromContext(c), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, post)
}

// DeletePost DELETE /posts/:id: soft delete.
func (ctrl PostController) DeletePost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	if err := ctrl.posts.Delete(middleware.ActorFromContext(c), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Đã xóa bài viết", nil)
}

// RestorePost POST /posts/:id/restore: admin only.
func (ctrl PostController) RestorePost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	post, err := ctrl.posts.Restore(middleware.ActorFromContext(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, post)
}

// ForceDeletePost DELETE /posts/:id/force: admin only, xóa vĩnh viễn.
func (ctrl PostController) ForceDeletePost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	if err := ctrl.posts.ForceDelete(middleware.ActorFromContext(c), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Đã xóa vĩnh viễn bài viết", nil)
}
