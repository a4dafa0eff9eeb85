package controllers

import (
	"github.com/chabbasaad/4CITE-sub001/dto"
	"github.com/chabbasaad/4CITE-sub001/middleware"
	"github.com/chabbasaad/4CITE-sub001/response"
	"github.com/chabbasaad/4CITE-sub001/services"
	"github.com/chabbasaad/4CITE-sub001/validator"

	"github.com/gin-gonic/gin"
)

type CommentController struct {
	comments *services.CommentService
}

func NewCommentController(comments *services.CommentService) CommentController {
	return CommentController{comments: comments}
}

// GetComments GET /posts/:id/comments
func (ctrl CommentController) GetComments(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	query := parseListQuery(c)
	comments, total, err := ctrl.comments.ListForPost(middleware.ActorFromContext(c), postID, query)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithPagination(c, comments, query.Page, query.Limit, total)
}

// GetComment GET /comments/:id
func (ctrl CommentController) GetComment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	comment, err := ctrl.comments.Get(middleware.ActorFromContext(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, comment)
}

// CreateComment POST /posts/:id/comments
func (ctrl CommentController) CreateComment(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu gửi lên không đọc được")
		return
	}
	if err := validator.ValidateComment(req.Content); err != nil {
		response.FromError(c, err)
		return
	}

	comment, err := ctrl.comments.Create(middleware.ActorFromContext(c), postID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, comment)
}

// UpdateComment PUT /comments/:id
func (ctrl CommentController) UpdateComment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu gửi lên không đọc được")
		return
	}
	if err := validator.ValidateComment(req.Content); err != nil {
		response.FromError(c, err)
		return
	}

	comment, err := ctrl.comments.Update(middleware.ActorFromContext(c), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, comment)
}

// DeleteComment DELETE /comments/:id: soft delete.
func (ctrl CommentController) DeleteComment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	if err := ctrl.comments.Delete(middleware.ActorFromContext(c), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Đã xóa bình luận", nil)
}

// RestoreComment POST /comments/:id/restore: admin only.
func (ctrl CommentController) RestoreComment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	comment, err := ctrl.comments.Restore(middleware.ActorFromContext(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, comment)
}

// ForceDeleteComment DELETE /comments/:id/force: admin only.
func (ctrl CommentController) ForceDeleteComment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	if err := ctrl.comments.ForceDelete(middleware.ActorFromContext(c), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Đã xóa vĩnh viễn bình luận", nil)
}
