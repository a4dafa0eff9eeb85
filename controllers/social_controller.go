package controllers

import (
	"github.com/chabbasaad/4CITE-sub001/dto"
	"github.com/chabbasaad/4CITE-sub001/middleware"
	"github.com/chabbasaad/4CITE-sub001/response"
	"github.com/chabbasaad/4CITE-sub001/services"

	"github.com/gin-gonic/gin"
)

type SocialController struct {
	social *services.SocialService
}

func NewSocialController(social *services.SocialService) SocialController {
	return SocialController{social: social}
}

// FollowUser POST /users/:id/follow: idempotent, follow lại không lỗi.
func (ctrl SocialController) FollowUser(c *gin.Context) {
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	if err := ctrl.social.Follow(middleware.ActorFromContext(c), targetID); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Đã theo dõi", nil)
}

// UnfollowUser DELETE /users/:id/follow: idempotent.
func (ctrl SocialController) UnfollowUser(c *gin.Context) {
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	if err := ctrl.social.Unfollow(middleware.ActorFromContext(c), targetID); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Đã bỏ theo dõi", nil)
}

// GetFollowers GET /users/:id/followers
func (ctrl SocialController) GetFollowers(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	query := parseListQuery(c)
	users, total, err := ctrl.social.Followers(userID, query)
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

// GetFollowing GET /users/:id/following
func (ctrl SocialController) GetFollowing(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	query := parseListQuery(c)
	users, total, err := ctrl.social.Following(userID, query)
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

// LikePost POST /posts/:id/like: idempotent.
func (ctrl SocialController) LikePost(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	if err := ctrl.social.Like(middleware.ActorFromContext(c), postID); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Đã thích bài viết", nil)
}

// UnlikePost DELETE /posts/:id/like: idempotent.
func (ctrl SocialController) UnlikePost(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	if err := ctrl.social.Unlike(middleware.ActorFromContext(c), postID); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Đã bỏ thích bài viết", nil)
}
