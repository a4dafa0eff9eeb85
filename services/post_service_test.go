package services

import (
	"context"
	"testing"
	"time"

	"github.com/chabbasaad/4CITE-sub001/constants"
	"github.com/chabbasaad/4CITE-sub001/dto"
	"github.com/chabbasaad/4CITE-sub001/errors"
	"github.com/chabbasaad/4CITE-sub001/models"
	"github.com/chabbasaad/4CITE-sub001/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostService(t *testing.T) *PostService {
	db := newTestDB(t)
	return NewPostService(PostServiceOptions{DB: db, Logger: testLogger()})
}

func TestPostListCacheKeyDistinguishesFilters(t *testing.T) {
	base := dto.PostListQuery{Search: "Biển", ListQuery: dto.ListQuery{Page: 1, Limit: 10}}

	other := base
	other.Search = "núi"
	assert.NotEqual(t, postListCacheKey(base), postListCacheKey(other))

	userID := uint(7)
	other = base
	other.UserID = &userID
	assert.NotEqual(t, postListCacheKey(base), postListCacheKey(other))

	other = base
	other.Page = 2
	assert.NotEqual(t, postListCacheKey(base), postListCacheKey(other))

	// Search không phân biệt hoa thường nên key cũng vậy
	other = base
	other.Search = "biển"
	assert.Equal(t, postListCacheKey(base), postListCacheKey(other))
}

func TestRegularUserCannotCreatePost(t *testing.T) {
	posts := newPostService(t)
	user := seedUser(t, posts.db, constants.RoleUser)

	_, err := posts.Create(actorFor(user), dto.CreatePostRequest{
		Title:   "Bài viết",
		Content: "Nội dung",
	})
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindAuthorization))
}

func TestEmployeeCreatesPostWithMedia(t *testing.T) {
	posts := newPostService(t)
	employee := seedUser(t, posts.db, constants.RoleEmployee)

	post, err := posts.Create(actorFor(employee), dto.CreatePostRequest{
		Title:   "Bài viết mới",
		Content: "Nội dung",
		Media: []dto.MediaInput{
			{URL: "https://cdn.example.com/a.jpg"},
			{URL: "https://cdn.example.com/b.mp4", MediaType: "video"},
		},
	})
	require.NoError(t, err)
	require.Len(t, post.Media, 2)
	// media không khai báo type mặc định là photo
	assert.Equal(t, "photo", post.Media[0].MediaType)
	assert.Equal(t, "video", post.Media[1].MediaType)
}

func TestSoftDeletedPostHiddenFromPublic(t *testing.T) {
	posts := newPostService(t)
	author := seedUser(t, posts.db, constants.RoleEmployee)
	admin := seedUser(t, posts.db, constants.RoleAdmin)
	other := seedUser(t, posts.db, constants.RoleUser)

	post, err := posts.Create(actorFor(author), dto.CreatePostRequest{
		Title: "Bài viết", Content: "Nội dung",
	})
	require.NoError(t, err)

	require.NoError(t, posts.Delete(actorFor(author), post.ID))

	// Người ngoài nhận 404, không phân biệt được đã xóa hay chưa từng có
	_, err = posts.Get(actorFor(other), post.ID)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))

	// Vô danh cũng vậy
	_, err = posts.Get(policy.Actor{}, post.ID)
	require.Error(t, err)

	// Chủ post và admin vẫn xem được
	_, err = posts.Get(actorFor(author), post.ID)
	assert.NoError(t, err)
	_, err = posts.Get(actorFor(admin), post.ID)
	assert.NoError(t, err)

	// Danh sách public không chứa post đã xóa
	list, total, err := posts.List(context.Background(), policy.Actor{}, dto.PostListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, list)

	// include_deleted chỉ có tác dụng với admin
	list, total, err = posts.List(context.Background(), actorFor(admin), dto.PostListQuery{IncludeDeleted: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)

	_, total, err = posts.List(context.Background(), actorFor(other), dto.PostListQuery{IncludeDeleted: true})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestRestorePost(t *testing.T) {
	posts := newPostService(t)
	author := seedUser(t, posts.db, constants.RoleEmployee)
	admin := seedUser(t, posts.db, constants.RoleAdmin)

	post, err := posts.Create(actorFor(author), dto.CreatePostRequest{
		Title: "Bài viết", Content: "Nội dung",
	})
	require.NoError(t, err)
	require.NoError(t, posts.Delete(actorFor(author), post.ID))

	// Chủ post không tự restore được
	_, err = posts.Restore(actorFor(author), post.ID)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindAuthorization))

	restored, err := posts.Restore(actorFor(admin), post.ID)
	require.NoError(t, err)
	assert.Nil(t, restored.DeletedAt)

	// Restore post chưa xóa là no-op
	_, err = posts.Restore(actorFor(admin), post.ID)
	assert.NoError(t, err)
}

func TestUpdatePostReplacesMedia(t *testing.T) {
	posts := newPostService(t)
	author := seedUser(t, posts.db, constants.RoleEmployee)

	post, err := posts.Create(actorFor(author), dto.CreatePostRequest{
		Title:   "Bài viết",
		Content: "Nội dung",
		Media:   []dto.MediaInput{{URL: "https://cdn.example.com/a.jpg"}},
	})
	require.NoError(t, err)

	newMedia := []dto.MediaInput{
		{URL: "https://cdn.example.com/b.jpg"},
		{URL: "https://cdn.example.com/c.jpg"},
	}
	updated, err := posts.Update(actorFor(author), post.ID, dto.UpdatePostRequest{Media: &newMedia})
	require.NoError(t, err)
	require.Len(t, updated.Media, 2)

	var count int64
	posts.db.Model(&models.Media{}).Where("post_id = ?", post.ID).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestOtherUserCannotEditPost(t *testing.T) {
	posts := newPostService(t)
	author := seedUser(t, posts.db, constants.RoleEmployee)
	other := seedUser(t, posts.db, constants.RoleEmployee)

	post, err := posts.Create(actorFor(author), dto.CreatePostRequest{
		Title: "Bài viết", Content: "Nội dung",
	})
	require.NoError(t, err)

	title := "Sửa trộm"
	_, err = posts.Update(actorFor(other), post.ID, dto.UpdatePostRequest{Title: &title})
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindAuthorization))
}

func TestForceDeleteRemovesDependents(t *testing.T) {
	posts := newPostService(t)
	author := seedUser(t, posts.db, constants.RoleEmployee)
	admin := seedUser(t, posts.db, constants.RoleAdmin)
	fan := seedUser(t, posts.db, constants.RoleUser)

	post, err := posts.Create(actorFor(author), dto.CreatePostRequest{
		Title:   "Bài viết",
		Content: "Nội dung",
		Media:   []dto.MediaInput{{URL: "https://cdn.example.com/a.jpg"}},
	})
	require.NoError(t, err)

	require.NoError(t, posts.db.Create(&models.Comment{
		UserID: fan.ID, PostID: post.ID, Content: "Hay quá",
	}).Error)
	require.NoError(t, posts.db.Create(&models.Like{UserID: fan.ID, PostID: post.ID}).Error)

	require.NoError(t, posts.ForceDelete(actorFor(admin), post.ID))

	var count int64
	posts.db.Model(&models.Media{}).Where("post_id = ?", post.ID).Count(&count)
	assert.Equal(t, int64(0), count)
	posts.db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&count)
	assert.Equal(t, int64(0), count)
	posts.db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestPurgeDeletedBefore(t *testing.T) {
	posts := newPostService(t)
	author := seedUser(t, posts.db, constants.RoleEmployee)

	oldPost, err := posts.Create(actorFor(author), dto.CreatePostRequest{
		Title: "Cũ", Content: "Nội dung",
	})
	require.NoError(t, err)
	recentPost, err := posts.Create(actorFor(author), dto.CreatePostRequest{
		Title: "Mới xóa", Content: "Nội dung",
	})
	require.NoError(t, err)

	longAgo := time.Now().AddDate(0, -2, 0)
	recently := time.Now().Add(-time.Hour)
	require.NoError(t, posts.db.Model(&models.Post{}).Where("id = ?", oldPost.ID).
		Update("deleted_at", longAgo).Error)
	require.NoError(t, posts.db.Model(&models.Post{}).Where("id = ?", recentPost.ID).
		Update("deleted_at", recently).Error)

	n, err := posts.PurgeDeletedBefore(time.Now().AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var count int64
	posts.db.Model(&models.Post{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDecorateCountsLikesAndComments(t *testing.T) {
	posts := newPostService(t)
	author := seedUser(t, posts.db, constants.RoleEmployee)
	fan := seedUser(t, posts.db, constants.RoleUser)

	post, err := posts.Create(actorFor(author), dto.CreatePostRequest{
		Title: "Bài viết", Content: "Nội dung",
	})
	require.NoError(t, err)

	require.NoError(t, posts.db.Create(&models.Like{UserID: fan.ID, PostID: post.ID}).Error)
	require.NoError(t, posts.db.Create(&models.Comment{
		UserID: fan.ID, PostID: post.ID, Content: "Hay quá",
	}).Error)

	got, err := posts.Get(actorFor(fan), post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.LikesCount)
	assert.Equal(t, int64(1), got.CommentsCount)
	assert.True(t, got.Liked)

	got, err = posts.Get(actorFor(author), post.ID)
	require.NoError(t, err)
	assert.False(t, got.Liked)
}
