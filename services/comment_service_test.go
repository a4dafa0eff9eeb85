package services

import (
	"testing"

	"github.com/chabbasaad/4CITE-sub001/constants"
	"github.com/chabbasaad/4CITE-sub001/dto"
	"github.com/chabbasaad/4CITE-sub001/errors"
	"github.com/chabbasaad/4CITE-sub001/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommentService(t *testing.T) *CommentService {
	db := newTestDB(t)
	return NewCommentService(CommentServiceOptions{DB: db, Logger: testLogger()})
}

func TestCreateCommentTrimsContent(t *testing.T) {
	comments := newCommentService(t)
	author := seedUser(t, comments.db, constants.RoleEmployee)
	fan := seedUser(t, comments.db, constants.RoleUser)
	post := seedPost(t, comments.db, author.ID)

	comment, err := comments.Create(actorFor(fan), post.ID, dto.CreateCommentRequest{
		Content: "  Hay quá  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hay quá", comment.Content)
	assert.Equal(t, fan.ID, comment.UserID)
}

func TestCreateCommentOnDeletedPostFails(t *testing.T) {
	comments := newCommentService(t)
	author := seedUser(t, comments.db, constants.RoleEmployee)
	fan := seedUser(t, comments.db, constants.RoleUser)
	post := seedPost(t, comments.db, author.ID)

	posts := NewPostService(PostServiceOptions{DB: comments.db, Logger: testLogger()})
	require.NoError(t, posts.Delete(actorFor(author), post.ID))

	_, err := comments.Create(actorFor(fan), post.ID, dto.CreateCommentRequest{Content: "Hay quá"})
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
}

func TestOnlyOwnerOrAdminEditsComment(t *testing.T) {
	comments := newCommentService(t)
	author := seedUser(t, comments.db, constants.RoleEmployee)
	fan := seedUser(t, comments.db, constants.RoleUser)
	other := seedUser(t, comments.db, constants.RoleUser)
	admin := seedUser(t, comments.db, constants.RoleAdmin)
	post := seedPost(t, comments.db, author.ID)

	comment, err := comments.Create(actorFor(fan), post.ID, dto.CreateCommentRequest{Content: "Hay quá"})
	require.NoError(t, err)

	_, err = comments.Update(actorFor(other), comment.ID, dto.UpdateCommentRequest{Content: "Sửa trộm"})
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindAuthorization))

	updated, err := comments.Update(actorFor(fan), comment.ID, dto.UpdateCommentRequest{Content: "Sửa lại"})
	require.NoError(t, err)
	assert.Equal(t, "Sửa lại", updated.Content)

	_, err = comments.Update(actorFor(admin), comment.ID, dto.UpdateCommentRequest{Content: "Admin sửa"})
	assert.NoError(t, err)
}

func TestSoftDeletedCommentVisibility(t *testing.T) {
	comments := newCommentService(t)
	author := seedUser(t, comments.db, constants.RoleEmployee)
	fan := seedUser(t, comments.db, constants.RoleUser)
	other := seedUser(t, comments.db, constants.RoleUser)
	post := seedPost(t, comments.db, author.ID)

	comment, err := comments.Create(actorFor(fan), post.ID, dto.CreateCommentRequest{Content: "Hay quá"})
	require.NoError(t, err)
	require.NoError(t, comments.Delete(actorFor(fan), comment.ID))

	// Không còn trong danh sách
	list, total, err := comments.ListForPost(actorFor(other), post.ID, dto.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, list)

	// Người ngoài nhận 404
	_, err = comments.Get(actorFor(other), comment.ID)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))

	// Chủ comment và chủ post vẫn xem được
	_, err = comments.Get(actorFor(fan), comment.ID)
	assert.NoError(t, err)
	_, err = comments.Get(actorFor(author), comment.ID)
	assert.NoError(t, err)
}

func TestLiveCommentVisibleOnlyToInvolvedParties(t *testing.T) {
	comments := newCommentService(t)
	author := seedUser(t, comments.db, constants.RoleEmployee)
	fan := seedUser(t, comments.db, constants.RoleUser)
	other := seedUser(t, comments.db, constants.RoleUser)
	admin := seedUser(t, comments.db, constants.RoleAdmin)
	post := seedPost(t, comments.db, author.ID)

	comment, err := comments.Create(actorFor(fan), post.ID, dto.CreateCommentRequest{Content: "Hay quá"})
	require.NoError(t, err)

	// Người không liên quan bị chặn dù comment chưa xóa
	_, err = comments.Get(actorFor(other), comment.ID)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindAuthorization))

	for _, viewer := range []models.User{fan, author, admin} {
		_, err = comments.Get(actorFor(viewer), comment.ID)
		assert.NoError(t, err)
	}

	// Danh sách cũng lọc theo người xem
	_, total, err := comments.ListForPost(actorFor(other), post.ID, dto.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	_, total, err = comments.ListForPost(actorFor(fan), post.ID, dto.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = comments.ListForPost(actorFor(author), post.ID, dto.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestRestoreCommentAdminOnly(t *testing.T) {
	comments := newCommentService(t)
	author := seedUser(t, comments.db, constants.RoleEmployee)
	fan := seedUser(t, comments.db, constants.RoleUser)
	admin := seedUser(t, comments.db, constants.RoleAdmin)
	post := seedPost(t, comments.db, author.ID)

	comment, err := comments.Create(actorFor(fan), post.ID, dto.CreateCommentRequest{Content: "Hay quá"})
	require.NoError(t, err)
	require.NoError(t, comments.Delete(actorFor(fan), comment.ID))

	_, err = comments.Restore(actorFor(fan), comment.ID)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindAuthorization))

	restored, err := comments.Restore(actorFor(admin), comment.ID)
	require.NoError(t, err)
	assert.Nil(t, restored.DeletedAt)
}

func TestForceDeleteComment(t *testing.T) {
	comments := newCommentService(t)
	author := seedUser(t, comments.db, constants.RoleEmployee)
	fan := seedUser(t, comments.db, constants.RoleUser)
	admin := seedUser(t, comments.db, constants.RoleAdmin)
	post := seedPost(t, comments.db, author.ID)

	comment, err := comments.Create(actorFor(fan), post.ID, dto.CreateCommentRequest{Content: "Hay quá"})
	require.NoError(t, err)

	require.NoError(t, comments.ForceDelete(actorFor(admin), comment.ID))

	var count int64
	comments.db.Model(&models.Comment{}).Count(&count)
	assert.Equal(t, int64(0), count)

	err = comments.ForceDelete(actorFor(admin), comment.ID)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
}
