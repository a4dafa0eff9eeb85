package services

import (
	"testing"

	"github.com/chabbasaad/4CITE-sub001/constants"
	"github.com/chabbasaad/4CITE-sub001/dto"
	"github.com/chabbasaad/4CITE-sub001/errors"
	"github.com/chabbasaad/4CITE-sub001/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSocialService(t *testing.T) *SocialService {
	db := newTestDB(t)
	return NewSocialService(SocialServiceOptions{DB: db, Logger: testLogger()})
}

func seedPost(t *testing.T, db *gorm.DB, userID uint) models.Post {
	t.Helper()

	post := models.Post{
		UserID:  userID,
		Title:   "Bài viết test",
		Content: "Nội dung test",
	}
	require.NoError(t, db.Create(&post).Error)
	return post
}

func TestFollowIsIdempotent(t *testing.T) {
	social := newSocialService(t)
	a := seedUser(t, social.db, constants.RoleUser)
	b := seedUser(t, social.db, constants.RoleUser)

	require.NoError(t, social.Follow(actorFor(a), b.ID))
	// Follow lần hai vẫn thành công, không tạo thêm dòng
	require.NoError(t, social.Follow(actorFor(a), b.ID))

	var count int64
	social.db.Model(&models.Follow{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestFollowSelfIsDomainRule(t *testing.T) {
	social := newSocialService(t)
	a := seedUser(t, social.db, constants.RoleUser)

	err := social.Follow(actorFor(a), a.ID)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindDomainRule))
}

func TestFollowUnknownUser(t *testing.T) {
	social := newSocialService(t)
	a := seedUser(t, social.db, constants.RoleUser)

	err := social.Follow(actorFor(a), 999)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
}

func TestUnfollowIsIdempotent(t *testing.T) {
	social := newSocialService(t)
	a := seedUser(t, social.db, constants.RoleUser)
	b := seedUser(t, social.db, constants.RoleUser)

	// Unfollow người chưa follow: no-op thành công
	require.NoError(t, social.Unfollow(actorFor(a), b.ID))

	require.NoError(t, social.Follow(actorFor(a), b.ID))
	require.NoError(t, social.Unfollow(actorFor(a), b.ID))
	require.NoError(t, social.Unfollow(actorFor(a), b.ID))

	var count int64
	social.db.Model(&models.Follow{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestFollowersAndFollowingLists(t *testing.T) {
	social := newSocialService(t)
	a := seedUser(t, social.db, constants.RoleUser)
	b := seedUser(t, social.db, constants.RoleUser)
	c := seedUser(t, social.db, constants.RoleUser)

	require.NoError(t, social.Follow(actorFor(b), a.ID))
	require.NoError(t, social.Follow(actorFor(c), a.ID))
	require.NoError(t, social.Follow(actorFor(a), b.ID))

	followers, total, err := social.Followers(a.ID, dto.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, followers, 2)

	following, total, err := social.Following(a.ID, dto.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, following, 1)
	assert.Equal(t, b.ID, following[0].ID)
}

func TestLikeIsIdempotent(t *testing.T) {
	social := newSocialService(t)
	a := seedUser(t, social.db, constants.RoleUser)
	author := seedUser(t, social.db, constants.RoleEmployee)
	post := seedPost(t, social.db, author.ID)

	require.NoError(t, social.Like(actorFor(a), post.ID))
	require.NoError(t, social.Like(actorFor(a), post.ID))

	var count int64
	social.db.Model(&models.Like{}).Count(&count)
	assert.Equal(t, int64(1), count)

	require.NoError(t, social.Unlike(actorFor(a), post.ID))
	require.NoError(t, social.Unlike(actorFor(a), post.ID))

	social.db.Model(&models.Like{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestLikeUnknownPost(t *testing.T) {
	social := newSocialService(t)
	a := seedUser(t, social.db, constants.RoleUser)

	err := social.Like(actorFor(a), 999)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
}
