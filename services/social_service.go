package services

import (
	goerrors "errors"

	"github.com/chabbasaad/4CITE-sub001/dto"
	"github.com/chabbasaad/4CITE-sub001/errors"
	"github.com/chabbasaad/4CITE-sub001/models"
	"github.com/chabbasaad/4CITE-sub001/policy"
	"github.com/chabbasaad/4CITE-sub001/services/logger"

	"gorm.io/gorm"
)

type SocialService struct {
	db     *gorm.DB
	logger logger.Logger
}

type SocialServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
}

func NewSocialService(opts SocialServiceOptions) *SocialService {
	return &SocialService{db: opts.DB, logger: opts.Logger}
}

// Follow theo dõi một user. Idempotent: follow lại người đã follow là
// no-op thành công; unique index đỡ nốt trường hợp hai request đua nhau.
func (s *SocialService) Follow(actor policy.Actor, targetID uint) error {
	if actor.ID == targetID {
		fields := errors.FieldErrors{}
		fields.Add("userId", "không thể tự theo dõi chính mình")
		return errors.NewDomainRuleError(errors.ErrCodeInvalidOperation,
			"Không thể tự theo dõi chính mình", fields)
	}

	var target models.User
	err := s.db.First(&target, "id = ? AND deleted_at IS NULL", targetID).Error
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return userNotFound()
		}
		return errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi truy vấn user", err)
	}

	follow := models.Follow{FollowerID: actor.ID, FollowingID: targetID}
	err = s.db.Where(models.Follow{FollowerID: actor.ID, FollowingID: targetID}).
		FirstOrCreate(&follow).Error
	if err != nil {
		if goerrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi follow user", err)
	}
	return nil
}

// Unfollow bỏ theo dõi. Chưa follow thì cũng trả về thành công.
func (s *SocialService) Unfollow(actor policy.Actor, targetID uint) error {
	err := s.db.Where("follower_id = ? AND following_id = ?", actor.ID, targetID).
		Delete(&models.Follow{}).Error
	if err != nil {
		return errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi unfollow user", err)
	}
	return nil
}

// Followers danh sách người đang theo dõi user.
func (s *SocialService) Followers(userID uint, query dto.ListQuery) ([]models.User, int64, error) {
	return s.followList(userID, query, "follows.following_id = ?", "follows.follower_id")
}

// Following danh sách user này đang theo dõi.
func (s *SocialService) Following(userID uint, query dto.ListQuery) ([]models.User, int64, error) {
	return s.followList(userID, query, "follows.follower_id = ?", "follows.following_id")
}

func (s *SocialService) followList(userID uint, query dto.ListQuery, whereClause, joinColumn string) ([]models.User, int64, error) {
	query.Normalize()

	q := s.db.Model(&models.User{}).
		Joins("JOIN follows ON users.id = "+joinColumn).
		Where(whereClause, userID).
		Where("users.deleted_at IS NULL")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi truy vấn follow", err)
	}

	var users []models.User
	err := q.Order("follows.created_at DESC").Offset(query.Offset()).Limit(query.Limit).Find(&users).Error
	if err != nil {
		return nil, 0, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi truy vấn follow", err)
	}
	return users, total, nil
}

// Like thích một post. Idempotent như Follow.
func (s *SocialService) Like(actor policy.Actor, postID uint) error {
	var post models.Post
	err := s.db.First(&post, "id = ?", postID).Error
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return postNotFound()
		}
		return errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi truy vấn post", err)
	}
	if !policy.CanPost(actor, policy.ActionView, &post) {
		return postNotFound()
	}

	like := models.Like{UserID: actor.ID, PostID: postID}
	err = s.db.Where(models.Like{UserID: actor.ID, PostID: postID}).FirstOrCreate(&like).Error
	if err != nil {
		if goerrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi like post", err)
	}
	return nil
}

// Unlike bỏ thích. Chưa like thì cũng trả về thành công.
func (s *SocialService) Unlike(actor policy.Actor, postID uint) error {
	err := s.db.Where("user_id = ? AND post_id = ?", actor.ID, postID).
		Delete(&models.Like{}).Error
	if err != nil {
		return errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi unlike post", err)
	}
	return nil
}
