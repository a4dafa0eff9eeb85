package services

import (
	goerrors "errors"
	"strings"
	"time"

	"github.com/chabbasaad/4CITE-sub001/dto"
	"github.com/chabbasaad/4CITE-sub001/errors"
	"github.com/chabbasaad/4CITE-sub001/models"
	"github.com/chabbasaad/4CITE-sub001/policy"
	"github.com/chabbasaad/4CITE-sub001/services/logger"
	"github.com/chabbasaad/4CITE-sub001/services/notification"

	"gorm.io/gorm"
)

type CommentService struct {
	db       *gorm.DB
	logger   logger.Logger
	notifier notification.Service // nil thì không bắn thông báo
}

type CommentServiceOptions struct {
	DB       *gorm.DB
	Logger   logger.Logger
	Notifier notification.Service
}

func NewCommentService(opts CommentServiceOptions) *CommentService {
	return &CommentService{db: opts.DB, logger: opts.Logger, notifier: opts.Notifier}
}

func commentNotFound() error {
	return errors.NewNotFoundError(errors.ErrCodeCommentNotFound, "Không tìm thấy bình luận")
}

// visiblePost load post chứa comment và check actor có thấy nó không.
func (s *CommentService) visiblePost(actor policy.Actor, postID uint) (models.Post, error) {
	var post models.Post
	if err := s.db.First(&post, "id = ?", postID).Error; err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return models.Post{}, postNotFound()
		}
		return models.Post{}, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi truy vấn post", err)
	}
	if !policy.CanPost(actor, policy.ActionView, &post) {
		return models.Post{}, postNotFound()
	}
	return post, nil
}

// ListForPost danh sách comment của một post. Comment chỉ hiện với
// admin, chủ post, hoặc chính người viết; comment đã soft delete không
// hiện trong danh sách, kể cả với admin (admin xem từng cái qua Get).
func (s *CommentService) ListForPost(actor policy.Actor, postID uint, query dto.ListQuery) ([]models.Comment, int64, error) {
	post, err := s.visiblePost(actor, postID)
	if err != nil {
		return nil, 0, err
	}
	query.Normalize()

	q := s.db.Model(&models.Comment{}).Where("post_id = ? AND deleted_at IS NULL", postID)
	if !actor.IsAdmin() && actor.ID != post.UserID {
		q = q.Where("user_id = ?", actor.ID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi truy vấn comment", err)
	}

	var comments []models.Comment
	err = q.Order("created_at ASC").Offset(query.Offset()).Limit(query.Limit).Find(&comments).Error
	if err != nil {
		return nil, 0, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi truy vấn comment", err)
	}
	return comments, total, nil
}

// Get một comment. Chỉ admin, chủ comment hoặc chủ post xem được;
// comment đã soft delete thì người ngoài nhận not found thay vì 403
// để không lộ nó có tồn tại.
func (s *CommentService) Get(actor policy.Actor, id uint) (models.Comment, error) {
	var comment models.Comment
	if err := s.db.First(&comment, "id = ?", id).Error; err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return models.Comment{}, commentNotFound()
		}
		return models.Comment{}, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi truy vấn comment", err)
	}

	var post models.Post
	if err := s.db.First(&post, "id = ?", comment.PostID).Error; err != nil {
		return models.Comment{}, commentNotFound()
	}
	if !policy.CanComment(actor, policy.ActionView, &comment, post.UserID) {
		if comment.DeletedAt != nil {
			return models.Comment{}, commentNotFound()
		}
		return models.Comment{}, errors.NewAuthorizationError("Không có quyền xem bình luận này")
	}
	return comment, nil
}

// Create bình luận vào post: cần quyền comment và post phải còn hiển thị.
// Chủ post được báo qua websocket.
func (s *CommentService) Create(actor policy.Actor, postID uint, req dto.CreateCommentRequest) (models.Comment, error) {
	if !policy.CanComment(actor, policy.ActionCreate, nil, 0) {
		return models.Comment{}, errors.NewAuthorizationError("Không có quyền bình luận")
	}

	post, err := s.visiblePost(actor, postID)
	if err != nil {
		return models.Comment{}, err
	}
	if post.DeletedAt != nil {
		return models.Comment{}, postNotFound()
	}

	comment := models.Comment{
		UserID:  actor.ID,
		PostID:  postID,
		Content: strings.TrimSpace(req.Content),
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return models.Comment{}, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi tạo comment", err)
	}

	if s.notifier != nil && post.UserID != actor.ID {
		var author models.User
		if err := s.db.Select("name").First(&author, "id = ?", actor.ID).Error; err == nil {
			message := notification.NewCommentMessage(post.UserID, post.ID, author.Name).Build()
			if err := s.notifier.SendMessage(message); err != nil {
				s.logger.Error("Lỗi gửi thông báo comment %d: %v", comment.ID, err)
			}
		}
	}
	return comment, nil
}

// Update sửa comment: admin hoặc chủ comment.
func (s *CommentService) Update(actor policy.Actor, id uint, req dto.UpdateCommentRequest) (models.Comment, error) {
	var comment models.Comment
	if err := s.db.First(&comment, "id = ? AND deleted_at IS NULL", id).Error; err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return models.Comment{}, commentNotFound()
		}
		return models.Comment{}, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi truy vấn comment", err)
	}

	if !policy.CanComment(actor, policy.ActionUpdate, &comment, 0) {
		return models.Comment{}, errors.NewAuthorizationError("Không có quyền sửa bình luận này")
	}

	comment.Content = strings.TrimSpace(req.Content)
	if err := s.db.Save(&comment).Error; err != nil {
		return models.Comment{}, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi cập nhật comment", err)
	}
	return comment, nil
}

// Delete soft delete comment: admin hoặc chủ comment.
func (s *CommentService) Delete(actor policy.Actor, id uint) error {
	var comment models.Comment
	if err := s.db.First(&comment, "id = ? AND deleted_at IS NULL", id).Error; err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return commentNotFound()
		}
		return errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi truy vấn comment", err)
	}

	if !policy.CanComment(actor, policy.ActionDelete, &comment, 0) {
		return errors.NewAuthorizationError("Không có quyền xóa bình luận này")
	}

	now := time.Now()
	comment.DeletedAt = &now
	if err := s.db.Save(&comment).Error; err != nil {
		return errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi xóa comment", err)
	}
	return nil
}

// Restore admin khôi phục comment đã soft delete, idempotent.
func (s *CommentService) Restore(actor policy.Actor, id uint) (models.Comment, error) {
	if !policy.CanComment(actor, policy.ActionRestore, nil, 0) {
		return models.Comment{}, errors.NewAuthorizationError("Chỉ admin được khôi phục bình luận")
	}

	var comment models.Comment
	if err := s.db.First(&comment, "id = ?", id).Error; err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return models.Comment{}, commentNotFound()
		}
		return models.Comment{}, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi truy vấn comment", err)
	}
	if comment.DeletedAt == nil {
		return comment, nil
	}

	comment.DeletedAt = nil
	if err := s.db.Save(&comment).Error; err != nil {
		return models.Comment{}, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi khôi phục comment", err)
	}
	return comment, nil
}

// ForceDelete admin xóa hẳn comment.
func (s *CommentService) ForceDelete(actor policy.Actor, id uint) error {
	if !policy.CanComment(actor, policy.ActionForceDelete, nil, 0) {
		return errors.NewAuthorizationError("Chỉ admin được xóa vĩnh viễn bình luận")
	}

	result := s.db.Delete(&models.Comment{}, id)
	if result.Error != nil {
		return errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi xóa vĩnh viễn comment", result.Error)
	}
	if result.RowsAffected == 0 {
		return commentNotFound()
	}
	return nil
}

// PurgeDeletedBefore xóa hẳn comment đã soft delete quá hạn giữ.
func (s *CommentService) PurgeDeletedBefore(cutoff time.Time) (int64, error) {
	result := s.db.Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).Delete(&models.Comment{})
	return result.RowsAffected, result.Error
}
