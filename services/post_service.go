package services

import (
	"context"
	goerrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/chabbasaad/4CITE-sub001/dto"
	"github.com/chabbasaad/4CITE-sub001/errors"
	"github.com/chabbasaad/4CITE-sub001/models"
	"github.com/chabbasaad/4CITE-sub001/policy"
	"github.com/chabbasaad/4CITE-sub001/services/logger"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const postListCacheTTL = 5 * time.Minute

type PostService struct {
	db     *gorm.DB
	redis  *redis.Client // nil thì bỏ qua cache
	logger logger.Logger
}

type PostServiceOptions struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Logger logger.Logger
}

func NewPostService(opts PostServiceOptions) *PostService {
	return &PostService{db: opts.DB, redis: opts.Redis, logger: opts.Logger}
}

func postNotFound() error {
	return errors.NewNotFoundError(errors.ErrCodePostNotFound, "Không tìm thấy bài viết")
}

type postListCacheEntry struct {
	Posts []models.Post `json:"posts"`
	Total int64         `json:"total"`
}

func postListCacheKey(q dto.PostListQuery) string {
	userID := ""
	if q.UserID != nil {
		userID = fmt.Sprintf("%d", *q.UserID)
	}
	return fmt.Sprintf("posts:list:%s:%s:%d:%d", strings.ToLower(q.Search), userID, q.Page, q.Limit)
}

// loadPost lấy post kèm media. Post đã soft delete vẫn load được, để
// policy quyết định ai được nhìn thấy.
func (s *PostService) loadPost(id uint) (models.Post, error) {
	var post models.Post
	if err := s.db.Preload("Media").First(&post, "id = ?", id).Error; err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return models.Post{}, postNotFound()
		}
		return models.Post{}, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi truy vấn post", err)
	}
	return post, nil
}

// decorate đếm like/comment bằng query riêng và set cờ Liked theo actor.
func (s *PostService) decorate(actor policy.Actor, post *models.Post) {
	s.db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&post.LikesCount)
	s.db.Model(&models.Comment{}).Where("post_id = ? AND deleted_at IS NULL", post.ID).Count(&post.CommentsCount)
	if actor.ID != 0 {
		var liked int64
		s.db.Model(&models.Like{}).Where("post_id = ? AND user_id = ?", post.ID, actor.ID).Count(&liked)
		post.Liked = liked > 0
	}
}

// List danh sách post, public. Mặc định ẩn post đã soft delete;
// include_deleted chỉ admin dùng được, người khác gửi lên bị lờ đi.
// Chỉ cache Redis cho khách ẩn danh, cờ Liked tính theo từng actor
// nên kết quả của người đăng nhập không dùng chung được.
func (s *PostService) List(ctx context.Context, actor policy.Actor, query dto.PostListQuery) ([]models.Post, int64, error) {
	query.Normalize()

	cacheable := s.redis != nil && actor.ID == 0 && !query.IncludeDeleted
	cacheKey := postListCacheKey(query)
	if cacheable {
		var cached postListCacheEntry
		if err := GetFromRedis(ctx, s.redis, cacheKey, &cached); err == nil && cached.Posts != nil {
			return cached.Posts, cached.Total, nil
		}
	}

	q := s.db.Model(&models.Post{}).Preload("Media")
	if !query.IncludeDeleted || !actor.IsAdmin() {
		q = q.Where("deleted_at IS NULL")
	}
	if query.UserID != nil {
		q = q.Where("user_id = ?", *query.UserID)
	}
	if query.Search != "" {
		term := "%" + strings.ToLower(query.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", term, term)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi truy vấn post", err)
	}

	var posts []models.Post
	err := q.Order("created_at DESC").Offset(query.Offset()).Limit(query.Limit).Find(&posts).Error
	if err != nil {
		return nil, 0, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi truy vấn post", err)
	}
	for i := range posts {
		s.decorate(actor, &posts[i])
	}

	if cacheable {
		entry := postListCacheEntry{Posts: posts, Total: total}
		if err := SetToRedis(ctx, s.redis, cacheKey, entry, postListCacheTTL); err != nil {
			s.logger.Error("Lỗi lưu cache danh sách post: %v", err)
		}
	}
	return posts, total, nil
}

func (s *PostService) invalidateListCache() {
	if s.redis == nil {
		return
	}
	if err := DeleteByPattern(context.Background(), s.redis, "posts:list:*"); err != nil {
		s.logger.Error("Lỗi invalidate cache post: %v", err)
	}
}

// Get chi tiết post. Post đã soft delete chỉ admin hoặc chủ post thấy.
func (s *PostService) Get(actor policy.Actor, id uint) (models.Post, error) {
	post, err := s.loadPost(id)
	if err != nil {
		return models.Post{}, err
	}
	if !policy.CanPost(actor, policy.ActionView, &post) {
		// Không lộ post đã xóa có tồn tại hay không
		return models.Post{}, postNotFound()
	}
	s.decorate(actor, &post)
	return post, nil
}

// Create tạo post mới: admin hoặc role có quyền tạo nội dung.
func (s *PostService) Create(actor policy.Actor, req dto.CreatePostRequest) (models.Post, error) {
	if !policy.CanPost(actor, policy.ActionCreate, nil) {
		return models.Post{}, errors.NewAuthorizationError("Không có quyền tạo bài viết")
	}

	post := models.Post{
		UserID:  actor.ID,
		Title:   strings.TrimSpace(req.Title),
		Content: req.Content,
		Media:   mediaFromInputs(req.Media),
	}
	if err := s.db.Create(&post).Error; err != nil {
		return models.Post{}, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi tạo post", err)
	}

	s.invalidateListCache()
	s.logger.Info("User %d tạo post %d", actor.ID, post.ID)
	return post, nil
}

// Update sửa post: admin hoặc chủ post có quyền sửa nội dung. Gửi media
// lên là thay toàn bộ media cũ.
func (s *PostService) Update(actor policy.Actor, id uint, req dto.UpdatePostRequest) (models.Post, error) {
	post, err := s.loadPost(id)
	if err != nil {
		return models.Post{}, err
	}
	if post.DeletedAt != nil {
		return models.Post{}, postNotFound()
	}
	if !policy.CanPost(actor, policy.ActionUpdate, &post) {
		return models.Post{}, errors.NewAuthorizationError("Không có quyền sửa bài viết này")
	}

	if req.Title != nil {
		post.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		post.Content = *req.Content
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if req.Media != nil {
			if err := tx.Where("post_id = ?", post.ID).Delete(&models.Media{}).Error; err != nil {
				return err
			}
			post.Media = mediaFromInputs(*req.Media)
			for i := range post.Media {
				post.Media[i].PostID = post.ID
			}
			if len(post.Media) > 0 {
				if err := tx.Create(&post.Media).Error; err != nil {
					return err
				}
			}
		}
		return tx.Omit("Media").Save(&post).Error
	})
	if err != nil {
		return models.Post{}, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi cập nhật post", err)
	}

	s.invalidateListCache()
	s.decorate(actor, &post)
	return post, nil
}

// Delete soft delete post: chỉ set deleted_at, dữ liệu còn nguyên để
// admin khôi phục được.
func (s *PostService) Delete(actor policy.Actor, id uint) error {
	post, err := s.loadPost(id)
	if err != nil {
		return err
	}
	if post.DeletedAt != nil {
		return postNotFound()
	}
	if !policy.CanPost(actor, policy.ActionDelete, &post) {
		return errors.NewAuthorizationError("Không có quyền xóa bài viết này")
	}

	now := time.Now()
	post.DeletedAt = &now
	if err := s.db.Omit("Media").Save(&post).Error; err != nil {
		return errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi xóa post", err)
	}
	s.invalidateListCache()
	s.logger.Info("User %d soft delete post %d", actor.ID, id)
	return nil
}

// Restore admin khôi phục post đã soft delete. Post chưa xóa thì trả về
// luôn, không coi là lỗi.
func (s *PostService) Restore(actor policy.Actor, id uint) (models.Post, error) {
	if !policy.CanPost(actor, policy.ActionRestore, nil) {
		return models.Post{}, errors.NewAuthorizationError("Chỉ admin được khôi phục bài viết")
	}

	post, err := s.loadPost(id)
	if err != nil {
		return models.Post{}, err
	}
	if post.DeletedAt == nil {
		return post, nil
	}

	post.DeletedAt = nil
	if err := s.db.Omit("Media").Save(&post).Error; err != nil {
		return models.Post{}, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi khôi phục post", err)
	}
	s.invalidateListCache()
	return post, nil
}

// ForceDelete admin xóa hẳn post kèm media, comment, like trong một
// transaction.
func (s *PostService) ForceDelete(actor policy.Actor, id uint) error {
	if !policy.CanPost(actor, policy.ActionForceDelete, nil) {
		return errors.NewAuthorizationError("Chỉ admin được xóa vĩnh viễn bài viết")
	}

	if _, err := s.loadPost(id); err != nil {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Media{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi xóa vĩnh viễn post", err)
	}
	s.invalidateListCache()
	s.logger.Info("Admin %d force delete post %d", actor.ID, id)
	return nil
}

// PurgeDeletedBefore xóa hẳn post đã soft delete quá hạn giữ. Cron gọi
// hằng đêm.
func (s *PostService) PurgeDeletedBefore(cutoff time.Time) (int64, error) {
	var ids []uint
	err := s.db.Model(&models.Post{}).
		Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id IN ?", ids).Delete(&models.Media{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id IN ?", ids).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id IN ?", ids).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, ids).Error
	})
	if err != nil {
		return 0, err
	}
	s.invalidateListCache()
	return int64(len(ids)), nil
}

func mediaFromInputs(inputs []dto.MediaInput) []models.Media {
	media := make([]models.Media, 0, len(inputs))
	for _, in := range inputs {
		mediaType := in.MediaType
		if mediaType == "" {
			mediaType = "photo"
		}
		media = append(media, models.Media{URL: in.URL, MediaType: mediaType})
	}
	return media
}
