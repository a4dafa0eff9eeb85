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

	"gorm.io/gorm"
)

type UserService struct {
	db     *gorm.DB
	logger logger.Logger
}

type UserServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
}

func NewUserService(opts UserServiceOptions) *UserService {
	return &UserService{db: opts.DB, logger: opts.Logger}
}

// translateUserWriteError map lỗi unique constraint (email/pseudo trùng,
// kể cả khi hai request đua nhau) sang Conflict thay vì lỗi chung chung.
func translateUserWriteError(err error) error {
	if goerrors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.NewConflictError(errors.ErrCodeUserExists,
			"Email hoặc pseudo đã được sử dụng", err)
	}
	return errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError,
		"Lỗi ghi dữ liệu user", err)
}

func userNotFound() error {
	return errors.NewNotFoundError(errors.ErrCodeUserNotFound, "Không tìm thấy user")
}

// List danh sách user, admin only. Mặc định ẩn user đã soft delete.
func (s *UserService) List(actor policy.Actor, query dto.UserListQuery) ([]models.User, int64, error) {
	if !policy.CanUser(actor, policy.ActionList, nil) {
		return nil, 0, errors.NewAuthorizationError("Chỉ admin được xem danh sách user")
	}
	query.Normalize()

	q := s.db.Model(&models.User{})
	if !query.IncludeDeleted {
		q = q.Where("deleted_at IS NULL")
	}
	if query.Search != "" {
		term := "%" + strings.ToLower(query.Search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(pseudo) LIKE ?", term, term, term)
	}
	if query.Role != nil {
		q = q.Where("role = ?", *query.Role)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi truy vấn user", err)
	}

	var users []models.User
	err := q.Order("id ASC").Offset(query.Offset()).Limit(query.Limit).Find(&users).Error
	if err != nil {
		return nil, 0, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi truy vấn user", err)
	}
	return users, total, nil
}

// Get một user. User đã soft delete chỉ admin thấy.
func (s *UserService) Get(actor policy.Actor, id uint) (models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, userNotFound()
		}
		return models.User{}, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi truy vấn user", err)
	}
	if user.IsDeleted() && !actor.IsAdmin() {
		return models.User{}, userNotFound()
	}
	if !policy.CanUser(actor, policy.ActionView, &user) {
		return models.User{}, errors.NewAuthorizationError("Không có quyền xem user này")
	}

	// Đếm follow bằng query riêng, không lazy load
	s.db.Model(&models.Follow{}).Where("following_id = ?", user.ID).Count(&user.FollowersCount)
	s.db.Model(&models.Follow{}).Where("follower_id = ?", user.ID).Count(&user.FollowingCount)
	return user, nil
}

// Create tạo user mới. Employee chỉ tạo được role user, role khác fail
// ở phân quyền chứ không phải validation.
func (s *UserService) Create(actor policy.Actor, req dto.CreateUserRequest) (models.User, error) {
	if !policy.CanCreateUserWithRole(actor, req.Role) {
		return models.User{}, errors.NewAuthorizationError("Không có quyền tạo user với role này")
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return models.User{}, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError,
			"Không hash được mật khẩu", err)
	}

	profileType := req.ProfileType
	if profileType == "" {
		profileType = "public"
	}

	user := models.User{
		Name:        strings.TrimSpace(req.Name),
		Email:       NormalizeEmail(req.Email),
		Password:    hashed,
		Pseudo:      strings.TrimSpace(req.Pseudo),
		ProfileType: profileType,
		Role:        req.Role,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return models.User{}, translateUserWriteError(err)
	}

	s.logger.Info("User %d tạo user mới %d (role %d)", actor.ID, user.ID, user.Role)
	return user, nil
}

// Update sửa user: admin hoặc chính mình. Đổi role trên chính mình cũng
// bị chặn nếu không phải admin.
func (s *UserService) Update(actor policy.Actor, id uint, req dto.UpdateUserRequest) (models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ? AND deleted_at IS NULL", id).Error; err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, userNotFound()
		}
		return models.User{}, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi truy vấn user", err)
	}

	if !policy.CanUser(actor, policy.ActionUpdate, &user) {
		return models.User{}, errors.NewAuthorizationError("Không có quyền sửa user này")
	}
	if req.Role != nil && !policy.CanChangeRole(actor, &user, *req.Role) {
		return models.User{}, errors.NewAuthorizationError("Chỉ admin được đổi role")
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		user.Email = NormalizeEmail(*req.Email)
	}
	if req.Pseudo != nil {
		user.Pseudo = strings.TrimSpace(*req.Pseudo)
	}
	if req.ProfileType != nil {
		user.ProfileType = *req.ProfileType
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Password != nil {
		hashed, err := HashPassword(*req.Password)
		if err != nil {
			return models.User{}, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError,
				"Không hash được mật khẩu", err)
		}
		user.Password = hashed
	}

	if err := s.db.Save(&user).Error; err != nil {
		return models.User{}, translateUserWriteError(err)
	}
	return user, nil
}

// Delete soft delete user. Admin không tự xóa được chính mình.
func (s *UserService) Delete(actor policy.Actor, id uint) error {
	var user models.User
	if err := s.db.First(&user, "id = ? AND deleted_at IS NULL", id).Error; err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return userNotFound()
		}
		return errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi truy vấn user", err)
	}

	if !policy.CanUser(actor, policy.ActionDelete, &user) {
		return errors.NewAuthorizationError("Không có quyền xóa user này")
	}

	now := time.Now()
	user.DeletedAt = &now
	if err := s.db.Save(&user).Error; err != nil {
		return errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi xóa user", err)
	}
	s.logger.Info("User %d soft delete user %d", actor.ID, id)
	return nil
}

// Restore admin khôi phục user đã soft delete: chỉ là clear deleted_at.
func (s *UserService) Restore(actor policy.Actor, id uint) (models.User, error) {
	if !policy.CanUser(actor, policy.ActionRestore, nil) {
		return models.User{}, errors.NewAuthorizationError("Chỉ admin được khôi phục user")
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, userNotFound()
		}
		return models.User{}, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi truy vấn user", err)
	}
	if !user.IsDeleted() {
		return user, nil
	}

	user.DeletedAt = nil
	if err := s.db.Save(&user).Error; err != nil {
		return models.User{}, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi khôi phục user", err)
	}
	return user, nil
}
