package services

import (
	"testing"

	"github.com/chabbasaad/4CITE-sub001/constants"
	"github.com/chabbasaad/4CITE-sub001/dto"
	"github.com/chabbasaad/4CITE-sub001/errors"
	"github.com/chabbasaad/4CITE-sub001/models"
	"github.com/chabbasaad/4CITE-sub001/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (*UserService, *AuthService) {
	db := newTestDB(t)
	return NewUserService(UserServiceOptions{DB: db, Logger: testLogger()}),
		NewAuthService(db, testLogger())
}

func TestRegisterNormalizesEmailAndHashesPassword(t *testing.T) {
	_, auth := newUserService(t)

	user, token, err := auth.Register(dto.RegisterRequest{
		Name:                 "Trần Văn A",
		Email:                "  Tran.Van.A@Example.COM ",
		Password:             "matkhau123",
		PasswordConfirmation: "matkhau123",
		Pseudo:               "tranvana",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "tran.van.a@example.com", user.Email)
	assert.NotEqual(t, "matkhau123", user.Password)
	assert.True(t, CheckPassword(user.Password, "matkhau123"))
	assert.Equal(t, constants.RoleUser, user.Role)
}

func TestRegisterDuplicateEmailIsConflict(t *testing.T) {
	_, auth := newUserService(t)

	req := dto.RegisterRequest{
		Name:                 "Trần Văn A",
		Email:                "a@example.com",
		Password:             "matkhau123",
		PasswordConfirmation: "matkhau123",
		Pseudo:               "tranvana",
	}
	_, _, err := auth.Register(req)
	require.NoError(t, err)

	req.Pseudo = "tranvana2"
	_, _, err = auth.Register(req)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindConflict))
}

func TestLoginSoftDeletedAccountFails(t *testing.T) {
	users, auth := newUserService(t)

	user, _, err := auth.Register(dto.RegisterRequest{
		Name:                 "Trần Văn A",
		Email:                "a@example.com",
		Password:             "matkhau123",
		PasswordConfirmation: "matkhau123",
		Pseudo:               "tranvana",
	})
	require.NoError(t, err)

	admin := seedUser(t, users.db, constants.RoleAdmin)
	require.NoError(t, users.Delete(actorFor(admin), user.ID))

	_, _, err = auth.Login("a@example.com", "matkhau123")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindUnauthenticated))
}

func TestEmployeeCannotCreateAdmin(t *testing.T) {
	users, _ := newUserService(t)
	employee := seedUser(t, users.db, constants.RoleEmployee)

	_, err := users.Create(actorFor(employee), dto.CreateUserRequest{
		Name:     "Người mới",
		Email:    "moi@example.com",
		Password: "matkhau123",
		Pseudo:   "nguoimoi",
		Role:     constants.RoleAdmin,
	})
	require.Error(t, err)
	// Phải là lỗi phân quyền chứ không phải validation
	assert.True(t, errors.IsKind(err, errors.KindAuthorization))
}

func TestEmployeeCanCreateRegularUser(t *testing.T) {
	users, _ := newUserService(t)
	employee := seedUser(t, users.db, constants.RoleEmployee)

	user, err := users.Create(actorFor(employee), dto.CreateUserRequest{
		Name:     "Người mới",
		Email:    "moi@example.com",
		Password: "matkhau123",
		Pseudo:   "nguoimoi",
		Role:     constants.RoleUser,
	})
	require.NoError(t, err)
	assert.Equal(t, constants.RoleUser, user.Role)
}

func TestUserCannotChangeOwnRole(t *testing.T) {
	users, _ := newUserService(t)
	user := seedUser(t, users.db, constants.RoleUser)

	newRole := constants.RoleAdmin
	_, err := users.Update(actorFor(user), user.ID, dto.UpdateUserRequest{Role: &newRole})
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindAuthorization))

	// Gửi lại đúng role hiện tại là no-op hợp lệ
	sameRole := constants.RoleUser
	_, err = users.Update(actorFor(user), user.ID, dto.UpdateUserRequest{Role: &sameRole})
	assert.NoError(t, err)
}

func TestAdminCannotDeleteSelf(t *testing.T) {
	users, _ := newUserService(t)
	admin := seedUser(t, users.db, constants.RoleAdmin)

	err := users.Delete(actorFor(admin), admin.ID)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindAuthorization))
}

func TestSoftDeleteAndRestore(t *testing.T) {
	users, _ := newUserService(t)
	admin := seedUser(t, users.db, constants.RoleAdmin)
	target := seedUser(t, users.db, constants.RoleUser)

	require.NoError(t, users.Delete(actorFor(admin), target.ID))

	var stored models.User
	require.NoError(t, users.db.First(&stored, "id = ?", target.ID).Error)
	require.NotNil(t, stored.DeletedAt)

	// User thường không thấy user đã xóa
	other := seedUser(t, users.db, constants.RoleUser)
	_, err := users.Get(actorFor(other), target.ID)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))

	// Admin vẫn thấy và khôi phục được
	restored, err := users.Restore(actorFor(admin), target.ID)
	require.NoError(t, err)
	assert.Nil(t, restored.DeletedAt)

	// Restore lần nữa vẫn OK
	_, err = users.Restore(actorFor(admin), target.ID)
	assert.NoError(t, err)
}

func TestListHidesDeletedByDefault(t *testing.T) {
	users, _ := newUserService(t)
	admin := seedUser(t, users.db, constants.RoleAdmin)
	target := seedUser(t, users.db, constants.RoleUser)
	require.NoError(t, users.Delete(actorFor(admin), target.ID))

	list, total, err := users.List(actorFor(admin), dto.UserListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, admin.ID, list[0].ID)

	list, total, err = users.List(actorFor(admin), dto.UserListQuery{IncludeDeleted: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)
}

func TestListForbiddenForNonAdmin(t *testing.T) {
	users, _ := newUserService(t)
	employee := seedUser(t, users.db, constants.RoleEmployee)

	_, _, err := users.List(actorFor(employee), dto.UserListQuery{})
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindAuthorization))
}

func TestListSearchIsCaseInsensitive(t *testing.T) {
	users, _ := newUserService(t)
	admin := seedUser(t, users.db, constants.RoleAdmin)

	other := models.User{
		Name:        "Nguyễn Thị B",
		Email:       "nguyenb@example.com",
		Password:    "x",
		Pseudo:      "nguyenb",
		ProfileType: constants.ProfileTypePublic,
		Role:        constants.RoleUser,
	}
	require.NoError(t, users.db.Create(&other).Error)

	list, total, err := users.List(actorFor(admin), dto.UserListQuery{Search: "NGUYENB"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, other.ID, list[0].ID)
}

func TestGetCountsFollows(t *testing.T) {
	users, _ := newUserService(t)
	a := seedUser(t, users.db, constants.RoleUser)
	b := seedUser(t, users.db, constants.RoleUser)
	c := seedUser(t, users.db, constants.RoleUser)

	require.NoError(t, users.db.Create(&models.Follow{FollowerID: b.ID, FollowingID: a.ID}).Error)
	require.NoError(t, users.db.Create(&models.Follow{FollowerID: c.ID, FollowingID: a.ID}).Error)
	require.NoError(t, users.db.Create(&models.Follow{FollowerID: a.ID, FollowingID: b.ID}).Error)

	got, err := users.Get(policy.Actor{ID: a.ID, Role: a.Role}, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.FollowersCount)
	assert.Equal(t, int64(1), got.FollowingCount)
}
