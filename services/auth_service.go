package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"os"
	"strings"

	"github.com/chabbasaad/4CITE-sub001/constants"
	"github.com/chabbasaad/4CITE-sub001/dto"
	"github.com/chabbasaad/4CITE-sub001/errors"
	"github.com/chabbasaad/4CITE-sub001/models"
	"github.com/chabbasaad/4CITE-sub001/services/logger"

	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"
)

type AuthService struct {
	db     *gorm.DB
	logger logger.Logger
}

func NewAuthService(db *gorm.DB, log logger.Logger) *AuthService {
	return &AuthService{db: db, logger: log}
}

// NormalizeEmail email luôn lưu lowercase + trim.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HashPassword hash mật khẩu bằng bcrypt trước khi lưu.
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

// CheckPassword so mật khẩu plaintext với hash đã lưu.
func CheckPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}

// Register tạo tài khoản mới với role user, trả về user + token.
func (s *AuthService) Register(req dto.RegisterRequest) (models.User, string, error) {
	user := models.User{
		Name:        strings.TrimSpace(req.Name),
		Email:       NormalizeEmail(req.Email),
		Pseudo:      strings.TrimSpace(req.Pseudo),
		ProfileType: constants.ProfileTypePublic,
		Role:        constants.RoleUser,
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return models.User{}, "", errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError,
			"Không hash được mật khẩu", err)
	}
	user.Password = hashed

	if err := s.db.Create(&user).Error; err != nil {
		return models.User{}, "", translateUserWriteError(err)
	}

	token, err := GenerateToken(UserInfo{UserID: user.ID, Role: user.Role}, 0)
	if err != nil {
		return models.User{}, "", errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError,
			"Không tạo được token", err)
	}

	s.logger.Info("Đăng ký thành công user %d (%s)", user.ID, user.Email)
	return user, token, nil
}

// Login xác thực email + mật khẩu, trả về user + token. Tài khoản đã
// soft delete coi như không tồn tại.
func (s *AuthService) Login(email, password string) (models.User, string, error) {
	var user models.User
	err := s.db.Where("email = ? AND deleted_at IS NULL", NormalizeEmail(email)).First(&user).Error
	if err != nil {
		// Không lộ email có tồn tại hay không
		return models.User{}, "", invalidCredentials()
	}

	if !CheckPassword(user.Password, password) {
		return models.User{}, "", invalidCredentials()
	}

	token, err := GenerateToken(UserInfo{UserID: user.ID, Role: user.Role}, 0)
	if err != nil {
		return models.User{}, "", errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError,
			"Không tạo được token", err)
	}
	return user, token, nil
}

func invalidCredentials() error {
	return errors.NewAppError(errors.KindUnauthenticated, errors.ErrCodeInvalidPassword,
		"Email hoặc mật khẩu không đúng", nil)
}

// LoginWithGoogle xác minh Google ID token, tạo tài khoản ở lần đăng
// nhập đầu tiên.
func (s *AuthService) LoginWithGoogle(ctx context.Context, tokenID string) (models.User, string, error) {
	payload, err := verifyGoogleIDToken(ctx, tokenID)
	if err != nil {
		return models.User{}, "", errors.NewAppError(errors.KindUnauthenticated, errors.ErrCodeInvalidToken,
			"Google token không hợp lệ", err)
	}

	googleUser := dto.GoogleUser{
		Name:          claimString(payload, "name"),
		Email:         claimString(payload, "email"),
		VerifiedEmail: claimBool(payload, "email_verified"),
		Picture:       claimString(payload, "picture"),
	}
	if !googleUser.VerifiedEmail {
		return models.User{}, "", errors.NewAppError(errors.KindUnauthenticated, errors.ErrCodeInvalidToken,
			"Email Google chưa được xác minh", nil)
	}

	var user models.User
	result := s.db.Where("email = ? AND deleted_at IS NULL", NormalizeEmail(googleUser.Email)).First(&user)
	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			return models.User{}, "", errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError,
				"Lỗi truy vấn user", result.Error)
		}
		user, err = s.createGoogleUser(googleUser)
		if err != nil {
			return models.User{}, "", err
		}
	}

	token, err := GenerateToken(UserInfo{UserID: user.ID, Role: user.Role}, 0)
	if err != nil {
		return models.User{}, "", errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError,
			"Không tạo được token", err)
	}
	return user, token, nil
}

func (s *AuthService) createGoogleUser(googleUser dto.GoogleUser) (models.User, error) {
	// Mật khẩu ngẫu nhiên: tài khoản Google không đăng nhập bằng password
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return models.User{}, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError,
			"Không tạo được mật khẩu ngẫu nhiên", err)
	}
	hashed, err := HashPassword(hex.EncodeToString(buf))
	if err != nil {
		return models.User{}, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError,
			"Không hash được mật khẩu", err)
	}

	user := models.User{
		Name:        googleUser.Name,
		Email:       NormalizeEmail(googleUser.Email),
		Password:    hashed,
		Pseudo:      pseudoFromEmail(googleUser.Email),
		ProfileType: constants.ProfileTypePublic,
		Avatar:      googleUser.Picture,
		Role:        constants.RoleUser,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return models.User{}, translateUserWriteError(err)
	}
	s.logger.Info("Tạo user mới từ Google: %d (%s)", user.ID, user.Email)
	return user, nil
}

func pseudoFromEmail(email string) string {
	local := strings.SplitN(NormalizeEmail(email), "@", 2)[0]
	// Thêm đuôi ngẫu nhiên tránh đụng pseudo có sẵn
	buf := make([]byte, 3)
	_, _ = rand.Read(buf)
	return local + "-" + hex.EncodeToString(buf)
}

func verifyGoogleIDToken(ctx context.Context, tokenID string) (*idtoken.Payload, error) {
	return idtoken.Validate(ctx, tokenID, os.Getenv("GOOGLE_CLIENT_ID"))
}

func claimString(payload *idtoken.Payload, key string) string {
	if v, ok := payload.Claims[key].(string); ok {
		return v
	}
	return ""
}

func claimBool(payload *idtoken.Payload, key string) bool {
	if v, ok := payload.Claims[key].(bool); ok {
		return v
	}
	return false
}
