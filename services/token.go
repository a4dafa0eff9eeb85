package services

import (
	"os"
	"time"

	"github.com/chabbasaad/4CITE-sub001/constants"
	"github.com/chabbasaad/4CITE-sub001/errors"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

type UserInfo struct {
	UserID uint           `json:"userid"`
	Role   constants.Role `json:"role"`
}

type Claims struct {
	UserInfo UserInfo `json:"userinfo"`
	jwt.StandardClaims
}

const (
	defaultTokenExpiryMinutes = 24 * 60

	// AuthCookieName tên cookie giữ JWT, middleware đọc fallback khi
	// request không gửi header Authorization.
	AuthCookieName = "auth_token"
)

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-me"
	}
	return []byte(secret)
}

// GenerateToken tạo JWT HS256 chứa userID và role.
func GenerateToken(userInfo UserInfo, expiryMinutes int) (string, error) {
	if expiryMinutes <= 0 {
		expiryMinutes = defaultTokenExpiryMinutes
	}
	claims := Claims{
		UserInfo: userInfo,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(time.Duration(expiryMinutes) * time.Minute).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// VerifyToken parse và kiểm chữ ký + hạn của token, trả về userID và role.
func VerifyToken(tokenString string) (uint, constants.Role, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.NewAppError(errors.KindUnauthenticated, errors.ErrCodeInvalidToken,
				"Thuật toán ký token không hợp lệ", nil)
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return 0, 0, errors.NewAppError(errors.KindUnauthenticated, errors.ErrCodeInvalidToken,
			"Token không hợp lệ", err)
	}
	return claims.UserInfo.UserID, claims.UserInfo.Role, nil
}

// SetTokenCookies gắn token vào cookie để FE không giữ được header vẫn
// đăng nhập được.
func SetTokenCookies(c *gin.Context, accessToken string) {
	c.SetCookie(
		AuthCookieName,
		accessToken,
		defaultTokenExpiryMinutes*60,
		"/",
		"",
		false,
		true,
	)
}

// ClearTokenCookies xóa cookie đăng nhập khi logout.
func ClearTokenCookies(c *gin.Context) {
	c.SetCookie(AuthCookieName, "", -1, "/", "", false, true)
}
