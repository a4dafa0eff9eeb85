package middleware

import (
	"strings"

	"github.com/chabbasaad/4CITE-sub001/constants"
	"github.com/chabbasaad/4CITE-sub001/policy"
	"github.com/chabbasaad/4CITE-sub001/response"
	"github.com/chabbasaad/4CITE-sub001/services"

	"github.com/gin-gonic/gin"
)

// credentialExtractor lấy token từ một vị trí trên request. Chuỗi
// extractor chạy theo thứ tự, cái nào tìm được token trước thì dùng.
type credentialExtractor func(c *gin.Context) (string, bool)

func bearerHeaderExtractor(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	return token, token != ""
}

func cookieExtractor(c *gin.Context) (string, bool) {
	token, err := c.Cookie(services.AuthCookieName)
	return token, err == nil && token != ""
}

var extractors = []credentialExtractor{bearerHeaderExtractor, cookieExtractor}

// AuthMiddleware xác thực request: thử header Bearer rồi đến cookie.
// Truyền roles thì chỉ các role đó đi qua được.
func AuthMiddleware(roles ...constants.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			userID   uint
			userRole constants.Role
			ok       bool
		)
		for _, extract := range extractors {
			token, found := extract(c)
			if !found {
				continue
			}
			id, role, err := services.VerifyToken(token)
			if err == nil {
				userID, userRole, ok = id, role, true
				break
			}
		}
		if !ok {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		if len(roles) > 0 {
			hasRole := false
			for _, role := range roles {
				if role == userRole {
					hasRole = true
					break
				}
			}
			if !hasRole {
				response.Forbidden(c)
				c.Abort()
				return
			}
		}

		c.Set("userID", userID)
		c.Set("userRole", userRole)
		c.Next()
	}
}

// OptionalAuthMiddleware như AuthMiddleware nhưng không chặn request
// vô danh: có token hợp lệ thì set user vào context, không thì đi tiếp.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, extract := range extractors {
			token, found := extract(c)
			if !found {
				continue
			}
			if id, role, err := services.VerifyToken(token); err == nil {
				c.Set("userID", id)
				c.Set("userRole", role)
				break
			}
		}
		c.Next()
	}
}

// ActorFromContext dựng policy.Actor từ thông tin AuthMiddleware đã set.
// Request vô danh trả về Actor rỗng (ID = 0).
func ActorFromContext(c *gin.Context) policy.Actor {
	actor := policy.Actor{}
	if v, ok := c.Get("userID"); ok {
		if id, ok := v.(uint); ok {
			actor.ID = id
		}
	}
	if v, ok := c.Get("userRole"); ok {
		if role, ok := v.(constants.Role); ok {
			actor.Role = role
		}
	}
	return actor
}
