package middleware

import (
	"context"
	"strings"

	"meal-recommender/internal/core/auth"
	"meal-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

const userContextKey = "current_user"

// Authenticator 由 token 取得使用者
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.User, error)
}

// bearerToken 取出 Authorization: Bearer <token> 中的 token，其他格式視為未提供
func bearerToken(c *gin.Context) string {
	parts := strings.Fields(c.GetHeader("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// RequireAuth 必須帶有有效 token
func RequireAuth(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			common.AbortWithError(c, common.ErrTokenMissing)
			return
		}

		user, err := a.Authenticate(c.Request.Context(), token)
		if err != nil {
			common.AbortWithError(c, err)
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// OptionalAuth token 有效時附加使用者，無效時不拒絕
func OptionalAuth(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if user, err := a.Authenticate(c.Request.Context(), token); err == nil {
				c.Set(userContextKey, user)
			}
		}
		c.Next()
	}
}

// CurrentUser 取得已驗證的使用者
func CurrentUser(c *gin.Context) (*auth.User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*auth.User)
	return user, ok && user != nil
}
