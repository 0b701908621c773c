package middleware

import (
	"net/http"
	"strings"

	"shorturl-analytics/internal/model"
	auth "shorturl-analytics/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID   = "user_id"
	ctxUsername = "username"
)

// Identity 解析 cookie 或 Bearer 头中的令牌, 无令牌或令牌无效时按匿名处理, 不中断请求
func Identity(jwtManager *auth.TokenManager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			tokenString, _ = c.Cookie(cookieName)
		}
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := jwtManager.ValidateToken(tokenString)
		if err != nil {
			c.Next()
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUsername, claims.Username)
		c.Next()
	}
}

// RequireLogin 未登录时返回 401
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := Username(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "未登录"})
			return
		}
		c.Next()
	}
}

// Username 返回已登录用户名
func Username(c *gin.Context) (string, bool) {
	name := c.GetString(ctxUsername)
	return name, name != ""
}

// Owner 当前请求的链接归属, 匿名为 public
func Owner(c *gin.Context) string {
	if name, ok := Username(c); ok {
		return name
	}
	return model.PublicOwner
}

func bearerToken(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
