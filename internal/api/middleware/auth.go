package middleware

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ridecircle/ridecircle_client/internal/model/dto"
	"github.com/ridecircle/ridecircle_client/internal/pkg/jwt"
	"github.com/ridecircle/ridecircle_client/internal/pkg/response"
	"github.com/ridecircle/ridecircle_client/internal/session"
)

const (
	ViewerKey = "viewer"
)

var timeNow = time.Now

// LoadViewer 把当前会话的身份放入上下文（不强制要求登录）
func LoadViewer(sess *session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		viewer := dto.Viewer{
			LoggedIn: sess.IsLoggedIn(ctx),
		}
		if viewer.LoggedIn {
			viewer.IsAdmin = sess.IsAdmin(ctx)
			viewer.Username = sess.Username(ctx)
		}
		c.Set(ViewerKey, viewer)
		c.Next()
	}
}

// RequireLogin 需要令牌。不透明令牌直接放行，JWT 过期时要求重新登录
func RequireLogin(sess *session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		token := sess.GetToken(ctx)
		if token == "" {
			response.AuthError(c, "Please sign in first")
			c.Abort()
			return
		}

		if _, err := jwt.Validate(token, timeNow()); errors.Is(err, jwt.ErrExpiredToken) {
			response.AuthError(c, "Session expired, please sign in again")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAdmin 需要 ROLE_ADMIN，未登录时先返回认证错误
func RequireAdmin(sess *session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if !sess.IsLoggedIn(ctx) {
			response.AuthError(c, "Please sign in first")
			c.Abort()
			return
		}
		if !sess.IsAdmin(ctx) {
			response.PermissionError(c, "Access denied. Admin role required.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetViewer 从上下文获取当前身份
func GetViewer(c *gin.Context) dto.Viewer {
	v, exists := c.Get(ViewerKey)
	if !exists {
		return dto.Viewer{}
	}
	viewer, _ := v.(dto.Viewer)
	return viewer
}
