package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"yatube-go/internal/api/response"
	"yatube-go/internal/model"

	"github.com/gin-gonic/gin"
)

const ContextKeyUser = "currentUser"

// UserLoader 根据会话 Token 加载用户
type UserLoader func(token string) (*model.User, error)

// Identity 识别当前用户：优先 Authorization 头，其次会话 Cookie。
// 无 Token 或 Token 无效时按匿名用户继续处理。
func Identity(cookieName string, loader UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			token, _ = c.Cookie(cookieName)
		}
		if token != "" {
			if user, err := loader(token); err == nil && user != nil {
				c.Set(ContextKeyUser, user)
			}
		}
		c.Next()
	}
}

// GetCurrentUser 从 Gin Context 中获取当前登录用户
func GetCurrentUser(c *gin.Context) (*model.User, bool) {
	val, exists := c.Get(ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := val.(*model.User)
	return user, ok && user != nil
}

// LoginRequired 页面登录校验，未登录时跳转到登录页并带上原路径
func LoginRequired(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetCurrentUser(c); ok {
			c.Next()
			return
		}
		c.Redirect(http.StatusFound, LoginURL(loginPath, c.Request.URL.RequestURI()))
		c.Abort()
	}
}

// LoginURL 登录页地址，next 为登录成功后的返回路径
func LoginURL(loginPath, next string) string {
	return loginPath + "?" + url.Values{"next": {next}}.Encode()
}

// AuthRequired 接口登录校验，未登录返回 401
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetCurrentUser(c); !ok {
			response.Unauthorized(c, "缺少或无效的认证令牌")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminRequired 管理员权限校验（必须在 AuthRequired 之后使用），admins 为管理员用户名
func AdminRequired(admins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(admins))
	for _, name := range admins {
		allowed[name] = struct{}{}
	}
	return func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		if !ok {
			response.Unauthorized(c, "缺少或无效的认证令牌")
			c.Abort()
			return
		}
		if _, ok := allowed[user.UserName]; !ok {
			response.Forbidden(c, "需要管理员权限")
			c.Abort()
			return
		}
		c.Next()
	}
}

// SafeNext 只接受站内路径，防止登录后跳转到外部站点
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

// extractToken 从 Authorization 头中提取 Bearer Token
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
