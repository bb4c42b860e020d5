package middleware

import (
	"net/http"
	"strings"

	"yatube-go/internal/api/response"
	"yatube-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorPage 500 页面模板
const ErrorPage = "core/500.html"

// Recovery 恢复中间件，捕获panic；接口返回 JSON，页面渲染 500 模板
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
				)

				if strings.HasPrefix(c.Request.URL.Path, "/api/") {
					response.InternalError(c, "服务器内部错误")
				} else {
					c.HTML(http.StatusInternalServerError, ErrorPage, gin.H{})
				}
				c.Abort()
			}
		}()

		c.Next()
	}
}
