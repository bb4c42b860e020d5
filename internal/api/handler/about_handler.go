package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Static 渲染无数据的静态页面
func Static(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, http.StatusOK, name, nil)
	}
}
