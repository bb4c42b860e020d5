package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"yatube-go/internal/api/middleware"
	"yatube-go/internal/media"
	"yatube-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	NotFoundPage = "core/404.html"
	LoginPath    = "/auth/login/"
)

// FragmentRenderer 渲染可缓存的页面片段
type FragmentRenderer interface {
	Fragment(name string, data any) ([]byte, error)
}

// render 渲染页面，统一注入当前用户
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if user, ok := middleware.GetCurrentUser(c); ok {
		data["CurrentUser"] = user
	}
	c.HTML(status, name, data)
}

// NotFound 404 页面，同时用作 NoRoute
func NotFound(c *gin.Context) {
	render(c, http.StatusNotFound, NotFoundPage, gin.H{"Path": c.Request.URL.Path})
}

func serverError(c *gin.Context, err error) {
	logger.Error("Request failed",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	_ = c.Error(err)
	render(c, http.StatusInternalServerError, middleware.ErrorPage, nil)
}

// parsePostID 路由中的帖子 ID，非法时视为不存在
func parsePostID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("post_id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// readImage 读取上传的图片，未上传返回 nil；超出上限的部分不读入
func readImage(c *gin.Context, field string) ([]byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(io.LimitReader(f, media.MaxImageSize+1))
}
