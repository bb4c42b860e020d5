package handler

import (
	"errors"
	"net/http"

	"yatube-go/internal/api/dto"
	"yatube-go/internal/api/middleware"
	"yatube-go/internal/service"
	"yatube-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Add 发表评论，无论表单是否有效都回到帖子详情。
// GET 请求没有表单内容，相当于直接跳转到详情页，登录后按 next 返回时走这里
func (h *CommentHandler) Add(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		NotFound(c)
		return
	}

	user, _ := middleware.GetCurrentUser(c)
	form := dto.CommentForm{Text: c.PostForm("text")}

	if _, err := h.commentService.Add(id, user, form); err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			NotFound(c)
			return
		case dto.FieldErrors(err) != nil:
			logger.Debug("Comment discarded", zap.Int64("post_id", id), zap.Error(err))
		default:
			serverError(c, err)
			return
		}
	}

	c.Redirect(http.StatusFound, detailURL(id))
}
