package handler

import (
	"context"
	"errors"
	"strings"

	"yatube-go/internal/api/dto"
	"yatube-go/internal/api/middleware"
	"yatube-go/internal/api/response"
	"yatube-go/internal/service"
	"yatube-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CacheClearer 清空页面缓存
type CacheClearer interface {
	Clear(ctx context.Context) error
}

// APIHandler /api/v1 下的 JSON 接口
type APIHandler struct {
	postService   *service.PostService
	followService *service.FollowService
	searchService *service.SearchService
	images        dto.ImageURLs
	cache         CacheClearer
}

func NewAPIHandler(
	postService *service.PostService,
	followService *service.FollowService,
	searchService *service.SearchService,
	images dto.ImageURLs,
	cache CacheClearer,
) *APIHandler {
	return &APIHandler{
		postService:   postService,
		followService: followService,
		searchService: searchService,
		images:        images,
		cache:         cache,
	}
}

func (h *APIHandler) listData(page *service.PostPage) dto.PostListData {
	return dto.PostListData{Posts: dto.NewPostInfos(page.Posts, h.images), Page: page.Page}
}

// ListPosts 帖子列表
// @Summary 帖子列表
// @Description 按发布时间倒序分页获取全部帖子，每页 10 条
// @Tags 帖子
// @Produce json
// @Param page query int false "页码，越界时取最近的有效页" default(1)
// @Success 200 {object} response.Response{data=dto.PostListData} "获取成功"
// @Router /posts [get]
func (h *APIHandler) ListPosts(c *gin.Context) {
	page, err := h.postService.ListAll(c.Query("page"))
	if err != nil {
		handleAPIError(c, err, "获取帖子列表失败")
		return
	}
	response.OK(c, "获取成功", h.listData(page))
}

// GetPost 帖子详情
// @Summary 帖子详情
// @Description 获取帖子及其评论，评论按时间倒序
// @Tags 帖子
// @Produce json
// @Param post_id path int true "帖子ID"
// @Success 200 {object} response.Response{data=dto.PostDetailData} "获取成功"
// @Failure 404 {object} response.ErrorResponse "帖子不存在"
// @Router /posts/{post_id} [get]
func (h *APIHandler) GetPost(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		response.NotFound(c, service.ErrPostNotFound.Error())
		return
	}

	detail, err := h.postService.Detail(id)
	if err != nil {
		handleAPIError(c, err, "获取帖子失败")
		return
	}

	response.OK(c, "获取成功", dto.PostDetailData{
		Post:     dto.NewPostInfo(detail.Post, h.images),
		Comments: dto.NewCommentInfos(detail.Comments),
	})
}

// GroupPosts 社区帖子列表
// @Summary 社区帖子列表
// @Tags 帖子
// @Produce json
// @Param slug path string true "社区 slug"
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response{data=dto.PostListData} "获取成功"
// @Failure 404 {object} response.ErrorResponse "社区不存在"
// @Router /groups/{slug}/posts [get]
func (h *APIHandler) GroupPosts(c *gin.Context) {
	_, page, err := h.postService.ListGroup(c.Param("slug"), c.Query("page"))
	if err != nil {
		handleAPIError(c, err, "获取社区帖子失败")
		return
	}
	response.OK(c, "获取成功", h.listData(page))
}

// SearchPosts 搜索帖子
// @Summary 搜索帖子
// @Description 优先使用 Elasticsearch，不可用时回退到数据库模糊查询
// @Tags 搜索
// @Produce json
// @Param q query string true "搜索关键词"
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response{data=dto.PostListData} "搜索成功"
// @Failure 400 {object} response.ErrorResponse "缺少关键词"
// @Router /posts/search [get]
func (h *APIHandler) SearchPosts(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.BadRequest(c, "请输入搜索关键词")
		return
	}

	page, err := h.searchService.Search(c.Request.Context(), q, c.Query("page"))
	if err != nil {
		handleAPIError(c, err, "搜索失败")
		return
	}
	response.OK(c, "搜索成功", h.listData(page))
}

// Feed 关注的作者的帖子
// @Summary 关注流
// @Tags 关注
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response{data=dto.PostListData} "获取成功"
// @Failure 401 {object} response.ErrorResponse "未登录"
// @Router /follow [get]
func (h *APIHandler) Feed(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)
	page, err := h.postService.ListFeed(user.ID, c.Query("page"))
	if err != nil {
		handleAPIError(c, err, "获取关注流失败")
		return
	}
	response.OK(c, "获取成功", h.listData(page))
}

// Follow 关注作者
// @Summary 关注作者
// @Description 重复关注或关注自己时 changed 为 false
// @Tags 关注
// @Produce json
// @Security BearerAuth
// @Param username path string true "作者用户名"
// @Success 200 {object} response.Response{data=dto.FollowResult} "操作成功"
// @Failure 404 {object} response.ErrorResponse "用户不存在"
// @Router /profile/{username}/follow [post]
func (h *APIHandler) Follow(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)
	author, changed, err := h.followService.Follow(user, c.Param("username"))
	if err != nil {
		handleAPIError(c, err, "关注失败")
		return
	}
	response.OK(c, "操作成功", dto.FollowResult{
		Author:    author.UserName,
		Following: author.ID != user.ID,
		Changed:   changed,
	})
}

// Unfollow 取消关注
// @Summary 取消关注
// @Tags 关注
// @Produce json
// @Security BearerAuth
// @Param username path string true "作者用户名"
// @Success 200 {object} response.Response{data=dto.FollowResult} "操作成功"
// @Failure 404 {object} response.ErrorResponse "用户不存在"
// @Router /profile/{username}/follow [delete]
func (h *APIHandler) Unfollow(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)
	author, changed, err := h.followService.Unfollow(user, c.Param("username"))
	if err != nil {
		handleAPIError(c, err, "取消关注失败")
		return
	}
	response.OK(c, "操作成功", dto.FollowResult{
		Author:  author.UserName,
		Changed: changed,
	})
}

// ClearIndexCache 清空首页缓存
// @Summary 清空首页缓存
// @Tags 缓存
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response "清空成功"
// @Failure 401 {object} response.ErrorResponse "未登录"
// @Failure 403 {object} response.ErrorResponse "需要管理员权限"
// @Router /cache/index [delete]
func (h *APIHandler) ClearIndexCache(c *gin.Context) {
	if h.cache == nil {
		response.OK(c, "未启用缓存", nil)
		return
	}
	if err := h.cache.Clear(c.Request.Context()); err != nil {
		handleAPIError(c, err, "清空缓存失败")
		return
	}

	user, _ := middleware.GetCurrentUser(c)
	logger.Info("Page cache cleared", zap.Int64("user_id", user.ID))
	response.OK(c, "清空成功", nil)
}

func handleAPIError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrGroupNotFound),
		errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("API request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("post_id", c.Param("post_id")),
			zap.Error(err),
		)
		response.InternalError(c, fallback)
	}
}
