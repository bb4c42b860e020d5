package handler

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"yatube-go/internal/api/dto"
	"yatube-go/internal/api/middleware"
	"yatube-go/internal/cache"
	"yatube-go/internal/model"
	"yatube-go/internal/service"
	"yatube-go/internal/view"

	"github.com/gin-gonic/gin"
)

// FragmentCache 首页列表片段缓存
type FragmentCache interface {
	Key(fragment, variant string) string
	GetOrRender(ctx context.Context, key string, render func() ([]byte, error)) ([]byte, error)
}

type PostHandler struct {
	postService *service.PostService
	renderer    FragmentRenderer
	cache       FragmentCache
}

// NewPostHandler cache 为 nil 时首页不缓存
func NewPostHandler(postService *service.PostService, renderer FragmentRenderer, cache FragmentCache) *PostHandler {
	return &PostHandler{postService: postService, renderer: renderer, cache: cache}
}

// cacheVariant 首页缓存按页码区分；非法页码都归到第 1 页
func cacheVariant(raw string) string {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		n = 1
	}
	return strconv.Itoa(n)
}

// Index 首页：全部帖子，列表片段缓存一个窗口期
func (h *PostHandler) Index(c *gin.Context) {
	raw := c.Query("page")
	renderList := func() ([]byte, error) {
		posts, err := h.postService.ListAll(raw)
		if err != nil {
			return nil, err
		}
		return h.renderer.Fragment(view.ListFragment, view.ListData{
			Posts:     posts.Posts,
			Page:      posts.Page,
			ShowGroup: true,
		})
	}

	var (
		listing []byte
		err     error
	)
	if h.cache != nil {
		listing, err = h.cache.GetOrRender(c.Request.Context(), h.cache.Key(cache.IndexFragment, cacheVariant(raw)), renderList)
	} else {
		listing, err = renderList()
	}
	if err != nil {
		serverError(c, err)
		return
	}

	render(c, http.StatusOK, "posts/index.html", gin.H{
		"Listing": template.HTML(listing),
	})
}

// GroupPosts 社区帖子列表
func (h *PostHandler) GroupPosts(c *gin.Context) {
	group, posts, err := h.postService.ListGroup(c.Param("slug"), c.Query("page"))
	if err != nil {
		handlePostError(c, err)
		return
	}

	render(c, http.StatusOK, "posts/group_list.html", gin.H{
		"Group": group,
		"List":  view.ListData{Posts: posts.Posts, Page: posts.Page},
	})
}

// Profile 作者主页
func (h *PostHandler) Profile(c *gin.Context) {
	viewer, _ := middleware.GetCurrentUser(c)
	profile, err := h.postService.Profile(c.Param("username"), viewer, c.Query("page"))
	if err != nil {
		handlePostError(c, err)
		return
	}

	render(c, http.StatusOK, "posts/profile.html", gin.H{
		"Profile": profile,
		"List":    view.ListData{Posts: profile.Posts.Posts, Page: profile.Posts.Page, ShowGroup: true},
	})
}

// Detail 帖子详情
func (h *PostHandler) Detail(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		NotFound(c)
		return
	}

	detail, err := h.postService.Detail(id)
	if err != nil {
		handlePostError(c, err)
		return
	}

	user, _ := middleware.GetCurrentUser(c)
	render(c, http.StatusOK, "posts/post_detail.html", gin.H{
		"Post":            detail.Post,
		"Comments":        detail.Comments,
		"AuthorPostCount": detail.AuthorPostCount,
		"CanEdit":         user != nil && user.ID == detail.Post.AuthorID,
	})
}

// Groups 社区列表页
func (h *PostHandler) Groups(c *gin.Context) {
	groups, err := h.postService.Groups()
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, "posts/groups.html", gin.H{"Groups": groups})
}

// CreateForm 发帖表单
func (h *PostHandler) CreateForm(c *gin.Context) {
	h.renderForm(c, dto.PostForm{}, nil, nil)
}

// Create 发布帖子，成功后跳转到作者主页
func (h *PostHandler) Create(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	form, err := bindPostForm(c)
	if err != nil {
		serverError(c, err)
		return
	}

	if _, err := h.postService.Create(c.Request.Context(), user, form); err != nil {
		if errs := dto.FieldErrors(err); errs != nil {
			h.renderForm(c, form, nil, errs)
			return
		}
		serverError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+user.UserName+"/")
}

// EditForm 编辑表单，非作者跳转到详情页
func (h *PostHandler) EditForm(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		NotFound(c)
		return
	}

	user, _ := middleware.GetCurrentUser(c)
	post, allowed, err := h.postService.CanEdit(id, user)
	if err != nil {
		handlePostError(c, err)
		return
	}
	if !allowed {
		c.Redirect(http.StatusFound, detailURL(id))
		return
	}

	form := dto.PostForm{Text: post.Text}
	if post.GroupID != nil {
		form.Group = strconv.FormatInt(*post.GroupID, 10)
	}
	h.renderForm(c, form, post, nil)
}

// Edit 保存编辑，成功或非作者都跳转到详情页
func (h *PostHandler) Edit(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		NotFound(c)
		return
	}

	form, err := bindPostForm(c)
	if err != nil {
		serverError(c, err)
		return
	}

	user, _ := middleware.GetCurrentUser(c)
	post, allowed, err := h.postService.Edit(c.Request.Context(), id, user, form)
	if err != nil && allowed {
		if errs := dto.FieldErrors(err); errs != nil {
			h.renderForm(c, form, post, errs)
			return
		}
	}
	if err != nil {
		handlePostError(c, err)
		return
	}

	c.Redirect(http.StatusFound, detailURL(id))
}

// Feed 关注的作者的帖子
func (h *PostHandler) Feed(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)
	posts, err := h.postService.ListFeed(user.ID, c.Query("page"))
	if err != nil {
		serverError(c, err)
		return
	}

	render(c, http.StatusOK, "posts/follow.html", gin.H{
		"List": view.ListData{Posts: posts.Posts, Page: posts.Page, ShowGroup: true},
	})
}

func (h *PostHandler) renderForm(c *gin.Context, form dto.PostForm, post *model.Post, errs map[string]string) {
	groups, err := h.postService.Groups()
	if err != nil {
		serverError(c, err)
		return
	}

	data := gin.H{
		"Form":   form,
		"Groups": groups,
		"Errors": errs,
	}
	if post != nil {
		data["IsEdit"] = true
		data["PostID"] = post.ID
	}
	render(c, http.StatusOK, "posts/create_post.html", data)
}

func bindPostForm(c *gin.Context) (dto.PostForm, error) {
	form := dto.PostForm{
		Text:  c.PostForm("text"),
		Group: c.PostForm("group"),
	}
	image, err := readImage(c, "image")
	if err != nil {
		return form, err
	}
	form.Image = image
	return form, nil
}

func detailURL(id int64) string {
	return "/posts/" + strconv.FormatInt(id, 10) + "/"
}

func handlePostError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrGroupNotFound),
		errors.Is(err, service.ErrUserNotFound):
		NotFound(c)
	default:
		serverError(c, err)
	}
}
