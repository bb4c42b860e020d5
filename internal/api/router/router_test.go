package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"yatube-go/internal/api/handler"
	"yatube-go/internal/api/middleware"
	"yatube-go/internal/cache"
	"yatube-go/internal/media"
	"yatube-go/internal/model"
	"yatube-go/internal/repository"
	"yatube-go/internal/repository/mock"
	"yatube-go/internal/service"
	"yatube-go/internal/view"
	"yatube-go/pkg/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cookieName = "yatube_session"

var smallGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x02, 0x00,
	0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x0C,
	0x0A, 0x00, 0x3B,
}

func init() {
	gin.SetMode(gin.TestMode)
}

type nopPublisher struct{}

func (nopPublisher) PublishPostEvent(context.Context, string, int64, int64) error { return nil }

type testApp struct {
	engine  *gin.Engine
	store   *mock.Store
	objects *media.MemoryStore
	redis   *miniredis.Miniredis
	cache   *cache.PageCache
	auth    *service.AuthService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := mock.NewStore()
	objects := media.NewMemoryStore("http://media.test/post-images")
	uploader := media.NewUploader(objects)
	pageCache := cache.NewPageCache(client, "test:page:", 20*time.Second)

	renderer, err := view.New(uploader)
	require.NoError(t, err)

	tokens := &utils.TokenIssuer{Secret: "test-secret", TTL: time.Hour, Issuer: "yatube"}
	authService := service.NewAuthService(store.Users(), tokens)
	postService := service.NewPostService(
		store.Posts(), store.Groups(), store.Users(), store.Comments(), store.Follows(),
		uploader, nopPublisher{},
	)
	commentService := service.NewCommentService(store.Comments(), store.Posts())
	followService := service.NewFollowService(store.Follows(), store.Users())
	searchService := service.NewSearchService(store.Posts(), nil)

	r := gin.New()
	r.HTMLRender = renderer
	r.Use(middleware.Recovery())
	r.Use(middleware.Identity(cookieName, authService.UserFromToken))

	Setup(r, Handlers{
		Post:    handler.NewPostHandler(postService, renderer, pageCache),
		Comment: handler.NewCommentHandler(commentService),
		Follow:  handler.NewFollowHandler(followService),
		Auth: handler.NewAuthHandler(authService, handler.SessionOptions{
			CookieName: cookieName,
			TTL:        time.Hour,
		}),
		Search: handler.NewSearchHandler(searchService),
		API:    handler.NewAPIHandler(postService, followService, searchService, uploader, pageCache),
	}, []string{"admin"})

	return &testApp{
		engine:  r,
		store:   store,
		objects: objects,
		redis:   mr,
		cache:   pageCache,
		auth:    authService,
	}
}

func (a *testApp) user(t *testing.T, username string) *model.User {
	t.Helper()
	hash, err := utils.HashPassword("pass-" + username)
	require.NoError(t, err)
	u := &model.User{UserName: username, Password: hash}
	require.NoError(t, a.store.Users().Create(u))
	return u
}

func (a *testApp) group(t *testing.T, slug string) *model.Group {
	t.Helper()
	g := &model.Group{Title: "Группа " + slug, Slug: slug, Description: "Описание"}
	require.NoError(t, a.store.Groups().Create(g))
	return g
}

func (a *testApp) post(t *testing.T, author *model.User, group *model.Group, text string) *model.Post {
	t.Helper()
	p := &model.Post{Text: text, AuthorID: author.ID, CreatedAt: time.Now()}
	if group != nil {
		p.GroupID = &group.ID
	}
	require.NoError(t, a.store.Posts().Create(p))
	return p
}

// do 发起请求；as 为 nil 时以匿名用户身份
func (a *testApp) do(t *testing.T, as *model.User, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	if as != nil {
		token, err := a.auth.IssueToken(as)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(t *testing.T, as *model.User, path string) *httptest.ResponseRecorder {
	return a.do(t, as, httptest.NewRequest(http.MethodGet, path, nil))
}

func (a *testApp) postForm(t *testing.T, as *model.User, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(t, as, req)
}

func multipartBody(t *testing.T, fields map[string]string, image []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if image != nil {
		fw, err := mw.CreateFormFile("image", "small.gif")
		require.NoError(t, err)
		_, err = fw.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func TestPublicPages(t *testing.T) {
	app := newTestApp(t)
	author := app.user(t, "auth")
	group := app.group(t, "test-slug")
	post := app.post(t, author, group, "Тестовый пост")

	for _, path := range []string{
		"/",
		"/group/test-slug/",
		"/groups/",
		"/profile/auth/",
		fmt.Sprintf("/posts/%d/", post.ID),
		"/search/?q=" + url.QueryEscape("Тестовый"),
		"/about/author/",
		"/about/tech/",
		"/auth/login/",
		"/auth/signup/",
		"/auth/password_reset/",
	} {
		t.Run(path, func(t *testing.T) {
			w := app.get(t, nil, path)
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestNotFound(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{
		"/unexisting_page/",
		"/group/missing/",
		"/profile/nobody/",
		"/posts/999/",
		"/posts/abc/",
	} {
		t.Run(path, func(t *testing.T) {
			w := app.get(t, nil, path)
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Contains(t, w.Body.String(), "404")
		})
	}
}

func TestLoginRequiredRedirects(t *testing.T) {
	app := newTestApp(t)
	author := app.user(t, "auth")
	post := app.post(t, author, nil, "Тестовый пост")

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/create/"},
		{http.MethodGet, "/follow/"},
		{http.MethodGet, fmt.Sprintf("/posts/%d/edit/", post.ID)},
		{http.MethodPost, fmt.Sprintf("/posts/%d/comment/", post.ID)},
		{http.MethodGet, "/profile/auth/follow/"},
		{http.MethodGet, "/auth/password_change/"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := app.do(t, nil, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, "/auth/login/?next="+url.QueryEscape(tt.path), w.Header().Get("Location"))
		})
	}
}

func TestCreatePost(t *testing.T) {
	app := newTestApp(t)
	author := app.user(t, "auth")
	group := app.group(t, "test-slug")

	t.Run("with image", func(t *testing.T) {
		body, contentType := multipartBody(t, map[string]string{
			"text":  "Новый пост",
			"group": fmt.Sprint(group.ID),
		}, smallGIF)
		req := httptest.NewRequest(http.MethodPost, "/create/", body)
		req.Header.Set("Content-Type", contentType)

		w := app.do(t, author, req)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/profile/auth/", w.Header().Get("Location"))

		posts, err := app.store.Posts().List(repository.PostFilter{}, 0, 10)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "Новый пост", posts[0].Text)
		require.NotNil(t, posts[0].GroupID)
		assert.Equal(t, group.ID, *posts[0].GroupID)
		assert.True(t, strings.HasPrefix(posts[0].Image, "posts/"))
		assert.Equal(t, 2, app.objects.Len())
	})

	t.Run("empty text re-renders form", func(t *testing.T) {
		w := app.postForm(t, author, "/create/", url.Values{"text": {"  "}})
		assert.Equal(t, http.StatusOK, w.Code)

		count, err := app.store.Posts().Count(repository.PostFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("invalid image re-renders form", func(t *testing.T) {
		body, contentType := multipartBody(t, map[string]string{"text": "С картинкой"}, []byte("not an image"))
		req := httptest.NewRequest(http.MethodPost, "/create/", body)
		req.Header.Set("Content-Type", contentType)

		w := app.do(t, author, req)
		assert.Equal(t, http.StatusOK, w.Code)

		count, err := app.store.Posts().Count(repository.PostFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("truncated image re-renders form", func(t *testing.T) {
		body, contentType := multipartBody(t, map[string]string{"text": "С картинкой"}, smallGIF[:len(smallGIF)-6])
		req := httptest.NewRequest(http.MethodPost, "/create/", body)
		req.Header.Set("Content-Type", contentType)

		w := app.do(t, author, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), media.ErrImageInvalid.Error())

		count, err := app.store.Posts().Count(repository.PostFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
		assert.Equal(t, 2, app.objects.Len())
	})

	t.Run("overflowing group id re-renders form", func(t *testing.T) {
		w := app.postForm(t, author, "/create/", url.Values{
			"text":  {"Пост"},
			"group": {"99999999999999999999"},
		})
		assert.Equal(t, http.StatusOK, w.Code)

		count, err := app.store.Posts().Count(repository.PostFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestEditPost(t *testing.T) {
	app := newTestApp(t)
	author := app.user(t, "auth")
	other := app.user(t, "other")
	post := app.post(t, author, nil, "Старый текст")
	editPath := fmt.Sprintf("/posts/%d/edit/", post.ID)
	detailPath := fmt.Sprintf("/posts/%d/", post.ID)

	t.Run("author sees form", func(t *testing.T) {
		w := app.get(t, author, editPath)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Старый текст")
	})

	t.Run("non-author redirected to detail", func(t *testing.T) {
		w := app.get(t, other, editPath)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, detailPath, w.Header().Get("Location"))

		w = app.postForm(t, other, editPath, url.Values{"text": {"Чужая правка"}})
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, detailPath, w.Header().Get("Location"))

		got, err := app.store.Posts().GetByID(post.ID)
		require.NoError(t, err)
		assert.Equal(t, "Старый текст", got.Text)
	})

	t.Run("author saves", func(t *testing.T) {
		w := app.postForm(t, author, editPath, url.Values{"text": {"Новый текст"}})
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, detailPath, w.Header().Get("Location"))

		got, err := app.store.Posts().GetByID(post.ID)
		require.NoError(t, err)
		assert.Equal(t, "Новый текст", got.Text)
	})

	t.Run("missing post", func(t *testing.T) {
		w := app.get(t, author, "/posts/999/edit/")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestComment(t *testing.T) {
	app := newTestApp(t)
	author := app.user(t, "auth")
	post := app.post(t, author, nil, "Тестовый пост")
	commentPath := fmt.Sprintf("/posts/%d/comment/", post.ID)
	detailPath := fmt.Sprintf("/posts/%d/", post.ID)

	w := app.postForm(t, author, commentPath, url.Values{"text": {"Тестовый комментарий"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, detailPath, w.Header().Get("Location"))

	// 空评论直接丢弃，仍然回到详情页
	w = app.postForm(t, author, commentPath, url.Values{"text": {""}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, detailPath, w.Header().Get("Location"))

	count, err := app.store.Comments().CountByPost(post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	w = app.get(t, nil, detailPath)
	assert.Contains(t, w.Body.String(), "Тестовый комментарий")
}

func TestCommentAfterLogin(t *testing.T) {
	app := newTestApp(t)
	author := app.user(t, "auth")
	post := app.post(t, author, nil, "Тестовый пост")
	commentPath := fmt.Sprintf("/posts/%d/comment/", post.ID)

	w := app.postForm(t, nil, commentPath, url.Values{"text": {"Аноним"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login/?next="+url.QueryEscape(commentPath), w.Header().Get("Location"))

	// 登录后按 next 以 GET 回到评论地址，应跳到帖子详情而不是 404
	w = app.get(t, author, commentPath)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("/posts/%d/", post.ID), w.Header().Get("Location"))

	count, err := app.store.Comments().CountByPost(post.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	w = app.get(t, author, "/posts/99999/comment/")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPagination(t *testing.T) {
	app := newTestApp(t)
	author := app.user(t, "auth")
	group := app.group(t, "test-slug")
	for i := 0; i < 13; i++ {
		app.post(t, author, group, fmt.Sprintf("Пост номер %d", i))
	}

	tests := []struct {
		path string
		want int
	}{
		{"/", 10},
		{"/?page=2", 3},
		{"/?page=99", 3},
		{"/?page=abc", 10},
		{"/group/test-slug/", 10},
		{"/group/test-slug/?page=2", 3},
		{"/profile/auth/", 10},
		{"/profile/auth/?page=2", 3},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := app.get(t, nil, tt.path)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, strings.Count(w.Body.String(), "<article>"))
		})
	}
}

func TestIndexCache(t *testing.T) {
	app := newTestApp(t)
	author := app.user(t, "auth")
	app.post(t, author, nil, "Первый пост")

	first := app.get(t, nil, "/").Body.String()
	require.Contains(t, first, "Первый пост")

	app.post(t, author, nil, "Второй пост")

	// 窗口期内返回缓存内容
	second := app.get(t, nil, "/").Body.String()
	assert.Equal(t, first, second)
	assert.NotContains(t, second, "Второй пост")

	require.NoError(t, app.cache.Clear(context.Background()))
	third := app.get(t, nil, "/").Body.String()
	assert.Contains(t, third, "Второй пост")

	app.post(t, author, nil, "Третий пост")
	app.redis.FastForward(21 * time.Second)
	fourth := app.get(t, nil, "/").Body.String()
	assert.Contains(t, fourth, "Третий пост")
}

func TestIndexCacheKeepsUserHeader(t *testing.T) {
	app := newTestApp(t)
	author := app.user(t, "auth")
	app.post(t, author, nil, "Тестовый пост")

	anonymous := app.get(t, nil, "/").Body.String()
	assert.NotContains(t, anonymous, "/auth/logout/")

	logged := app.get(t, author, "/").Body.String()
	assert.Contains(t, logged, "/auth/logout/")
}

func TestFollow(t *testing.T) {
	app := newTestApp(t)
	follower := app.user(t, "follower")
	stranger := app.user(t, "stranger")
	author := app.user(t, "auth")
	app.post(t, author, nil, "Пост автора")

	w := app.get(t, follower, "/profile/auth/follow/")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/auth/", w.Header().Get("Location"))

	// 重复关注和关注自己都不产生新记录
	app.get(t, follower, "/profile/auth/follow/")
	app.get(t, follower, "/profile/follower/follow/")
	count, err := app.store.Follows().Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	t.Run("feed shows followed author", func(t *testing.T) {
		w := app.get(t, follower, "/follow/")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Пост автора")
	})

	t.Run("feed of stranger is empty", func(t *testing.T) {
		w := app.get(t, stranger, "/follow/")
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "Пост автора")
	})

	t.Run("unfollow", func(t *testing.T) {
		w := app.get(t, follower, "/profile/auth/unfollow/")
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/profile/auth/", w.Header().Get("Location"))

		count, err := app.store.Follows().Count()
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)

		w = app.get(t, follower, "/follow/")
		assert.NotContains(t, w.Body.String(), "Пост автора")
	})

	t.Run("unknown author", func(t *testing.T) {
		w := app.get(t, follower, "/profile/nobody/follow/")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSignupAndLogin(t *testing.T) {
	app := newTestApp(t)

	t.Run("signup logs in", func(t *testing.T) {
		w := app.postForm(t, nil, "/auth/signup/", url.Values{
			"username":  {"newbie"},
			"email":     {"newbie@example.com"},
			"password1": {"Str0ng-pass"},
			"password2": {"Str0ng-pass"},
		})
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
		assert.Contains(t, w.Header().Get("Set-Cookie"), cookieName+"=")

		_, err := app.store.Users().GetByUsername("newbie")
		assert.NoError(t, err)
	})

	t.Run("duplicate username", func(t *testing.T) {
		w := app.postForm(t, nil, "/auth/signup/", url.Values{
			"username":  {"newbie"},
			"password1": {"Str0ng-pass"},
			"password2": {"Str0ng-pass"},
		})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Set-Cookie"))
	})

	tests := []struct {
		name     string
		next     string
		location string
	}{
		{name: "local next", next: "/follow/", location: "/follow/"},
		{name: "no next", next: "", location: "/"},
		{name: "external next", next: "//evil.example.com/", location: "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := app.postForm(t, nil, "/auth/login/", url.Values{
				"username": {"newbie"},
				"password": {"Str0ng-pass"},
				"next":     {tt.next},
			})
			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, tt.location, w.Header().Get("Location"))
		})
	}

	t.Run("wrong password", func(t *testing.T) {
		w := app.postForm(t, nil, "/auth/login/", url.Values{
			"username": {"newbie"},
			"password": {"wrong"},
		})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "用户名或密码错误")
	})

	t.Run("logout clears cookie", func(t *testing.T) {
		user, err := app.store.Users().GetByUsername("newbie")
		require.NoError(t, err)

		w := app.get(t, user, "/auth/logout/")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
		assert.NotContains(t, w.Body.String(), "/auth/password_change/")
	})
}

func TestPasswordChange(t *testing.T) {
	app := newTestApp(t)
	user := app.user(t, "auth")

	w := app.postForm(t, user, "/auth/password_change/", url.Values{
		"old_password":  {"wrong"},
		"new_password1": {"N3w-password"},
		"new_password2": {"N3w-password"},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	changed := app.postForm(t, user, "/auth/password_change/", url.Values{
		"old_password":  {"pass-auth"},
		"new_password1": {"N3w-password"},
		"new_password2": {"N3w-password"},
	})
	assert.Equal(t, http.StatusFound, changed.Code)
	assert.Equal(t, "/auth/password_change/done/", changed.Header().Get("Location"))

	got, err := app.store.Users().GetByID(user.ID)
	require.NoError(t, err)
	assert.True(t, utils.VerifyPassword("N3w-password", got.Password))

	// user 仍是修改前的版本，用它签发的 Token 已失效
	w = app.get(t, user, "/create/")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), handler.LoginPath))

	var session *http.Cookie
	for _, c := range changed.Result().Cookies() {
		if c.Name == cookieName {
			session = c
		}
	}
	require.NotNil(t, session)
	req := httptest.NewRequest(http.MethodGet, "/create/", nil)
	req.AddCookie(session)
	w = app.do(t, nil, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

type apiResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Posts []struct {
			ID   int64  `json:"id"`
			Text string `json:"text"`
		} `json:"posts"`
		Pagination struct {
			Number   int `json:"page"`
			NumPages int `json:"num_pages"`
		} `json:"pagination"`
	} `json:"data"`
}

func TestAPI(t *testing.T) {
	app := newTestApp(t)
	author := app.user(t, "auth")
	group := app.group(t, "test-slug")
	var first *model.Post
	for i := 0; i < 12; i++ {
		p := app.post(t, author, group, fmt.Sprintf("Пост %d", i))
		if first == nil {
			first = p
		}
	}

	t.Run("list posts", func(t *testing.T) {
		w := app.get(t, nil, "/api/v1/posts?page=2")
		require.Equal(t, http.StatusOK, w.Code)

		var resp apiResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Len(t, resp.Data.Posts, 2)
		assert.Equal(t, 2, resp.Data.Pagination.Number)
		assert.Equal(t, 2, resp.Data.Pagination.NumPages)
	})

	t.Run("group posts", func(t *testing.T) {
		w := app.get(t, nil, "/api/v1/groups/test-slug/posts")
		require.Equal(t, http.StatusOK, w.Code)

		w = app.get(t, nil, "/api/v1/groups/missing/posts")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("post detail", func(t *testing.T) {
		w := app.get(t, nil, fmt.Sprintf("/api/v1/posts/%d", first.ID))
		assert.Equal(t, http.StatusOK, w.Code)

		w = app.get(t, nil, "/api/v1/posts/999")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("search", func(t *testing.T) {
		w := app.get(t, nil, "/api/v1/posts/search?q="+url.QueryEscape("Пост 1"))
		require.Equal(t, http.StatusOK, w.Code)

		var resp apiResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		// "Пост 1", "Пост 10", "Пост 11"
		assert.Len(t, resp.Data.Posts, 3)

		w = app.get(t, nil, "/api/v1/posts/search")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("auth required", func(t *testing.T) {
		w := app.get(t, nil, "/api/v1/follow")
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = app.do(t, nil, httptest.NewRequest(http.MethodDelete, "/api/v1/cache/index", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bearer follow and feed", func(t *testing.T) {
		reader := app.user(t, "reader")
		token, err := app.auth.IssueToken(reader)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/profile/auth/follow", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := app.do(t, nil, req)
		require.Equal(t, http.StatusOK, w.Code)

		req = httptest.NewRequest(http.MethodGet, "/api/v1/follow", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w = app.do(t, nil, req)
		require.Equal(t, http.StatusOK, w.Code)

		var resp apiResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Data.Posts, 10)
	})

	t.Run("clear cache", func(t *testing.T) {
		app.get(t, nil, "/")
		assert.NotEmpty(t, app.redis.Keys())

		w := app.do(t, author, httptest.NewRequest(http.MethodDelete, "/api/v1/cache/index", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.NotEmpty(t, app.redis.Keys())

		admin := app.user(t, "admin")
		w = app.do(t, admin, httptest.NewRequest(http.MethodDelete, "/api/v1/cache/index", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, app.redis.Keys())
	})
}
