package router

import (
	"yatube-go/internal/api/handler"
	"yatube-go/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers 路由用到的全部 Handler
type Handlers struct {
	Post    *handler.PostHandler
	Comment *handler.CommentHandler
	Follow  *handler.FollowHandler
	Auth    *handler.AuthHandler
	Search  *handler.SearchHandler
	API     *handler.APIHandler
}

// Setup 注册所有业务路由，admins 为可以清空页面缓存的用户名
func Setup(r *gin.Engine, h Handlers, admins []string) {
	loginRequired := middleware.LoginRequired(handler.LoginPath)

	// --- 帖子 ---
	r.GET("/", h.Post.Index)
	r.GET("/group/:slug/", h.Post.GroupPosts)
	r.GET("/groups/", h.Post.Groups)
	r.GET("/profile/:username/", h.Post.Profile)
	r.GET("/posts/:post_id/", h.Post.Detail)
	r.GET("/search/", h.Search.Search)

	posts := r.Group("", loginRequired)
	{
		posts.GET("/create/", h.Post.CreateForm)
		posts.POST("/create/", h.Post.Create)
		posts.GET("/posts/:post_id/edit/", h.Post.EditForm)
		posts.POST("/posts/:post_id/edit/", h.Post.Edit)
		posts.GET("/posts/:post_id/comment/", h.Comment.Add)
		posts.POST("/posts/:post_id/comment/", h.Comment.Add)
		posts.GET("/follow/", h.Post.Feed)
		posts.GET("/profile/:username/follow/", h.Follow.Follow)
		posts.GET("/profile/:username/unfollow/", h.Follow.Unfollow)
	}

	// --- 静态页 ---
	r.GET("/about/author/", handler.Static("about/author.html"))
	r.GET("/about/tech/", handler.Static("about/tech.html"))

	// --- 用户 ---
	auth := r.Group("/auth")
	{
		auth.GET("/signup/", h.Auth.SignupForm)
		auth.POST("/signup/", h.Auth.Signup)
		auth.GET("/login/", h.Auth.LoginForm)
		auth.POST("/login/", h.Auth.Login)
		auth.GET("/logout/", h.Auth.Logout)
		auth.POST("/logout/", h.Auth.Logout)
		auth.GET("/password_reset/", handler.Static("users/password_reset.html"))

		authRequired := auth.Group("", loginRequired)
		{
			authRequired.GET("/password_change/", h.Auth.PasswordChangeForm)
			authRequired.POST("/password_change/", h.Auth.PasswordChange)
			authRequired.GET("/password_change/done/", handler.Static("users/password_change_done.html"))
		}
	}

	// --- JSON 接口 ---
	v1 := r.Group("/api/v1")
	{
		v1.GET("/posts", h.API.ListPosts)
		v1.GET("/posts/search", h.API.SearchPosts)
		v1.GET("/posts/:post_id", h.API.GetPost)
		v1.GET("/groups/:slug/posts", h.API.GroupPosts)

		v1Auth := v1.Group("", middleware.AuthRequired())
		{
			v1Auth.GET("/follow", h.API.Feed)
			v1Auth.POST("/profile/:username/follow", h.API.Follow)
			v1Auth.DELETE("/profile/:username/follow", h.API.Unfollow)
			v1Auth.DELETE("/cache/index", middleware.AdminRequired(admins), h.API.ClearIndexCache)
		}
	}

	r.NoRoute(handler.NotFound)
}
