package handler

import (
	"net/http"

	"yatube-go/internal/api/middleware"
	"yatube-go/internal/service"

	"github.com/gin-gonic/gin"
)

type FollowHandler struct {
	followService *service.FollowService
}

func NewFollowHandler(followService *service.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// Follow 关注作者后回到作者主页；重复关注和关注自己不做改动
func (h *FollowHandler) Follow(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)
	author, _, err := h.followService.Follow(user, c.Param("username"))
	if err != nil {
		handlePostError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+author.UserName+"/")
}

// Unfollow 取消关注后回到作者主页
func (h *FollowHandler) Unfollow(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)
	author, _, err := h.followService.Unfollow(user, c.Param("username"))
	if err != nil {
		handlePostError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+author.UserName+"/")
}
