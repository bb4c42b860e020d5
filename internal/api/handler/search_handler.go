package handler

import (
	"net/http"
	"net/url"
	"strings"

	"yatube-go/internal/service"
	"yatube-go/internal/view"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	searchService *service.SearchService
}

func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search 按关键词搜索帖子；关键词为空时只显示搜索框
func (h *SearchHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		render(c, http.StatusOK, "posts/search.html", nil)
		return
	}

	posts, err := h.searchService.Search(c.Request.Context(), q, c.Query("page"))
	if err != nil {
		serverError(c, err)
		return
	}

	render(c, http.StatusOK, "posts/search.html", gin.H{
		"Query": q,
		"List": view.ListData{
			Posts:     posts.Posts,
			Page:      posts.Page,
			Query:     url.Values{"q": {q}},
			ShowGroup: true,
		},
	})
}
