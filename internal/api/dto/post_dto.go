package dto

import (
	"time"

	"yatube-go/internal/model"
	"yatube-go/internal/pagination"
)

// AuthorInfo 作者公开信息
type AuthorInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

// GroupInfo 社区信息
type GroupInfo struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

// PostInfo 帖子信息
type PostInfo struct {
	ID        int64      `json:"id"`
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"created_at"`
	Author    AuthorInfo `json:"author"`
	Group     *GroupInfo `json:"group,omitempty"`
	ImageURL  string     `json:"image_url,omitempty"`
	ThumbURL  string     `json:"thumb_url,omitempty"`
}

// CommentInfo 评论信息
type CommentInfo struct {
	ID        int64      `json:"id"`
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"created_at"`
	Author    AuthorInfo `json:"author"`
}

// PostListData 帖子分页列表
type PostListData struct {
	Posts []PostInfo      `json:"posts"`
	Page  pagination.Page `json:"pagination"`
}

// PostDetailData 帖子详情
type PostDetailData struct {
	Post     PostInfo      `json:"post"`
	Comments []CommentInfo `json:"comments"`
}

// FollowResult 关注/取消关注结果
type FollowResult struct {
	Author    string `json:"author"`
	Following bool   `json:"following"`
	Changed   bool   `json:"changed"`
}

// ImageURLs 根据对象名生成原图和缩略图地址
type ImageURLs interface {
	URL(objectName string) string
	ThumbURL(objectName string) string
}

func NewAuthorInfo(u *model.User) AuthorInfo {
	return AuthorInfo{ID: u.ID, Username: u.UserName, FullName: u.FullName()}
}

func NewGroupInfo(g *model.Group) *GroupInfo {
	if g == nil {
		return nil
	}
	return &GroupInfo{ID: g.ID, Title: g.Title, Slug: g.Slug, Description: g.Description}
}

func NewPostInfo(p *model.Post, images ImageURLs) PostInfo {
	info := PostInfo{
		ID:        p.ID,
		Text:      p.Text,
		CreatedAt: p.CreatedAt,
		Author:    NewAuthorInfo(&p.Author),
		Group:     NewGroupInfo(p.Group),
	}
	if p.Image != "" && images != nil {
		info.ImageURL = images.URL(p.Image)
		info.ThumbURL = images.ThumbURL(p.Image)
	}
	return info
}

func NewPostInfos(posts []model.Post, images ImageURLs) []PostInfo {
	out := make([]PostInfo, 0, len(posts))
	for i := range posts {
		out = append(out, NewPostInfo(&posts[i], images))
	}
	return out
}

func NewCommentInfos(comments []model.Comment) []CommentInfo {
	out := make([]CommentInfo, 0, len(comments))
	for _, c := range comments {
		out = append(out, CommentInfo{
			ID:        c.ID,
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
			Author:    NewAuthorInfo(&c.Author),
		})
	}
	return out
}
