package repository

import "yatube-go/internal/model"

// PostFilter 帖子列表的查询范围，字段为 nil 时不限制
type PostFilter struct {
	GroupID    *int64
	AuthorID   *int64
	FollowerID *int64 // 仅返回该用户关注的作者的帖子
}

type UserStore interface {
	GetByID(id int64) (*model.User, error)
	GetByUsername(username string) (*model.User, error)
	Create(user *model.User) error
	UpdatePassword(id int64, hash string) (int, error)
	CountPosts(userID int64) (int64, error)
}

type GroupStore interface {
	GetBySlug(slug string) (*model.Group, error)
	GetByID(id int64) (*model.Group, error)
	List() ([]model.Group, error)
	Create(group *model.Group) error
}

type PostStore interface {
	Create(post *model.Post) error
	GetByID(id int64) (*model.Post, error)
	GetByIDs(ids []int64) ([]model.Post, error)
	Update(id int64, updates map[string]interface{}) error
	Count(filter PostFilter) (int64, error)
	List(filter PostFilter, skip, limit int) ([]model.Post, error)
	Search(query string, skip, limit int) ([]model.Post, int64, error)
	ListAfter(lastID int64, limit int) ([]model.Post, error)
}

type CommentStore interface {
	Create(comment *model.Comment) error
	ListByPost(postID int64) ([]model.Comment, error)
	CountByPost(postID int64) (int64, error)
}

type FollowStore interface {
	GetOrCreate(userID, authorID int64) (bool, error)
	Delete(userID, authorID int64) (bool, error)
	Exists(userID, authorID int64) (bool, error)
	CountFollowing(userID int64) (int64, error)
	CountFollowers(authorID int64) (int64, error)
	Count() (int64, error)
}

var (
	_ UserStore    = (*UserRepository)(nil)
	_ GroupStore   = (*GroupRepository)(nil)
	_ PostStore    = (*PostRepository)(nil)
	_ CommentStore = (*CommentRepository)(nil)
	_ FollowStore  = (*FollowRepository)(nil)
)
