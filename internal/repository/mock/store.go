package mock

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"yatube-go/internal/model"
	"yatube-go/internal/repository"

	"gorm.io/gorm"
)

// Store 内存版实体存储，供测试使用；各 Repository 共享同一份数据以支持关联查询
type Store struct {
	mutex sync.RWMutex

	users    map[int64]*model.User
	groups   map[int64]*model.Group
	posts    map[int64]*model.Post
	comments map[int64]*model.Comment
	follows  map[[2]int64]*model.Follow

	nextID int64
}

func NewStore() *Store {
	return &Store{
		users:    make(map[int64]*model.User),
		groups:   make(map[int64]*model.Group),
		posts:    make(map[int64]*model.Post),
		comments: make(map[int64]*model.Comment),
		follows:  make(map[[2]int64]*model.Follow),
		nextID:   1,
	}
}

func (s *Store) Users() *UserRepository       { return &UserRepository{s} }
func (s *Store) Groups() *GroupRepository     { return &GroupRepository{s} }
func (s *Store) Posts() *PostRepository       { return &PostRepository{s} }
func (s *Store) Comments() *CommentRepository { return &CommentRepository{s} }
func (s *Store) Follows() *FollowRepository   { return &FollowRepository{s} }

func (s *Store) id() int64 {
	id := s.nextID
	s.nextID++
	return id
}

// post 返回带作者和社区的副本，调用方需持有读锁
func (s *Store) post(p *model.Post) model.Post {
	cp := *p
	if u, ok := s.users[p.AuthorID]; ok {
		cp.Author = *u
	}
	cp.Group = nil
	if p.GroupID != nil {
		if g, ok := s.groups[*p.GroupID]; ok {
			group := *g
			cp.Group = &group
		}
	}
	return cp
}

func (s *Store) matching(filter repository.PostFilter) []*model.Post {
	var out []*model.Post
	for _, p := range s.posts {
		if filter.GroupID != nil && (p.GroupID == nil || *p.GroupID != *filter.GroupID) {
			continue
		}
		if filter.AuthorID != nil && p.AuthorID != *filter.AuthorID {
			continue
		}
		if filter.FollowerID != nil {
			if _, ok := s.follows[[2]int64{*filter.FollowerID, p.AuthorID}]; !ok {
				continue
			}
		}
		out = append(out, p)
	}
	sortPosts(out)
	return out
}

func sortPosts(posts []*model.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
}

func window[T any](items []T, skip, limit int) []T {
	if skip >= len(items) {
		return []T{}
	}
	end := skip + limit
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end]
}

// UserRepository implementation
type UserRepository struct{ s *Store }

func (r *UserRepository) GetByID(id int64) (*model.User, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepository) GetByUsername(username string) (*model.User, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	for _, u := range r.s.users {
		if u.UserName == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *UserRepository) Create(user *model.User) error {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()

	for _, u := range r.s.users {
		if u.UserName == user.UserName {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = r.s.id()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *UserRepository) UpdatePassword(id int64, hash string) (int, error) {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	u.Password = hash
	u.TokenVersion++
	return u.TokenVersion, nil
}

func (r *UserRepository) CountPosts(userID int64) (int64, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	return int64(len(r.s.matching(repository.PostFilter{AuthorID: &userID}))), nil
}

// GroupRepository implementation
type GroupRepository struct{ s *Store }

func (r *GroupRepository) GetBySlug(slug string) (*model.Group, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	for _, g := range r.s.groups {
		if g.Slug == slug {
			cp := *g
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *GroupRepository) GetByID(id int64) (*model.Group, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	g, ok := r.s.groups[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *g
	return &cp, nil
}

func (r *GroupRepository) List() ([]model.Group, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	groups := make([]model.Group, 0, len(r.s.groups))
	for _, g := range r.s.groups {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Title < groups[j].Title })
	return groups, nil
}

func (r *GroupRepository) Create(group *model.Group) error {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()

	for _, g := range r.s.groups {
		if g.Slug == group.Slug {
			return gorm.ErrDuplicatedKey
		}
	}
	group.ID = r.s.id()
	cp := *group
	r.s.groups[group.ID] = &cp
	return nil
}

// PostRepository implementation
type PostRepository struct{ s *Store }

func (r *PostRepository) Create(post *model.Post) error {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()

	if _, ok := r.s.users[post.AuthorID]; !ok {
		return errors.New("author does not exist")
	}
	post.ID = r.s.id()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	cp := *post
	cp.Author = model.User{}
	cp.Group = nil
	r.s.posts[post.ID] = &cp
	return nil
}

func (r *PostRepository) GetByID(id int64) (*model.Post, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	p, ok := r.s.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	post := r.s.post(p)
	return &post, nil
}

func (r *PostRepository) GetByIDs(ids []int64) ([]model.Post, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	posts := make([]model.Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.s.posts[id]; ok {
			posts = append(posts, r.s.post(p))
		}
	}
	return posts, nil
}

func (r *PostRepository) Update(id int64, updates map[string]interface{}) error {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()

	p, ok := r.s.posts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range updates {
		switch k {
		case "text":
			p.Text = v.(string)
		case "image":
			p.Image = v.(string)
		case "group_id":
			p.GroupID = v.(*int64)
		}
	}
	return nil
}

func (r *PostRepository) Count(filter repository.PostFilter) (int64, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	return int64(len(r.s.matching(filter))), nil
}

func (r *PostRepository) List(filter repository.PostFilter, skip, limit int) ([]model.Post, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	matched := window(r.s.matching(filter), skip, limit)
	posts := make([]model.Post, 0, len(matched))
	for _, p := range matched {
		posts = append(posts, r.s.post(p))
	}
	return posts, nil
}

func (r *PostRepository) Search(query string, skip, limit int) ([]model.Post, int64, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	needle := strings.ToLower(query)
	var matched []*model.Post
	for _, p := range r.s.matching(repository.PostFilter{}) {
		if strings.Contains(strings.ToLower(p.Text), needle) {
			matched = append(matched, p)
		}
	}
	total := int64(len(matched))
	var posts []model.Post
	for _, p := range window(matched, skip, limit) {
		posts = append(posts, r.s.post(p))
	}
	return posts, total, nil
}

func (r *PostRepository) ListAfter(lastID int64, limit int) ([]model.Post, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	var ids []int64
	for id := range r.s.posts {
		if id > lastID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var posts []model.Post
	for _, id := range window(ids, 0, limit) {
		posts = append(posts, r.s.post(r.s.posts[id]))
	}
	return posts, nil
}

// CommentRepository implementation
type CommentRepository struct{ s *Store }

func (r *CommentRepository) Create(comment *model.Comment) error {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()

	if _, ok := r.s.posts[comment.PostID]; !ok {
		return errors.New("post does not exist")
	}
	comment.ID = r.s.id()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	cp := *comment
	r.s.comments[comment.ID] = &cp
	return nil
}

func (r *CommentRepository) ListByPost(postID int64) ([]model.Comment, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	var comments []model.Comment
	for _, c := range r.s.comments {
		if c.PostID != postID {
			continue
		}
		cp := *c
		if u, ok := r.s.users[c.AuthorID]; ok {
			cp.Author = *u
		}
		comments = append(comments, cp)
	}
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.After(comments[j].CreatedAt)
		}
		return comments[i].ID > comments[j].ID
	})
	return comments, nil
}

func (r *CommentRepository) CountByPost(postID int64) (int64, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	var count int64
	for _, c := range r.s.comments {
		if c.PostID == postID {
			count++
		}
	}
	return count, nil
}

// FollowRepository implementation
type FollowRepository struct{ s *Store }

func (r *FollowRepository) GetOrCreate(userID, authorID int64) (bool, error) {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()

	key := [2]int64{userID, authorID}
	if _, ok := r.s.follows[key]; ok {
		return false, nil
	}
	r.s.follows[key] = &model.Follow{
		ID:        r.s.id(),
		UserID:    userID,
		AuthorID:  authorID,
		CreatedAt: time.Now(),
	}
	return true, nil
}

func (r *FollowRepository) Delete(userID, authorID int64) (bool, error) {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()

	key := [2]int64{userID, authorID}
	if _, ok := r.s.follows[key]; !ok {
		return false, nil
	}
	delete(r.s.follows, key)
	return true, nil
}

func (r *FollowRepository) Exists(userID, authorID int64) (bool, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	_, ok := r.s.follows[[2]int64{userID, authorID}]
	return ok, nil
}

func (r *FollowRepository) CountFollowing(userID int64) (int64, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	var count int64
	for key := range r.s.follows {
		if key[0] == userID {
			count++
		}
	}
	return count, nil
}

func (r *FollowRepository) CountFollowers(authorID int64) (int64, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	var count int64
	for key := range r.s.follows {
		if key[1] == authorID {
			count++
		}
	}
	return count, nil
}

func (r *FollowRepository) Count() (int64, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	return int64(len(r.s.follows)), nil
}

var (
	_ repository.UserStore    = (*UserRepository)(nil)
	_ repository.GroupStore   = (*GroupRepository)(nil)
	_ repository.PostStore    = (*PostRepository)(nil)
	_ repository.CommentStore = (*CommentRepository)(nil)
	_ repository.FollowStore  = (*FollowRepository)(nil)
)
