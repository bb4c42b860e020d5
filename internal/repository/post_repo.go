package repository

import (
	"yatube-go/internal/model"

	"gorm.io/gorm"
)

// 所有列表统一按发布时间倒序，同一时刻按 ID 倒序
const postOrder = "posts.created_at DESC, posts.id DESC"

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create 创建帖子
func (r *PostRepository) Create(post *model.Post) error {
	return r.db.Create(post).Error
}

// GetByID 查询帖子，预加载作者和社区
func (r *PostRepository) GetByID(id int64) (*model.Post, error) {
	var post model.Post
	err := r.db.Preload("Author").Preload("Group").
		Where("id = ?", id).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetByIDs 批量查询帖子，结果顺序与 ids 一致，不存在的 ID 被跳过
func (r *PostRepository) GetByIDs(ids []int64) ([]model.Post, error) {
	if len(ids) == 0 {
		return []model.Post{}, nil
	}

	var posts []model.Post
	err := r.db.Preload("Author").Preload("Group").
		Where("id IN ?", ids).Find(&posts).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]model.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	ordered := make([]model.Post, 0, len(posts))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

// Update 更新帖子字段
func (r *PostRepository) Update(id int64, updates map[string]interface{}) error {
	result := r.db.Model(&model.Post{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Count 统计范围内的帖子数
func (r *PostRepository) Count(filter PostFilter) (int64, error) {
	var count int64
	err := r.scoped(filter).Model(&model.Post{}).Count(&count).Error
	return count, err
}

// List 分页查询范围内的帖子
func (r *PostRepository) List(filter PostFilter, skip, limit int) ([]model.Post, error) {
	var posts []model.Post
	err := r.scoped(filter).
		Preload("Author").Preload("Group").
		Order(postOrder).
		Offset(skip).Limit(limit).
		Find(&posts).Error
	return posts, err
}

// Search 数据库回退搜索：正文模糊匹配
func (r *PostRepository) Search(query string, skip, limit int) ([]model.Post, int64, error) {
	pattern := "%" + query + "%"

	var total int64
	if err := r.db.Model(&model.Post{}).Where("text ILIKE ?", pattern).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []model.Post
	err := r.db.Preload("Author").Preload("Group").
		Where("text ILIKE ?", pattern).
		Order(postOrder).
		Offset(skip).Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

// ListAfter 按 ID 游标批量读取，用于重建搜索索引
func (r *PostRepository) ListAfter(lastID int64, limit int) ([]model.Post, error) {
	var posts []model.Post
	err := r.db.Preload("Author").Preload("Group").
		Where("id > ?", lastID).
		Order("id ASC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *PostRepository) scoped(filter PostFilter) *gorm.DB {
	q := r.db
	if filter.GroupID != nil {
		q = q.Where("posts.group_id = ?", *filter.GroupID)
	}
	if filter.AuthorID != nil {
		q = q.Where("posts.author_id = ?", *filter.AuthorID)
	}
	if filter.FollowerID != nil {
		// 订阅流：作者在 follows 中被该用户关注
		q = q.Where("posts.author_id IN (?)",
			r.db.Model(&model.Follow{}).Select("author_id").Where("user_id = ?", *filter.FollowerID))
	}
	return q
}
