package repository

import (
	"yatube-go/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create 创建评论
func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

// ListByPost 获取帖子下的全部评论，最新在前
func (r *CommentRepository) ListByPost(postID int64) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	return comments, err
}

// CountByPost 统计帖子评论数
func (r *CommentRepository) CountByPost(postID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Comment{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}
