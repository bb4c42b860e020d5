package repository

import (
	"yatube-go/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

// GetOrCreate 不存在时插入关注关系，返回是否新建。
// 并发重复插入由 (user_id, author_id) 唯一约束兜底。
func (r *FollowRepository) GetOrCreate(userID, authorID int64) (bool, error) {
	follow := &model.Follow{UserID: userID, AuthorID: authorID}
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "author_id"}},
		DoNothing: true,
	}).Create(follow)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete 删除关注关系，返回是否真的删除了记录
func (r *FollowRepository) Delete(userID, authorID int64) (bool, error) {
	result := r.db.Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&model.Follow{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Exists 检查关注关系是否存在
func (r *FollowRepository) Exists(userID, authorID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	return count > 0, err
}

// CountFollowing 统计关注数
func (r *FollowRepository) CountFollowing(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Follow{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// CountFollowers 统计粉丝数
func (r *FollowRepository) CountFollowers(authorID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Follow{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// Count 关注关系总数
func (r *FollowRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Follow{}).Count(&count).Error
	return count, err
}
