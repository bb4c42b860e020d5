package repository

import (
	"yatube-go/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID 根据 ID 查询用户
func (r *UserRepository) GetByID(id int64) (*model.User, error) {
	var user model.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername 根据用户名查询用户
func (r *UserRepository) GetByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("user_name = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Create 创建用户
func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

// UpdatePassword 更新密码哈希并递增会话版本，返回新版本
func (r *UserRepository) UpdatePassword(id int64, hash string) (int, error) {
	var user model.User
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.User{}).Where("id = ?", id).Updates(map[string]interface{}{
			"password":      hash,
			"token_version": gorm.Expr("token_version + 1"),
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Select("token_version").First(&user, id).Error
	})
	if err != nil {
		return 0, err
	}
	return user.TokenVersion, nil
}

// CountPosts 统计用户发布的帖子数
func (r *UserRepository) CountPosts(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Post{}).Where("author_id = ?", userID).Count(&count).Error
	return count, err
}
