package repository

import (
	"yatube-go/internal/model"

	"gorm.io/gorm"
)

type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) GetBySlug(slug string) (*model.Group, error) {
	var group model.Group
	if err := r.db.Where("slug = ?", slug).First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *GroupRepository) GetByID(id int64) (*model.Group, error) {
	var group model.Group
	if err := r.db.Where("id = ?", id).First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// List 按名称排序返回全部社区
func (r *GroupRepository) List() ([]model.Group, error) {
	var groups []model.Group
	err := r.db.Order("title ASC").Find(&groups).Error
	return groups, err
}

func (r *GroupRepository) Create(group *model.Group) error {
	return r.db.Create(group).Error
}
