package service

import (
	"errors"

	"yatube-go/internal/model"
	"yatube-go/internal/repository"

	"gorm.io/gorm"
)

type FollowService struct {
	followRepo repository.FollowStore
	userRepo   repository.UserStore
}

func NewFollowService(followRepo repository.FollowStore, userRepo repository.UserStore) *FollowService {
	return &FollowService{followRepo: followRepo, userRepo: userRepo}
}

func (s *FollowService) author(username string) (*model.User, error) {
	author, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return author, nil
}

// Follow 关注作者。重复关注和关注自己都不报错，changed 表示是否新建了关系
func (s *FollowService) Follow(user *model.User, username string) (author *model.User, changed bool, err error) {
	author, err = s.author(username)
	if err != nil {
		return nil, false, err
	}
	if author.ID == user.ID {
		return author, false, nil
	}

	changed, err = s.followRepo.GetOrCreate(user.ID, author.ID)
	if err != nil {
		return nil, false, err
	}
	return author, changed, nil
}

// Unfollow 取消关注。关系不存在或取消关注自己时不做任何操作
func (s *FollowService) Unfollow(user *model.User, username string) (author *model.User, changed bool, err error) {
	author, err = s.author(username)
	if err != nil {
		return nil, false, err
	}
	if author.ID == user.ID {
		return author, false, nil
	}

	changed, err = s.followRepo.Delete(user.ID, author.ID)
	if err != nil {
		return nil, false, err
	}
	return author, changed, nil
}

// IsFollowing 是否已关注
func (s *FollowService) IsFollowing(userID, authorID int64) (bool, error) {
	if userID == authorID {
		return false, nil
	}
	return s.followRepo.Exists(userID, authorID)
}
