package service

import (
	"errors"

	"yatube-go/internal/api/dto"
	"yatube-go/internal/model"
	"yatube-go/internal/repository"

	"gorm.io/gorm"
)

type CommentService struct {
	commentRepo repository.CommentStore
	postRepo    repository.PostStore
}

func NewCommentService(commentRepo repository.CommentStore, postRepo repository.PostStore) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

// Add 发表评论；帖子和作者在创建后不再变化
func (s *CommentService) Add(postID int64, author *model.User, form dto.CommentForm) (*model.Comment, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	form.Normalize()
	if err := form.Validate(); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		PostID:   postID,
		AuthorID: author.ID,
		Text:     form.Text,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	comment.Author = *author
	return comment, nil
}
