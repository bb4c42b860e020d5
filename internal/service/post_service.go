package service

import (
	"context"
	"errors"
	"fmt"

	"yatube-go/internal/api/dto"
	"yatube-go/internal/infra/kafka"
	"yatube-go/internal/media"
	"yatube-go/internal/model"
	"yatube-go/internal/pagination"
	"yatube-go/internal/repository"
	"yatube-go/pkg/logger"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound  = errors.New("帖子不存在")
	ErrGroupNotFound = errors.New("社区不存在")
	errGroupChoice   = errors.New("请选择正确的社区，该选项不存在")
)

// EventPublisher 帖子变更事件的发送方，未配置时为 nil
type EventPublisher interface {
	PublishPostEvent(ctx context.Context, eventType string, postID, authorID int64) error
}

// ImageSaver 帖子图片的存储
type ImageSaver interface {
	Save(ctx context.Context, data []byte) (string, error)
	Remove(ctx context.Context, objectName string)
}

// PostPage 一页帖子
type PostPage struct {
	Posts []model.Post
	Page  pagination.Page
}

// Profile 作者主页数据
type Profile struct {
	Author         *model.User
	Posts          *PostPage
	PostCount      int64
	FollowerCount  int64
	FollowingCount int64
	Following      bool
}

// PostDetail 帖子详情
type PostDetail struct {
	Post            *model.Post
	Comments        []model.Comment
	AuthorPostCount int64
}

type PostService struct {
	postRepo    repository.PostStore
	groupRepo   repository.GroupStore
	userRepo    repository.UserStore
	commentRepo repository.CommentStore
	followRepo  repository.FollowStore
	images      ImageSaver
	events      EventPublisher
}

func NewPostService(
	postRepo repository.PostStore,
	groupRepo repository.GroupStore,
	userRepo repository.UserStore,
	commentRepo repository.CommentStore,
	followRepo repository.FollowStore,
	images ImageSaver,
	events EventPublisher,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		groupRepo:   groupRepo,
		userRepo:    userRepo,
		commentRepo: commentRepo,
		followRepo:  followRepo,
		images:      images,
		events:      events,
	}
}

func (s *PostService) page(filter repository.PostFilter, rawPage string) (*PostPage, error) {
	total, err := s.postRepo.Count(filter)
	if err != nil {
		return nil, err
	}
	page := pagination.New(rawPage, total, pagination.PerPage)

	posts, err := s.postRepo.List(filter, page.Offset(), page.Limit())
	if err != nil {
		return nil, err
	}
	return &PostPage{Posts: posts, Page: page}, nil
}

// ListAll 全部帖子
func (s *PostService) ListAll(rawPage string) (*PostPage, error) {
	return s.page(repository.PostFilter{}, rawPage)
}

// ListGroup 某个社区的帖子
func (s *PostService) ListGroup(slug, rawPage string) (*model.Group, *PostPage, error) {
	group, err := s.groupRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrGroupNotFound
		}
		return nil, nil, err
	}

	posts, err := s.page(repository.PostFilter{GroupID: &group.ID}, rawPage)
	if err != nil {
		return nil, nil, err
	}
	return group, posts, nil
}

// ListFeed 用户关注的作者发布的帖子
func (s *PostService) ListFeed(userID int64, rawPage string) (*PostPage, error) {
	return s.page(repository.PostFilter{FollowerID: &userID}, rawPage)
}

// Profile 作者主页；viewer 为空表示匿名访问
func (s *PostService) Profile(username string, viewer *model.User, rawPage string) (*Profile, error) {
	author, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	posts, err := s.page(repository.PostFilter{AuthorID: &author.ID}, rawPage)
	if err != nil {
		return nil, err
	}

	profile := &Profile{
		Author:    author,
		Posts:     posts,
		PostCount: posts.Page.TotalCount,
	}
	if profile.FollowerCount, err = s.followRepo.CountFollowers(author.ID); err != nil {
		return nil, err
	}
	if profile.FollowingCount, err = s.followRepo.CountFollowing(author.ID); err != nil {
		return nil, err
	}
	if viewer != nil && viewer.ID != author.ID {
		if profile.Following, err = s.followRepo.Exists(viewer.ID, author.ID); err != nil {
			return nil, err
		}
	}
	return profile, nil
}

// Get 获取单个帖子
func (s *PostService) Get(id int64) (*model.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// Detail 帖子详情，评论最新在前
func (s *PostService) Detail(id int64) (*PostDetail, error) {
	post, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(id)
	if err != nil {
		return nil, err
	}
	count, err := s.userRepo.CountPosts(post.AuthorID)
	if err != nil {
		return nil, err
	}

	return &PostDetail{Post: post, Comments: comments, AuthorPostCount: count}, nil
}

// Groups 发帖表单的社区选项
func (s *PostService) Groups() ([]model.Group, error) {
	return s.groupRepo.List()
}

// checkForm 校验表单并确认社区存在
func (s *PostService) checkForm(form *dto.PostForm) error {
	form.Normalize()
	if err := form.Validate(); err != nil {
		return err
	}
	if groupID := form.GroupID(); groupID != nil {
		if _, err := s.groupRepo.GetByID(*groupID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return validation.Errors{"group": errGroupChoice}
			}
			return err
		}
	}
	return nil
}

// saveImage 上传图片，未提交图片时返回空对象名
func (s *PostService) saveImage(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 || s.images == nil {
		return "", nil
	}
	objectName, err := s.images.Save(ctx, data)
	if err != nil {
		if media.IsImageError(err) {
			return "", validation.Errors{"image": err}
		}
		return "", fmt.Errorf("failed to save post image: %w", err)
	}
	return objectName, nil
}

// Create 发布帖子，作者为当前用户
func (s *PostService) Create(ctx context.Context, author *model.User, form dto.PostForm) (*model.Post, error) {
	if err := s.checkForm(&form); err != nil {
		return nil, err
	}

	objectName, err := s.saveImage(ctx, form.Image)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		Text:     form.Text,
		AuthorID: author.ID,
		GroupID:  form.GroupID(),
		Image:    objectName,
	}
	if err := s.postRepo.Create(post); err != nil {
		if objectName != "" {
			s.images.Remove(ctx, objectName)
		}
		return nil, err
	}
	post.Author = *author

	s.publish(ctx, kafka.PostCreated, post)
	return post, nil
}

// Edit 编辑帖子。非作者编辑时不做修改，allowed 返回 false
func (s *PostService) Edit(ctx context.Context, id int64, editor *model.User, form dto.PostForm) (post *model.Post, allowed bool, err error) {
	post, err = s.Get(id)
	if err != nil {
		return nil, false, err
	}
	if editor == nil || post.AuthorID != editor.ID {
		return post, false, nil
	}

	if err := s.checkForm(&form); err != nil {
		return post, true, err
	}

	objectName, err := s.saveImage(ctx, form.Image)
	if err != nil {
		return post, true, err
	}

	updates := map[string]interface{}{
		"text":     form.Text,
		"group_id": form.GroupID(),
	}
	if objectName != "" {
		updates["image"] = objectName
	}
	if err := s.postRepo.Update(id, updates); err != nil {
		if objectName != "" {
			s.images.Remove(ctx, objectName)
		}
		return post, true, err
	}

	// 旧图片被替换后清理
	if objectName != "" && post.Image != "" {
		s.images.Remove(ctx, post.Image)
	}

	updated, err := s.Get(id)
	if err != nil {
		return nil, true, err
	}
	s.publish(ctx, kafka.PostEdited, updated)
	return updated, true, nil
}

// CanEdit 当前用户是否为帖子作者
func (s *PostService) CanEdit(id int64, editor *model.User) (*model.Post, bool, error) {
	post, err := s.Get(id)
	if err != nil {
		return nil, false, err
	}
	return post, editor != nil && post.AuthorID == editor.ID, nil
}

// publish 事件发送失败只记录日志，不影响发帖
func (s *PostService) publish(ctx context.Context, eventType string, post *model.Post) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishPostEvent(ctx, eventType, post.ID, post.AuthorID); err != nil {
		logger.Warn("Failed to publish post event",
			zap.String("type", eventType),
			zap.Int64("post_id", post.ID),
			zap.Error(err),
		)
	}
}
