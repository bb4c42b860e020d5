package service

import (
	"context"
	"strings"
	"time"

	"yatube-go/internal/model"
	"yatube-go/internal/pagination"
	"yatube-go/internal/repository"
	"yatube-go/pkg/logger"

	"go.uber.org/zap"
)

// PostSearcher 全文检索后端，返回按相关度排序的帖子 ID
type PostSearcher interface {
	SearchPosts(ctx context.Context, q string, from, size int) ([]int64, int64, error)
}

type SearchService struct {
	postRepo repository.PostStore
	searcher PostSearcher
}

// NewSearchService searcher 为 nil 时只走数据库
func NewSearchService(postRepo repository.PostStore, searcher PostSearcher) *SearchService {
	return &SearchService{postRepo: postRepo, searcher: searcher}
}

// Search 搜索帖子（ES 优先，失败则降级到 DB）
func (s *SearchService) Search(ctx context.Context, q, rawPage string) (*PostPage, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return &PostPage{Posts: []model.Post{}, Page: pagination.New(rawPage, 0, pagination.PerPage)}, nil
	}

	if s.searcher != nil {
		result, err := s.searchFromES(ctx, q, rawPage)
		if err == nil {
			return result, nil
		}
		logger.Warn("ES search failed, fallback to DB", zap.Error(err))
	}
	return s.searchFromDB(q, rawPage)
}

func (s *SearchService) searchFromES(ctx context.Context, q, rawPage string) (*PostPage, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// 先取第一页拿到总数，再按总数修正页码
	first := pagination.New("1", 0, pagination.PerPage)
	ids, total, err := s.searcher.SearchPosts(ctx, q, first.Offset(), first.Limit())
	if err != nil {
		return nil, err
	}

	page := pagination.New(rawPage, total, pagination.PerPage)
	if page.Number != 1 {
		ids, total, err = s.searcher.SearchPosts(ctx, q, page.Offset(), page.Limit())
		if err != nil {
			return nil, err
		}
		page = pagination.New(rawPage, total, pagination.PerPage)
	}

	posts, err := s.postRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	return &PostPage{Posts: posts, Page: page}, nil
}

func (s *SearchService) searchFromDB(q, rawPage string) (*PostPage, error) {
	first := pagination.New("1", 0, pagination.PerPage)
	posts, total, err := s.postRepo.Search(q, first.Offset(), first.Limit())
	if err != nil {
		return nil, err
	}

	page := pagination.New(rawPage, total, pagination.PerPage)
	if page.Number != 1 {
		if posts, _, err = s.postRepo.Search(q, page.Offset(), page.Limit()); err != nil {
			return nil, err
		}
	}
	return &PostPage{Posts: posts, Page: page}, nil
}
