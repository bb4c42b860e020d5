package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"yatube-go/internal/model"
	"yatube-go/internal/repository/mock"

	"github.com/stretchr/testify/require"
)

// smallGIF 2x1 像素的 gif
var smallGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x02, 0x00,
	0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x0C,
	0x0A, 0x00, 0x3B,
}

type publishedEvent struct {
	Type   string
	PostID int64
}

type fakePublisher struct {
	mutex  sync.Mutex
	events []publishedEvent
}

func (p *fakePublisher) PublishPostEvent(_ context.Context, eventType string, postID, _ int64) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.events = append(p.events, publishedEvent{Type: eventType, PostID: postID})
	return nil
}

func (p *fakePublisher) Events() []publishedEvent {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return append([]publishedEvent(nil), p.events...)
}

func createUser(t *testing.T, s *mock.Store, username string) *model.User {
	t.Helper()
	u := &model.User{UserName: username, Password: "x"}
	require.NoError(t, s.Users().Create(u))
	return u
}

func createGroup(t *testing.T, s *mock.Store, slug string) *model.Group {
	t.Helper()
	g := &model.Group{Title: "Группа " + slug, Slug: slug, Description: "Описание"}
	require.NoError(t, s.Groups().Create(g))
	return g
}

// createPosts 按时间递增创建 n 条帖子，最后一条最新
func createPosts(t *testing.T, s *mock.Store, author *model.User, group *model.Group, n int) []*model.Post {
	t.Helper()
	base := time.Now().Add(-time.Hour)
	posts := make([]*model.Post, 0, n)
	for i := 0; i < n; i++ {
		p := &model.Post{
			Text:      "Тестовый пост",
			AuthorID:  author.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		if group != nil {
			p.GroupID = &group.ID
		}
		require.NoError(t, s.Posts().Create(p))
		posts = append(posts, p)
	}
	return posts
}
