package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"yatube-go/internal/model"
	"yatube-go/pkg/logger"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"
)

// PostIndex 帖子索引
type PostIndex struct {
	Name string
}

func NewPostIndex(name string) *PostIndex {
	return &PostIndex{Name: name}
}

// PostDoc ES 帖子文档结构
type PostDoc struct {
	ID         int64  `json:"id"`
	Text       string `json:"text"`
	AuthorID   int64  `json:"author_id"`
	AuthorName string `json:"author_name"`
	GroupSlug  string `json:"group_slug,omitempty"`
	GroupTitle string `json:"group_title,omitempty"`
	CreatedAt  string `json:"created_at"`
}

func postToDoc(p *model.Post) *PostDoc {
	doc := &PostDoc{
		ID:         p.ID,
		Text:       p.Text,
		AuthorID:   p.AuthorID,
		AuthorName: p.Author.UserName,
		CreatedAt:  p.CreatedAt.Format(time.RFC3339),
	}
	if p.Group != nil {
		doc.GroupSlug = p.Group.Slug
		doc.GroupTitle = p.Group.Title
	}
	return doc
}

// SyncPost 同步单个帖子到 ES，需要预加载作者和社区
func (p *PostIndex) SyncPost(ctx context.Context, post *model.Post) error {
	body, err := json.Marshal(postToDoc(post))
	if err != nil {
		return err
	}

	resp, err := perform(ctx, esapi.IndexRequest{
		Index:      p.Name,
		DocumentID: strconv.FormatInt(post.ID, 10),
		Body:       bytes.NewReader(body),
	})
	if err != nil {
		return fmt.Errorf("index post %d: %w", post.ID, err)
	}
	resp.Body.Close()

	logger.Debug("Post synced to ES", zap.Int64("post_id", post.ID))
	return nil
}

func bulkBody(index string, posts []model.Post) string {
	var buf strings.Builder
	for i := range posts {
		docBody, _ := json.Marshal(postToDoc(&posts[i]))

		buf.WriteString(fmt.Sprintf(`{"index":{"_index":"%s","_id":"%d"}}`, index, posts[i].ID))
		buf.WriteString("\n")
		buf.Write(docBody)
		buf.WriteString("\n")
	}
	return buf.String()
}

// BulkSyncPosts 批量同步帖子到 ES
func (p *PostIndex) BulkSyncPosts(ctx context.Context, posts []model.Post) (success, failed int, err error) {
	body := bulkBody(p.Name, posts)
	if body == "" {
		return 0, 0, nil
	}

	resp, err := perform(ctx, esapi.BulkRequest{Index: p.Name, Body: strings.NewReader(body)})
	if err != nil {
		return 0, len(posts), err
	}
	defer resp.Body.Close()

	var bulkResp struct {
		Errors bool `json:"errors"`
		Items  []struct {
			Index struct {
				Status int `json:"status"`
			} `json:"index"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&bulkResp); err != nil {
		return 0, len(posts), fmt.Errorf("decode bulk response: %w", err)
	}

	for _, item := range bulkResp.Items {
		if item.Index.Status >= 200 && item.Index.Status < 300 {
			success++
		} else {
			failed++
		}
	}

	logger.Info("Bulk sync to ES completed", zap.Int("success", success), zap.Int("failed", failed))
	return success, failed, nil
}

func searchQuery(q string, from, size int) map[string]interface{} {
	return map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":    q,
				"fields":   []string{"text^2", "group_title", "author_name"},
				"type":     "best_fields",
				"operator": "and",
			},
		},
		"_source": []string{"id"},
		"from":    from,
		"size":    size,
		"sort": []interface{}{
			map[string]interface{}{"_score": map[string]string{"order": "desc"}},
			map[string]interface{}{"created_at": map[string]string{"order": "desc"}},
		},
	}
}

// SearchPosts 全文检索，返回按相关度排序的帖子 ID 和命中总数
func (p *PostIndex) SearchPosts(ctx context.Context, q string, from, size int) ([]int64, int64, error) {
	queryJSON, err := json.Marshal(searchQuery(q, from, size))
	if err != nil {
		return nil, 0, err
	}

	resp, err := perform(ctx, esapi.SearchRequest{
		Index: []string{p.Name},
		Body:  bytes.NewReader(queryJSON),
	})
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	var esResp struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source struct {
					ID int64 `json:"id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&esResp); err != nil {
		return nil, 0, err
	}

	ids := make([]int64, 0, len(esResp.Hits.Hits))
	for _, h := range esResp.Hits.Hits {
		ids = append(ids, h.Source.ID)
	}
	return ids, esResp.Hits.Total.Value, nil
}
