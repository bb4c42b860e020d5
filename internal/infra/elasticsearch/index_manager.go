package elasticsearch

import (
	"context"
	"fmt"
	"strings"

	"yatube-go/pkg/logger"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"
)

// PostsIndexMapping 帖子索引的 mapping，正文走标准分词，作者和社区为精确字段
const PostsIndexMapping = `{
	"settings": {
		"number_of_shards": 1,
		"number_of_replicas": 0
	},
	"mappings": {
		"properties": {
			"id": {"type": "long"},
			"text": {"type": "text", "analyzer": "standard"},
			"author_id": {"type": "long"},
			"author_name": {"type": "keyword"},
			"group_slug": {"type": "keyword"},
			"group_title": {"type": "text"},
			"created_at": {"type": "date", "format": "strict_date_optional_time||epoch_millis"}
		}
	}
}`

// EnsureIndex 确保帖子索引存在，不存在则创建
func (p *PostIndex) EnsureIndex(ctx context.Context) error {
	exists, err := indexExists(ctx, p.Name)
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	if exists {
		logger.Info("Elasticsearch posts index already exists", zap.String("index", p.Name))
		return nil
	}

	resp, err := perform(ctx, esapi.IndicesCreateRequest{
		Index: p.Name,
		Body:  strings.NewReader(PostsIndexMapping),
	})
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	resp.Body.Close()

	logger.Info("Elasticsearch posts index created", zap.String("index", p.Name))
	return nil
}
