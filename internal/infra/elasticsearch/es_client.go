package elasticsearch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"yatube-go/internal/config"
	"yatube-go/pkg/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"
)

var errNotInitialized = errors.New("elasticsearch client not initialized")

var client *elasticsearch.Client

// Init 连接 Elasticsearch。搜索可以退回数据库，所以调用方通常只记录失败
func Init(cfg *config.ElasticsearchConfig) error {
	hosts := normalizeHosts(cfg.Hosts)
	if len(hosts) == 0 {
		return errors.New("elasticsearch hosts is empty")
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:     hosts,
		RetryOnStatus: []int{502, 503, 504},
		MaxRetries:    3,
		RetryBackoff:  func(i int) time.Duration { return time.Duration(i) * time.Second },
	})
	if err != nil {
		return fmt.Errorf("create elasticsearch client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	resp, err := esapi.PingRequest{}.Do(ctx, es)
	if err != nil {
		return fmt.Errorf("failed to ping elasticsearch: %w", err)
	}
	resp.Body.Close()
	if resp.IsError() {
		return fmt.Errorf("elasticsearch ping failed: %s", resp.Status())
	}

	client = es
	logger.Info("Elasticsearch connected", zap.Strings("hosts", hosts))
	return nil
}

// normalizeHosts 去掉空项，缺少协议的地址补 http://
func normalizeHosts(raw []string) []string {
	hosts := make([]string, 0, len(raw))
	for _, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if !strings.HasPrefix(h, "http") {
			h = "http://" + h
		}
		hosts = append(hosts, h)
	}
	return hosts
}

func Get() *elasticsearch.Client {
	return client
}

// Enabled 未配置或连不上 ES 时为 false，搜索走数据库
func Enabled() bool {
	return client != nil
}

// perform 执行请求；ES 返回错误状态时关闭响应体并转成 error，调用方负责关闭成功的响应
func perform(ctx context.Context, req esapi.Request) (*esapi.Response, error) {
	if client == nil {
		return nil, errNotInitialized
	}
	resp, err := req.Do(ctx, client)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		defer resp.Body.Close()
		return nil, fmt.Errorf("elasticsearch: %s", resp.String())
	}
	return resp, nil
}

// indexExists HEAD /<index>，404 表示不存在
func indexExists(ctx context.Context, index string) (bool, error) {
	if client == nil {
		return false, errNotInitialized
	}
	resp, err := esapi.IndicesExistsRequest{Index: []string{index}}.Do(ctx, client)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("check index %s: %s", index, resp.Status())
	}
}

func Close() error {
	client = nil
	return nil
}
