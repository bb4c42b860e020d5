package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"yatube-go/internal/config"
	"yatube-go/internal/infra/database"
	infraES "yatube-go/internal/infra/elasticsearch"
	infraKafka "yatube-go/internal/infra/kafka"
	"yatube-go/internal/repository"
	"yatube-go/pkg/logger"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	groupID   = "yatube-search-indexer"
	batchSize = 500
)

func main() {
	reindex := pflag.Bool("reindex", false, "rebuild the posts index from the database and exit")
	pflag.Parse()

	cfg, err := config.Load(config.Path())
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	if err := infraES.Init(&cfg.Elasticsearch); err != nil {
		logger.Fatal("Failed to init elasticsearch", zap.Error(err))
	}
	defer infraES.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听系统信号，优雅退出
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	postRepo := repository.NewPostRepository(database.Get())
	postIndex := infraES.NewPostIndex(cfg.Elasticsearch.PostsIndex())
	if err := postIndex.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure posts index", zap.Error(err))
	}

	if *reindex {
		if err := rebuild(ctx, postRepo, postIndex); err != nil {
			logger.Fatal("Reindex failed", zap.Error(err))
		}
		return
	}

	topic := cfg.Kafka.PostEventsTopic()
	logger.Info("Search indexer started",
		zap.String("topic", topic),
		zap.String("group", groupID),
		zap.Strings("brokers", cfg.Kafka.Brokers),
	)

	infraKafka.StartPostEventConsumer(ctx, cfg.Kafka.Brokers, topic, groupID, func(ctx context.Context, event *infraKafka.PostEvent) error {
		post, err := postRepo.GetByID(event.PostID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Post of event not found, skipped",
					zap.String("type", event.Type),
					zap.Int64("post_id", event.PostID),
				)
				return nil
			}
			return err
		}
		return postIndex.SyncPost(ctx, post)
	})
}

// rebuild 按 ID 分批把全部帖子写入索引
func rebuild(ctx context.Context, postRepo repository.PostStore, postIndex *infraES.PostIndex) error {
	var lastID int64
	var total, failed int
	for {
		posts, err := postRepo.ListAfter(lastID, batchSize)
		if err != nil {
			return err
		}
		if len(posts) == 0 {
			break
		}

		ok, bad, err := postIndex.BulkSyncPosts(ctx, posts)
		if err != nil {
			return err
		}
		total += ok
		failed += bad
		lastID = posts[len(posts)-1].ID

		logger.Info("Reindex batch done",
			zap.Int64("last_id", lastID),
			zap.Int("success", ok),
			zap.Int("failed", bad),
		)
	}

	logger.Info("Reindex completed", zap.Int("success", total), zap.Int("failed", failed))
	return nil
}
