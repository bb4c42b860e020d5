package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"yatube-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// PostEventHandler 处理帖子事件的回调函数
type PostEventHandler func(ctx context.Context, event *PostEvent) error

func decodePostEvent(value []byte) (*PostEvent, error) {
	var event PostEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return nil, err
	}
	if event.PostID <= 0 {
		return nil, fmt.Errorf("post event without post_id")
	}
	return &event, nil
}

// StartPostEventConsumer 启动帖子事件消费者（阻塞，需在 goroutine 中运行）
// ctx 取消后会自动停止
func StartPostEventConsumer(ctx context.Context, brokers []string, topic, groupID string, handler PostEventHandler) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		StartOffset:    kafka.FirstOffset,
	})

	defer func() {
		if err := reader.Close(); err != nil {
			logger.Error("Failed to close kafka consumer", zap.Error(err))
		}
		logger.Info("Kafka post event consumer stopped")
	}()

	logger.Info("Kafka post event consumer started",
		zap.String("topic", topic),
		zap.String("group", groupID),
	)

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("Failed to read kafka message", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		event, err := decodePostEvent(msg.Value)
		if err != nil {
			logger.Error("Failed to decode post event",
				zap.Error(err),
				zap.ByteString("value", msg.Value),
			)
			continue
		}

		if err := handler(ctx, event); err != nil {
			logger.Error("Failed to handle post event",
				zap.Int64("post_id", event.PostID),
				zap.String("type", event.Type),
				zap.Error(err),
			)
		}
	}
}
