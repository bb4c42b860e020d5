package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"yatube-go/internal/config"
	"yatube-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// 帖子事件类型
const (
	PostCreated = "created"
	PostEdited  = "edited"
)

// PostEvent 帖子变更消息体
type PostEvent struct {
	Type       string `json:"type"`
	PostID     int64  `json:"post_id"`
	AuthorID   int64  `json:"author_id"`
	OccurredAt int64  `json:"occurred_at"` // unix 秒
}

// messageWriter kafka.Writer 的最小子集，测试中替换
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher 将帖子事件写入 Kafka
type Publisher struct {
	writer messageWriter
	topic  string
}

// NewPublisher 初始化 Kafka 生产者
func NewPublisher(cfg *config.KafkaConfig) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", cfg.PostEventsTopic()),
	)

	return &Publisher{writer: writer, topic: cfg.PostEventsTopic()}
}

func encodePostEvent(event *PostEvent) (kafka.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal post event: %w", err)
	}
	// 同一帖子的事件落在同一分区，保证顺序
	return kafka.Message{
		Key:   []byte(fmt.Sprintf("post-%d", event.PostID)),
		Value: payload,
	}, nil
}

// PublishPostEvent 发送帖子事件
func (p *Publisher) PublishPostEvent(ctx context.Context, eventType string, postID, authorID int64) error {
	event := &PostEvent{
		Type:       eventType,
		PostID:     postID,
		AuthorID:   authorID,
		OccurredAt: time.Now().Unix(),
	}

	msg, err := encodePostEvent(event)
	if err != nil {
		return err
	}
	msg.Topic = p.topic

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send post event: %w", err)
	}

	logger.Debug("Post event sent",
		zap.String("type", eventType),
		zap.Int64("post_id", postID),
		zap.String("topic", p.topic),
	)
	return nil
}

// Close 关闭生产者
func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	return p.writer.Close()
}
