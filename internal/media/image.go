package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"path"
	"strings"

	"yatube-go/pkg/logger"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// MaxImageSize 上传图片大小上限
	MaxImageSize = 5 << 20

	ThumbWidth  = 960
	ThumbHeight = 339

	objectPrefix = "posts/"
	thumbPrefix  = "posts/thumbs/"
)

var (
	ErrImageTooLarge   = errors.New("图片不能超过 5MB")
	ErrImageInvalid    = errors.New("请上传正确的图片，文件不是图片或已损坏")
	ErrImageFormat     = errors.New("仅支持 gif、jpeg、png 格式的图片")
	allowedImageFormat = map[string]string{
		"gif":  "image/gif",
		"jpeg": "image/jpeg",
		"png":  "image/png",
	}
)

// ObjectStore 对象存储，生产环境为 MinIO
type ObjectStore interface {
	Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, objectName string) error
	URL(objectName string) string
}

// Inspect 完整解码校验图片，返回格式名（gif/jpeg/png）
func Inspect(data []byte) (string, error) {
	if len(data) > MaxImageSize {
		return "", ErrImageTooLarge
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", ErrImageInvalid
	}
	if _, ok := allowedImageFormat[format]; !ok {
		return "", ErrImageFormat
	}
	// 文件头正常但像素数据损坏的图片只有完整解码才能发现
	if _, err := imaging.Decode(bytes.NewReader(data)); err != nil {
		return "", ErrImageInvalid
	}
	return format, nil
}

// IsImageError 是否为图片内容本身的问题，这类错误应作为表单字段错误返回
func IsImageError(err error) bool {
	return errors.Is(err, ErrImageInvalid) || errors.Is(err, ErrImageFormat) || errors.Is(err, ErrImageTooLarge)
}

// ValidateImage 供表单校验使用，空内容视为未上传
func ValidateImage(value interface{}) error {
	data, _ := value.([]byte)
	if len(data) == 0 {
		return nil
	}
	_, err := Inspect(data)
	return err
}

// ThumbName 原图对应的缩略图对象名
func ThumbName(objectName string) string {
	if objectName == "" {
		return ""
	}
	base := strings.TrimSuffix(path.Base(objectName), path.Ext(objectName))
	return thumbPrefix + base + ".jpg"
}

// Thumbnail 按列表卡片尺寸居中裁剪，输出 JPEG
func Thumbnail(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, ErrImageInvalid
	}
	thumb := imaging.Fill(img, ThumbWidth, ThumbHeight, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// Uploader 保存帖子图片（原图 + 缩略图）
type Uploader struct {
	store ObjectStore
}

func NewUploader(store ObjectStore) *Uploader {
	return &Uploader{store: store}
}

// Save 校验并上传图片，返回原图对象名
func (u *Uploader) Save(ctx context.Context, data []byte) (string, error) {
	format, err := Inspect(data)
	if err != nil {
		return "", err
	}

	thumb, err := Thumbnail(data)
	if err != nil {
		return "", err
	}

	ext := format
	if ext == "jpeg" {
		ext = "jpg"
	}
	objectName := fmt.Sprintf("%s%s.%s", objectPrefix, uuid.New().String(), ext)

	if err := u.store.Put(ctx, objectName, bytes.NewReader(data), int64(len(data)), allowedImageFormat[format]); err != nil {
		return "", err
	}
	if err := u.store.Put(ctx, ThumbName(objectName), bytes.NewReader(thumb), int64(len(thumb)), "image/jpeg"); err != nil {
		u.Remove(ctx, objectName)
		return "", err
	}

	logger.Debug("Post image stored", zap.String("object", objectName), zap.String("format", format))
	return objectName, nil
}

// Remove 删除原图和缩略图，失败只记录日志
func (u *Uploader) Remove(ctx context.Context, objectName string) {
	if objectName == "" {
		return
	}
	for _, name := range []string{objectName, ThumbName(objectName)} {
		if err := u.store.Remove(ctx, name); err != nil {
			logger.Warn("Failed to remove post image", zap.String("object", name), zap.Error(err))
		}
	}
}

// URL 原图地址
func (u *Uploader) URL(objectName string) string {
	if u == nil || objectName == "" {
		return ""
	}
	return u.store.URL(objectName)
}

// ThumbURL 缩略图地址
func (u *Uploader) ThumbURL(objectName string) string {
	if u == nil || objectName == "" {
		return ""
	}
	return u.store.URL(ThumbName(objectName))
}
