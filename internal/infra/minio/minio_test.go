package minio

import (
	"testing"

	"yatube-go/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestPublicBase(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MinIOConfig
		want string
	}{
		{
			name: "from endpoint",
			cfg:  config.MinIOConfig{Endpoint: "localhost:9000", Bucket: "post-images"},
			want: "http://localhost:9000/post-images",
		},
		{
			name: "ssl endpoint",
			cfg:  config.MinIOConfig{Endpoint: "s3.example.com", Bucket: "b", UseSSL: true},
			want: "https://s3.example.com/b",
		},
		{
			name: "explicit public url",
			cfg:  config.MinIOConfig{Endpoint: "minio:9000", Bucket: "b", PublicURL: "https://cdn.example.com/media/"},
			want: "https://cdn.example.com/media",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, publicBase(&tt.cfg))
		})
	}
}

func TestURL(t *testing.T) {
	s := &ImageStore{publicURL: "http://localhost:9000/post-images"}
	assert.Equal(t, "http://localhost:9000/post-images/posts/a.png", s.URL("posts/a.png"))
	assert.Empty(t, s.URL(""))
}
