package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
app:
  name: blog
  port: 9000
  admins: ["boss"]
database:
  host: db
  port: 5432
  user: u
  password: p
  dbname: blog
  sslmode: disable
kafka:
  brokers: ["k1:9092"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "blog", cfg.App.Name)
	assert.Equal(t, 9000, cfg.App.Port)
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=blog sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, []string{"k1:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, []string{"boss"}, cfg.App.Admins)
	assert.Same(t, cfg, Get())

	t.Run("defaults", func(t *testing.T) {
		assert.Equal(t, 20*time.Second, cfg.Cache.IndexTTL())
		assert.Equal(t, "yatube_session", cfg.Session.CookieName)
		assert.Equal(t, "post-events", cfg.Kafka.PostEventsTopic())
		assert.Equal(t, "posts", cfg.Elasticsearch.PostsIndex())
		assert.Equal(t, 14*24*time.Hour, cfg.JWT.ExpireDuration())
	})
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, `
database:
  host: from-file
`)
	t.Setenv("DATABASE_HOST", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Database.Host)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestPath(t *testing.T) {
	t.Setenv("YATUBE_CONFIG", "/etc/yatube.yaml")
	assert.Equal(t, "/etc/yatube.yaml", Path())

	t.Setenv("YATUBE_CONFIG", "")
	assert.Equal(t, DefaultPath, Path())
}
