package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/banklite/backoffice-gin/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConfig_Defaults 测试默认配置
func TestConfig_Defaults(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "backoffice", cfg.Database.DBName)
	assert.Equal(t, "backoffice-gin", cfg.Auth.Issuer)
	assert.Equal(t, 86400, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "stdout", cfg.Log.Output)
}

// TestConfig_LoadFromFile 测试从配置文件加载
func TestConfig_LoadFromFile(t *testing.T) {
	content := []byte(`
env: production
server:
  host: 127.0.0.1
  port: 9090
database:
  host: db.internal
  dbname: backoffice_prod
auth:
  jwt_secret: super-secret
  token_ttl: 3600
log:
  level: error
  format: json
`)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, content, 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "backoffice_prod", cfg.Database.DBName)
	assert.Equal(t, "super-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 3600, cfg.Auth.TokenTTL)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	// 文件未覆盖的项仍使用默认值
	assert.Equal(t, 5432, cfg.Database.Port)
}

// TestConfig_LoadMissingFile 测试配置文件不存在时返回错误
func TestConfig_LoadMissingFile(t *testing.T) {
	_, err := config.Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

// TestConfig_IsProduction 测试环境判断
func TestConfig_IsProduction(t *testing.T) {
	assert.False(t, config.IsProduction(nil))
	assert.False(t, config.IsProduction(&config.Config{Env: "development"}))
	assert.True(t, config.IsProduction(&config.Config{Env: "production"}))
}
