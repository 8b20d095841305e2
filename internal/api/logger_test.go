package api

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/banklite/backoffice-gin/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewLoggerFromConfig_JSON 测试 JSON 格式日志携带 service 字段
func TestNewLoggerFromConfig_JSON(t *testing.T) {
	logger, err := NewLoggerFromConfig(&config.LogConfig{
		Level:  "debug",
		Format: "json",
		Output: "stdout",
	})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.Info("hello")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "backoffice-gin", entry["service"])
	assert.Equal(t, "hello", entry["msg"])
}

// TestNewLoggerFromConfig_InvalidLevel 测试非法日志级别回退到 info
func TestNewLoggerFromConfig_InvalidLevel(t *testing.T) {
	logger, err := NewLoggerFromConfig(&config.LogConfig{
		Level:  "nonsense",
		Format: "text",
		Output: "stdout",
	})
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}

// TestDefaultLoggerSetters 测试默认日志记录器的输出和级别设置
func TestDefaultLoggerSetters(t *testing.T) {
	var buf bytes.Buffer
	SetLoggerOutput(&buf)
	SetLoggerLevel(logrus.WarnLevel)
	defer SetLoggerLevel(logrus.InfoLevel)

	GetLogger().Info("filtered out")
	GetLogger().Warn("kept")

	assert.NotContains(t, buf.String(), "filtered out")
	assert.Contains(t, buf.String(), "kept")
}
