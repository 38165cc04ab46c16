// internal/config/config_test.go
package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("UPLOAD_DIR", filepath.Join(t.TempDir(), "uploads"))
	t.Setenv("LOG_DIR", filepath.Join(t.TempDir(), "logs"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, int64(10<<20), cfg.MaxAssetSize)
	assert.Equal(t, "https://api.nodemailer.com/user", cfg.MailAPIURL)

	// 三段式超时默认值：创建通道 10s、发送 15s、套接字 10s
	assert.Equal(t, 10*time.Second, cfg.ProvisionTimeout)
	assert.Equal(t, 15*time.Second, cfg.SendTimeout)
	assert.Equal(t, 10*time.Second, cfg.SocketTimeout)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("UPLOAD_DIR", filepath.Join(t.TempDir(), "uploads"))
	t.Setenv("LOG_DIR", filepath.Join(t.TempDir(), "logs"))
	t.Setenv("PORT", "8080")
	t.Setenv("MAX_ASSET_SIZE", "1024")
	t.Setenv("MAIL_PROVISION_TIMEOUT", "3s")
	t.Setenv("MAIL_SEND_TIMEOUT", "1m")
	t.Setenv("DEBUG_MODE", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, int64(1024), cfg.MaxAssetSize)
	assert.Equal(t, 3*time.Second, cfg.ProvisionTimeout)
	assert.Equal(t, time.Minute, cfg.SendTimeout)
	assert.False(t, cfg.DebugMode)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("UPLOAD_DIR", filepath.Join(t.TempDir(), "uploads"))
	t.Setenv("LOG_DIR", filepath.Join(t.TempDir(), "logs"))
	t.Setenv("MAX_ASSET_SIZE", "not-a-number")
	t.Setenv("MAIL_SEND_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	// 非法取值回落到默认值而不是让进程起不来
	assert.Equal(t, int64(10<<20), cfg.MaxAssetSize)
	assert.Equal(t, 15*time.Second, cfg.SendTimeout)
}

func TestGetCurrentConfigReturnsCopy(t *testing.T) {
	t.Setenv("UPLOAD_DIR", filepath.Join(t.TempDir(), "uploads"))
	t.Setenv("LOG_DIR", filepath.Join(t.TempDir(), "logs"))

	require.NoError(t, InitConfig())

	first := GetCurrentConfig()
	first.Port = "9999"

	second := GetCurrentConfig()
	assert.NotEqual(t, "9999", second.Port)
}
