package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadServerConfig("")
	require.NoError(t, err, "加载默认配置失败")

	assert.Equal(t, ":3001", cfg.App.Listen)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "data/database.db", cfg.Database.SQLite.Path)
	assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "8080")
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("POSTGRES_PORT", "5433")
	t.Setenv("SQLITE_PATH", "/var/data/app.db")
	t.Setenv("IS_DOCKER", "true")

	cfg, err := LoadServerConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.App.Listen)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "db.internal", cfg.Database.Postgres.Host)
	assert.Equal(t, 5433, cfg.Database.Postgres.Port)
	assert.Equal(t, "/var/data/app.db", cfg.Database.SQLite.Path)
	assert.True(t, cfg.App.IsDocker)
}

func TestJWTSecretRequired(t *testing.T) {
	// release模式下缺少密钥应直接报错
	_, err := LoadServerConfig("")
	assert.Error(t, err, "缺少JWT密钥应报错")

	t.Setenv("GIN_MODE", "debug")
	cfg, err := LoadServerConfig("")
	require.NoError(t, err, "调试模式应允许使用默认密钥")
	assert.NotEmpty(t, cfg.Auth.JWTSecret)
}

func TestLoadFromYAMLFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	dir := t.TempDir()
	path := filepath.Join(dir, "server.yaml")
	content := `
app:
  listen: ":9090"
  mode: "debug"
database:
  type: "mysql"
  mysql:
    host: "mysql.internal"
    name: "corp_site"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadServerConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.App.Listen)
	assert.Equal(t, "mysql", cfg.Database.Type)
	assert.Equal(t, "mysql.internal", cfg.Database.MySQL.Host)
	assert.Equal(t, "corp_site", cfg.Database.MySQL.Name)
	// 未覆盖的配置保持默认值
	assert.Equal(t, 3306, cfg.Database.MySQL.Port)
}
