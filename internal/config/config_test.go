package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9090"
  mode: production
database:
  host: db.internal
  port: "5433"
  user: app
  password: secret
  dbname: studiohub
jwt:
  secret: configured-secret
logging:
  level: debug
  format: json
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Mode)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "configured-secret", cfg.JWT.Secret)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfigFile(t, `
jwt:
  secret: something
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "uploads", cfg.Server.StoragePath)
	assert.Equal(t, "1h", cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, "720h", cfg.JWT.RefreshTokenExpiration)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "7777")
	t.Setenv("DB_HOST", "env-host")

	path := writeConfigFile(t, `
server:
  port: "9090"
jwt:
  secret: something
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "7777", cfg.Server.Port)
	assert.Equal(t, "env-host", cfg.Database.Host)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	cfg.Database.Host = "localhost"
	cfg.Database.Port = "5432"
	cfg.Database.User = "app"
	cfg.Database.Password = "pw"
	cfg.Database.DBName = "studiohub"

	conn := cfg.GetPostgresConnectionString()
	assert.Contains(t, conn, "localhost")
	assert.Contains(t, conn, "5432")
	assert.Contains(t, conn, "studiohub")
}
