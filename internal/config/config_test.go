package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SITECORD_CONFIG_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitecord.yaml")
	err := os.WriteFile(path, []byte(`
server:
  port: 9090
  request_timeout: 5s
db:
  path: /var/lib/sitecord.db
mcp:
  http_enabled: true
  token: from-file
triage:
  digest_schedule: "0 7 * * *"
`), 0o600)
	require.NoError(t, err)

	t.Setenv("SITECORD_CONFIG_PATH", path)
	t.Setenv("SITECORD_MCP_TOKEN", "from-env")
	t.Setenv("SITECORD_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	require.Equal(t, "/var/lib/sitecord.db", cfg.DB.Path)
	require.True(t, cfg.MCP.HTTPEnabled)
	require.Equal(t, "from-env", cfg.MCP.Token)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "0 7 * * *", cfg.Triage.DigestSchedule)
}

func TestLoadInvalidEnv(t *testing.T) {
	t.Setenv("SITECORD_CONFIG_PATH", "")
	t.Setenv("SITECORD_SERVER_PORT", "eighty")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("SITECORD_CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	require.Error(t, err)
}
