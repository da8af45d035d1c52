package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fixoncall/fixoncall-client/internal/config"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Setenv("FIXONCALL_API_URL", "")
	t.Setenv("FIXONCALL_TIMEOUT", "")
	t.Setenv("FIXONCALL_STORAGE", "")
	t.Setenv("ENV", "")

	c := config.New()
	require.Equal(t, "http://localhost:5000/api", c.GetAPIURL())
	require.Equal(t, 15*time.Second, c.GetTimeout())
	require.Equal(t, config.StorageFile, c.GetStorageDriver())
	require.Equal(t, "DEV", c.GetEnv())
	require.Equal(t, "fixoncall:session:", c.GetRedisPrefix())
	require.Zero(t, c.GetRedisTTL())
	require.Equal(t, "session.json", filepath.Base(c.GetSessionFile()))
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FIXONCALL_API_URL", "https://api.fixoncall.test/api/")
	t.Setenv("FIXONCALL_TIMEOUT", "3s")
	t.Setenv("FIXONCALL_STORAGE", "REDIS")
	t.Setenv("FIXONCALL_LOG_LEVEL", "DEBUG")

	c := config.New()
	require.Equal(t, "https://api.fixoncall.test/api", c.GetAPIURL())
	require.Equal(t, 3*time.Second, c.GetTimeout())
	require.Equal(t, config.StorageRedis, c.GetStorageDriver())
	require.Equal(t, "debug", c.GetLogLevel())
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("FIXONCALL_TIMEOUT", "soon")
	t.Setenv("FIXONCALL_STORAGE", "floppy")

	c := config.New()
	require.Equal(t, 15*time.Second, c.GetTimeout())
	require.Equal(t, config.StorageFile, c.GetStorageDriver())
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "fixoncall.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
env: prod
api:
  url: https://yaml.fixoncall.test/api
  timeout: 20s
storage:
  driver: memory
log:
  level: warn
`), 0o600))

	t.Setenv("FIXONCALL_CONFIG", path)
	t.Setenv("FIXONCALL_API_URL", "")
	t.Setenv("FIXONCALL_TIMEOUT", "5s")
	t.Setenv("FIXONCALL_STORAGE", "")
	t.Setenv("FIXONCALL_LOG_LEVEL", "")
	t.Setenv("ENV", "")

	c, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "https://yaml.fixoncall.test/api", c.GetAPIURL())
	require.Equal(t, 5*time.Second, c.GetTimeout(), "environment wins over the file")
	require.Equal(t, config.StorageMemory, c.GetStorageDriver())
	require.Equal(t, "warn", c.GetLogLevel())
	require.Equal(t, "PROD", c.GetEnv())
}

func TestLoadRejectsBrokenYAML(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unterminated"), 0o600))
	t.Setenv("FIXONCALL_CONFIG", path)

	_, err := config.Load()
	require.Error(t, err)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("FIXONCALL_TEST_VALUE", "")
	require.Equal(t, "fallback", config.GetEnv("FIXONCALL_TEST_VALUE", "fallback"))

	t.Setenv("FIXONCALL_TEST_VALUE", "set")
	require.Equal(t, "set", config.GetEnv("FIXONCALL_TEST_VALUE", "fallback"))
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
