package configuration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv_FallsBackToGoModRoot(t *testing.T) {
	tmp := t.TempDir()

	requireWriteFile(t, filepath.Join(tmp, "go.mod"), "module example.com/test\n\ngo 1.22\n")
	requireWriteFile(t, filepath.Join(tmp, ".env.local"), "LEGACY_MIGRATE_TEST_ENV_LOAD=ok\n")

	sub := filepath.Join(tmp, "pkg", "crud")
	requireMkdirAll(t, sub)

	origWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	if err := os.Chdir(sub); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	_ = os.Unsetenv("LEGACY_MIGRATE_TEST_ENV_LOAD")

	n, err := LoadEnv([]string{".env", ".env.local"})
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 env file loaded, got %d", n)
	}
	if got := os.Getenv("LEGACY_MIGRATE_TEST_ENV_LOAD"); got != "ok" {
		t.Fatalf("expected env var loaded from repo root, got %q", got)
	}
}

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("IMPORT_STRATEGY", " API ")
	t.Setenv("API_BASE_URL", "https://inventory.example.org")
	t.Setenv("API_TOKEN", "secret")
	t.Setenv("IMPORT_ROW_LIMIT", "25")
	t.Setenv("LEGACY_DB_PASSWORD", "pw")
	t.Setenv("LOG_LEVEL", "debug")

	c, err := Load()
	require.NoError(t, err)
	t.Cleanup(c.Unload)

	require.Equal(t, StrategyAPI, c.Import.Strategy)
	require.Equal(t, 25, c.Import.RowLimit)
	require.Equal(t, 500, c.Import.ChunkSize)
	require.Equal(t, "eng", c.Import.DefaultLanguage)
	require.True(t, c.Import.TrackerWarmup)
	require.Equal(t, 30*time.Second, c.API.Timeout)
	require.Equal(t, 20, c.Sample.SuccessLimit)
	require.Equal(t, logrus.DebugLevel, c.LogrusLogLevel())
	require.NotNil(t, c.Logger())
	require.Contains(t, c.Database.Opts, "dbname=inventory")

	dsn := c.LegacyDatabase.DSN()
	require.Contains(t, dsn, "root:pw@tcp(localhost:3306)/mwnf3")
	require.Contains(t, dsn, "charset=utf8mb4")
}

func TestLoad_RejectsInvalid(t *testing.T) {
	cases := map[string]map[string]string{
		"strategy":     {"IMPORT_STRATEGY": "ftp"},
		"api token":    {"IMPORT_STRATEGY": "api", "API_BASE_URL": "https://x.org"},
		"rate limit":   {"IMPORT_STRATEGY": "api", "API_BASE_URL": "https://x.org", "API_TOKEN": "t", "API_RATE_LIMIT": "fast"},
		"chunk":        {"IMPORT_CHUNK_SIZE": "0"},
		"row limit":    {"IMPORT_ROW_LIMIT": "-1"},
		"language":     {"IMPORT_DEFAULT_LANGUAGE": "en"},
		"code map":     {"CODE_MAP_FILE": "/does/not/exist.yaml"},
		"sample limit": {"SAMPLE_SUCCESS_LIMIT": "-5"},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range vars {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestOpenRunLog(t *testing.T) {
	c := &Configuration{LogDir: filepath.Join(t.TempDir(), "logs")}
	started := time.Date(2024, 5, 1, 10, 30, 5, 0, time.UTC)

	path, logger, err := c.OpenRunLog(started)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(c.LogDir, "import-20240501-103005.log"), path)
	logger.Info("hello")
	c.Unload()
	c.Unload()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(b), "hello")
	require.Equal(t, filepath.Join(c.LogDir, "import-20240501-103005.prom"), c.RunLogPath(started, "prom"))
}

func requireWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func requireMkdirAll(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}
