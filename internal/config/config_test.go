package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "http://localhost:5000/api", cfg.API.BaseURL)
	require.Equal(t, 10*time.Second, cfg.API.Timeout)
	require.Equal(t, "file", cfg.Session.Backend)
	require.Equal(t, "auth", cfg.Session.Key)
	require.Equal(t, 10*time.Second, cfg.Sync.Timeout)
	require.Empty(t, cfg.Events.KafkaBrokers)
	require.Equal(t, "trainmate.refresh", cfg.Events.Topic)
}

func TestLoadReadsEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TRAINMATE_API_BASEURL", "https://api.example.test/v2/")
	t.Setenv("TRAINMATE_API_ENDPOINTS_WORKOUTS", "https://workouts.example.test/workouts")
	t.Setenv("TRAINMATE_SYNC_TIMEOUT", "3s")
	t.Setenv("TRAINMATE_SESSION_BACKEND", "sqlite")
	t.Setenv("TRAINMATE_EVENTS_KAFKABROKERS", "kafka-1:9092, kafka-2:9092")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "https://api.example.test/v2", cfg.API.BaseURL)
	require.Equal(t, "https://workouts.example.test/workouts", cfg.API.Endpoints.Workouts)
	require.Equal(t, 3*time.Second, cfg.Sync.Timeout)
	require.Equal(t, "sqlite", cfg.Session.Backend)
	require.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Events.KafkaBrokers)
}

func TestLoadReadsDotEnvWithoutOverridingEnvironment(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TRAINMATE_LOG_LEVEL", "debug")

	contents := "# local overrides\nTRAINMATE_LOG_FORMAT=\"json\"\nTRAINMATE_LOG_LEVEL=error\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(contents), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("TRAINMATE_LOG_FORMAT") })

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "json", cfg.Log.Format)
	require.Equal(t, "debug", cfg.Log.Level)
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
