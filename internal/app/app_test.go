package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/trainmate/internal/config"
	"example.com/trainmate/internal/domain"
	"example.com/trainmate/internal/logging"
	"example.com/trainmate/internal/resourcesync"
)

func testConfig(t *testing.T, baseURL string) config.Config {
	t.Helper()
	var cfg config.Config
	cfg.API.BaseURL = baseURL
	cfg.API.Timeout = 2 * time.Second
	cfg.Session.Backend = "file"
	cfg.Session.Dir = t.TempDir()
	cfg.Session.Key = "auth"
	cfg.Sync.Timeout = 2 * time.Second
	return cfg
}

func TestSessionSurvivesRestart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		_, _ = io.WriteString(w, `{"role":"admin","traineeName":"ops"}`)
	}))
	defer srv.Close()

	ctx := context.Background()
	cfg := testConfig(t, srv.URL)
	notifier := resourcesync.NotifierFunc(func(resourcesync.Notification) {})

	first, err := New(ctx, cfg, logging.Discard(), notifier)
	require.NoError(t, err)
	_, err = first.Accounts().SignIn(ctx, domain.Credentials{Role: domain.RoleAdmin, Name: "ops", Password: "secret"})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := New(ctx, cfg, logging.Discard(), notifier)
	require.NoError(t, err)
	defer second.Close()
	require.NotNil(t, second.Session.Current())
	require.True(t, second.Session.Current().IsAdmin())

	second.Accounts().SignOut(ctx)

	third, err := New(ctx, cfg, logging.Discard(), notifier)
	require.NoError(t, err)
	defer third.Close()
	require.Nil(t, third.Session.Current())
}

func TestOpenStorageBackends(t *testing.T) {
	ctx := context.Background()

	for _, backend := range []string{"memory", "file", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			dir := t.TempDir()
			st, closeFn, err := OpenStorage(ctx, config.SessionConfig{
				Backend:    backend,
				Dir:        dir,
				SQLitePath: filepath.Join(dir, "state.db"),
			})
			require.NoError(t, err)
			defer closeFn()

			require.NoError(t, st.Save(ctx, "auth", []byte(`{}`)))
			got, err := st.Load(ctx, "auth")
			require.NoError(t, err)
			require.Equal(t, `{}`, string(got))
		})
	}

	_, _, err := OpenStorage(ctx, config.SessionConfig{Backend: "etcd"})
	require.ErrorContains(t, err, "unknown session backend")
}

func TestBridgeDisabledWithoutBrokers(t *testing.T) {
	a, err := New(context.Background(), testConfig(t, "http://127.0.0.1:1"), logging.Discard(), nil)
	require.NoError(t, err)
	defer a.Close()

	require.False(t, a.BridgeEnabled())
	require.NoError(t, a.RunRelay(context.Background()))
}
