package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the data dir at a temp directory and clears every
// override so tests never see the developer's real environment.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("CURSORHIST_DATA_DIR", dir)
	t.Setenv("CURSORHIST_CACHE", "")
	t.Setenv("CURSOR_PROJECTS_DIR", "")
	t.Setenv("CURSOR_TRACKING_DB", "")
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")
	return dir
}

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".cursor", "projects"), cfg.ProjectsDir)
	assert.Equal(t,
		filepath.Join(home, ".cursor", "ai-tracking", "ai-code-tracking.db"),
		cfg.TrackingDB)
	assert.Equal(t, filepath.Join(home, ".cursorhist"), cfg.DataDir)
	assert.Equal(t, filepath.Join(cfg.DataDir, "sessions.json"), cfg.CachePath)
	assert.Empty(t, cfg.Editor)
}

func TestLoadDefaultsOnly(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dir, "sessions.json"), cfg.CachePath)
}

func TestLoadConfigFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "config.json"),
		[]byte(`{"editor": "vim", "projects_dir": "/srv/projects"}`),
		0o600,
	))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "vim", cfg.Editor)
	assert.Equal(t, "/srv/projects", cfg.ProjectsDir)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "config.json"),
		[]byte(`{"projects_dir": "/from/file", "tracking_db": "/file/t.db"}`),
		0o600,
	))
	t.Setenv("CURSOR_PROJECTS_DIR", "/from/env")
	t.Setenv("CURSOR_TRACKING_DB", "/env/t.db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.ProjectsDir)
	assert.Equal(t, "/env/t.db", cfg.TrackingDB)
}

func TestLoadCacheOverride(t *testing.T) {
	isolate(t)
	t.Setenv("CURSORHIST_CACHE", "/elsewhere/cache.json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/elsewhere/cache.json", cfg.CachePath)
}

func TestLoadEditorPrecedence(t *testing.T) {
	t.Run("EDITOR fills the gap", func(t *testing.T) {
		isolate(t)
		t.Setenv("EDITOR", "nano")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "nano", cfg.Editor)
	})

	t.Run("VISUAL beats EDITOR", func(t *testing.T) {
		isolate(t)
		t.Setenv("VISUAL", "emacsclient")
		t.Setenv("EDITOR", "nano")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "emacsclient", cfg.Editor)
	})

	t.Run("config file beats EDITOR", func(t *testing.T) {
		dir := isolate(t)
		require.NoError(t, os.WriteFile(
			filepath.Join(dir, "config.json"),
			[]byte(`{"editor": "vim"}`),
			0o600,
		))
		t.Setenv("EDITOR", "nano")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "vim", cfg.Editor)
	})
}

func TestLoadCorruptConfigFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "config.json"), []byte("{broken"), 0o600,
	))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}
