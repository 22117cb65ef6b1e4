package attribution

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trackingDB creates a throwaway tracking database with the given
// (conversationId, model) rows, one row per code edit.
func trackingDB(t *testing.T, rows [][2]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ai-code-tracking.db")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE ai_code_hashes (
		hash TEXT,
		conversationId TEXT,
		model TEXT
	)`)
	require.NoError(t, err)

	for i, row := range rows {
		_, err = db.Exec(
			"INSERT INTO ai_code_hashes (hash, conversationId, model) VALUES (?, ?, ?)",
			i, row[0], row[1],
		)
		require.NoError(t, err)
	}
	return path
}

func TestLoadModelMap(t *testing.T) {
	path := trackingDB(t, [][2]any{
		{"sess-a", "claude-4.5-sonnet"},
		{"sess-a", "claude-4.5-sonnet"},
		{"sess-a", "claude-4.5-sonnet"},
		{"sess-b", "composer-1"},
		{nil, "gpt-5"},
	})

	got := LoadModelMap(path)
	assert.Equal(t, map[string]Info{
		"sess-a": {Model: "claude-4.5-sonnet", Edits: 3},
		"sess-b": {Model: "composer-1", Edits: 1},
	}, got)
}

func TestLoadModelMapMultipleModels(t *testing.T) {
	path := trackingDB(t, [][2]any{
		{"sess-a", "claude-4.5-sonnet"},
		{"sess-a", "claude-4.5-sonnet"},
		{"sess-a", "claude-4.5-sonnet"},
		{"sess-a", "gpt-5"},
	})

	got := LoadModelMap(path)
	// The most-edited model names the session; edits sum across
	// every model it used.
	assert.Equal(t, map[string]Info{
		"sess-a": {Model: "claude-4.5-sonnet", Edits: 4},
	}, got)
}

func TestLoadModelMapMissingDB(t *testing.T) {
	got := LoadModelMap(filepath.Join(t.TempDir(), "nope.db"))
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLoadModelMapEmptyTable(t *testing.T) {
	path := trackingDB(t, nil)
	assert.Empty(t, LoadModelMap(path))
}

func TestLoadModelMapCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-db.db")
	require.NoError(t, os.WriteFile(path, []byte("this is not sqlite"), 0o644))

	assert.Empty(t, LoadModelMap(path))
}
