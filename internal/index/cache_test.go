package index

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "sessions.json")
	sessions := []Session{
		{
			ID:             "sess-1",
			Workspace:      "/Users/jane/api",
			Folder:         "Users-jane-api",
			Format:         "jsonl",
			Modified:       1755600000,
			Date:           "2026-08-19 12:00",
			Size:           512,
			Messages:       4,
			ToolCalls:      2,
			Summary:        "hello",
			TranscriptPath: "/p/sess-1.jsonl",
			InputTokens:    10,
			OutputTokens:   20,
			TotalTokens:    30,
			Model:          "claude-4.5-sonnet",
			CodeEdits:      3,
		},
		{ID: "sess-2", Format: "txt"},
	}

	require.NoError(t, WriteCache(path, sessions))

	got, err := ReadCache(path)
	require.NoError(t, err)
	if diff := cmp.Diff(sessions, got); diff != "" {
		t.Fatalf("cache round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCachePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "cache", "sessions.json")
	require.NoError(t, WriteCache(path, []Session{{ID: "s"}}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	parent, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), parent.Mode().Perm())
}

func TestCacheFieldNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	require.NoError(t, WriteCache(path, []Session{{ID: "s", ToolCalls: 1}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// The shell pickers address fields by these exact names.
	for _, key := range []string{
		`"id"`, `"workspace"`, `"folder"`, `"format"`, `"modified"`,
		`"date"`, `"size"`, `"messages"`, `"tool_calls"`, `"summary"`,
		`"transcript_path"`, `"input_tokens"`, `"output_tokens"`,
		`"total_tokens"`, `"model"`, `"code_edits"`,
	} {
		assert.Contains(t, string(data), key)
	}
}

func TestReadCacheMissing(t *testing.T) {
	_, err := ReadCache(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestReadCacheCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := ReadCache(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing session index")
}
