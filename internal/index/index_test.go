package index

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"cursorhist/internal/attribution"
	"cursorhist/internal/transcripttest"
	"cursorhist/internal/workspace"
)

func oracleFor(paths ...string) workspace.ExistsFunc {
	set := make(map[string]bool, len(paths))
	for _, p := range paths {
		set[p] = true
	}
	return func(path string) bool { return set[path] }
}

func TestBuild(t *testing.T) {
	projects := t.TempDir()

	jsonl := transcripttest.JoinJSONL(
		transcripttest.UserJSON("hello world"),
		transcripttest.AssistantJSON("hi there, how can I help?"),
	)
	txt := transcripttest.NewTextBuilder().
		UserTurn().
		Line("ship the release").
		AssistantTurn().
		ToolCall("git tag v1.0").
		String()

	newer := writeTranscript(t, projects, "Users-jane-api", "sess-new.jsonl", jsonl)
	older := writeTranscript(t, projects, "Users-jane-api", "sess-old.txt", txt)

	newTime := time.Unix(1755600000, 0)
	oldTime := time.Unix(1755500000, 0)
	require.NoError(t, os.Chtimes(newer, newTime, newTime))
	require.NoError(t, os.Chtimes(older, oldTime, oldTime))

	resolver := workspace.NewResolver(oracleFor(
		"/Users", "/Users/jane", "/Users/jane/api",
	))
	modelMap := map[string]attribution.Info{
		"sess-new": {Model: "claude-4.5-sonnet", Edits: 7},
	}

	got := Build(projects, resolver, modelMap)
	want := []Session{
		{
			ID:             "sess-new",
			Workspace:      "/Users/jane/api",
			Folder:         "Users-jane-api",
			Format:         "jsonl",
			Modified:       newTime.Unix(),
			Date:           newTime.Format(dateLayout),
			Size:           int64(len(jsonl)),
			Messages:       2,
			ToolCalls:      0,
			Summary:        "hello world",
			TranscriptPath: newer,
			InputTokens:    2,
			OutputTokens:   6,
			TotalTokens:    8,
			Model:          "claude-4.5-sonnet",
			CodeEdits:      7,
		},
		{
			ID:             "sess-old",
			Workspace:      "/Users/jane/api",
			Folder:         "Users-jane-api",
			Format:         "txt",
			Modified:       oldTime.Unix(),
			Date:           oldTime.Format(dateLayout),
			Size:           int64(len(txt)),
			Messages:       2,
			ToolCalls:      1,
			Summary:        "ship the release",
			TranscriptPath: older,
			InputTokens:    len("ship the release") / 4,
			OutputTokens:   0,
			TotalTokens:    len("ship the release") / 4,
			Model:          "",
			CodeEdits:      0,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Build() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildSortsNewestFirst(t *testing.T) {
	projects := t.TempDir()

	paths := []string{
		writeTranscript(t, projects, "proj", "a.jsonl", "{}\n"),
		writeTranscript(t, projects, "proj", "b.jsonl", "{}\n"),
		writeTranscript(t, projects, "proj", "c.jsonl", "{}\n"),
	}
	base := time.Unix(1755000000, 0)
	require.NoError(t, os.Chtimes(paths[0], base, base))
	require.NoError(t, os.Chtimes(paths[1], base.Add(2*time.Hour), base.Add(2*time.Hour)))
	// Same mtime as a.jsonl: the path breaks the tie.
	require.NoError(t, os.Chtimes(paths[2], base, base))

	got := Build(projects, workspace.NewResolver(oracleFor()), nil)
	require.Len(t, got, 3)
	require.Equal(t, "b", got[0].ID)
	require.Equal(t, "a", got[1].ID)
	require.Equal(t, "c", got[2].ID)
}

func TestBuildEmptyProjectsDir(t *testing.T) {
	got := Build(t.TempDir(), workspace.NewResolver(oracleFor()), nil)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestSessionModTime(t *testing.T) {
	s := Session{Modified: 1755600000}
	require.Equal(t, time.Unix(1755600000, 0), s.ModTime())
}
