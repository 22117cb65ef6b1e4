// Package index assembles the session index: it discovers transcript
// files under the Cursor projects directory, scans each one, merges
// model attribution, and persists the result as a JSON cache other
// tools (and the fzf picker) read. The index is cheap to produce and
// always rebuilt whole rather than patched.
package index

import (
	"os"
	"sort"
	"time"

	"cursorhist/internal/attribution"
	"cursorhist/internal/transcript"
	"cursorhist/internal/workspace"
)

const dateLayout = "2006-01-02 15:04"

// Session is one indexed transcript with everything the pickers
// show. Field names follow the cache's original JSON shape.
type Session struct {
	ID             string `json:"id"`
	Workspace      string `json:"workspace"`
	Folder         string `json:"folder"`
	Format         string `json:"format"`
	Modified       int64  `json:"modified"`
	Date           string `json:"date"`
	Size           int64  `json:"size"`
	Messages       int    `json:"messages"`
	ToolCalls      int    `json:"tool_calls"`
	Summary        string `json:"summary"`
	TranscriptPath string `json:"transcript_path"`
	InputTokens    int    `json:"input_tokens"`
	OutputTokens   int    `json:"output_tokens"`
	TotalTokens    int    `json:"total_tokens"`
	Model          string `json:"model"`
	CodeEdits      int    `json:"code_edits"`
}

// Build scans every transcript under projectsDir and returns the
// session index, newest first (path ascending on mtime ties). Each
// encoded project folder is decoded once; transcripts that vanish
// between discovery and stat are skipped.
func Build(
	projectsDir string,
	resolver *workspace.Resolver,
	modelMap map[string]attribution.Info,
) []Session {
	files := Discover(projectsDir)

	decoded := make(map[string]string)
	sessions := make([]Session, 0, len(files))
	for _, f := range files {
		ws, ok := decoded[f.Folder]
		if !ok {
			ws = resolver.Decode(f.Folder)
			decoded[f.Folder] = ws
		}

		info, err := os.Stat(f.Path)
		if err != nil {
			continue
		}
		stats := transcript.ScanFile(f.Path)
		attr := modelMap[f.Stem]

		sessions = append(sessions, Session{
			ID:             f.Stem,
			Workspace:      ws,
			Folder:         f.Folder,
			Format:         f.Format.String(),
			Modified:       info.ModTime().Unix(),
			Date:           info.ModTime().Format(dateLayout),
			Size:           info.Size(),
			Messages:       stats.Messages,
			ToolCalls:      stats.ToolCalls,
			Summary:        stats.Summary,
			TranscriptPath: f.Path,
			InputTokens:    stats.InputTokens,
			OutputTokens:   stats.OutputTokens,
			TotalTokens:    stats.TotalTokens(),
			Model:          attr.Model,
			CodeEdits:      attr.Edits,
		})
	}

	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].Modified != sessions[j].Modified {
			return sessions[i].Modified > sessions[j].Modified
		}
		return sessions[i].TranscriptPath < sessions[j].TranscriptPath
	})
	return sessions
}

// ModTime returns the session's modification time.
func (s Session) ModTime() time.Time {
	return time.Unix(s.Modified, 0)
}
