// Command mkfixture writes a synthetic Cursor projects tree for
// manual testing: encoded project folders with agent-transcripts
// directories holding generated JSONL and plain-text sessions.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"cursorhist/internal/transcripttest"
)

type sessionSpec struct {
	folder string // encoded project directory name
	format string // "jsonl" or "txt"
	turns  int
	tools  int
}

var specs = []sessionSpec{
	{"Users-jane-projects-api", "jsonl", 4, 1},
	{"Users-jane-projects-api", "jsonl", 12, 4},
	{"Users-jane-projects-web--app", "txt", 6, 2},
	{"home-sam-work-backend", "jsonl", 2, 0},
	{"home-sam-work-backend", "txt", 8, 3},
	{"var-tmp-scratch", "jsonl", 20, 8},
}

func main() {
	out := flag.String("out", "", "output projects directory")
	flag.Parse()
	if *out == "" {
		fmt.Fprintln(os.Stderr, "usage: mkfixture -out <projects-dir>")
		os.Exit(1)
	}

	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	for i, spec := range specs {
		id := uuid.NewString()
		path, err := writeTranscript(*out, spec, id)
		if err != nil {
			log.Fatalf("writing fixture in %s: %v", spec.folder, err)
		}

		// Stagger mtimes so list order is stable and interesting.
		mtime := base.Add(time.Duration(i) * 6 * time.Hour)
		if err := os.Chtimes(path, mtime, mtime); err != nil {
			log.Fatalf("setting mtime on %s: %v", path, err)
		}
		fmt.Printf("  %s/%s.%s: %d turns, %d tool calls\n",
			spec.folder, id, spec.format, spec.turns, spec.tools)
	}

	fmt.Printf("Fixture tree written to %s\n", *out)
}

func writeTranscript(
	root string, spec sessionSpec, id string,
) (string, error) {
	dir := filepath.Join(root, spec.folder, "agent-transcripts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}

	var content string
	switch spec.format {
	case "jsonl":
		content = jsonlTranscript(spec)
	case "txt":
		content = textTranscript(spec)
	default:
		return "", fmt.Errorf("unknown format %q", spec.format)
	}

	path := filepath.Join(dir, id+"."+spec.format)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

func jsonlTranscript(spec sessionSpec) string {
	b := transcripttest.NewSessionBuilder()
	toolsLeft := spec.tools
	for i := 0; i < spec.turns; i++ {
		if i%2 == 0 {
			b.AddUser(userText(i, spec.turns))
			continue
		}
		if toolsLeft > 0 {
			b.AddAssistantWithTools(
				assistantText(i, spec.turns), toolName(i),
			)
			toolsLeft--
		} else {
			b.AddAssistant(assistantText(i, spec.turns))
		}
	}
	return b.String()
}

func textTranscript(spec sessionSpec) string {
	b := transcripttest.NewTextBuilder()
	b.UserQuery(userText(0, spec.turns))
	toolsLeft := spec.tools
	for i := 0; i < spec.turns; i++ {
		if i%2 == 0 {
			b.UserTurn().Line(userText(i, spec.turns))
			continue
		}
		b.AssistantTurn().Line(assistantText(i, spec.turns))
		if toolsLeft > 0 {
			b.ToolCall(fmt.Sprintf("read_file src/handler_%d.go", i))
			b.ToolResult("contents follow")
			toolsLeft--
		}
	}
	return b.String()
}

func toolName(idx int) string {
	names := []string{"shell", "read_file", "edit_file", "grep"}
	return names[idx%len(names)]
}

func userText(idx, total int) string {
	return fmt.Sprintf(
		"User turn %d of %d. Please look at the handler and tell me "+
			"why the retry loop never backs off.", idx, total,
	)
}

func assistantText(idx, total int) string {
	return fmt.Sprintf(
		"Assistant turn %d of %d. The loop resets its delay on every "+
			"iteration; moving the reset outside the loop fixes the "+
			"backoff.", idx, total,
	)
}
