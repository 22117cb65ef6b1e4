// Package transcript parses Cursor Agent CLI session transcripts.
//
// Transcripts come in two wire formats: .jsonl files with one record
// per line ({role, message: {content: [...]}}) and older .txt files
// with "user:" / "assistant:" role markers and <user_query> tags.
// Scanning and previewing both run in a single pass over the content
// and never fail outward: malformed records degrade to contentless
// messages and unreadable files yield empty results, so one corrupt
// transcript cannot abort an index run.
package transcript

import (
	"bytes"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	charsPerToken     = 4
	maxSummaryLen     = 200
	previewMaxLineLen = 150

	// Transcript lines are usually short but single records holding
	// whole file dumps do occur.
	maxLineBytes = 20 * 1024 * 1024
)

const (
	roleUser      = "user"
	roleAssistant = "assistant"

	toolCallMark   = "[Tool call]"
	toolResultMark = "[Tool result]"
)

var (
	tagRE       = regexp.MustCompile(`<[^>]+>`)
	userQueryRE = regexp.MustCompile(`(?s)<user_query>\s*(.*?)\s*</user_query>`)
)

// Format identifies a transcript wire format.
type Format int

const (
	FormatUnknown Format = iota
	FormatJSONL
	FormatText
)

// FormatForPath derives the transcript format from the file
// extension. Anything but .jsonl and .txt is FormatUnknown.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl":
		return FormatJSONL
	case ".txt":
		return FormatText
	}
	return FormatUnknown
}

func (f Format) String() string {
	switch f {
	case FormatJSONL:
		return "jsonl"
	case FormatText:
		return "txt"
	}
	return ""
}

// readTranscript loads a transcript file, substituting bytes that are
// not valid UTF-8 rather than failing on them. The file is opened
// without following a symlink at the final component, so a link
// swapped in after discovery validated the path cannot redirect the
// read.
func readTranscript(path string) ([]byte, error) {
	f, err := openNoFollow(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(b) {
		b = bytes.ToValidUTF8(b, []byte("�"))
	}
	return b, nil
}

// cleanText strips XML-style tags and collapses runs of whitespace
// into single spaces.
func cleanText(s string) string {
	return strings.Join(strings.Fields(tagRE.ReplaceAllString(s, "")), " ")
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
