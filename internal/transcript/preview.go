package transcript

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	markerUser      = "▶"
	markerAssistant = "◀"
	markerTool      = "\U0001f527" // wrench

	truncatedLine = "  ... (truncated)"
)

// emitter caps preview output at limit lines. Once the cap is hit,
// the next qualifying unit prints the truncation marker instead and
// ends the preview, so the marker only appears when content actually
// remained.
type emitter struct {
	w     io.Writer
	limit int
	count int
}

func (e *emitter) emit(line string) bool {
	if e.count >= e.limit {
		fmt.Fprintln(e.w, truncatedLine)
		return false
	}
	fmt.Fprintln(e.w, line)
	e.count++
	return true
}

func directionMarker(role string) string {
	if role == roleUser {
		return markerUser
	}
	return markerAssistant
}

// Preview writes a bounded conversation excerpt to w: one line per
// text message or tool invocation, direction-tagged and cut to 150
// characters, at most limit lines plus a trailing truncation marker.
// An unknown format produces no output.
func Preview(w io.Writer, content []byte, f Format, limit int) {
	e := &emitter{w: w, limit: limit}
	switch f {
	case FormatJSONL:
		previewJSONL(e, content)
	case FormatText:
		previewText(e, content)
	}
}

// PreviewFile reads and previews one transcript. Unreadable files
// produce no output.
func PreviewFile(w io.Writer, path string, limit int) {
	content, err := readTranscript(path)
	if err != nil {
		return
	}
	Preview(w, content, FormatForPath(path), limit)
}

// previewJSONL emits one line per record with text content plus one
// per tool invocation. Records that fail to parse are skipped rather
// than counted, unlike in Scan.
func previewJSONL(e *emitter, content []byte) {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !gjson.Valid(line) {
			continue
		}

		role := gjson.Get(line, "role").String()
		if role == "" {
			role = "?"
		}
		hasText := false
		var text strings.Builder
		var tools []string
		gjson.Get(line, "message.content").ForEach(func(_, block gjson.Result) bool {
			switch block.Get("type").String() {
			case "tool_use":
				tools = append(tools, block.Get("name").String())
			case "text":
				hasText = true
				text.WriteString(block.Get("text").String())
			}
			return true
		})

		if hasText {
			cleaned := truncate(cleanText(text.String()), previewMaxLineLen)
			if !e.emit(fmt.Sprintf("  %s [%s] %s", directionMarker(role), role, cleaned)) {
				return
			}
		}
		for _, name := range tools {
			if !e.emit(fmt.Sprintf("  %s [tool] %s", markerTool, truncate(name, previewMaxLineLen))) {
				return
			}
		}
	}
}

// previewText emits tool-call lines under the tool marker and plain
// lines under the active role's marker. Lines before the first role
// marker and tool results are not shown.
func previewText(e *emitter, content []byte) {
	role := ""
	for _, line := range strings.Split(string(content), "\n") {
		stripped := strings.TrimSpace(line)

		if stripped == roleUser+":" || stripped == roleAssistant+":" {
			role = strings.TrimSuffix(stripped, ":")
			continue
		}
		if strings.HasPrefix(stripped, "<user_query>") ||
			strings.HasPrefix(stripped, "</user_query>") {
			continue
		}
		if strings.HasPrefix(stripped, toolCallMark) {
			if !e.emit(fmt.Sprintf("  %s %s", markerTool, truncate(stripped, previewMaxLineLen))) {
				return
			}
			continue
		}
		if stripped == "" || strings.HasPrefix(stripped, toolResultMark) || role == "" {
			continue
		}
		cleaned := cleanText(stripped)
		if cleaned == "" {
			continue
		}
		out := fmt.Sprintf("  %s [%s] %s", directionMarker(role), role, truncate(cleaned, previewMaxLineLen))
		if !e.emit(out) {
			return
		}
	}
}
