package transcript

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/tidwall/gjson"
)

// Stats holds the metrics extracted from one transcript.
type Stats struct {
	Summary      string
	Messages     int
	ToolCalls    int
	InputTokens  int
	OutputTokens int
}

// TotalTokens is the combined input and output estimate.
func (s Stats) TotalTokens() int {
	return s.InputTokens + s.OutputTokens
}

// accumulator gathers raw counts during a scan. Character totals stay
// in characters until stats() converts them to token estimates.
type accumulator struct {
	summary     string
	messages    int
	toolCalls   int
	inputChars  int
	outputChars int
}

// addText credits text to a role's character total and captures the
// first non-empty user text as the summary.
func (a *accumulator) addText(role, text string) {
	if role == roleUser {
		a.inputChars += len(text)
		if a.summary == "" && text != "" {
			a.summary = truncate(cleanText(text), maxSummaryLen)
		}
		return
	}
	a.outputChars += len(text)
}

func (a *accumulator) stats() Stats {
	return Stats{
		Summary:      a.summary,
		Messages:     a.messages,
		ToolCalls:    a.toolCalls,
		InputTokens:  a.inputChars / charsPerToken,
		OutputTokens: a.outputChars / charsPerToken,
	}
}

// Scan extracts summary, message and tool-call counts, and token
// estimates from transcript content in a single pass. An unknown
// format yields a zero Stats, never an error.
func Scan(content []byte, f Format) Stats {
	var acc accumulator
	switch f {
	case FormatJSONL:
		acc.scanJSONL(content)
	case FormatText:
		acc.scanText(content)
	}
	return acc.stats()
}

// ScanFile reads and scans one transcript, deriving the format from
// the file extension. Unreadable files yield a zero Stats.
func ScanFile(path string) Stats {
	content, err := readTranscript(path)
	if err != nil {
		return Stats{}
	}
	return Scan(content, FormatForPath(path))
}

// scanJSONL walks record-per-line content. Every non-empty line
// counts as a message before its content is inspected, so malformed
// records still show up in the message total.
func (a *accumulator) scanJSONL(content []byte) {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		a.messages++
		if !gjson.Valid(line) {
			continue
		}

		role := gjson.Get(line, "role").String()
		var text strings.Builder
		gjson.Get(line, "message.content").ForEach(func(_, block gjson.Result) bool {
			switch block.Get("type").String() {
			case "tool_use":
				a.toolCalls++
			case "text":
				text.WriteString(block.Get("text").String())
			}
			return true
		})
		a.addText(role, text.String())
	}
}

// scanText walks marker-delimited content. A <user_query> tag pair
// anywhere in the file wins the summary outright; otherwise the first
// plain user line claims it.
func (a *accumulator) scanText(content []byte) {
	text := string(content)
	if m := userQueryRE.FindStringSubmatch(text); m != nil {
		a.summary = truncate(cleanText(m[1]), maxSummaryLen)
	}

	role := ""
	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(line)

		if stripped == roleUser+":" || stripped == roleAssistant+":" {
			role = strings.TrimSuffix(stripped, ":")
			a.messages++
			continue
		}
		if strings.HasPrefix(stripped, toolCallMark) {
			a.toolCalls++
			continue
		}

		switch role {
		case roleUser:
			a.inputChars += len(line)
			if a.summary == "" && stripped != "" && !strings.HasPrefix(stripped, "<") {
				a.summary = truncate(cleanText(stripped), maxSummaryLen)
			}
		case roleAssistant:
			a.outputChars += len(line)
		}
	}
}
