// Package transcripttest provides shared fixture builders for Cursor
// session transcripts in both the JSONL and plain-text formats. Used
// by the transcript, index and cli test packages.
package transcripttest

import (
	"encoding/json"
	"strings"
)

// TextBlock returns a text content block.
func TextBlock(text string) map[string]any {
	return map[string]any{
		"type": "text",
		"text": text,
	}
}

// ToolUseBlock returns a tool invocation content block.
func ToolUseBlock(name string) map[string]any {
	return map[string]any{
		"type": "tool_use",
		"name": name,
	}
}

// MessageJSON returns one JSONL record with the given role and
// content blocks as a JSON string.
func MessageJSON(role string, blocks ...map[string]any) string {
	content := blocks
	if content == nil {
		content = []map[string]any{}
	}
	return mustMarshal(map[string]any{
		"role": role,
		"message": map[string]any{
			"content": content,
		},
	})
}

// UserJSON returns a user message with one text block as a JSON
// string.
func UserJSON(text string) string {
	return MessageJSON("user", TextBlock(text))
}

// AssistantJSON returns an assistant message with one text block as
// a JSON string.
func AssistantJSON(text string) string {
	return MessageJSON("assistant", TextBlock(text))
}

// JoinJSONL joins JSON lines with newlines and appends a trailing
// newline.
func JoinJSONL(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

// SessionBuilder constructs JSONL transcript content using a fluent
// API.
type SessionBuilder struct {
	lines []string
}

// NewSessionBuilder returns a new empty SessionBuilder.
func NewSessionBuilder() *SessionBuilder {
	return &SessionBuilder{}
}

// AddUser appends a user message line with one text block.
func (b *SessionBuilder) AddUser(text string) *SessionBuilder {
	b.lines = append(b.lines, UserJSON(text))
	return b
}

// AddAssistant appends an assistant message line with one text
// block.
func (b *SessionBuilder) AddAssistant(text string) *SessionBuilder {
	b.lines = append(b.lines, AssistantJSON(text))
	return b
}

// AddAssistantWithTools appends an assistant message line with one
// text block followed by a tool_use block per tool name.
func (b *SessionBuilder) AddAssistantWithTools(
	text string, tools ...string,
) *SessionBuilder {
	blocks := []map[string]any{TextBlock(text)}
	for _, name := range tools {
		blocks = append(blocks, ToolUseBlock(name))
	}
	b.lines = append(b.lines, MessageJSON("assistant", blocks...))
	return b
}

// AddRaw appends an arbitrary raw line.
func (b *SessionBuilder) AddRaw(line string) *SessionBuilder {
	b.lines = append(b.lines, line)
	return b
}

// String returns the JSONL content with a trailing newline.
func (b *SessionBuilder) String() string {
	return strings.Join(b.lines, "\n") + "\n"
}

// TextBuilder constructs marker-delimited plain-text transcript
// content using a fluent API.
type TextBuilder struct {
	lines []string
}

// NewTextBuilder returns a new empty TextBuilder.
func NewTextBuilder() *TextBuilder {
	return &TextBuilder{}
}

// UserTurn appends a "user:" role marker line.
func (b *TextBuilder) UserTurn() *TextBuilder {
	b.lines = append(b.lines, "user:")
	return b
}

// AssistantTurn appends an "assistant:" role marker line.
func (b *TextBuilder) AssistantTurn() *TextBuilder {
	b.lines = append(b.lines, "assistant:")
	return b
}

// Line appends one raw content line.
func (b *TextBuilder) Line(s string) *TextBuilder {
	b.lines = append(b.lines, s)
	return b
}

// UserQuery appends a <user_query> tag pair wrapping the given text.
func (b *TextBuilder) UserQuery(text string) *TextBuilder {
	b.lines = append(b.lines, "<user_query>", text, "</user_query>")
	return b
}

// ToolCall appends a "[Tool call]" marker line.
func (b *TextBuilder) ToolCall(desc string) *TextBuilder {
	b.lines = append(b.lines, "[Tool call] "+desc)
	return b
}

// ToolResult appends a "[Tool result]" marker line.
func (b *TextBuilder) ToolResult(desc string) *TextBuilder {
	b.lines = append(b.lines, "[Tool result] "+desc)
	return b
}

// String returns the transcript content with a trailing newline.
func (b *TextBuilder) String() string {
	return strings.Join(b.lines, "\n") + "\n"
}

func mustMarshal(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
