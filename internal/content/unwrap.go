// Package content – response unwrapping.
//
// Model responses arrive in three shapes: plain text, JSON wrapped in
// markdown code fences (```json … ``` or bare ``` … ```), and JSON whose
// string literals contain raw control characters that a strict parser
// rejects. Unwrap normalizes all three into a parseable payload or reports
// a malformed response; the caller decides whether that consumes a retry
// attempt.
package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedResponse indicates the model returned output that could not
// be turned into a usable payload. It is surfaced, never swallowed, so the
// orchestrator can log parse failures distinctly from network failures.
var ErrMalformedResponse = errors.New("malformed model response")

// Unwrap strips markdown fences and repairs raw control characters inside
// JSON string literals. Plain-text payloads pass through untouched. A
// payload that looks like JSON but still fails to parse returns
// ErrMalformedResponse.
func Unwrap(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("%w: empty payload", ErrMalformedResponse)
	}

	s = stripFence(s)
	if s == "" {
		return "", fmt.Errorf("%w: fence contained no payload", ErrMalformedResponse)
	}

	if s[0] == '{' || s[0] == '[' {
		s = escapeControlChars(s)
		if !json.Valid([]byte(s)) {
			return "", fmt.Errorf("%w: invalid JSON after repair", ErrMalformedResponse)
		}
	}
	return s, nil
}

// GemPayload is the decoded shape of a JSON-mode generation.
type GemPayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// DecodeGem parses an unwrapped JSON payload into its title and content.
// A payload without content is malformed regardless of valid syntax.
func DecodeGem(payload string) (GemPayload, error) {
	var p GemPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return GemPayload{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if strings.TrimSpace(p.Content) == "" {
		return GemPayload{}, fmt.Errorf("%w: missing content field", ErrMalformedResponse)
	}
	return p, nil
}

// stripFence removes a leading markdown code fence (with or without a
// language tag) and its closing fence. Input without a fence is returned
// as-is.
func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	body := s[3:]
	// Drop the language tag ("json", "text", …) up to the first newline.
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	} else {
		// Single-line fence such as "```json {...} ```".
		body = strings.TrimPrefix(body, "json")
	}
	body = strings.TrimSuffix(strings.TrimSpace(body), "```")
	return strings.TrimSpace(body)
}

// scanner states for escapeControlChars.
const (
	stateOutside = iota // between JSON string literals
	stateInside         // inside a quoted string
	stateEscaped        // the previous byte inside a string was '\'
)

// escapeControlChars walks the payload left to right tracking whether the
// cursor is inside a quoted string, and re-escapes literal newline,
// carriage-return, and tab bytes found inside strings as \n, \r, \t.
// Control characters outside strings (formatting whitespace) are legal JSON
// and left alone. The escaped state always returns to inside after
// consuming exactly one character.
func escapeControlChars(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	state := stateOutside
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch state {
		case stateOutside:
			if c == '"' {
				state = stateInside
			}
			b.WriteByte(c)
		case stateInside:
			switch c {
			case '\\':
				state = stateEscaped
				b.WriteByte(c)
			case '"':
				state = stateOutside
				b.WriteByte(c)
			case '\n':
				b.WriteString(`\n`)
			case '\r':
				b.WriteString(`\r`)
			case '\t':
				b.WriteString(`\t`)
			default:
				b.WriteByte(c)
			}
		case stateEscaped:
			state = stateInside
			b.WriteByte(c)
		}
	}
	return b.String()
}
