// Package gateway – prompt templates.
//
// Templates carry the fixed system prompt, the user-prompt construction,
// and the generation parameters (temperature, token budget, JSON mode) for
// each kind of content the palace produces.
package gateway

import (
	"fmt"
	"strings"
)

// Params are the caller-supplied knobs interpolated into a template's user
// prompt. All fields are optional; templates fall back to sensible subjects.
type Params struct {
	Theme      string   `json:"theme"`
	Difficulty string   `json:"difficulty"`
	Verses     []string `json:"verses"`
}

// Template describes one kind of generation.
type Template struct {
	Name        string
	System      string
	JSONMode    bool
	Temperature float64
	MaxTokens   int

	// userPrompt builds the per-request prompt from the params.
	userPrompt func(Params) string
}

// UserPrompt renders the user-role message for the given params.
func (t Template) UserPrompt(p Params) string { return t.userPrompt(p) }

var templates = map[string]Template{
	"gem": {
		Name: "gem",
		System: "You are a devotional writer for a Bible-study application. " +
			"Respond with a single JSON object {\"title\": string, \"content\": string}. " +
			"The content is a short, vivid spiritual insight (a \"gem\") of 2-4 sentences, " +
			"anchored in scripture and free of markdown.",
		JSONMode:    true,
		Temperature: 0.9,
		MaxTokens:   400,
		userPrompt: func(p Params) string {
			var b strings.Builder
			b.WriteString("Write one new gem")
			if p.Theme != "" {
				fmt.Fprintf(&b, " on the theme %q", p.Theme)
			}
			if p.Difficulty != "" {
				fmt.Fprintf(&b, " at %s level", p.Difficulty)
			}
			if len(p.Verses) > 0 {
				fmt.Fprintf(&b, ", drawing on %s", strings.Join(p.Verses, "; "))
			}
			b.WriteString(". It must be distinct from anything generic or previously seen.")
			return b.String()
		},
	},
	"devotional": {
		Name: "devotional",
		System: "You are a devotional writer. Respond with a single JSON object " +
			"{\"title\": string, \"content\": string}. The content is a complete daily " +
			"devotional: an opening scripture reading, a reflection of 3-5 paragraphs, " +
			"and a closing prayer.",
		JSONMode:    true,
		Temperature: 0.8,
		MaxTokens:   1200,
		userPrompt: func(p Params) string {
			var b strings.Builder
			b.WriteString("Write today's devotional")
			if p.Theme != "" {
				fmt.Fprintf(&b, " centered on %q", p.Theme)
			}
			if len(p.Verses) > 0 {
				fmt.Fprintf(&b, " with the reading taken from %s", strings.Join(p.Verses, "; "))
			}
			b.WriteString(".")
			return b.String()
		},
	},
	"prophecy": {
		Name: "prophecy",
		System: "You are a careful student of biblical prophecy. Write in plain prose, " +
			"no JSON, no markdown. Present the historical fulfillment view and cite the " +
			"passages you rely on.",
		JSONMode:    false,
		Temperature: 0.7,
		MaxTokens:   900,
		userPrompt: func(p Params) string {
			subject := p.Theme
			if subject == "" {
				subject = "the prophetic timeline of Daniel 2"
			}
			return fmt.Sprintf("Give a short study of %s, suitable for a reader at %s level.",
				subject, difficultyOrDefault(p.Difficulty))
		},
	},
}

func difficultyOrDefault(d string) string {
	if strings.TrimSpace(d) == "" {
		return "beginner"
	}
	return d
}

// Lookup returns the template registered under name.
func Lookup(name string) (Template, bool) {
	t, ok := templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// TemplateNames lists the registered template names (for error messages and
// docs); order is not guaranteed.
func TemplateNames() []string {
	out := make([]string, 0, len(templates))
	for n := range templates {
		out = append(out, n)
	}
	return out
}
