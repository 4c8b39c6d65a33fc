package draft

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"paperplanner/internal/util"
)

// parsedVersion is the default tag backfilled when the model omitted one.
// The orchestrator overwrites it with the stage tag on every accepted draft.
const parsedVersion = "import-parsed"

const snippetLen = 100

type ParseError struct {
	Stage      string
	RawSnippet string
	Err        error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %s: %v (snippet: %s)", e.Stage, e.Err, e.RawSnippet)
	}
	return fmt.Sprintf("parse %s (snippet: %s)", e.Stage, e.RawSnippet)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// responseWire is the shape the model is asked to emit. The legacy client
// used "userInputs" where the current schema says "sections"; both are
// accepted. Section values are decoded loosely because models occasionally
// emit non-string leaves, which are dropped rather than failing the parse.
type responseWire struct {
	Sections     map[string]any           `json:"sections"`
	UserInputs   map[string]any           `json:"userInputs"`
	ChatMessages map[string][]ChatMessage `json:"chatMessages"`
	Timestamp    string                   `json:"timestamp"`
	Version      string                   `json:"version"`
}

// Parse turns raw model output into a ProjectDraft. Steps short-circuit on
// first success: strip code fences, strict parse, brace-span parse. The
// input string is never mutated; missing top-level fields are backfilled.
func Parse(raw string) (ProjectDraft, error) {
	cleaned := stripCodeFence(strings.TrimSpace(raw))

	var wire responseWire
	if err := json.Unmarshal([]byte(cleaned), &wire); err != nil {
		span, ok := braceSpan(cleaned)
		if !ok {
			return ProjectDraft{}, &ParseError{Stage: "json", RawSnippet: util.DisplaySnippet(cleaned, snippetLen), Err: err}
		}
		if err2 := json.Unmarshal([]byte(span), &wire); err2 != nil {
			return ProjectDraft{}, &ParseError{Stage: "json", RawSnippet: util.DisplaySnippet(cleaned, snippetLen), Err: err2}
		}
	}

	src := wire.Sections
	if src == nil {
		src = wire.UserInputs
	}
	sections := make(map[string]string, len(src))
	for k, v := range src {
		s, ok := v.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		sections[k] = s
	}

	d := ProjectDraft{
		Sections:     sections,
		ChatMessages: wire.ChatMessages,
		Timestamp:    strings.TrimSpace(wire.Timestamp),
		Version:      strings.TrimSpace(wire.Version),
	}
	if d.ChatMessages == nil {
		d.ChatMessages = map[string][]ChatMessage{}
	}
	if d.Timestamp == "" {
		d.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	if d.Version == "" {
		d.Version = parsedVersion
	}
	return d, nil
}

func stripCodeFence(s string) string {
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}

// braceSpan extracts the first top-level {...} span.
func braceSpan(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}
