// Package draft defines the canonical project-draft model produced by the
// import pipeline, the response parser that repairs model output into it,
// and the schema validator that gates acceptance.
package draft

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ProjectDraft is the only artifact the rest of the application consumes.
// It is always syntactically valid regardless of which stage produced it.
type ProjectDraft struct {
	Sections     map[string]string        `json:"sections"`
	ChatMessages map[string][]ChatMessage `json:"chatMessages"`
	Timestamp    string                   `json:"timestamp"`
	Version      string                   `json:"version"`
}

// Stage identifies which rung of the fallback ladder produced a draft. The
// tag is written into the draft's Version field so the consuming UI can warn
// when output is degraded.
type Stage string

const (
	StagePrimary          Stage = "import-primary"
	StageRetried          Stage = "import-retry"
	StageFilenameFallback Stage = "import-filename-fallback"
	StageError            Stage = "import-error"
)

// Degraded reports whether a UI warning banner is warranted.
func (s Stage) Degraded() bool {
	return s != StagePrimary
}
