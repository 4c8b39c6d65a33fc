package draft

import (
	"strings"

	"paperplanner/internal/rubric"
)

// RenderMarkdown renders a draft as a Markdown document with sections in
// rubric order. Empty sections are skipped.
func RenderMarkdown(d ProjectDraft) string {
	var b strings.Builder
	b.WriteString("# Scientific Paper Plan\n")
	for _, s := range rubric.Sections() {
		content := strings.TrimSpace(d.Sections[s.ID])
		if content == "" {
			continue
		}
		b.WriteString("\n## ")
		b.WriteString(s.Title)
		b.WriteString("\n\n")
		b.WriteString(content)
		b.WriteString("\n")
	}
	if d.Timestamp != "" {
		b.WriteString("\n---\nGenerated: ")
		b.WriteString(d.Timestamp)
		b.WriteString(" (")
		b.WriteString(d.Version)
		b.WriteString(")\n")
	}
	return b.String()
}
