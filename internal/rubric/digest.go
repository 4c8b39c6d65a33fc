package rubric

import (
	"strings"

	"paperplanner/internal/util"
)

const (
	digestIntroCap       = 150
	digestInstructionCap = 100
)

// BuildDigest flattens the rubric into a compact text digest used to steer
// the model toward content that scores well against the section instructions.
// Output is deterministic and order-preserving.
func BuildDigest() string {
	var b strings.Builder
	b.WriteString("GRADING CRITERIA (the generated plan is evaluated against these):\n")
	for _, s := range Sections() {
		b.WriteString("\n## ")
		b.WriteString(s.Title)
		b.WriteString(" (")
		b.WriteString(s.ID)
		b.WriteString(")\n")
		if intro := util.DisplaySnippet(s.Intro, digestIntroCap); intro != "" {
			b.WriteString(intro)
			b.WriteString("\n")
		}
		for _, sub := range s.Subsections {
			b.WriteString("- ")
			b.WriteString(sub.Title)
			b.WriteString(": ")
			b.WriteString(util.DisplaySnippet(sub.Instruction, digestInstructionCap))
			b.WriteString("\n")
		}
	}
	return b.String()
}
