// Package prompts renders the system/task prompt pair for each import mode.
// Rendering is deterministic: identical inputs produce byte-identical text.
package prompts

import (
	"strings"

	"paperplanner/internal/extract"
	"paperplanner/internal/rubric"
	"paperplanner/internal/util"
)

type Mode string

const (
	ModePrimary    Mode = "primary"
	ModeSimplified Mode = "simplified"
)

type Prompts struct {
	System string
	Task   string
}

// FieldTemplate is one entry of the target JSON field list. Group names mark
// members of a mutually exclusive choice group.
type FieldTemplate struct {
	FieldID  string
	Guidance string
	Group    string
}

const systemPrimary = `You convert research documents into structured project plans.
Read the document generously: when a section is implied but not stated, fill the gap with the most plausible content consistent with the document.
Always return a single JSON object and nothing else.`

const systemSimplified = `You convert research documents into structured project plans.
Follow the field list exactly. Use the provided skeleton verbatim: include exactly the listed fields, choose exactly one member of each choice group, and leave nothing else in the output.
If the document does not state a field, copy the field guidance as the value.
Always return a single JSON object and nothing else.`

const systemFilename = `You write example research project plans.
The user lost the document content; only the topic survives. Synthesize a plausible example plan about that topic. It is a template, not a true extraction.
Always return a single JSON object and nothing else.`

type Composer struct {
	docCharCap int
	digest     string
	fields     []FieldTemplate
}

func NewComposer(docCharCap int) *Composer {
	if docCharCap <= 0 {
		docCharCap = 8000
	}
	return &Composer{
		docCharCap: docCharCap,
		digest:     rubric.BuildDigest(),
		fields:     fieldTemplates(),
	}
}

// Build renders the prompt pair for the given mode. Simplified mode re-sends
// the same extracted text with stricter instructions.
func (c *Composer) Build(doc extract.Text, mode Mode) Prompts {
	system := systemPrimary
	if mode == ModeSimplified {
		system = systemSimplified
	}

	var b strings.Builder
	b.WriteString("Convert the document below into a research project plan as JSON.\n\n")
	b.WriteString(c.renderSchema())
	b.WriteString("\n")
	b.WriteString(c.digest)
	b.WriteString("\nDOCUMENT TEXT:\n")
	b.WriteString(c.renderDocText(doc))
	b.WriteString("\n")
	return Prompts{System: system, Task: b.String()}
}

// BuildFilenameFallback renders the minimal last-resort prompt from a topic
// string derived from the filename.
func (c *Composer) BuildFilenameFallback(topic string) Prompts {
	var b strings.Builder
	b.WriteString("Write an example research project plan about the topic: ")
	b.WriteString(topic)
	b.WriteString("\n\nThis is a synthesized template because the document content could not be recovered.\n\n")
	b.WriteString(c.renderSchema())
	return Prompts{System: systemFilename, Task: b.String()}
}

func (c *Composer) renderSchema() string {
	var b strings.Builder
	b.WriteString("OUTPUT SHAPE (fill every chosen field; timestamp is a placeholder you fill):\n")
	b.WriteString(`{"sections": {"<fieldId>": "<content>", ...}, "chatMessages": {}, "timestamp": "<ISO-8601>", "version": "imported"}`)
	b.WriteString("\n\nFIELDS:\n")
	for _, f := range c.fields {
		b.WriteString("- ")
		b.WriteString(f.FieldID)
		if f.Group != "" {
			b.WriteString(" [choice group: ")
			b.WriteString(f.Group)
			b.WriteString("]")
		}
		b.WriteString(": ")
		b.WriteString(util.DisplaySnippet(f.Guidance, 220))
		b.WriteString("\n")
	}
	b.WriteString("\nCONSTRAINTS:\n")
	b.WriteString("- Include EXACTLY ONE of the fields in choice group " + rubric.GroupApproach + " (hypothesis, needsresearch, exploratoryresearch); omit the other two entirely.\n")
	b.WriteString("- Include EXACTLY ONE of the fields in choice group " + rubric.GroupDataMethod + " (experiment, existingdata, theorysimulation); omit the other two entirely.\n")
	b.WriteString("- Every included field must hold substantial prose, not a single word.\n")
	return b.String()
}

func (c *Composer) renderDocText(doc extract.Text) string {
	content, cut := util.CapRunes(doc.Content, c.docCharCap)
	if cut || doc.Truncated {
		return strings.TrimSpace(content) + "\n[truncated]"
	}
	return content
}

func fieldTemplates() []FieldTemplate {
	sections := rubric.Sections()
	out := make([]FieldTemplate, 0, len(sections))
	for _, s := range sections {
		group, _ := rubric.GroupOf(s.ID)
		out = append(out, FieldTemplate{
			FieldID:  s.ID,
			Guidance: s.Placeholder,
			Group:    group,
		})
	}
	return out
}
