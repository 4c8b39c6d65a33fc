package draft

import (
	"strings"

	"paperplanner/internal/rubric"
)

const (
	// Violation labels for the two mutually exclusive choice groups.
	ViolationApproachGroup   = "approach_group"
	ViolationDataMethodGroup = "data_method_group"
)

type ValidationResult struct {
	OK      bool     `json:"ok"`
	Missing []string `json:"missing,omitempty"`
}

// Validate enforces the output contract. All checks run and all violations
// are collected so the caller can report everything at once.
func Validate(d ProjectDraft, minLen int) ValidationResult {
	if minLen <= 0 {
		minLen = 10
	}
	missing := make([]string, 0)

	for _, id := range rubric.EssentialIDs() {
		if len(strings.TrimSpace(d.Sections[id])) < minLen {
			missing = append(missing, id)
		}
	}
	if _, n := chosenGroupMember(d, rubric.ApproachIDs()); n != 1 {
		missing = append(missing, ViolationApproachGroup)
	}
	if _, n := chosenGroupMember(d, rubric.DataMethodIDs()); n != 1 {
		missing = append(missing, ViolationDataMethodGroup)
	}

	return ValidationResult{OK: len(missing) == 0, Missing: missing}
}

// BackfillShort replaces too-short essential fields with rubric placeholder
// content. Group-exclusivity violations are never auto-repaired here because
// that would require guessing intent. Returns the repaired copy and the ids
// that were backfilled.
func BackfillShort(d ProjectDraft, minLen int) (ProjectDraft, []string) {
	if minLen <= 0 {
		minLen = 10
	}
	out := clone(d)
	filled := make([]string, 0)
	for _, id := range rubric.EssentialIDs() {
		if len(strings.TrimSpace(out.Sections[id])) < minLen {
			out.Sections[id] = rubric.Placeholder(id)
			filled = append(filled, id)
		}
	}
	return out, filled
}

// ChosenApproach returns the single populated approach-group member, if
// exactly one is populated.
func ChosenApproach(d ProjectDraft) (string, bool) {
	id, n := chosenGroupMember(d, rubric.ApproachIDs())
	return id, n == 1
}

// ChosenDataMethod returns the single populated data-method-group member, if
// exactly one is populated.
func ChosenDataMethod(d ProjectDraft) (string, bool) {
	id, n := chosenGroupMember(d, rubric.DataMethodIDs())
	return id, n == 1
}

func chosenGroupMember(d ProjectDraft, ids []string) (string, int) {
	chosen := ""
	n := 0
	for _, id := range ids {
		if strings.TrimSpace(d.Sections[id]) != "" {
			chosen = id
			n++
		}
	}
	return chosen, n
}

func clone(d ProjectDraft) ProjectDraft {
	out := d
	out.Sections = make(map[string]string, len(d.Sections))
	for k, v := range d.Sections {
		out.Sections[k] = v
	}
	out.ChatMessages = make(map[string][]ChatMessage, len(d.ChatMessages))
	for k, v := range d.ChatMessages {
		msgs := make([]ChatMessage, len(v))
		copy(msgs, v)
		out.ChatMessages[k] = msgs
	}
	return out
}
