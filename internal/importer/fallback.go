package importer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"paperplanner/internal/draft"
	"paperplanner/internal/rubric"
	"paperplanner/internal/util"
)

// recoveredTextCap bounds how much raw text the error draft carries for
// user-side debugging.
const recoveredTextCap = 4000

// filenameFallback asks the model for a synthetic example plan about a topic
// derived from the filename. Validation here is best-effort: missing or
// surplus choice-group members are repaired with generated defaults because
// this stage exists to never leave the user empty-handed.
func (p *Pipeline) filenameFallback(ctx context.Context, fileName, sourceText string, logs *[]CallLog) (draft.ProjectDraft, error) {
	topic := TopicFromFilename(fileName)
	pr := p.composer.BuildFilenameFallback(topic)
	text, err := p.generate(ctx, "import_filename_fallback", pr, logs)
	if err != nil {
		return draft.ProjectDraft{}, err
	}
	d, err := draft.Parse(text)
	if err != nil {
		return draft.ProjectDraft{}, err
	}
	d, _ = draft.BackfillShort(d, p.minFieldLen)
	d = repairGroup(d, rubric.ApproachIDs(), guessApproach(sourceText), topic)
	d = repairGroup(d, rubric.DataMethodIDs(), guessDataMethod(sourceText), topic)
	return freshChat(d), nil
}

// errorOutcome synthesizes the terminal diagnostic draft: every rubric
// section gets placeholder content, the question field carries the failure
// diagnostic, and the abstract field carries recovered raw text if any.
func (p *Pipeline) errorOutcome(fileName, failedStage string, cause error, recovered string, notes []string, logs []CallLog) Outcome {
	sections := make(map[string]string, len(rubric.Sections()))
	for _, s := range rubric.Sections() {
		sections[s.ID] = s.Placeholder
	}
	sections["question"] = fmt.Sprintf(
		"Import of %q failed at the %s stage: %v\n\nEdit this plan manually or retry the import.",
		fileName, failedStage, cause,
	)
	if recovered = strings.TrimSpace(recovered); recovered != "" {
		capped, cut := util.CapRunes(recovered, recoveredTextCap)
		if cut {
			capped += "\n[truncated]"
		}
		sections["abstract"] = "Recovered document text (import failed before it could be structured):\n\n" + capped
	}
	d := draft.ProjectDraft{
		Sections:     sections,
		ChatMessages: map[string][]draft.ChatMessage{},
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		Version:      string(draft.StageError),
	}
	notes = append(notes, fmt.Sprintf("%s stage failed: %v", failedStage, cause))
	return Outcome{Draft: d, Stage: draft.StageError, Notes: notes, CallLogs: logs}
}

// repairGroup forces exactly one populated member of a choice group: surplus
// members are dropped in favor of the guessed one, a missing member is
// filled from the rubric placeholder.
func repairGroup(d draft.ProjectDraft, ids []string, guess, topic string) draft.ProjectDraft {
	populated := make([]string, 0, len(ids))
	for _, id := range ids {
		if strings.TrimSpace(d.Sections[id]) != "" {
			populated = append(populated, id)
		}
	}
	switch {
	case len(populated) == 1:
		return d
	case len(populated) == 0:
		d.Sections[guess] = fmt.Sprintf("Example for the topic %q:\n\n%s", topic, rubric.Placeholder(guess))
		return d
	default:
		keep := populated[0]
		for _, id := range populated {
			if id == guess {
				keep = id
				break
			}
		}
		for _, id := range populated {
			if id != keep {
				delete(d.Sections, id)
			}
		}
		return d
	}
}

// TopicFromFilename derives a human-readable topic: extension stripped,
// separators replaced with spaces, words title-cased.
func TopicFromFilename(name string) string {
	base := name
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	base = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(base)
	words := strings.Fields(base)
	for i, w := range words {
		r := []rune(w)
		if len(r) > 0 {
			words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
		}
	}
	if len(words) == 0 {
		return "Untitled Research Project"
	}
	return strings.Join(words, " ")
}

// guessApproach and guessDataMethod are weak keyword heuristics used only to
// pick defaults in degraded stages; their accuracy is not a correctness
// requirement.
func guessApproach(text string) string {
	t := strings.ToLower(text)
	scores := map[string]int{
		"hypothesis":          strings.Count(t, "hypothes"),
		"needsresearch":       strings.Count(t, "stakeholder") + strings.Count(t, "unmet need") + strings.Count(t, "clinical need"),
		"exploratoryresearch": strings.Count(t, "explorat") + strings.Count(t, "descriptive study"),
	}
	return bestOf(rubric.ApproachIDs(), scores)
}

func guessDataMethod(text string) string {
	t := strings.ToLower(text)
	scores := map[string]int{
		"experiment":       strings.Count(t, "experiment") + strings.Count(t, "participants") + strings.Count(t, "trial"),
		"existingdata":     strings.Count(t, "dataset") + strings.Count(t, "database") + strings.Count(t, "archival"),
		"theorysimulation": strings.Count(t, "simulat") + strings.Count(t, "theoretical model"),
	}
	return bestOf(rubric.DataMethodIDs(), scores)
}

// bestOf returns the highest scoring id, preferring earlier ids on ties so
// the guess is deterministic.
func bestOf(ids []string, scores map[string]int) string {
	best := ids[0]
	bestScore := scores[best]
	for _, id := range ids[1:] {
		if scores[id] > bestScore {
			best = id
			bestScore = scores[id]
		}
	}
	return best
}
