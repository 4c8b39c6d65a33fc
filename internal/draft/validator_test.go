package draft

import (
	"strings"
	"testing"
)

func validDraft() ProjectDraft {
	return ProjectDraft{
		Sections: map[string]string{
			"question":   "How does caffeine timing affect sustained attention in shift workers?",
			"audience":   "Occupational-health researchers and shift-scheduling practitioners.",
			"hypothesis": "Hypothesis 1: earlier dosing improves attention. Hypothesis 2: timing has no effect.",
			"experiment": "Within-subject crossover, 60 participants, counterbalanced dose timing.",
			"analysis":   "Mixed-effects model of attention score on dose timing with subject intercepts.",
			"process":    "Skills: psychophysics and statistics. Timeline: six months end to end.",
			"abstract":   "We test whether caffeine timing shifts sustained-attention outcomes in shift workers.",
		},
		ChatMessages: map[string][]ChatMessage{},
	}
}

func TestValidateAcceptsCompleteDraft(t *testing.T) {
	vr := Validate(validDraft(), 10)
	if !vr.OK {
		t.Fatalf("expected valid, got violations %v", vr.Missing)
	}
}

func TestValidateFlagsShortEssentials(t *testing.T) {
	d := validDraft()
	d.Sections["analysis"] = "tbd"
	delete(d.Sections, "abstract")
	vr := Validate(d, 10)
	if vr.OK {
		t.Fatalf("expected violations")
	}
	got := strings.Join(vr.Missing, ",")
	if !strings.Contains(got, "analysis") || !strings.Contains(got, "abstract") {
		t.Fatalf("expected analysis and abstract flagged, got %v", vr.Missing)
	}
}

func TestValidateFlagsEmptyApproachGroup(t *testing.T) {
	d := validDraft()
	delete(d.Sections, "hypothesis")
	vr := Validate(d, 10)
	if vr.OK || !contains(vr.Missing, ViolationApproachGroup) {
		t.Fatalf("expected approach group violation, got %v", vr.Missing)
	}
}

func TestValidateFlagsSurplusDataMethodGroup(t *testing.T) {
	d := validDraft()
	d.Sections["existingdata"] = "We also reuse the national sleep-diary registry dataset."
	vr := Validate(d, 10)
	if vr.OK || !contains(vr.Missing, ViolationDataMethodGroup) {
		t.Fatalf("expected data-method group violation, got %v", vr.Missing)
	}
}

func TestTwoHypothesesInOneFieldIsOneChoice(t *testing.T) {
	// Competing hypotheses inside the hypothesis field are one approach
	// choice, not two.
	d := validDraft()
	vr := Validate(d, 10)
	if !vr.OK {
		t.Fatalf("expected valid, got %v", vr.Missing)
	}
	id, ok := ChosenApproach(d)
	if !ok || id != "hypothesis" {
		t.Fatalf("expected single hypothesis choice, got %s ok=%v", id, ok)
	}
}

func TestBackfillShortFillsPlaceholders(t *testing.T) {
	d := validDraft()
	d.Sections["process"] = "soon"
	repaired, filled := BackfillShort(d, 10)
	if len(filled) != 1 || filled[0] != "process" {
		t.Fatalf("expected process backfilled, got %v", filled)
	}
	if len(repaired.Sections["process"]) < 10 {
		t.Fatalf("placeholder too short: %q", repaired.Sections["process"])
	}
	if d.Sections["process"] != "soon" {
		t.Fatalf("input draft must not be mutated")
	}
}

func TestChosenDataMethod(t *testing.T) {
	d := validDraft()
	id, ok := ChosenDataMethod(d)
	if !ok || id != "experiment" {
		t.Fatalf("expected experiment, got %s ok=%v", id, ok)
	}
}

func contains(xs []string, want string) bool {
	for _, x := range xs {
		if x == want {
			return true
		}
	}
	return false
}
