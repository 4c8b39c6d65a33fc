package rubric

import (
	"strings"
	"testing"
)

func TestSectionOrderAndGroups(t *testing.T) {
	ids := make([]string, 0, len(Sections()))
	for _, s := range Sections() {
		ids = append(ids, s.ID)
	}
	if ids[0] != "question" || ids[len(ids)-1] != "abstract" {
		t.Fatalf("unexpected section order: %v", ids)
	}
	for _, id := range ApproachIDs() {
		g, ok := GroupOf(id)
		if !ok || g != GroupApproach {
			t.Fatalf("section %s should belong to group %s", id, GroupApproach)
		}
	}
	for _, id := range DataMethodIDs() {
		g, ok := GroupOf(id)
		if !ok || g != GroupDataMethod {
			t.Fatalf("section %s should belong to group %s", id, GroupDataMethod)
		}
	}
	if _, ok := GroupOf("question"); ok {
		t.Fatalf("question must not belong to a choice group")
	}
}

func TestEverySectionHasPlaceholder(t *testing.T) {
	for _, s := range Sections() {
		if strings.TrimSpace(s.Placeholder) == "" {
			t.Fatalf("section %s has no placeholder", s.ID)
		}
	}
}

func TestBuildDigestDeterministic(t *testing.T) {
	a := BuildDigest()
	b := BuildDigest()
	if a != b {
		t.Fatalf("digest must be byte-identical across calls")
	}
	if !strings.Contains(a, "GRADING CRITERIA") {
		t.Fatalf("digest missing header: %q", a[:80])
	}
	for _, s := range Sections() {
		if !strings.Contains(a, "("+s.ID+")") {
			t.Fatalf("digest missing section %s", s.ID)
		}
	}
}
