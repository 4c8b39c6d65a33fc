package importer

import (
	"archive/zip"
	"bytes"
	"fmt"
	"testing"

	"paperplanner/internal/draft"
)

func docxFixture(t *testing.T, body string) []byte {
	t.Helper()
	doc := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>%s</w:t></w:r></w:p></w:body></w:document>`, body)
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := f.Write([]byte(doc)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestTopicFromFilename(t *testing.T) {
	cases := map[string]string{
		"coral_reef-recovery.pdf":     "Coral Reef Recovery",
		"/tmp/uploads/My.Study.docx":  "My Study",
		"plan.pdf":                    "Plan",
		"....pdf":                     "Untitled Research Project",
		"":                            "Untitled Research Project",
		"already Титled study spaces": "Already Титled Study Spaces",
	}
	for in, want := range cases {
		if got := TopicFromFilename(in); got != want {
			t.Fatalf("TopicFromFilename(%q) = %q want %q", in, got, want)
		}
	}
}

func TestRepairGroupKeepsSingleChoice(t *testing.T) {
	d := draft.ProjectDraft{Sections: map[string]string{"hypothesis": "H1 vs H2."}}
	out := repairGroup(d, []string{"hypothesis", "needsresearch", "exploratoryresearch"}, "exploratoryresearch", "Topic")
	if _, n := countPopulated(out, []string{"hypothesis", "needsresearch", "exploratoryresearch"}); n != 1 {
		t.Fatalf("expected single member, got %+v", out.Sections)
	}
	if out.Sections["hypothesis"] == "" {
		t.Fatalf("existing single choice must be kept")
	}
}

func TestRepairGroupFillsMissingFromGuess(t *testing.T) {
	d := draft.ProjectDraft{Sections: map[string]string{}}
	out := repairGroup(d, []string{"experiment", "existingdata", "theorysimulation"}, "existingdata", "Reef Study")
	if out.Sections["existingdata"] == "" {
		t.Fatalf("guessed member should be filled: %+v", out.Sections)
	}
}

func TestRepairGroupResolvesSurplusTowardGuess(t *testing.T) {
	d := draft.ProjectDraft{Sections: map[string]string{
		"experiment":   "A field trial.",
		"existingdata": "A registry dataset.",
	}}
	out := repairGroup(d, []string{"experiment", "existingdata", "theorysimulation"}, "existingdata", "Topic")
	if out.Sections["experiment"] != "" {
		t.Fatalf("non-guessed surplus member should be dropped: %+v", out.Sections)
	}
	if out.Sections["existingdata"] == "" {
		t.Fatalf("guessed member should survive")
	}
}

func TestGuessHeuristicsAreDeterministic(t *testing.T) {
	if got := guessApproach("we hypothesize an effect; the hypothesis predicts"); got != "hypothesis" {
		t.Fatalf("got %s want hypothesis", got)
	}
	if got := guessDataMethod("archival database of existing dataset records"); got != "existingdata" {
		t.Fatalf("got %s want existingdata", got)
	}
	// No signal at all falls back to the first group member.
	if got := guessApproach(""); got != "hypothesis" {
		t.Fatalf("empty text should pick the first id, got %s", got)
	}
	if got := guessDataMethod(""); got != "experiment" {
		t.Fatalf("empty text should pick the first id, got %s", got)
	}
}

func countPopulated(d draft.ProjectDraft, ids []string) (string, int) {
	chosen := ""
	n := 0
	for _, id := range ids {
		if d.Sections[id] != "" {
			chosen = id
			n++
		}
	}
	return chosen, n
}
