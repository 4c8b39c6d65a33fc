package draft

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParsePlainJSON(t *testing.T) {
	raw := `{"sections": {"question": "What drives adoption?"}, "chatMessages": {}, "timestamp": "2026-01-01T00:00:00Z", "version": "imported"}`
	d, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Sections["question"] != "What drives adoption?" {
		t.Fatalf("unexpected sections: %+v", d.Sections)
	}
	if d.Timestamp != "2026-01-01T00:00:00Z" || d.Version != "imported" {
		t.Fatalf("metadata not preserved: %+v", d)
	}
}

func TestParseStripsCodeFence(t *testing.T) {
	raw := "```json\n{\"sections\": {\"question\": \"Fenced output.\"}}\n```"
	d, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Sections["question"] != "Fenced output." {
		t.Fatalf("fence not stripped: %+v", d.Sections)
	}
}

func TestParseRecoversBraceSpan(t *testing.T) {
	raw := `Here is your plan: {"sections": {"question": "Recovered."}} Hope this helps!`
	d, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Sections["question"] != "Recovered." {
		t.Fatalf("brace span not recovered: %+v", d.Sections)
	}
}

func TestParseAcceptsLegacyUserInputs(t *testing.T) {
	raw := `{"userInputs": {"question": "Legacy key."}}`
	d, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Sections["question"] != "Legacy key." {
		t.Fatalf("legacy key ignored: %+v", d.Sections)
	}
}

func TestParseDropsNonStringLeaves(t *testing.T) {
	raw := `{"sections": {"question": "Kept.", "audience": 42, "analysis": null, "process": "  "}}`
	d, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.Sections) != 1 || d.Sections["question"] != "Kept." {
		t.Fatalf("expected only string leaves kept: %+v", d.Sections)
	}
}

func TestParseBackfillsMetadata(t *testing.T) {
	d, err := Parse(`{"sections": {"question": "Bare."}}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ChatMessages == nil {
		t.Fatalf("chat messages must never be nil")
	}
	if d.Timestamp == "" || d.Version == "" {
		t.Fatalf("expected metadata backfill: %+v", d)
	}
}

func TestParseReserializeRoundTrip(t *testing.T) {
	raw := `{"sections": {"question": "What drives adoption of offline-first tooling?", "hypothesis": "Hypothesis 1: habit. Hypothesis 2: connectivity cost."}, "chatMessages": {"question": [{"role": "user", "content": "tighten this"}]}, "timestamp": "2026-01-01T00:00:00Z", "version": "import-primary"}`
	d, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal draft: %v", err)
	}
	d2, err := Parse(string(b))
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if !reflect.DeepEqual(d, d2) {
		t.Fatalf("round trip diverged:\nfirst:  %+v\nsecond: %+v", d, d2)
	}
}

func TestParseFailureCarriesSnippet(t *testing.T) {
	_, err := Parse("not json at all, no braces either")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if pe.RawSnippet == "" {
		t.Fatalf("expected raw snippet in error")
	}
	if !strings.Contains(pe.Error(), "snippet") {
		t.Fatalf("error string should mention snippet: %v", pe)
	}
}
