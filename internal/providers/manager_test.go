package providers

import (
	"testing"

	"paperplanner/internal/config"
)

func TestNewManagerDefaultsToMock(t *testing.T) {
	m, err := NewManager(config.Config{LLMProviders: ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.LLMCount() != 1 {
		t.Fatalf("expected 1 provider got %d", m.LLMCount())
	}
	if _, ref := m.LLMProviderByIndex(0); ref.Name != "mock" {
		t.Fatalf("expected mock provider got %s", ref.Name)
	}
}

func TestNewManagerRejectsUnknownProvider(t *testing.T) {
	if _, err := NewManager(config.Config{LLMProviders: "anthropic"}); err == nil {
		t.Fatalf("expected error for unsupported provider")
	}
}

func TestPreferredLLMOrderPutsMockLast(t *testing.T) {
	m, err := NewManager(config.Config{LLMProviders: "mock|openai:key1|groq"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	order := m.PreferredLLMOrder()
	if len(order) != 3 {
		t.Fatalf("expected 3 indexes got %d", len(order))
	}
	if order[len(order)-1] != 0 {
		t.Fatalf("expected mock index 0 last, got order %v", order)
	}
}

func TestFindLLMProviderByName(t *testing.T) {
	m, err := NewManager(config.Config{LLMProviders: "mock|groq"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ref, ok := m.FindLLMProviderByName("groq"); !ok || ref.Name != "groq" {
		t.Fatalf("expected groq provider, got %+v ok=%v", ref, ok)
	}
	if _, _, ok := m.FindLLMProviderByName("nope"); ok {
		t.Fatalf("expected lookup miss")
	}
}
