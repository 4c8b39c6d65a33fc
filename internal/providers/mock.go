package providers

import (
	"context"
	"encoding/json"
	"strings"
)

// MockProvider returns deterministic output shaped like a real import
// response, so the pipeline can run end to end without network access.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, ProviderInfo, error) {
	_ = ctx
	info := ProviderInfo{Name: "mock", Model: "mock-llm-v1", Key: "mock"}
	op := strings.ToLower(req.Operation)
	if strings.Contains(op, "import") {
		sections := map[string]string{
			"question":   "Research Question: How does the mocked variable affect the mocked outcome in the study population?",
			"audience":   "Target Audience/Community: deterministic-testing researchers and pipeline integrators.",
			"hypothesis": "Hypothesis 1: the effect is positive. Hypothesis 2: the effect is absent. Distinguishing them matters for theory.",
			"experiment": "Key Variables: one manipulated, one measured. Sample & Size: 40 mock subjects. Procedure: run the standard protocol.",
			"analysis":   "Primary analysis: mixed-effects regression of outcome on condition, preregistered exclusions.",
			"process":    "Skills needed: experiment design and statistics. Timeline: three months from setup to writeup.",
			"abstract":   "Background, objective, methods, expected results, and significance summarized deterministically for tests.",
		}
		payload := map[string]any{"sections": sections, "chatMessages": map[string]any{}}
		b, _ := json.Marshal(payload)
		return GenerateResponse{Text: string(b)}, info, nil
	}
	return GenerateResponse{Text: "Mock response."}, info, nil
}
