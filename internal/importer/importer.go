// Package importer coordinates the document-import ladder: a primary
// extraction+generation attempt, a stricter retry, a filename-only synthetic
// fallback, and a diagnostic error draft. The contract is "always return a
// usable ProjectDraft-shaped outcome"; no stage error escapes Run.
package importer

import (
	"context"
	"errors"
	"fmt"

	"paperplanner/internal/config"
	"paperplanner/internal/draft"
	"paperplanner/internal/extract"
	"paperplanner/internal/prompts"
	"paperplanner/internal/providers"
)

// CallLog records one gateway call for auditing.
type CallLog struct {
	Operation string `json:"operation"`
	Provider  string `json:"provider"`
	Model     string `json:"model"`
	Status    string `json:"status"`
	ErrorType string `json:"error_type,omitempty"`
}

// Outcome is the tagged result of one import attempt.
type Outcome struct {
	Draft    draft.ProjectDraft `json:"draft"`
	Stage    draft.Stage        `json:"stage"`
	Notes    []string           `json:"notes,omitempty"`
	CallLogs []CallLog          `json:"call_logs,omitempty"`
}

func (o Outcome) Degraded() bool {
	return o.Stage.Degraded()
}

type Pipeline struct {
	extractor *extract.Extractor
	composer  *prompts.Composer
	llm       providers.LLMProvider

	temperature float64
	maxTokens   int
	minFieldLen int
}

func New(cfg config.Config, llm providers.LLMProvider) *Pipeline {
	return &Pipeline{
		extractor:   extract.New(cfg.ExtractCharCap, cfg.ExtractPageCap),
		composer:    prompts.NewComposer(cfg.PromptDocCharCap),
		llm:         llm,
		temperature: cfg.LLMTemperature,
		maxTokens:   cfg.LLMMaxTokens,
		minFieldLen: cfg.MinFieldLength,
	}
}

// Run executes the ladder. The stage sequence is strictly
// Primary -> Simplified -> FilenameFallback -> Error; earlier stages are
// never revisited. Extraction failure and an unauthorized gateway skip
// straight to the error draft.
func (p *Pipeline) Run(ctx context.Context, in extract.Input) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = p.errorOutcome(in.FileName, "pipeline", fmt.Errorf("panic: %v", r), "", out.Notes, out.CallLogs)
		}
	}()

	doc, err := p.extractor.Extract(in)
	if err != nil {
		partial := ""
		var ee *extract.Error
		if errors.As(err, &ee) {
			partial = ee.Partial
		}
		return p.errorOutcome(in.FileName, "extraction", err, partial, nil, nil)
	}

	var notes []string
	var logs []CallLog

	d, err := p.attempt(ctx, doc, prompts.ModePrimary, "import_primary", &logs)
	if err == nil {
		d.Version = string(draft.StagePrimary)
		return Outcome{Draft: d, Stage: draft.StagePrimary, Notes: notes, CallLogs: logs}
	}
	if fatal(ctx, err) {
		return p.errorOutcome(in.FileName, "primary", err, doc.Content, notes, logs)
	}
	notes = append(notes, "primary attempt failed: "+err.Error())

	d, err = p.attempt(ctx, doc, prompts.ModeSimplified, "import_retry", &logs)
	if err == nil {
		d.Version = string(draft.StageRetried)
		return Outcome{Draft: d, Stage: draft.StageRetried, Notes: notes, CallLogs: logs}
	}
	if fatal(ctx, err) {
		return p.errorOutcome(in.FileName, "retry", err, doc.Content, notes, logs)
	}
	notes = append(notes, "simplified retry failed: "+err.Error())

	d, err = p.filenameFallback(ctx, in.FileName, doc.Content, &logs)
	if err == nil {
		d.Version = string(draft.StageFilenameFallback)
		return Outcome{Draft: d, Stage: draft.StageFilenameFallback, Notes: notes, CallLogs: logs}
	}
	notes = append(notes, "filename fallback failed: "+err.Error())

	return p.errorOutcome(in.FileName, "filename_fallback", err, doc.Content, notes, logs)
}

// attempt runs compose -> gateway -> parse -> validate for one prompt mode.
func (p *Pipeline) attempt(ctx context.Context, doc extract.Text, mode prompts.Mode, op string, logs *[]CallLog) (draft.ProjectDraft, error) {
	pr := p.composer.Build(doc, mode)
	text, err := p.generate(ctx, op, pr, logs)
	if err != nil {
		return draft.ProjectDraft{}, err
	}
	d, err := draft.Parse(text)
	if err != nil {
		return draft.ProjectDraft{}, err
	}
	return p.accept(d)
}

// accept applies the validation policy: group-exclusivity violations
// escalate, length-only violations on essential fields are backfilled.
func (p *Pipeline) accept(d draft.ProjectDraft) (draft.ProjectDraft, error) {
	vr := draft.Validate(d, p.minFieldLen)
	if vr.OK {
		return freshChat(d), nil
	}
	for _, m := range vr.Missing {
		if m == draft.ViolationApproachGroup || m == draft.ViolationDataMethodGroup {
			return draft.ProjectDraft{}, fmt.Errorf("draft invalid: %v", vr.Missing)
		}
	}
	repaired, _ := draft.BackfillShort(d, p.minFieldLen)
	if vr2 := draft.Validate(repaired, p.minFieldLen); !vr2.OK {
		return draft.ProjectDraft{}, fmt.Errorf("draft invalid after backfill: %v", vr2.Missing)
	}
	return freshChat(repaired), nil
}

// generate performs the gateway call, checking for cancellation first. Once
// the call has started a cancelled context surfaces as a gateway error and
// the result is abandoned, never awaited.
func (p *Pipeline) generate(ctx context.Context, op string, pr prompts.Prompts, logs *[]CallLog) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	resp, info, err := p.llm.Generate(ctx, providers.GenerateRequest{
		Operation:   op,
		System:      pr.System,
		Prompt:      pr.Task,
		Temperature: p.temperature,
		MaxTokens:   p.maxTokens,
		JSONMode:    true,
	})
	entry := CallLog{Operation: op, Provider: info.Name, Model: info.Model, Status: "ok"}
	if err != nil {
		entry.Status = "error"
		if ge, ok := providers.AsGatewayError(err); ok {
			entry.ErrorType = string(ge.Kind)
		}
		*logs = append(*logs, entry)
		return "", err
	}
	*logs = append(*logs, entry)
	return resp.Text, nil
}

// fatal reports errors that no later ladder stage can fix: a cancelled
// import or a gateway key that is missing or rejected.
func fatal(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	if ge, ok := providers.AsGatewayError(err); ok {
		return ge.Kind == providers.GatewayUnauthorized
	}
	return false
}

// freshChat guarantees a freshly imported document starts with no chat
// history, regardless of what the model emitted.
func freshChat(d draft.ProjectDraft) draft.ProjectDraft {
	d.ChatMessages = map[string][]draft.ChatMessage{}
	return d
}
