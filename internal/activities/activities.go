package activities

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"paperplanner/internal/config"
	"paperplanner/internal/draft"
	"paperplanner/internal/extract"
	"paperplanner/internal/importer"
	"paperplanner/internal/models"
	"paperplanner/internal/providers"
	"paperplanner/internal/storage"
	"paperplanner/internal/util"
)

type Activities struct {
	cfg         config.Config
	projectRepo *storage.ProjectRepo
	auditRepo   *storage.LLMAuditRepo
	pipeline    *importer.Pipeline
}

func New(cfg config.Config, db *storage.DB) (*Activities, error) {
	pm, err := providers.NewManager(cfg)
	if err != nil {
		return nil, err
	}
	llm, _ := pm.LLMProviderByIndex(firstPreferred(pm))
	return &Activities{
		cfg:         cfg,
		projectRepo: storage.NewProjectRepo(db),
		auditRepo:   storage.NewLLMAuditRepo(db),
		pipeline:    importer.New(cfg, llm),
	}, nil
}

func firstPreferred(pm *providers.Manager) int {
	order := pm.PreferredLLMOrder()
	if len(order) == 0 {
		return 0
	}
	return order[0]
}

func (a *Activities) ComputeProjectIDActivity(ctx context.Context, in ComputeProjectIDInput) (ComputeProjectIDOutput, error) {
	_ = ctx
	f, err := os.Open(in.FilePath)
	if err != nil {
		return ComputeProjectIDOutput{}, fmt.Errorf("open file for hash: %w", err)
	}
	defer f.Close()
	sum, err := util.SHA256HexFromReader(f)
	if err != nil {
		return ComputeProjectIDOutput{}, fmt.Errorf("hash file: %w", err)
	}
	return ComputeProjectIDOutput{ProjectID: sum}, nil
}

// ImportDocumentActivity runs the whole import ladder. It never returns an
// activity error for document-level problems; the pipeline degrades
// internally and the outcome carries the stage tag.
func (a *Activities) ImportDocumentActivity(ctx context.Context, in ImportDocumentInput) (ImportDocumentOutput, error) {
	b, err := os.ReadFile(in.FilePath)
	if err != nil {
		// An unreadable upload flows through the pipeline as a read failure
		// so the caller still receives a diagnostic draft.
		b = nil
	}
	outcome := a.pipeline.Run(ctx, extract.Input{Bytes: b, FileName: in.FileName, MimeType: in.MimeType})
	return ImportDocumentOutput{Outcome: outcome}, nil
}

func (a *Activities) PersistOutcomeActivity(ctx context.Context, in PersistOutcomeInput) error {
	status := "imported"
	failReason := ""
	if in.Outcome.Stage == draft.StageError {
		status = "failed"
		if len(in.Outcome.Notes) > 0 {
			failReason = in.Outcome.Notes[len(in.Outcome.Notes)-1]
		}
	}
	return a.projectRepo.UpsertProject(ctx, models.Project{
		ProjectID:  in.ProjectID,
		Filename:   in.FileName,
		Status:     status,
		Stage:      string(in.Outcome.Stage),
		FailReason: failReason,
		Draft:      in.Outcome.Draft,
	})
}

func (a *Activities) UpdateProjectStatusActivity(ctx context.Context, in UpdateProjectStatusInput) error {
	return a.projectRepo.UpdateProjectStatus(ctx, in.ProjectID, in.Status, in.FailReason)
}

func (a *Activities) WriteImportArtifactsActivity(ctx context.Context, in WriteImportArtifactsInput) error {
	_ = ctx
	base := filepath.Join(a.cfg.DataOutRoot, "projects", in.ProjectID)
	if err := util.EnsureDir(base); err != nil {
		return err
	}
	if err := util.WriteJSONAtomic(filepath.Join(base, "draft.json"), in.Outcome.Draft); err != nil {
		return err
	}
	return util.WriteJSONAtomic(filepath.Join(base, "import_log.json"), map[string]any{
		"project_id": in.ProjectID,
		"filename":   in.FileName,
		"stage":      in.Outcome.Stage,
		"degraded":   in.Outcome.Degraded(),
		"notes":      in.Outcome.Notes,
		"llm_calls":  in.Outcome.CallLogs,
	})
}

func (a *Activities) LogLLMCallActivity(ctx context.Context, in LogLLMCallInput) error {
	return a.auditRepo.Insert(ctx, storage.LLMCallRecord{
		CallID:       in.CallID,
		ProjectID:    in.ProjectID,
		Operation:    in.Call.Operation,
		ProviderName: in.Call.Provider,
		Model:        in.Call.Model,
		Status:       in.Call.Status,
		ErrorType:    in.Call.ErrorType,
	})
}
