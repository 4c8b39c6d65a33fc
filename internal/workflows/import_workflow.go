package workflows

import (
	"fmt"
	"time"

	"paperplanner/internal/activities"
	"paperplanner/internal/draft"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const QueryGetImportStatus = "GetImportStatus"

// DocumentImportWorkflow drives one document import end to end: hash the
// upload, run the import ladder in a single activity, persist the outcome,
// and write artifacts. The import activity is never retried by Temporal;
// the pipeline already degrades internally and always yields a draft.
func DocumentImportWorkflow(ctx workflow.Context, input DocumentImportInput) (string, error) {
	status := ImportStatus{
		ProjectID:   input.ProjectID,
		FileName:    input.FileName,
		CurrentStep: "init",
		Status:      "importing",
		Steps:       map[string]string{},
	}
	if err := workflow.SetQueryHandler(ctx, QueryGetImportStatus, func() (ImportStatus, error) {
		return status, nil
	}); err != nil {
		return "", err
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    20 * time.Second,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	if status.ProjectID == "" {
		status.CurrentStep = "compute_project_id"
		status.Steps[status.CurrentStep] = "processing"
		var computeOut activities.ComputeProjectIDOutput
		if err := workflow.ExecuteActivity(ctx, "ComputeProjectIDActivity", activities.ComputeProjectIDInput{FilePath: input.FilePath}).Get(ctx, &computeOut); err != nil {
			return "", err
		}
		status.ProjectID = computeOut.ProjectID
		status.Steps[status.CurrentStep] = "done"
	}

	_ = workflow.ExecuteActivity(ctx, "UpdateProjectStatusActivity", activities.UpdateProjectStatusInput{
		ProjectID: status.ProjectID, Status: "importing",
	}).Get(ctx, nil)

	status.CurrentStep = "run_pipeline"
	status.Steps[status.CurrentStep] = "processing"
	importCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 10 * time.Minute,
		RetryPolicy:         &temporal.RetryPolicy{MaximumAttempts: 1},
	})
	var importOut activities.ImportDocumentOutput
	if err := workflow.ExecuteActivity(importCtx, "ImportDocumentActivity", activities.ImportDocumentInput{
		ProjectID: status.ProjectID,
		FilePath:  input.FilePath,
		FileName:  input.FileName,
		MimeType:  input.MimeType,
	}).Get(ctx, &importOut); err != nil {
		status.Status = "failed"
		status.FailReason = err.Error()
		status.Steps[status.CurrentStep] = "failed"
		_ = workflow.ExecuteActivity(ctx, "UpdateProjectStatusActivity", activities.UpdateProjectStatusInput{
			ProjectID: status.ProjectID, Status: "failed", FailReason: status.FailReason,
		}).Get(ctx, nil)
		return status.Status, nil
	}
	outcome := importOut.Outcome
	status.Stage = string(outcome.Stage)
	status.Steps[status.CurrentStep] = "done"

	status.CurrentStep = "log_llm_calls"
	status.Steps[status.CurrentStep] = "processing"
	for i, call := range outcome.CallLogs {
		callID := fmt.Sprintf("%s-%s-%d", status.ProjectID, call.Operation, i)
		_ = workflow.ExecuteActivity(ctx, "LogLLMCallActivity", activities.LogLLMCallInput{
			CallID:    callID,
			ProjectID: status.ProjectID,
			Call:      call,
		}).Get(ctx, nil)
	}
	status.Steps[status.CurrentStep] = "done"

	status.CurrentStep = "persist_outcome"
	status.Steps[status.CurrentStep] = "processing"
	if err := workflow.ExecuteActivity(ctx, "PersistOutcomeActivity", activities.PersistOutcomeInput{
		ProjectID: status.ProjectID,
		FileName:  input.FileName,
		Outcome:   outcome,
	}).Get(ctx, nil); err != nil {
		return "", err
	}
	status.Steps[status.CurrentStep] = "done"

	status.CurrentStep = "write_artifacts"
	status.Steps[status.CurrentStep] = "processing"
	if err := workflow.ExecuteActivity(ctx, "WriteImportArtifactsActivity", activities.WriteImportArtifactsInput{
		ProjectID: status.ProjectID,
		FileName:  input.FileName,
		Outcome:   outcome,
	}).Get(ctx, nil); err != nil {
		return "", err
	}
	status.Steps[status.CurrentStep] = "done"

	status.CurrentStep = "done"
	if outcome.Stage == draft.StageError {
		status.Status = "failed"
	} else {
		status.Status = "imported"
	}
	return string(outcome.Stage), nil
}
