package workflows

import (
	"context"
	"errors"
	"testing"

	"paperplanner/internal/activities"
	"paperplanner/internal/draft"
	"paperplanner/internal/importer"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"
)

func registerActivityName[T any](env *testsuite.TestWorkflowEnvironment, name string, fn T) {
	env.RegisterActivityWithOptions(fn, activity.RegisterOptions{Name: name})
}

func registerImportActivities(env *testsuite.TestWorkflowEnvironment) {
	registerActivityName(env, "ComputeProjectIDActivity", func(context.Context, activities.ComputeProjectIDInput) (activities.ComputeProjectIDOutput, error) {
		return activities.ComputeProjectIDOutput{}, nil
	})
	registerActivityName(env, "UpdateProjectStatusActivity", func(context.Context, activities.UpdateProjectStatusInput) error { return nil })
	registerActivityName(env, "ImportDocumentActivity", func(context.Context, activities.ImportDocumentInput) (activities.ImportDocumentOutput, error) {
		return activities.ImportDocumentOutput{}, nil
	})
	registerActivityName(env, "LogLLMCallActivity", func(context.Context, activities.LogLLMCallInput) error { return nil })
	registerActivityName(env, "PersistOutcomeActivity", func(context.Context, activities.PersistOutcomeInput) error { return nil })
	registerActivityName(env, "WriteImportArtifactsActivity", func(context.Context, activities.WriteImportArtifactsInput) error { return nil })
}

func TestDocumentImportWorkflowSuccess(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(DocumentImportWorkflow)
	registerImportActivities(env)

	outcome := importer.Outcome{
		Draft: draft.ProjectDraft{
			Sections: map[string]string{"question": "What drives reef recovery after bleaching events?"},
			Version:  string(draft.StagePrimary),
		},
		Stage: draft.StagePrimary,
		CallLogs: []importer.CallLog{
			{Operation: "import_primary", Provider: "mock", Model: "mock-llm-v1", Status: "ok"},
		},
	}

	env.OnActivity("ComputeProjectIDActivity", mock.Anything, activities.ComputeProjectIDInput{FilePath: "/tmp/reef.pdf"}).Return(activities.ComputeProjectIDOutput{ProjectID: "proj123"}, nil)
	env.OnActivity("UpdateProjectStatusActivity", mock.Anything, mock.Anything).Return(nil)
	env.OnActivity("ImportDocumentActivity", mock.Anything, activities.ImportDocumentInput{
		ProjectID: "proj123", FilePath: "/tmp/reef.pdf", FileName: "reef.pdf", MimeType: "application/pdf",
	}).Return(activities.ImportDocumentOutput{Outcome: outcome}, nil)
	env.OnActivity("LogLLMCallActivity", mock.Anything, activities.LogLLMCallInput{
		CallID: "proj123-import_primary-0", ProjectID: "proj123", Call: outcome.CallLogs[0],
	}).Return(nil)
	env.OnActivity("PersistOutcomeActivity", mock.Anything, mock.Anything).Return(nil)
	env.OnActivity("WriteImportArtifactsActivity", mock.Anything, mock.Anything).Return(nil)

	env.ExecuteWorkflow(DocumentImportWorkflow, DocumentImportInput{FilePath: "/tmp/reef.pdf", FileName: "reef.pdf", MimeType: "application/pdf"})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out string
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, string(draft.StagePrimary), out)

	qr, err := env.QueryWorkflow(QueryGetImportStatus)
	require.NoError(t, err)
	var status ImportStatus
	require.NoError(t, qr.Get(&status))
	require.Equal(t, "imported", status.Status)
	require.Equal(t, string(draft.StagePrimary), status.Stage)
	require.Equal(t, "done", status.Steps["run_pipeline"])
}

func TestDocumentImportWorkflowErrorStageStillCompletes(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(DocumentImportWorkflow)
	registerImportActivities(env)

	outcome := importer.Outcome{
		Draft: draft.ProjectDraft{
			Sections: map[string]string{"question": "Import of \"bad.pdf\" failed at the extraction stage."},
			Version:  string(draft.StageError),
		},
		Stage: draft.StageError,
		Notes: []string{"extraction stage failed: extract: parser_failure"},
	}

	env.OnActivity("UpdateProjectStatusActivity", mock.Anything, mock.Anything).Return(nil)
	env.OnActivity("ImportDocumentActivity", mock.Anything, mock.Anything).Return(activities.ImportDocumentOutput{Outcome: outcome}, nil)
	env.OnActivity("PersistOutcomeActivity", mock.Anything, mock.Anything).Return(nil)
	env.OnActivity("WriteImportArtifactsActivity", mock.Anything, mock.Anything).Return(nil)

	env.ExecuteWorkflow(DocumentImportWorkflow, DocumentImportInput{ProjectID: "proj456", FilePath: "/tmp/bad.pdf", FileName: "bad.pdf"})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out string
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, string(draft.StageError), out)

	qr, err := env.QueryWorkflow(QueryGetImportStatus)
	require.NoError(t, err)
	var status ImportStatus
	require.NoError(t, qr.Get(&status))
	require.Equal(t, "failed", status.Status)
}

func TestDocumentImportWorkflowActivityFailureFailsGracefully(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(DocumentImportWorkflow)
	registerImportActivities(env)

	env.OnActivity("UpdateProjectStatusActivity", mock.Anything, mock.Anything).Return(nil)
	env.OnActivity("ImportDocumentActivity", mock.Anything, mock.Anything).Return(activities.ImportDocumentOutput{}, errors.New("worker host lost disk"))

	env.ExecuteWorkflow(DocumentImportWorkflow, DocumentImportInput{ProjectID: "proj789", FilePath: "/tmp/p.pdf", FileName: "p.pdf"})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out string
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, "failed", out)
}
