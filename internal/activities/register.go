package activities

import "go.temporal.io/sdk/worker"

func Register(w worker.Worker, a *Activities) {
	w.RegisterActivity(a.ComputeProjectIDActivity)
	w.RegisterActivity(a.ImportDocumentActivity)
	w.RegisterActivity(a.PersistOutcomeActivity)
	w.RegisterActivity(a.UpdateProjectStatusActivity)
	w.RegisterActivity(a.WriteImportArtifactsActivity)
	w.RegisterActivity(a.LogLLMCallActivity)
}
