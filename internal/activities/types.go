package activities

import (
	"paperplanner/internal/importer"
)

type ComputeProjectIDInput struct {
	FilePath string `json:"file_path"`
}

type ComputeProjectIDOutput struct {
	ProjectID string `json:"project_id"`
}

type ImportDocumentInput struct {
	ProjectID string `json:"project_id"`
	FilePath  string `json:"file_path"`
	FileName  string `json:"file_name"`
	MimeType  string `json:"mime_type"`
}

type ImportDocumentOutput struct {
	Outcome importer.Outcome `json:"outcome"`
}

type PersistOutcomeInput struct {
	ProjectID string           `json:"project_id"`
	FileName  string           `json:"file_name"`
	Outcome   importer.Outcome `json:"outcome"`
}

type UpdateProjectStatusInput struct {
	ProjectID  string `json:"project_id"`
	Status     string `json:"status"`
	FailReason string `json:"fail_reason,omitempty"`
}

type WriteImportArtifactsInput struct {
	ProjectID string           `json:"project_id"`
	FileName  string           `json:"file_name"`
	Outcome   importer.Outcome `json:"outcome"`
}

type LogLLMCallInput struct {
	CallID    string           `json:"call_id"`
	ProjectID string           `json:"project_id"`
	Call      importer.CallLog `json:"call"`
}
