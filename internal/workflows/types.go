package workflows

type DocumentImportInput struct {
	ProjectID string `json:"project_id"`
	FilePath  string `json:"file_path"`
	FileName  string `json:"file_name"`
	MimeType  string `json:"mime_type"`
}

type ImportStatus struct {
	ProjectID   string            `json:"project_id"`
	FileName    string            `json:"file_name"`
	CurrentStep string            `json:"current_step"`
	Status      string            `json:"status"`
	Stage       string            `json:"stage,omitempty"`
	FailReason  string            `json:"fail_reason,omitempty"`
	Steps       map[string]string `json:"steps"`
}
