package models

import (
	"time"

	"paperplanner/internal/draft"
)

type Project struct {
	ProjectID  string             `json:"project_id"`
	Filename   string             `json:"filename"`
	Status     string             `json:"status"`
	Stage      string             `json:"stage,omitempty"`
	FailReason string             `json:"fail_reason,omitempty"`
	Draft      draft.ProjectDraft `json:"draft"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}
