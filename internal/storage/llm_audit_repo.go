package storage

import (
	"context"
	"fmt"
)

type LLMCallRecord struct {
	CallID       string
	ProjectID    string
	Operation    string
	ProviderName string
	Model        string
	Status       string
	ErrorType    string
}

type LLMAuditRepo struct {
	db *DB
}

func NewLLMAuditRepo(db *DB) *LLMAuditRepo {
	return &LLMAuditRepo{db: db}
}

func (r *LLMAuditRepo) Insert(ctx context.Context, rec LLMCallRecord) error {
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO llm_calls (call_id, project_id, operation, provider_name, model, status, error_type)
VALUES ($1, $2, $3, NULLIF($4,''), NULLIF($5,''), $6, NULLIF($7,''))
ON CONFLICT (call_id) DO NOTHING`,
		rec.CallID, rec.ProjectID, rec.Operation, rec.ProviderName, rec.Model, rec.Status, rec.ErrorType,
	)
	if err != nil {
		return fmt.Errorf("insert llm call: %w", err)
	}
	return nil
}
