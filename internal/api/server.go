package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"paperplanner/internal/config"
	"paperplanner/internal/draft"
	"paperplanner/internal/extract"
	"paperplanner/internal/importer"
	"paperplanner/internal/models"
	"paperplanner/internal/providers"
	"paperplanner/internal/storage"
	"paperplanner/internal/util"
	"paperplanner/internal/workflows"

	"github.com/google/uuid"
	enumspb "go.temporal.io/api/enums/v1"
	tclient "go.temporal.io/sdk/client"
)

type Server struct {
	cfg         config.Config
	db          *storage.DB
	projectRepo *storage.ProjectRepo
	auditRepo   *storage.LLMAuditRepo
	providers   *providers.Manager
	pipeline    *importer.Pipeline
	temporal    tclient.Client
}

func NewServer(cfg config.Config) *Server {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db, err := storage.NewDB(ctx, cfg.PostgresURL)
	if err != nil {
		panic(err)
	}
	pm, err := providers.NewManager(cfg)
	if err != nil {
		panic(err)
	}
	tc, err := tclient.Dial(tclient.Options{HostPort: cfg.TemporalAddress})
	if err != nil {
		panic(err)
	}
	llm, _ := pm.LLMProviderByIndex(firstPreferred(pm))
	return &Server{
		cfg:         cfg,
		db:          db,
		projectRepo: storage.NewProjectRepo(db),
		auditRepo:   storage.NewLLMAuditRepo(db),
		providers:   pm,
		pipeline:    importer.New(cfg, llm),
		temporal:    tc,
	}
}

func firstPreferred(pm *providers.Manager) int {
	order := pm.PreferredLLMOrder()
	if len(order) == 0 {
		return 0
	}
	return order[0]
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/import", s.handleImport)
	mux.HandleFunc("/projects", s.handleProjects)
	mux.HandleFunc("/projects/", s.handleProjectsScoped)
	return withCORS(mux)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// handleImport runs the whole import ladder synchronously in-request and
// returns the tagged outcome. The hosting UI is expected to disable the
// import control while one is in flight.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	fh, err := singleUpload(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	b, err := readUpload(fh)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	projectID := util.SHA256Hex(b)
	if err := s.saveUpload(projectID, fh.Filename, b); err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}

	outcome := s.pipeline.Run(r.Context(), extract.Input{
		Bytes:    b,
		FileName: fh.Filename,
		MimeType: fh.Header.Get("Content-Type"),
	})

	status := "imported"
	if outcome.Stage == draft.StageError {
		status = "failed"
	}
	if err := s.projectRepo.UpsertProject(r.Context(), models.Project{
		ProjectID: projectID,
		Filename:  filepath.Base(fh.Filename),
		Status:    status,
		Stage:     string(outcome.Stage),
		Draft:     outcome.Draft,
	}); err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	for _, call := range outcome.CallLogs {
		_ = s.auditRepo.Insert(r.Context(), storage.LLMCallRecord{
			CallID:       uuid.NewString(),
			ProjectID:    projectID,
			Operation:    call.Operation,
			ProviderName: call.Provider,
			Model:        call.Model,
			Status:       call.Status,
			ErrorType:    call.ErrorType,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"project_id": projectID,
		"stage":      outcome.Stage,
		"degraded":   outcome.Degraded(),
		"notes":      outcome.Notes,
		"draft":      outcome.Draft,
	})
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	projects, err := s.projectRepo.ListProjects(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"projects": projects})
}

func (s *Server) handleProjectsScoped(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/projects/"), "/"), "/")
	if len(parts) < 1 || parts[0] == "" {
		writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
		return
	}
	projectID := parts[0]

	if len(parts) == 1 {
		if r.Method != http.MethodGet {
			writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
			return
		}
		p, err := s.projectRepo.GetProjectByID(r.Context(), projectID)
		if err != nil {
			writeErr(w, http.StatusNotFound, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
		return
	}

	if len(parts) == 2 && parts[1] == "import" {
		if r.Method != http.MethodPost {
			writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
			return
		}
		s.handleAsyncImport(w, r, projectID)
		return
	}

	if len(parts) == 2 && parts[1] == "status" {
		if r.Method != http.MethodGet {
			writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
			return
		}
		var status workflows.ImportStatus
		resp, err := s.temporal.QueryWorkflow(r.Context(), "import-"+projectID, "", workflows.QueryGetImportStatus)
		if err != nil {
			// Fall back to DB state when no active workflow can be queried.
			p, pErr := s.projectRepo.GetProjectByID(r.Context(), projectID)
			if pErr != nil {
				writeErr(w, http.StatusNotFound, pErr)
				return
			}
			writeJSON(w, http.StatusOK, workflows.ImportStatus{
				ProjectID:  p.ProjectID,
				FileName:   p.Filename,
				Status:     p.Status,
				Stage:      p.Stage,
				FailReason: p.FailReason,
			})
			return
		}
		if err := resp.Get(&status); err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, status)
		return
	}

	if len(parts) == 3 && parts[1] == "export" && parts[2] == "markdown" {
		if r.Method != http.MethodGet {
			writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
			return
		}
		p, err := s.projectRepo.GetProjectByID(r.Context(), projectID)
		if err != nil {
			writeErr(w, http.StatusNotFound, err)
			return
		}
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		_, _ = io.WriteString(w, draft.RenderMarkdown(p.Draft))
		return
	}

	writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
}

// handleAsyncImport saves the upload and hands it to the import workflow.
func (s *Server) handleAsyncImport(w http.ResponseWriter, r *http.Request, projectID string) {
	fh, err := singleUpload(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	b, err := readUpload(fh)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	if err := s.saveUpload(projectID, fh.Filename, b); err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	savedPath := filepath.Join(s.cfg.DataInRoot, projectID, filepath.Base(fh.Filename))

	we, err := s.temporal.ExecuteWorkflow(r.Context(), tclient.StartWorkflowOptions{
		ID:                                       "import-" + projectID,
		TaskQueue:                                s.cfg.TemporalTaskQueue,
		WorkflowIDReusePolicy:                    enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
		WorkflowExecutionErrorWhenAlreadyStarted: true,
	}, workflows.DocumentImportWorkflow, workflows.DocumentImportInput{
		ProjectID: projectID,
		FilePath:  savedPath,
		FileName:  filepath.Base(fh.Filename),
		MimeType:  fh.Header.Get("Content-Type"),
	})
	if err != nil {
		writeErr(w, http.StatusConflict, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"workflow_id": we.GetID(), "run_id": we.GetRunID()})
}

func singleUpload(r *http.Request) (*multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		return nil, fmt.Errorf("parse multipart: %w", err)
	}
	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		for _, v := range r.MultipartForm.File {
			if len(v) > 0 {
				files = v
				break
			}
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no file provided")
	}
	name := strings.ToLower(files[0].Filename)
	if !strings.HasSuffix(name, ".pdf") && !strings.HasSuffix(name, ".docx") {
		return nil, fmt.Errorf("unsupported file type: %s", files[0].Filename)
	}
	return files[0], nil
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()
	b, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return b, nil
}

func (s *Server) saveUpload(projectID, fileName string, b []byte) error {
	dir := filepath.Join(s.cfg.DataInRoot, projectID)
	if err := util.EnsureDir(dir); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "upload-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), util.SafeJoin(dir, fileName)); err != nil {
		return fmt.Errorf("atomic move upload: %w", err)
	}
	return nil
}
