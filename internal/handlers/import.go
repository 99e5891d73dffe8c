// internal/handlers/import.go
package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	redis_a "github.com/fusioncl/inventoryms/internal/adapters/redis_adapter"
	"github.com/fusioncl/inventoryms/internal/adapters/storage"
	"github.com/fusioncl/inventoryms/internal/core/domain"
	"github.com/fusioncl/inventoryms/internal/core/ports"
	"github.com/fusioncl/inventoryms/internal/pkg/config"
	"github.com/fusioncl/inventoryms/internal/workers"
)

// TaskEnqueuer is the subset of asynq.Client used by the import handler
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ImportHandler accepts batch ingestion uploads and hands them to the
// queue. The response only acknowledges the handoff; processing happens
// in the worker.
type ImportHandler struct {
	enqueuer TaskEnqueuer
	cache    ports.CacheRepository
	archiver storage.Archiver
	config   *config.Config
	logger   *slog.Logger
}

// NewImportHandler creates a new import handler. archiver may be nil,
// in which case uploads are not archived.
func NewImportHandler(enqueuer TaskEnqueuer, cache ports.CacheRepository, archiver storage.Archiver, config *config.Config, logger *slog.Logger) *ImportHandler {
	return &ImportHandler{
		enqueuer: enqueuer,
		cache:    cache,
		archiver: archiver,
		config:   config,
		logger:   logger.With(slog.String("handler", "import")),
	}
}

// ImportCSV handles POST /api/v1/import/csv
func (h *ImportHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	maxSize := int64(h.config.Import.CSVMaxSizeMB) << 20

	if err := r.ParseMultipartForm(maxSize); err != nil {
		h.respondError(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	if strings.ToLower(filepath.Ext(header.Filename)) != ".csv" {
		h.respondError(w, http.StatusBadRequest, "Only CSV files are supported")
		return
	}

	content, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to read upload", slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to read upload")
		return
	}
	if int64(len(content)) > maxSize {
		h.respondError(w, http.StatusRequestEntityTooLarge, "File exceeds size limit")
		return
	}

	encoding := r.FormValue("encoding")
	if encoding == "" {
		encoding = "utf-8"
	}

	jobID := uuid.New().String()
	payload := workers.CSVImportPayload{
		JobID:    jobID,
		FileName: header.Filename,
		Content:  content,
		Encoding: encoding,
	}

	if !h.enqueue(w, r, workers.TypeCSVImport, payload, jobID) {
		return
	}

	h.archive(r, jobID, header.Filename, content, "text/csv")

	h.logger.InfoContext(ctx, "CSV import queued",
		slog.String("job_id", jobID),
		slog.String("file_name", header.Filename),
		slog.String("encoding", encoding))

	h.respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"message": "File processing started",
		"job_id":  jobID,
	})
}

// ImportExcel handles POST /api/v1/import/excel
func (h *ImportHandler) ImportExcel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	maxSize := int64(h.config.Import.ExcelMaxSizeMB) << 20

	if err := r.ParseMultipartForm(maxSize); err != nil {
		h.respondError(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	if strings.ToLower(filepath.Ext(header.Filename)) != ".xlsx" {
		h.respondError(w, http.StatusBadRequest, "Only Excel files are supported")
		return
	}

	content, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to read upload", slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to read upload")
		return
	}
	if int64(len(content)) > maxSize {
		h.respondError(w, http.StatusRequestEntityTooLarge, "File exceeds size limit")
		return
	}

	jobID := uuid.New().String()
	payload := workers.ExcelImportPayload{
		JobID:    jobID,
		FileName: header.Filename,
		Content:  content,
	}

	if !h.enqueue(w, r, workers.TypeExcelImport, payload, jobID) {
		return
	}

	h.archive(r, jobID, header.Filename, content,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	h.logger.InfoContext(ctx, "Excel import queued",
		slog.String("job_id", jobID),
		slog.String("file_name", header.Filename))

	h.respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"message": "File processing started",
		"job_id":  jobID,
	})
}

// ImportResult handles GET /api/v1/import/{job_id}/result
func (h *ImportHandler) ImportResult(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	jobID := r.PathValue("job_id")

	if _, err := uuid.Parse(jobID); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid job ID format")
		return
	}

	var result domain.ImportResult
	err := h.cache.Get(ctx, redis_a.ImportResultKey(jobID), &result)
	if err != nil {
		if errors.Is(err, redis_a.ErrCacheMiss) {
			h.respondError(w, http.StatusNotFound, "Result not found or expired")
			return
		}
		h.logger.ErrorContext(ctx, "failed to load import result",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to load import result")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"job_id": jobID,
		"result": result,
	})
}

// enqueue marshals and queues a task, writing the error response itself
// when the handoff fails.
func (h *ImportHandler) enqueue(w http.ResponseWriter, r *http.Request, taskType string, payload interface{}, jobID string) bool {
	ctx := r.Context()

	b, err := json.Marshal(payload)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to marshal task payload",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to queue import job")
		return false
	}

	task := asynq.NewTask(taskType, b)
	info, err := h.enqueuer.Enqueue(task,
		asynq.Queue("default"),
		asynq.MaxRetry(3),
		asynq.Retention(24*time.Hour))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to enqueue task",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to queue import job")
		return false
	}

	h.logger.DebugContext(ctx, "task enqueued",
		slog.String("job_id", jobID),
		slog.String("task_id", info.ID))

	return true
}

// archive stores the raw upload best-effort; failures never affect the
// response.
func (h *ImportHandler) archive(r *http.Request, jobID, fileName string, content []byte, contentType string) {
	if h.archiver == nil {
		return
	}

	ctx := r.Context()
	key := storage.ImportKey(jobID, fileName)
	if _, err := h.archiver.Upload(ctx, key, bytes.NewReader(content), contentType); err != nil {
		h.logger.WarnContext(ctx, "failed to archive upload",
			slog.String("job_id", jobID),
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
}

func (h *ImportHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (h *ImportHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
