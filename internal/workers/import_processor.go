// internal/workers/import_processor.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/tealeg/xlsx/v3"

	redis_a "github.com/fusioncl/inventoryms/internal/adapters/redis_adapter"
	"github.com/fusioncl/inventoryms/internal/core/domain"
	"github.com/fusioncl/inventoryms/internal/core/ports"
	"github.com/fusioncl/inventoryms/internal/pkg/config"
	"github.com/fusioncl/inventoryms/internal/pkg/logger"
)

// ImportProcessor consumes batch ingestion tasks. Every job finishes
// with a cached result record, whether or not any rows survived.
type ImportProcessor struct {
	importer ports.Importer
	cache    ports.CacheRepository
	config   *config.Config
	logger   *slog.Logger
}

// NewImportProcessor creates a new import processor
func NewImportProcessor(importer ports.Importer, cache ports.CacheRepository, config *config.Config, logger *slog.Logger) *ImportProcessor {
	return &ImportProcessor{
		importer: importer,
		cache:    cache,
		config:   config,
		logger:   logger.With(slog.String("processor", "import")),
	}
}

// ProcessCSV handles an import:csv task
func (p *ImportProcessor) ProcessCSV(ctx context.Context, t *asynq.Task) error {
	start := time.Now()

	var payload CSVImportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	ctx = context.WithValue(ctx, logger.ContextKeyJobID, payload.JobID)
	p.logger.InfoContext(ctx, "processing CSV import",
		slog.String("file_name", payload.FileName),
		slog.Int("size_bytes", len(payload.Content)))

	if p.config.Import.ProcessingTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.Import.ProcessingTimeout)
		defer cancel()
	}

	result := p.importer.ImportCSV(ctx, payload.Content, payload.Encoding)
	p.storeResult(ctx, payload.JobID, result)

	p.logger.InfoContext(ctx, "CSV import completed",
		slog.Int("processed", result.Processed),
		slog.Int("errors", len(result.Errors)),
		slog.Duration("took", time.Since(start)))

	// Row failures are recorded in the result, not retried.
	return nil
}

// ProcessExcel handles an import:excel task
func (p *ImportProcessor) ProcessExcel(ctx context.Context, t *asynq.Task) error {
	start := time.Now()

	var payload ExcelImportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	ctx = context.WithValue(ctx, logger.ContextKeyJobID, payload.JobID)
	p.logger.InfoContext(ctx, "processing Excel import",
		slog.String("file_name", payload.FileName),
		slog.Int("size_bytes", len(payload.Content)))

	if p.config.Import.ProcessingTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.Import.ProcessingTimeout)
		defer cancel()
	}

	rows, err := extractRows(payload.Content)
	if err != nil {
		result := domain.ImportResult{
			Errors: []string{fmt.Sprintf("File processing error: %s", err)},
		}
		p.storeResult(ctx, payload.JobID, result)
		p.logger.WarnContext(ctx, "Excel import failed to open workbook",
			slog.String("error", err.Error()))
		return nil
	}

	result := p.importer.ImportRows(ctx, rows)
	p.storeResult(ctx, payload.JobID, result)

	p.logger.InfoContext(ctx, "Excel import completed",
		slog.Int("processed", result.Processed),
		slog.Int("errors", len(result.Errors)),
		slog.Duration("took", time.Since(start)))

	return nil
}

// extractRows flattens the first sheet of a workbook into header-keyed
// records, mirroring how CSV rows are keyed.
func extractRows(content []byte) ([]map[string]string, error) {
	wb, err := xlsx.OpenBinary(content)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	if len(wb.Sheets) == 0 {
		return nil, nil
	}

	sheet := wb.Sheets[0]
	defer sheet.Close()

	var header []string
	var records []map[string]string

	err = sheet.ForEachRow(func(row *xlsx.Row) error {
		var cells []string
		rerr := row.ForEachCell(func(cell *xlsx.Cell) error {
			cells = append(cells, cell.String())
			return nil
		})
		if rerr != nil {
			return rerr
		}

		if header == nil {
			header = cells
			return nil
		}

		record := make(map[string]string, len(header))
		for i, key := range header {
			if i < len(cells) {
				record[key] = cells[i]
			}
		}
		records = append(records, record)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}

	return records, nil
}

func (p *ImportProcessor) storeResult(ctx context.Context, jobID string, result interface{}) {
	key := redis_a.ImportResultKey(jobID)
	ttl := p.config.Import.ResultTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	if err := p.cache.SetWithTTL(ctx, key, result, ttl); err != nil {
		p.logger.ErrorContext(ctx, "failed to store import result",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
}
