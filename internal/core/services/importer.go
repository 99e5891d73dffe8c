// internal/core/services/importer.go
package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/ianaindex"

	"github.com/fusioncl/inventoryms/internal/core/domain"
	"github.com/fusioncl/inventoryms/internal/core/ports"
)

// DefaultEncoding is assumed when a batch payload names no charset.
const DefaultEncoding = "utf-8"

// ImportService runs batch ingestion on top of the catalog service.
type ImportService struct {
	catalog ports.CatalogService
	logger  *slog.Logger
}

// Statically assert that *ImportService implements the Importer interface.
var _ ports.Importer = (*ImportService)(nil)

// NewImportService creates a new import service
func NewImportService(catalog ports.CatalogService, logger *slog.Logger) *ImportService {
	return &ImportService{
		catalog: catalog,
		logger:  logger.With(slog.String("service", "import")),
	}
}

// ImportCSV ingests a whole CSV file. The first record is the header;
// every later record is reconciled independently, so one bad row never
// aborts the batch. Only a decode or header failure stops the job, and
// even that comes back as a result rather than an error.
func (s *ImportService) ImportCSV(ctx context.Context, content []byte, encoding string) domain.ImportResult {
	result := domain.ImportResult{Errors: []string{}}

	text, err := decodeCharset(content, encoding)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("File processing error: %s", err))
		return result
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return result
	}
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("File processing error: %s", err))
		return result
	}

	rowNum := 0
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", rowNum, err))
			continue
		}
		s.processRecord(ctx, &result, rowNum, buildRecord(header, fields))
	}

	s.logger.InfoContext(ctx, "csv import finished",
		slog.Int("processed", result.Processed),
		slog.Int("errors", len(result.Errors)))

	return result
}

// ImportRows reconciles pre-parsed records, numbering them from 1.
func (s *ImportService) ImportRows(ctx context.Context, rows []map[string]string) domain.ImportResult {
	result := domain.ImportResult{Errors: []string{}}

	for i, row := range rows {
		s.processRecord(ctx, &result, i+1, row)
	}

	return result
}

func (s *ImportService) processRecord(ctx context.Context, result *domain.ImportResult, rowNum int, record map[string]string) {
	if err := s.reconcile(ctx, record); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", rowNum, err))
		return
	}
	result.Processed++
}

// reconcile shields the batch from panics in a single row.
func (s *ImportService) reconcile(ctx context.Context, record map[string]string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "row reconciliation panicked", slog.Any("panic", r))
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()

	return s.catalog.ReconcileRow(ctx, record)
}

// buildRecord maps header names to field values. Short records simply
// lack the trailing keys; surplus fields without a header are dropped.
func buildRecord(header, fields []string) map[string]string {
	record := make(map[string]string, len(header))
	for i, name := range header {
		if i < len(fields) {
			record[name] = fields[i]
		}
	}
	return record
}

// decodeCharset decodes content using an IANA charset label and rejects
// byte sequences that are not valid for it. x/text decoders substitute
// U+FFFD instead of failing, so the substitution itself is the signal.
func decodeCharset(content []byte, label string) (string, error) {
	if label == "" {
		label = DefaultEncoding
	}

	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil || enc == nil {
		return "", fmt.Errorf("unknown encoding %q", label)
	}

	decoded, err := enc.NewDecoder().Bytes(content)
	if err != nil {
		return "", fmt.Errorf("cannot decode content as %s: %s", label, err)
	}
	if !utf8.Valid(decoded) || bytes.ContainsRune(decoded, utf8.RuneError) {
		return "", fmt.Errorf("content is not valid %s", label)
	}

	return string(decoded), nil
}
