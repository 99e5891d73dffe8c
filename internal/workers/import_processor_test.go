// internal/workers/import_processor_test.go
package workers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fusioncl/inventoryms/internal/core/domain"
	"github.com/fusioncl/inventoryms/internal/workers"
	"github.com/fusioncl/inventoryms/test/helpers"
	"github.com/fusioncl/inventoryms/test/mocks"
)

func TestImportProcessor_ProcessCSV(t *testing.T) {
	jobID := uuid.New().String()
	content := []byte("supplier_name,product_name,price\nAcme,Widget,9.99\n")

	tests := []struct {
		name          string
		payload       []byte
		setupMocks    func(*mocks.MockImporter, *mocks.MockCacheRepository)
		expectedError bool
	}{
		{
			name: "processes_and_caches_result",
			payload: mustMarshal(t, workers.CSVImportPayload{
				JobID:    jobID,
				FileName: "stock.csv",
				Content:  content,
				Encoding: "utf-8",
			}),
			setupMocks: func(importer *mocks.MockImporter, cache *mocks.MockCacheRepository) {
				result := domain.ImportResult{Processed: 1, Errors: []string{}}
				importer.EXPECT().
					ImportCSV(gomock.Any(), content, "utf-8").
					Return(result)
				cache.EXPECT().
					SetWithTTL(gomock.Any(), "import:result:"+jobID, result, 24*time.Hour).
					Return(nil)
			},
		},
		{
			name: "caches_result_even_when_rows_failed",
			payload: mustMarshal(t, workers.CSVImportPayload{
				JobID:    jobID,
				Content:  content,
				Encoding: "utf-8",
			}),
			setupMocks: func(importer *mocks.MockImporter, cache *mocks.MockCacheRepository) {
				result := domain.ImportResult{
					Processed: 0,
					Errors:    []string{"Row 1: Missing required field: 'price'"},
				}
				importer.EXPECT().
					ImportCSV(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(result)
				cache.EXPECT().
					SetWithTTL(gomock.Any(), gomock.Any(), result, gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "swallows_cache_write_failure",
			payload: mustMarshal(t, workers.CSVImportPayload{
				JobID:    jobID,
				Content:  content,
				Encoding: "utf-8",
			}),
			setupMocks: func(importer *mocks.MockImporter, cache *mocks.MockCacheRepository) {
				importer.EXPECT().
					ImportCSV(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(domain.ImportResult{Processed: 1})
				cache.EXPECT().
					SetWithTTL(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("redis down"))
			},
		},
		{
			name:          "rejects_malformed_payload",
			payload:       []byte("{not json"),
			setupMocks:    func(*mocks.MockImporter, *mocks.MockCacheRepository) {},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockImporter := mocks.NewMockImporter(ctrl)
			mockCache := mocks.NewMockCacheRepository(ctrl)
			tt.setupMocks(mockImporter, mockCache)

			processor := workers.NewImportProcessor(mockImporter, mockCache, helpers.TestConfig(), helpers.TestLogger())
			task := asynq.NewTask(workers.TypeCSVImport, tt.payload)

			err := processor.ProcessCSV(context.Background(), task)

			if tt.expectedError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestImportProcessor_ProcessExcel_InvalidWorkbook(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	jobID := uuid.New().String()
	mockImporter := mocks.NewMockImporter(ctrl)
	mockCache := mocks.NewMockCacheRepository(ctrl)

	// An unreadable workbook short-circuits before row reconciliation,
	// but the job still records a result.
	mockCache.EXPECT().
		SetWithTTL(gomock.Any(), "import:result:"+jobID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value interface{}, _ time.Duration) error {
			result, ok := value.(domain.ImportResult)
			require.True(t, ok)
			assert.Zero(t, result.Processed)
			require.Len(t, result.Errors, 1)
			assert.Contains(t, result.Errors[0], "File processing error:")
			return nil
		})

	payload := mustMarshal(t, workers.ExcelImportPayload{
		JobID:   jobID,
		Content: []byte("this is not a zip archive"),
	})

	processor := workers.NewImportProcessor(mockImporter, mockCache, helpers.TestConfig(), helpers.TestLogger())
	task := asynq.NewTask(workers.TypeExcelImport, payload)

	err := processor.ProcessExcel(context.Background(), task)
	require.NoError(t, err)
}

func mustMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}
