// internal/handlers/import_handler_test.go
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	redis_a "github.com/fusioncl/inventoryms/internal/adapters/redis_adapter"
	"github.com/fusioncl/inventoryms/internal/core/domain"
	"github.com/fusioncl/inventoryms/internal/handlers"
	"github.com/fusioncl/inventoryms/internal/workers"
	"github.com/fusioncl/inventoryms/test/helpers"
	"github.com/fusioncl/inventoryms/test/mocks"
)

// multipartUpload builds a multipart body with a single file field plus
// optional extra form values.
func multipartUpload(t *testing.T, fieldName, fileName string, content []byte, extra map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile(fieldName, fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)

	for k, v := range extra {
		require.NoError(t, writer.WriteField(k, v))
	}

	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestImportHandler_ImportCSV(t *testing.T) {
	csvContent := helpers.BuildCSV(
		[]string{"supplier_name", "product_name", "price", "quantity"},
		[]string{"Acme Wholesale", "Widget", "19.99", "100"},
	)

	tests := []struct {
		name           string
		fileName       string
		fieldName      string
		content        []byte
		extra          map[string]string
		setupMocks     func(*mocks.MockTaskEnqueuer)
		expectedStatus int
		validateBody   func(*testing.T, map[string]interface{})
	}{
		{
			name:      "queues_job_and_returns_job_id",
			fileName:  "products.csv",
			fieldName: "file",
			content:   csvContent,
			setupMocks: func(enqueuer *mocks.MockTaskEnqueuer) {
				enqueuer.EXPECT().
					Enqueue(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
						assert.Equal(t, workers.TypeCSVImport, task.Type())

						var payload workers.CSVImportPayload
						require.NoError(t, json.Unmarshal(task.Payload(), &payload))
						assert.Equal(t, "products.csv", payload.FileName)
						assert.Equal(t, csvContent, payload.Content)
						assert.Equal(t, "utf-8", payload.Encoding)
						assert.NotEmpty(t, payload.JobID)

						return &asynq.TaskInfo{ID: "task-1"}, nil
					})
			},
			expectedStatus: http.StatusAccepted,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "File processing started", body["message"])
				jobID, ok := body["job_id"].(string)
				require.True(t, ok)
				_, err := uuid.Parse(jobID)
				assert.NoError(t, err)
			},
		},
		{
			name:      "passes_declared_encoding_through",
			fileName:  "products.csv",
			fieldName: "file",
			content:   csvContent,
			extra:     map[string]string{"encoding": "ISO-8859-1"},
			setupMocks: func(enqueuer *mocks.MockTaskEnqueuer) {
				enqueuer.EXPECT().
					Enqueue(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
						var payload workers.CSVImportPayload
						require.NoError(t, json.Unmarshal(task.Payload(), &payload))
						assert.Equal(t, "ISO-8859-1", payload.Encoding)
						return &asynq.TaskInfo{ID: "task-2"}, nil
					})
			},
			expectedStatus: http.StatusAccepted,
		},
		{
			name:           "rejects_non_csv_extension",
			fileName:       "products.xlsx",
			fieldName:      "file",
			content:        csvContent,
			setupMocks:     func(enqueuer *mocks.MockTaskEnqueuer) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "Only CSV files are supported", body["error"])
			},
		},
		{
			name:           "rejects_missing_file_field",
			fileName:       "products.csv",
			fieldName:      "document",
			content:        csvContent,
			setupMocks:     func(enqueuer *mocks.MockTaskEnqueuer) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "File is required", body["error"])
			},
		},
		{
			name:      "enqueue_failure_returns_500",
			fileName:  "products.csv",
			fieldName: "file",
			content:   csvContent,
			setupMocks: func(enqueuer *mocks.MockTaskEnqueuer) {
				enqueuer.EXPECT().
					Enqueue(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("redis: connection refused"))
			},
			expectedStatus: http.StatusInternalServerError,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "Failed to queue import job", body["error"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockEnqueuer := mocks.NewMockTaskEnqueuer(ctrl)
			mockCache := mocks.NewMockCacheRepository(ctrl)
			tt.setupMocks(mockEnqueuer)

			handler := handlers.NewImportHandler(mockEnqueuer, mockCache, nil, helpers.TestConfig(), helpers.TestLogger())

			body, contentType := multipartUpload(t, tt.fieldName, tt.fileName, tt.content, tt.extra)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/import/csv", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()

			handler.ImportCSV(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.validateBody != nil {
				var resp map[string]interface{}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				tt.validateBody(t, resp)
			}
		})
	}
}

func TestImportHandler_ImportExcel_RejectsWrongExtension(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEnqueuer := mocks.NewMockTaskEnqueuer(ctrl)
	mockCache := mocks.NewMockCacheRepository(ctrl)

	handler := handlers.NewImportHandler(mockEnqueuer, mockCache, nil, helpers.TestConfig(), helpers.TestLogger())

	body, contentType := multipartUpload(t, "file", "products.csv", []byte("a,b\n"), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/import/excel", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	handler.ImportExcel(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Only Excel files are supported", resp["error"])
}

func TestImportHandler_ImportResult(t *testing.T) {
	jobID := uuid.New().String()

	tests := []struct {
		name           string
		jobID          string
		setupMocks     func(*mocks.MockCacheRepository)
		expectedStatus int
		validateBody   func(*testing.T, map[string]interface{})
	}{
		{
			name:  "returns_cached_result",
			jobID: jobID,
			setupMocks: func(cache *mocks.MockCacheRepository) {
				cache.EXPECT().
					Get(gomock.Any(), redis_a.ImportResultKey(jobID), gomock.Any()).
					DoAndReturn(func(ctx context.Context, key string, dest interface{}) error {
						result := dest.(*domain.ImportResult)
						result.Processed = 7
						result.Errors = []string{"Row 3: invalid price \"abc\""}
						return nil
					})
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, jobID, body["job_id"])
				result, ok := body["result"].(map[string]interface{})
				require.True(t, ok)
				assert.Equal(t, float64(7), result["processed"])
			},
		},
		{
			name:  "missing_result_returns_404",
			jobID: jobID,
			setupMocks: func(cache *mocks.MockCacheRepository) {
				cache.EXPECT().
					Get(gomock.Any(), redis_a.ImportResultKey(jobID), gomock.Any()).
					Return(redis_a.ErrCacheMiss)
			},
			expectedStatus: http.StatusNotFound,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "Result not found or expired", body["error"])
			},
		},
		{
			name:           "malformed_job_id_returns_400",
			jobID:          "not-a-uuid",
			setupMocks:     func(cache *mocks.MockCacheRepository) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "Invalid job ID format", body["error"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockEnqueuer := mocks.NewMockTaskEnqueuer(ctrl)
			mockCache := mocks.NewMockCacheRepository(ctrl)
			tt.setupMocks(mockCache)

			handler := handlers.NewImportHandler(mockEnqueuer, mockCache, nil, helpers.TestConfig(), helpers.TestLogger())

			req := httptest.NewRequest(http.MethodGet, "/api/v1/import/"+tt.jobID+"/result", nil)
			req.SetPathValue("job_id", tt.jobID)
			w := httptest.NewRecorder()

			handler.ImportResult(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			tt.validateBody(t, resp)
		})
	}
}
