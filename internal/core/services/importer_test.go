// internal/core/services/importer_test.go
package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fusioncl/inventoryms/internal/core/services"
	"github.com/fusioncl/inventoryms/test/helpers"
	"github.com/fusioncl/inventoryms/test/mocks"
)

var csvHeader = []string{"supplier_name", "supplier_contact", "product_name", "description", "price", "quantity"}

func TestImportService_ImportCSV(t *testing.T) {
	tests := []struct {
		name              string
		content           []byte
		encoding          string
		setupMocks        func(*mocks.MockCatalogService)
		expectedProcessed int
		expectedErrors    []string
	}{
		{
			name: "every_row_reconciles",
			content: helpers.BuildCSV(csvHeader,
				[]string{"Acme Wholesale", "orders@acme.example", "Widget", "A widget", "19.99", "100"},
				[]string{"Beta Supply", "", "Gadget", "", "4.50", "25"},
			),
			setupMocks: func(catalog *mocks.MockCatalogService) {
				catalog.EXPECT().
					ReconcileRow(gomock.Any(), gomock.Any()).
					Return(nil).
					Times(2)
			},
			expectedProcessed: 2,
			expectedErrors:    []string{},
		},
		{
			name: "bad_row_is_reported_but_batch_continues",
			content: helpers.BuildCSV(csvHeader,
				[]string{"Acme Wholesale", "", "Widget", "", "19.99", "100"},
				[]string{"", "", "Gadget", "", "4.50", "25"},
				[]string{"Beta Supply", "", "Sprocket", "", "7.25", "10"},
			),
			setupMocks: func(catalog *mocks.MockCatalogService) {
				gomock.InOrder(
					catalog.EXPECT().
						ReconcileRow(gomock.Any(), gomock.Any()).
						Return(nil),
					catalog.EXPECT().
						ReconcileRow(gomock.Any(), gomock.Any()).
						Return(errors.New(`missing required field "supplier_name"`)),
					catalog.EXPECT().
						ReconcileRow(gomock.Any(), gomock.Any()).
						Return(nil),
				)
			},
			expectedProcessed: 2,
			expectedErrors:    []string{`Row 2: missing required field "supplier_name"`},
		},
		{
			name:              "header_only_file_yields_empty_result",
			content:           helpers.BuildCSV(csvHeader),
			setupMocks:        func(catalog *mocks.MockCatalogService) {},
			expectedProcessed: 0,
			expectedErrors:    []string{},
		},
		{
			name:              "empty_file_yields_empty_result",
			content:           []byte{},
			setupMocks:        func(catalog *mocks.MockCatalogService) {},
			expectedProcessed: 0,
			expectedErrors:    []string{},
		},
		{
			name:              "unknown_encoding_is_a_file_level_error",
			content:           helpers.BuildCSV(csvHeader, []string{"Acme", "", "Widget", "", "1.00", "5"}),
			encoding:          "not-a-charset",
			setupMocks:        func(catalog *mocks.MockCatalogService) {},
			expectedProcessed: 0,
			expectedErrors:    []string{`File processing error: unknown encoding "not-a-charset"`},
		},
		{
			name:              "invalid_byte_sequence_is_a_file_level_error",
			content:           []byte{0xff, 0xfe, 0xfd},
			encoding:          "utf-8",
			setupMocks:        func(catalog *mocks.MockCatalogService) {},
			expectedProcessed: 0,
			expectedErrors:    []string{"File processing error: content is not valid utf-8"},
		},
		{
			name: "short_row_simply_lacks_trailing_fields",
			content: helpers.BuildCSV(csvHeader,
				[]string{"Acme Wholesale", "orders@acme.example"},
			),
			setupMocks: func(catalog *mocks.MockCatalogService) {
				catalog.EXPECT().
					ReconcileRow(gomock.Any(), map[string]string{
						"supplier_name":    "Acme Wholesale",
						"supplier_contact": "orders@acme.example",
					}).
					Return(errors.New(`missing required field "product_name"`))
			},
			expectedProcessed: 0,
			expectedErrors:    []string{`Row 1: missing required field "product_name"`},
		},
		{
			name: "panicking_row_is_contained",
			content: helpers.BuildCSV(csvHeader,
				[]string{"Acme Wholesale", "", "Widget", "", "19.99", "100"},
				[]string{"Beta Supply", "", "Gadget", "", "4.50", "25"},
			),
			setupMocks: func(catalog *mocks.MockCatalogService) {
				gomock.InOrder(
					catalog.EXPECT().
						ReconcileRow(gomock.Any(), gomock.Any()).
						DoAndReturn(func(ctx context.Context, record map[string]string) error {
							panic("nil pointer somewhere deep")
						}),
					catalog.EXPECT().
						ReconcileRow(gomock.Any(), gomock.Any()).
						Return(nil),
				)
			},
			expectedProcessed: 1,
			expectedErrors:    []string{"Row 1: unexpected failure: nil pointer somewhere deep"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockCatalog := mocks.NewMockCatalogService(ctrl)
			tt.setupMocks(mockCatalog)

			service := services.NewImportService(mockCatalog, helpers.TestLogger())

			result := service.ImportCSV(context.Background(), tt.content, tt.encoding)

			assert.Equal(t, tt.expectedProcessed, result.Processed)
			assert.Equal(t, tt.expectedErrors, result.Errors)
		})
	}
}

func TestImportService_ImportCSV_RecordMapping(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCatalog := mocks.NewMockCatalogService(ctrl)

	var captured map[string]string
	mockCatalog.EXPECT().
		ReconcileRow(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, record map[string]string) error {
			captured = record
			return nil
		})

	content := helpers.BuildCSV(csvHeader,
		[]string{"Acme Wholesale", "orders@acme.example", "Widget Mk II", "Boxed in dozens", "19.99", "100", "surplus-column"},
	)

	service := services.NewImportService(mockCatalog, helpers.TestLogger())
	result := service.ImportCSV(context.Background(), content, "")

	require.Equal(t, 1, result.Processed)
	require.Empty(t, result.Errors)

	assert.Equal(t, map[string]string{
		"supplier_name":    "Acme Wholesale",
		"supplier_contact": "orders@acme.example",
		"product_name":     "Widget Mk II",
		"description":      "Boxed in dozens",
		"price":            "19.99",
		"quantity":         "100",
	}, captured, "fields without a header column should be dropped")
}

func TestImportService_ImportCSV_Latin1(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCatalog := mocks.NewMockCatalogService(ctrl)

	var captured map[string]string
	mockCatalog.EXPECT().
		ReconcileRow(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, record map[string]string) error {
			captured = record
			return nil
		})

	// "Café Münster" with 0xE9 and 0xFC, valid ISO-8859-1 but not UTF-8.
	content := []byte("supplier_name,product_name,price\nCaf\xe9 M\xfcnster,Widget,1.00\n")

	service := services.NewImportService(mockCatalog, helpers.TestLogger())
	result := service.ImportCSV(context.Background(), content, "ISO-8859-1")

	require.Equal(t, 1, result.Processed)
	require.Empty(t, result.Errors)
	assert.Equal(t, "Café Münster", captured["supplier_name"])
}

func TestImportService_ImportRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCatalog := mocks.NewMockCatalogService(ctrl)

	rows := []map[string]string{
		{"supplier_name": "Acme", "product_name": "Widget", "price": "1.00"},
		{"supplier_name": "", "product_name": "Gadget", "price": "2.00"},
		{"supplier_name": "Beta", "product_name": "Sprocket", "price": "3.00"},
	}

	gomock.InOrder(
		mockCatalog.EXPECT().ReconcileRow(gomock.Any(), rows[0]).Return(nil),
		mockCatalog.EXPECT().ReconcileRow(gomock.Any(), rows[1]).Return(errors.New(`missing required field "supplier_name"`)),
		mockCatalog.EXPECT().ReconcileRow(gomock.Any(), rows[2]).Return(nil),
	)

	service := services.NewImportService(mockCatalog, helpers.TestLogger())
	result := service.ImportRows(context.Background(), rows)

	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, []string{`Row 2: missing required field "supplier_name"`}, result.Errors)
}
