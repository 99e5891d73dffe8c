//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/suite"

	"github.com/fusioncl/inventoryms/internal/adapters/db"
	redis_a "github.com/fusioncl/inventoryms/internal/adapters/redis_adapter"
	"github.com/fusioncl/inventoryms/internal/core/domain"
	"github.com/fusioncl/inventoryms/internal/core/services"
	"github.com/fusioncl/inventoryms/internal/handlers"
	"github.com/fusioncl/inventoryms/internal/workers"
	"github.com/fusioncl/inventoryms/test/helpers"
)

// captureNotifier records dispatched low-stock events instead of
// queueing them.
type captureNotifier struct {
	mu     sync.Mutex
	events []domain.LowStockEvent
}

func (n *captureNotifier) NotifyLowStock(ctx context.Context, event domain.LowStockEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *captureNotifier) Events() []domain.LowStockEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.LowStockEvent(nil), n.events...)
}

// inlineEnqueuer runs import tasks synchronously, standing in for the
// worker so the whole upload-to-result flow is observable in one test.
type inlineEnqueuer struct {
	processor *workers.ImportProcessor
}

func (e *inlineEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	ctx := context.Background()

	var err error
	switch task.Type() {
	case workers.TypeCSVImport:
		err = e.processor.ProcessCSV(ctx, task)
	case workers.TypeExcelImport:
		err = e.processor.ProcessExcel(ctx, task)
	default:
		err = fmt.Errorf("unexpected task type %q", task.Type())
	}
	if err != nil {
		return nil, err
	}

	return &asynq.TaskInfo{ID: uuid.New().String(), Queue: "default"}, nil
}

type CatalogE2ESuite struct {
	suite.Suite
	server    *httptest.Server
	client    *http.Client
	baseURL   string
	testDB    *helpers.TestDB
	testRedis *helpers.TestRedis
	notifier  *captureNotifier
}

func (s *CatalogE2ESuite) SetupSuite() {
	s.testDB = helpers.SetupTestDB(s.T())
	s.testRedis = helpers.SetupTestRedis(s.T())

	s.server = s.startTestServer()
	s.client = &http.Client{Timeout: 10 * time.Second}
	s.baseURL = s.server.URL + "/api/v1"
}

func (s *CatalogE2ESuite) TearDownSuite() {
	s.server.Close()
}

func (s *CatalogE2ESuite) SetupTest() {
	helpers.TruncateAllTables(s.T(), s.testDB.PgxPool)
	s.notifier.mu.Lock()
	s.notifier.events = nil
	s.notifier.mu.Unlock()
}

func (s *CatalogE2ESuite) startTestServer() *httptest.Server {
	cfg := helpers.TestConfig()
	logger := helpers.TestLogger()

	repo := db.NewCatalogRepository(s.testDB.Database, logger)
	s.notifier = &captureNotifier{}
	catalogService := services.NewCatalogService(repo, s.notifier, logger)
	importService := services.NewImportService(catalogService, logger)

	cache := redis_a.NewCache(s.testRedis.Client, time.Hour, logger)
	processor := workers.NewImportProcessor(importService, cache, cfg, logger)
	enqueuer := &inlineEnqueuer{processor: processor}

	supplierHandler := handlers.NewSupplierHandler(catalogService, logger)
	productHandler := handlers.NewProductHandler(catalogService, logger)
	inventoryHandler := handlers.NewInventoryHandler(catalogService, logger)
	importHandler := handlers.NewImportHandler(enqueuer, cache, nil, cfg, logger)

	mux := http.NewServeMux()
	apiV1 := "/api/v1"

	mux.HandleFunc("POST "+apiV1+"/suppliers", supplierHandler.CreateSupplier)
	mux.HandleFunc("GET "+apiV1+"/suppliers", supplierHandler.ListSuppliers)
	mux.HandleFunc("GET "+apiV1+"/suppliers/{id}", supplierHandler.GetSupplier)
	mux.HandleFunc("DELETE "+apiV1+"/suppliers/{id}", supplierHandler.DeleteSupplier)

	mux.HandleFunc("POST "+apiV1+"/products", productHandler.CreateProduct)
	mux.HandleFunc("GET "+apiV1+"/products", productHandler.ListProducts)
	mux.HandleFunc("GET "+apiV1+"/products/{id}", productHandler.GetProduct)
	mux.HandleFunc("DELETE "+apiV1+"/products/{id}", productHandler.DeleteProduct)

	mux.HandleFunc("GET "+apiV1+"/inventory/{product_id}", inventoryHandler.GetInventory)
	mux.HandleFunc("PUT "+apiV1+"/inventory/{product_id}", inventoryHandler.SetQuantity)

	mux.HandleFunc("POST "+apiV1+"/import/csv", importHandler.ImportCSV)
	mux.HandleFunc("POST "+apiV1+"/import/excel", importHandler.ImportExcel)
	mux.HandleFunc("GET "+apiV1+"/import/{job_id}/result", importHandler.ImportResult)

	return httptest.NewServer(mux)
}

func (s *CatalogE2ESuite) TestCompleteCatalogWorkflow() {
	// 1. Create a supplier
	resp := s.makeRequest("POST", "/suppliers", map[string]interface{}{
		"name":         "Acme Wholesale",
		"contact_info": "orders@acme-wholesale.example",
	})
	s.Equal(http.StatusCreated, resp.StatusCode)

	var supplier map[string]interface{}
	s.decodeResponse(resp, &supplier)
	supplierID := supplier["id"].(string)
	s.NotEmpty(supplierID)

	// 2. Create a product for the supplier
	resp = s.makeRequest("POST", "/products", map[string]interface{}{
		"supplier_id": supplierID,
		"name":        "Widget Mk II",
		"description": "Standard widget",
		"price":       "19.99",
	})
	s.Equal(http.StatusCreated, resp.StatusCode)

	var product map[string]interface{}
	s.decodeResponse(resp, &product)
	productID := product["id"].(string)
	s.NotEmpty(productID)

	// 3. Overwrite its stock level
	resp = s.makeRequest("PUT", fmt.Sprintf("/inventory/%s", productID), map[string]interface{}{
		"quantity": 50,
	})
	s.Equal(http.StatusOK, resp.StatusCode)

	// 4. Read the stock record back
	resp = s.makeRequest("GET", fmt.Sprintf("/inventory/%s", productID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var inventory map[string]interface{}
	s.decodeResponse(resp, &inventory)
	s.Equal(float64(50), inventory["quantity"])

	// 5. List products filtered by supplier
	resp = s.makeRequest("GET", "/products?supplier_id="+supplierID, nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var listResponse map[string]interface{}
	s.decodeResponse(resp, &listResponse)
	products := listResponse["products"].([]interface{})
	s.Len(products, 1)

	// 6. Delete the product
	resp = s.makeRequest("DELETE", fmt.Sprintf("/products/%s", productID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	// 7. Stock record is gone with the product
	resp = s.makeRequest("GET", fmt.Sprintf("/inventory/%s", productID), nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *CatalogE2ESuite) TestCSVImportWorkflow() {
	csvContent := helpers.BuildCSV(
		[]string{"supplier_name", "supplier_contact", "product_name", "description", "price", "quantity"},
		[]string{"Acme Wholesale", "orders@acme.example", "Widget", "A widget", "19.99", "100"},
		[]string{"Acme Wholesale", "", "Gadget", "", "4.50", "5"},
		[]string{"", "", "Orphan", "", "1.00", "1"},
	)

	// Upload the file
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "catalog.csv")
	s.NoError(err)
	_, err = io.Copy(part, bytes.NewReader(csvContent))
	s.NoError(err)
	writer.Close()

	req, err := http.NewRequest("POST", s.baseURL+"/import/csv", body)
	s.NoError(err)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	s.NoError(err)
	s.Equal(http.StatusAccepted, resp.StatusCode)

	var importResponse map[string]interface{}
	s.decodeResponse(resp, &importResponse)
	s.Equal("File processing started", importResponse["message"])
	jobID := importResponse["job_id"].(string)
	s.NotEmpty(jobID)

	// The inline enqueuer processed the batch synchronously, so the
	// result is already cached.
	resp = s.makeRequest("GET", fmt.Sprintf("/import/%s/result", jobID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var resultResponse map[string]interface{}
	s.decodeResponse(resp, &resultResponse)
	result := resultResponse["result"].(map[string]interface{})
	s.Equal(float64(2), result["processed"])
	errs := result["errors"].([]interface{})
	s.Len(errs, 1)
	s.Contains(errs[0].(string), "Row 3")

	// Both products exist in the catalog
	resp = s.makeRequest("GET", "/products?search=Widget", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var listResponse map[string]interface{}
	s.decodeResponse(resp, &listResponse)
	s.Equal(float64(1), listResponse["total_count"])

	// The 5-unit Gadget row dispatched a low-stock event
	events := s.notifier.Events()
	s.Len(events, 1)
	s.Equal("Gadget", events[0].ProductName)
	s.Equal("Acme Wholesale", events[0].SupplierName)
	s.Equal(5, events[0].Quantity)
}

func (s *CatalogE2ESuite) TestImportResultExpiry() {
	resp := s.makeRequest("GET", fmt.Sprintf("/import/%s/result", uuid.New()), nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)

	var body map[string]interface{}
	s.decodeResponse(resp, &body)
	s.Equal("Result not found or expired", body["error"])
}

func (s *CatalogE2ESuite) TestReimportOverwritesStockOnly() {
	header := []string{"supplier_name", "product_name", "price", "quantity"}

	// First import establishes the product at price 10.00
	s.uploadCSV(helpers.BuildCSV(header, []string{"Acme", "Widget", "10.00", "100"}))

	// Second import with a different price and lower quantity
	s.uploadCSV(helpers.BuildCSV(header, []string{"Acme", "Widget", "99.00", "40"}))

	resp := s.makeRequest("GET", "/products?search=Widget", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var listResponse map[string]interface{}
	s.decodeResponse(resp, &listResponse)
	s.Equal(float64(1), listResponse["total_count"], "re-import must not duplicate the product")

	products := listResponse["products"].([]interface{})
	product := products[0].(map[string]interface{})
	s.Equal("10", product["price"], "price is set on first encounter only")

	resp = s.makeRequest("GET", fmt.Sprintf("/inventory/%s", product["id"]), nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var inventory map[string]interface{}
	s.decodeResponse(resp, &inventory)
	s.Equal(float64(40), inventory["quantity"], "quantity is overwritten on every import")
}

// Helper methods

func (s *CatalogE2ESuite) uploadCSV(content []byte) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "catalog.csv")
	s.NoError(err)
	_, err = io.Copy(part, bytes.NewReader(content))
	s.NoError(err)
	writer.Close()

	req, err := http.NewRequest("POST", s.baseURL+"/import/csv", body)
	s.NoError(err)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	s.NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusAccepted, resp.StatusCode)
}

func (s *CatalogE2ESuite) makeRequest(method, path string, body interface{}) *http.Response {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		s.NoError(err)
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, s.baseURL+path, reqBody)
	s.NoError(err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	s.NoError(err)

	return resp
}

func (s *CatalogE2ESuite) decodeResponse(resp *http.Response, v interface{}) {
	defer resp.Body.Close()
	err := json.NewDecoder(resp.Body).Decode(v)
	s.NoError(err)
}

func TestCatalogE2ESuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E tests in short mode")
	}
	suite.Run(t, new(CatalogE2ESuite))
}
