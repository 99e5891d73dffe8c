// internal/workers/tasks.go
package workers

const (
	TypeCSVImport        = "import:csv"
	TypeExcelImport      = "import:excel"
	TypeLowStockAlert    = "notify:low_stock"
	TypeCleanupTempFiles = "cleanup:temp_files"
)

// CSVImportPayload carries an ingestion job through the queue. Content is
// the raw uploaded bytes; Encoding is the IANA charset label the client
// declared for them.
type CSVImportPayload struct {
	JobID    string `json:"job_id"`
	FileName string `json:"file_name,omitempty"`
	Content  []byte `json:"content"`
	Encoding string `json:"encoding"`
}

// ExcelImportPayload carries an XLSX ingestion job through the queue.
type ExcelImportPayload struct {
	JobID    string `json:"job_id"`
	FileName string `json:"file_name,omitempty"`
	Content  []byte `json:"content"`
}

// LowStockAlertPayload describes a product that dropped below the
// restocking threshold.
type LowStockAlertPayload struct {
	ProductName  string `json:"product_name"`
	SupplierName string `json:"supplier_name"`
	Quantity     int    `json:"quantity"`
}
