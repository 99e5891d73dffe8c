// internal/core/ports/catalog_service.go
package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/fusioncl/inventoryms/internal/core/domain"
)

// CatalogService defines the application service port for the catalog.
// This interface is implemented by the application service.
type CatalogService interface {
	// ReconcileRow applies one ingested record: supplier get-or-create,
	// price parse, product get-or-create, then a stock upsert when the
	// record carries a quantity key. The returned error describes the
	// first failing step; earlier steps are not rolled back.
	ReconcileRow(ctx context.Context, record map[string]string) error

	// SetQuantity overwrites a product's stock level and dispatches a
	// low-stock event when the new quantity is below the threshold.
	SetQuantity(ctx context.Context, productID uuid.UUID, quantity int) (*domain.Inventory, error)

	CreateSupplier(ctx context.Context, supplier *domain.Supplier) error
	GetSupplier(ctx context.Context, id uuid.UUID) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context, params SupplierListParams) (*SupplierListResult, error)
	DeleteSupplier(ctx context.Context, id uuid.UUID) error

	CreateProduct(ctx context.Context, product *domain.Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListProducts(ctx context.Context, params ProductListParams) (*ProductListResult, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	GetInventory(ctx context.Context, productID uuid.UUID) (*domain.Inventory, error)
}

// Importer defines the batch ingestion port consumed by the workers.
type Importer interface {
	// ImportCSV decodes content with the named IANA charset, parses it as
	// headered CSV and reconciles every data row. A failure to decode
	// yields a result with zero processed rows and a single file-level
	// error; row failures are collected without aborting the batch.
	ImportCSV(ctx context.Context, content []byte, encoding string) domain.ImportResult

	// ImportRows reconciles pre-parsed records, numbering them from 1.
	ImportRows(ctx context.Context, rows []map[string]string) domain.ImportResult
}
