// internal/core/ports/catalog_repository.go
package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fusioncl/inventoryms/internal/core/domain"
)

// CatalogRepository defines the persistence port for suppliers, products
// and inventory. This interface is implemented by the database adapter.
type CatalogRepository interface {
	// GetOrCreateSupplier returns the supplier with the given name,
	// inserting it with contactInfo as the creation default. An existing
	// supplier's contact info is left untouched.
	GetOrCreateSupplier(ctx context.Context, name, contactInfo string) (*domain.Supplier, error)

	// GetOrCreateProduct returns the product identified by (supplier, name),
	// inserting it with description and price as creation defaults. An
	// existing product's price and description are left untouched.
	GetOrCreateProduct(ctx context.Context, supplierID uuid.UUID, name, description string, price decimal.Decimal) (*domain.Product, error)

	// UpsertInventory inserts or overwrites the single stock record for a
	// product and returns the stored state.
	UpsertInventory(ctx context.Context, productID uuid.UUID, quantity int) (*domain.Inventory, error)

	SaveSupplier(ctx context.Context, supplier *domain.Supplier) error
	FindSupplierByID(ctx context.Context, id uuid.UUID) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context, params SupplierListParams) (*SupplierListResult, error)
	DeleteSupplier(ctx context.Context, id uuid.UUID) error

	SaveProduct(ctx context.Context, product *domain.Product) error
	FindProductByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListProducts(ctx context.Context, params ProductListParams) (*ProductListResult, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	FindInventoryByProductID(ctx context.Context, productID uuid.UUID) (*domain.Inventory, error)
}

// SupplierListParams holds parameters for listing suppliers
type SupplierListParams struct {
	Search   string
	Page     int
	PageSize int
}

// SupplierListResult holds the result of listing suppliers
type SupplierListResult struct {
	Suppliers  []*domain.Supplier `json:"suppliers"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalCount int64              `json:"total_count"`
	TotalPages int                `json:"total_pages"`
}

// ProductListParams holds parameters for listing products
type ProductListParams struct {
	SupplierID *uuid.UUID
	Search     string
	SortBy     string
	SortOrder  string
	Page       int
	PageSize   int
}

// ProductListResult holds the result of listing products
type ProductListResult struct {
	Products   []*domain.Product `json:"products"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalCount int64             `json:"total_count"`
	TotalPages int               `json:"total_pages"`
}
